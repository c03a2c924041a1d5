package searcher

import (
	"fmt"
	"math"
	"slices"

	"gridmcts/game"
	"gridmcts/utils"
)

// Node is a search tree node. A node owns its children; the parent pointer is
// only a back reference used during backpropagation.
type Node[M comparable, S State[M, S]] struct {
	state      S
	parent     *Node[M, S]
	move       M // move that led here from parent, zero at the root
	unexplored []M
	children   map[M]*Node[M, S]
	order      []M // expansion order of children
	values     Values
	playouts   int
}

func newNode[M comparable, S State[M, S]](state S, parent *Node[M, S], move M) *Node[M, S] {
	var unexplored []M
	if state.Winner() == game.None {
		unexplored = slices.Clone(state.LegalMoves())
	}
	return &Node[M, S]{
		state:      state,
		parent:     parent,
		move:       move,
		unexplored: unexplored,
		children:   make(map[M]*Node[M, S]),
		values:     make(Values, 2),
	}
}

// NewRoot returns a parentless node for state.
func NewRoot[M comparable, S State[M, S]](state S) *Node[M, S] {
	var zero M
	return newNode(state, nil, zero)
}

func (n *Node[M, S]) State() S                 { return n.state }
func (n *Node[M, S]) Parent() *Node[M, S]      { return n.parent }
func (n *Node[M, S]) Move() M                  { return n.move }
func (n *Node[M, S]) Playouts() int            { return n.playouts }
func (n *Node[M, S]) IsRoot() bool             { return n.parent == nil }
func (n *Node[M, S]) FullyExpanded() bool      { return len(n.unexplored) == 0 }
func (n *Node[M, S]) Unexplored() []M          { return slices.Clone(n.unexplored) }
func (n *Node[M, S]) Child(move M) *Node[M, S] { return n.children[move] }

// Values returns a copy of the accumulated values.
func (n *Node[M, S]) Values() Values {
	out := make(Values, len(n.values))
	for p, v := range n.values {
		out[p] = v
	}
	return out
}

// Children returns the children in the order they were expanded.
func (n *Node[M, S]) Children() []*Node[M, S] {
	out := make([]*Node[M, S], len(n.order))
	for i, move := range n.order {
		out[i] = n.children[move]
	}
	return out
}

// ExpectedValue is the mean value for p over all playouts, 0 before the first.
func (n *Node[M, S]) ExpectedValue(p game.Player) float64 {
	if n.playouts == 0 {
		return 0
	}
	return n.values[p] / float64(n.playouts)
}

// UCB scores the node for selection by its parent. Unvisited nodes score +Inf;
// the root is never selected and scores 0.
func (n *Node[M, S]) UCB(c float64) float64 {
	if n.parent == nil {
		return 0
	}
	if n.playouts == 0 {
		return math.Inf(1)
	}
	u := newUCT(c, n.parent.playouts)
	return u.evaluate(n.ExpectedValue(n.parent.state.Player()), n.playouts)
}

// ExpandMove creates the child reached by move. The move must still be
// unexplored.
func (n *Node[M, S]) ExpandMove(move M) (*Node[M, S], error) {
	i := utils.FindIndex(n.unexplored, move)
	if i < 0 {
		if _, ok := n.children[move]; ok {
			return nil, fmt.Errorf("expand %v: %w", move, ErrAlreadyExpanded)
		}
		return nil, fmt.Errorf("expand %v: %w", move, ErrInvalidMove)
	}

	child := newNode(n.state.Play(move), n, move)
	n.unexplored = slices.Delete(n.unexplored, i, i+1)
	n.children[move] = child
	n.order = append(n.order, move)
	return child, nil
}

// Size counts the nodes in the subtree rooted at n.
func (n *Node[M, S]) Size() int {
	size := 1
	for _, child := range n.children {
		size += child.Size()
	}
	return size
}

// backup records one playout and returns the parent.
func (n *Node[M, S]) backup(values Values) *Node[M, S] {
	n.playouts++
	for p, v := range values {
		n.values[p] += v
	}
	return n.parent
}
