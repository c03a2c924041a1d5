package searcher

import (
	"slices"

	"gridmcts/game"
)

// MoveValues is a read-only view of a node's children as seen by one player.
// It reflects the tree at the time of each call, so it may be read while a
// search is still stepping.
type MoveValues[M comparable, S State[M, S]] struct {
	node   *Node[M, S]
	player game.Player
}

func NewMoveValues[M comparable, S State[M, S]](node *Node[M, S], player game.Player) MoveValues[M, S] {
	return MoveValues[M, S]{node: node, player: player}
}

func (v MoveValues[M, S]) Player() game.Player { return v.player }

// Value returns the expected value of move, or Unknown if it has no child.
func (v MoveValues[M, S]) Value(move M) float64 {
	value, ok := v.Known(move)
	if !ok {
		return Unknown
	}
	return value
}

func (v MoveValues[M, S]) Known(move M) (float64, bool) {
	if v.node == nil {
		return 0, false
	}
	child := v.node.Child(move)
	if child == nil {
		return 0, false
	}
	return child.ExpectedValue(v.player), true
}

func (v MoveValues[M, S]) Visits(move M) int {
	if v.node == nil {
		return 0
	}
	if child := v.node.Child(move); child != nil {
		return child.Playouts()
	}
	return 0
}

// Playouts returns the number of rounds that passed through the root.
func (v MoveValues[M, S]) Playouts() int {
	if v.node == nil {
		return 0
	}
	return v.node.Playouts()
}

// Moves lists the expanded moves in expansion order.
func (v MoveValues[M, S]) Moves() []M {
	if v.node == nil {
		return nil
	}
	return slices.Clone(v.node.order)
}

// Map returns the expected value of every expanded move.
func (v MoveValues[M, S]) Map() map[M]float64 {
	out := make(map[M]float64, len(v.Moves()))
	for _, move := range v.Moves() {
		out[move] = v.Value(move)
	}
	return out
}

// Best returns the expanded move with the highest value. Ties go to the move
// with more visits, then to the earlier expansion.
func (v MoveValues[M, S]) Best() (M, bool) {
	var best M
	found := false
	bestValue, bestVisits := 0.0, 0
	for _, move := range v.Moves() {
		value, visits := v.Value(move), v.Visits(move)
		if !found || value > bestValue || (value == bestValue && visits > bestVisits) {
			best, bestValue, bestVisits, found = move, value, visits, true
		}
	}
	return best, found
}

// UniformPolicy weighs every move equally.
type UniformPolicy[M comparable, S any] struct{}

func (UniformPolicy[M, S]) Weights(state S, player game.Player) func(M) float64 {
	return func(M) float64 { return 1 }
}
