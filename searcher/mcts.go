package searcher

import (
	"context"
	"fmt"
	"time"

	"gridmcts/experiments/metrics"
	"gridmcts/game"
	"gridmcts/meta"
	"gridmcts/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(c *config)

type config struct {
	rounds      int
	duration    time.Duration
	exploration float64
	rng         *rand.Rand
	metrics     bool
}

// WithRounds sets the number of rounds per search.
func WithRounds(rounds int) Option {
	return func(c *config) {
		c.rounds = rounds
	}
}

// WithDuration searches for a fixed time instead of a fixed number of rounds.
func WithDuration(duration time.Duration) Option {
	return func(c *config) {
		if duration > 0 {
			c.duration = duration
		}
	}
}

func WithExploration(exploration float64) Option {
	return func(c *config) {
		if exploration >= 0 {
			c.exploration = exploration
		}
	}
}

// WithRand routes every random choice of the search through rng.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		if rng != nil {
			c.rng = rng
		}
	}
}

func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func WithMetrics() Option {
	return func(c *config) {
		c.metrics = true
	}
}

// MCTS grows a search tree from a root state. It is not safe for concurrent
// use; callers stepping a search from several goroutines must serialize.
type MCTS[M comparable, S State[M, S]] struct {
	rounds      int
	duration    time.Duration
	exploration float64
	rng         *rand.Rand
	heuristic   Heuristic[S]
	expansion   ExpansionPolicy[M, S]
	root        *Node[M, S]
	metrics     metrics.Collector
}

// NewMCTS returns an engine evaluating leaves with heuristic and choosing
// expansions with expansion. Nil arguments select the random playout heuristic
// and the uniform policy.
func NewMCTS[M comparable, S State[M, S]](heuristic Heuristic[S], expansion ExpansionPolicy[M, S], options ...Option) *MCTS[M, S] {
	c := config{ // Default values
		rounds:      meta.ROUNDS,
		exploration: meta.EXPLORATION,
	}
	for _, option := range options {
		option(&c)
	}
	if c.rounds <= 0 && c.duration <= 0 {
		panic("Must specify search rounds or duration")
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if heuristic == nil {
		heuristic = NewRandomPlayout[M, S](meta.ROLLOUTS)
	}
	if expansion == nil {
		expansion = UniformPolicy[M, S]{}
	}
	if r, ok := heuristic.(RandAware); ok {
		r.SetRand(c.rng)
	}
	if r, ok := expansion.(RandAware); ok {
		r.SetRand(c.rng)
	}

	m := &MCTS[M, S]{
		rounds:      c.rounds,
		duration:    c.duration,
		exploration: c.exploration,
		rng:         c.rng,
		heuristic:   heuristic,
		expansion:   expansion,
		metrics:     metrics.NewDummyCollector(),
	}
	if c.metrics {
		m.metrics = metrics.NewCollector()
	}
	return m
}

// Policy discards the current tree, searches state and returns the values of
// the root's moves for player.
func (m *MCTS[M, S]) Policy(state S, player game.Player) (MoveValues[M, S], error) {
	values, _, err := m.Search(context.Background(), state, player)
	return values, err
}

// Search is Policy with cancellation and search metrics. A cancelled search
// still returns the values gathered so far along with the context error.
func (m *MCTS[M, S]) Search(ctx context.Context, state S, player game.Player) (MoveValues[M, S], metrics.SearchMetric, error) {
	start := time.Now()
	m.Reset(state)
	m.metrics.Start()

	var err error
	if m.duration > 0 {
		err = m.countdown(ctx)
	} else {
		err = m.iterate(ctx)
	}
	metric := m.metrics.Complete(m.root.playouts)

	log.Debug().Msgf("searched %d rounds in %s", m.root.playouts, time.Since(start))
	return m.Values(player), metric, err
}

func (m *MCTS[M, S]) iterate(ctx context.Context) error {
	for i := 0; i < m.rounds; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (m *MCTS[M, S]) countdown(ctx context.Context) error {
	deadline := time.Now().Add(m.duration)
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Reset replaces the tree with a single root for state without running any
// rounds.
func (m *MCTS[M, S]) Reset(state S) {
	m.root = NewRoot[M, S](state)
}

func (m *MCTS[M, S]) Root() *Node[M, S] {
	return m.root
}

func (m *MCTS[M, S]) Exploration() float64 {
	return m.exploration
}

// Values returns the view over the current root's moves for player.
func (m *MCTS[M, S]) Values(player game.Player) MoveValues[M, S] {
	return NewMoveValues(m.root, player)
}

// Step runs one round: select, expand, evaluate and backpropagate.
func (m *MCTS[M, S]) Step() error {
	if m.root == nil {
		return ErrNoRoot
	}

	leaf := m.selectLeaf()
	node := leaf
	if leaf.FullyExpanded() {
		// Terminal leaf, evaluate it again
		m.metrics.AddTerminalVisit()
	} else {
		child, err := m.expand(leaf)
		if err != nil {
			return fmt.Errorf("step: %w", err)
		}
		node = child
		m.metrics.AddExpansion()
	}

	values := m.heuristic.Evaluate(node.state)
	backup(node, values)
	m.metrics.AddRound()
	return nil
}

func (m *MCTS[M, S]) selectLeaf() *Node[M, S] {
	node := m.root
	for node.FullyExpanded() && len(node.order) > 0 {
		node = utils.Maximize(m.rng, node.Children(), func(child *Node[M, S]) float64 {
			return child.UCB(m.exploration)
		})
	}
	return node
}

func (m *MCTS[M, S]) expand(leaf *Node[M, S]) (*Node[M, S], error) {
	weight := m.expansion.Weights(leaf.state, leaf.state.Player())
	move := utils.ChooseWeighted(m.rng, leaf.unexplored, weight)
	return leaf.ExpandMove(move)
}

func backup[M comparable, S State[M, S]](newNode *Node[M, S], values Values) {
	node := newNode
	for node != nil {
		parent := node.backup(values)
		node = parent
	}
}
