package searcher

import (
	"errors"
	"math"

	"gridmcts/game"

	"golang.org/x/exp/rand"
)

// Outcome values reported by the rollout heuristic.
const (
	Win  = 1.0
	Loss = -Win
	Draw = 0.0
)

// Unknown is the value of a move that has no child node yet.
var Unknown = math.NaN()

func IsUnknown(v float64) bool {
	return math.IsNaN(v)
}

var (
	ErrAlreadyExpanded = errors.New("move already expanded")
	ErrInvalidMove     = errors.New("move is not legal in this state")
	ErrNoRoot          = errors.New("search has no root")
)

// Values maps each player to a heuristic value.
type Values = map[game.Player]float64

// State is what the engine needs from a game position. Play must not modify
// the receiver.
type State[M comparable, S any] interface {
	LegalMoves() []M
	Player() game.Player
	Winner() game.Player // game.None while undecided
	Play(move M) S
}

// Heuristic estimates the value of a state for every player.
type Heuristic[S any] interface {
	Evaluate(state S) Values
}

// ExpansionPolicy returns a non-negative sampling weight per move.
type ExpansionPolicy[M comparable, S any] interface {
	Weights(state S, player game.Player) func(M) float64
}

// RandAware components draw from the engine's random source.
type RandAware interface {
	SetRand(rng *rand.Rand)
}
