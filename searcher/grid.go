package searcher

import (
	"errors"
	"fmt"
	"strings"

	"gridmcts/game"
	"gridmcts/meta"
)

var ErrUnknownComponent = errors.New("unknown search component")

// GridMCTS searches the grid games of package game.
type GridMCTS = MCTS[game.Move, *game.GridState]

type GridValues = MoveValues[game.Move, *game.GridState]

// GridHeuristic resolves "rollout" (the default) or "pattern".
func GridHeuristic(name string) (Heuristic[*game.GridState], error) {
	switch strings.ToLower(name) {
	case "", "rollout":
		return NewRandomPlayout[game.Move, *game.GridState](meta.ROLLOUTS), nil
	case "pattern":
		return game.PatternHeuristic{}, nil
	}
	return nil, fmt.Errorf("%w: heuristic %q", ErrUnknownComponent, name)
}

// GridExpansionPolicy resolves "uniform" (the default) or "proximity".
func GridExpansionPolicy(name string) (ExpansionPolicy[game.Move, *game.GridState], error) {
	switch strings.ToLower(name) {
	case "", "uniform":
		return UniformPolicy[game.Move, *game.GridState]{}, nil
	case "proximity":
		return game.ProximityPolicy{}, nil
	}
	return nil, fmt.Errorf("%w: expansion policy %q", ErrUnknownComponent, name)
}

// NewGridMCTS builds an engine from component names.
func NewGridMCTS(heuristic, expansion string, options ...Option) (*GridMCTS, error) {
	h, err := GridHeuristic(heuristic)
	if err != nil {
		return nil, err
	}
	p, err := GridExpansionPolicy(expansion)
	if err != nil {
		return nil, err
	}
	return NewMCTS[game.Move, *game.GridState](h, p, options...), nil
}
