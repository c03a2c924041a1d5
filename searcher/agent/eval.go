package agent

import (
	"context"
	"fmt"

	"gridmcts/experiments/metrics"
	"gridmcts/game"
	"gridmcts/searcher"
)

type evaluationAgent struct {
	mcts *searcher.GridMCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.GridMCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(ctx context.Context, state *game.GridState) (game.Move, metrics.SearchMetric, error) {
	values, metric, err := a.mcts.Search(ctx, state, state.Player())
	if err != nil {
		return game.Move{}, metric, fmt.Errorf("search: %w", err)
	}
	move, ok := values.Best()
	if !ok {
		return game.Move{}, metric, ErrNoMoves
	}
	return move, metric, nil
}
