package agent

import (
	"context"

	"gridmcts/experiments/metrics"
	"gridmcts/game"
	"gridmcts/utils"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent playing uniformly random legal moves.
func NewRandomAgent(rng *rand.Rand) Agent {
	return randomAgent{rng: rng}
}

func (a randomAgent) FindMove(ctx context.Context, state *game.GridState) (game.Move, metrics.SearchMetric, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, metrics.SearchMetric{}, ErrNoMoves
	}
	return utils.ChooseRandom(a.rng, moves), metrics.SearchMetric{}, nil
}
