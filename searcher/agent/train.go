package agent

import (
	"context"
	"fmt"
	"math"

	"gridmcts/experiments/metrics"
	"gridmcts/game"
	"gridmcts/searcher"
	"gridmcts/utils"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.GridMCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns an agent that samples moves by visit count, which
// varies self-play games. Higher temperatures flatten the distribution.
func NewTrainingAgent(mcts *searcher.GridMCTS, temperature float64, rng *rand.Rand) Agent {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	return trainingAgent{mcts: mcts, temperature: temperature, rng: rng}
}

func (a trainingAgent) FindMove(ctx context.Context, state *game.GridState) (game.Move, metrics.SearchMetric, error) {
	values, metric, err := a.mcts.Search(ctx, state, state.Player())
	if err != nil {
		return game.Move{}, metric, fmt.Errorf("search: %w", err)
	}
	moves := values.Moves()
	if len(moves) == 0 {
		return game.Move{}, metric, ErrNoMoves
	}
	policy := adjustTemperature(moves, values.Visits, a.temperature)
	return utils.ChooseWeighted(a.rng, moves, func(m game.Move) float64 { return policy[m] }), metric, nil
}

func adjustTemperature(moves []game.Move, visits func(game.Move) int, temperature float64) map[game.Move]float64 {
	// Counts are taken relative to the most visited move so that low
	// temperatures do not overflow
	most := 0
	for _, move := range moves {
		most = max(most, visits(move))
	}
	adjusted := make(map[game.Move]float64, len(moves))
	if most == 0 {
		for _, move := range moves {
			adjusted[move] = 0
		}
		return adjusted
	}

	exponent := 1.0 / temperature
	sum := 0.0
	for _, move := range moves {
		prob := math.Pow(float64(visits(move))/float64(most), exponent)
		sum += prob
		adjusted[move] = prob
	}
	// Normalize
	for move := range adjusted {
		adjusted[move] /= sum
	}
	return adjusted
}
