package experiments

import (
	"context"
	"fmt"
	"time"

	"gridmcts/experiments/metrics"
	"gridmcts/game"
	"gridmcts/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Throughput is the search speed of one agent config.
type Throughput struct {
	Config          metrics.AgentConfig
	Positions       int
	Rounds          int
	Duration        time.Duration
	RoundsPerSecond float64
}

// RunThroughputExperiment searches the same random positions with every
// config for its time budget and measures the rounds completed.
func RunThroughputExperiment(ctx context.Context, variant string, configs []metrics.AgentConfig, positions int, seed uint64) ([]Throughput, error) {
	v, err := game.VariantByName(variant)
	if err != nil {
		return nil, err
	}
	states := randomPositions(v, positions, rand.New(rand.NewSource(seed)))

	log.Info().Msg("starting throughput experiment...")

	results := make([]Throughput, 0, len(configs))
	for _, config := range configs {
		if config.Duration <= 0 {
			config.Duration = 10 * time.Millisecond
		}
		config.Rounds = 0
		mcts, err := createMCTS(config, seed)
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", config.ID, err)
		}

		result := Throughput{Config: config}
		for _, state := range states {
			_, metric, err := mcts.Search(ctx, state, state.Player())
			if err != nil {
				return nil, err
			}
			result.Positions++
			result.Rounds += metric.Rounds
			result.Duration += metric.Duration
		}
		if result.Duration > 0 {
			result.RoundsPerSecond = float64(result.Rounds) / result.Duration.Seconds()
		}
		results = append(results, result)
		log.Info().Msgf("agent %d searched %.0f rounds/s over %d positions", config.ID, result.RoundsPerSecond, result.Positions)
	}

	log.Info().Msg("completed throughput experiment")
	return results, nil
}

// randomPositions plays short random openings that leave the game undecided.
func randomPositions(v *game.Variant, n int, rng *rand.Rand) []*game.GridState {
	states := make([]*game.GridState, 0, n)
	for len(states) < n {
		state := v.NewState()
		depth := rng.Intn(len(state.LegalMoves())/2 + 1)
		for i := 0; i < depth && !state.IsTerminal(); i++ {
			state = state.Play(utils.ChooseRandom(rng, state.LegalMoves()))
		}
		if !state.IsTerminal() {
			states = append(states, state)
		}
	}
	return states
}
