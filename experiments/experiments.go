package experiments

import (
	"context"
	"fmt"

	"gridmcts/engine"
	"gridmcts/experiments/metrics"
	"gridmcts/game"
	"gridmcts/meta"
	"gridmcts/searcher"
	"gridmcts/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

const (
	NumGames    = 30 // Per match up
	RoundBudget = 400
)

// Setup describes one experiment: the agents taking part, which of them meet
// and how many games each match up plays.
type Setup struct {
	Name     string                   `json:"name"`
	Game     string                   `json:"game"`
	Games    int                      `json:"games"` // per match up, seats alternate
	Configs  []metrics.AgentConfig    `json:"configs"`
	MatchUps [][2]metrics.AgentConfig `json:"match_ups"`
	Seed     uint64                   `json:"seed"`
	Out      string                   `json:"-"` // root directory of the results
}

// HeuristicExperiment pits random playouts against the pattern heuristic.
func HeuristicExperiment(variant string) Setup {
	rollout := metrics.AgentConfig{ID: 1, Kind: "mcts", Rounds: RoundBudget, Heuristic: "rollout"}
	pattern := metrics.AgentConfig{ID: 2, Kind: "mcts", Rounds: RoundBudget, Heuristic: "pattern"}
	return Setup{
		Name:     "heuristic",
		Game:     variant,
		Games:    NumGames,
		Configs:  []metrics.AgentConfig{rollout, pattern},
		MatchUps: [][2]metrics.AgentConfig{{rollout, pattern}},
	}
}

// ExpansionExperiment compares uniform and proximity weighted expansion.
func ExpansionExperiment(variant string) Setup {
	uniform := metrics.AgentConfig{ID: 1, Kind: "mcts", Rounds: RoundBudget, Heuristic: "pattern", Expansion: "uniform"}
	proximity := metrics.AgentConfig{ID: 2, Kind: "mcts", Rounds: RoundBudget, Heuristic: "pattern", Expansion: "proximity"}
	return Setup{
		Name:     "expansion",
		Game:     variant,
		Games:    NumGames,
		Configs:  []metrics.AgentConfig{uniform, proximity},
		MatchUps: [][2]metrics.AgentConfig{{uniform, proximity}},
	}
}

// ExplorationExperiment plays several exploration constants against the
// default one and all of them against a random baseline.
func ExplorationExperiment(variant string) Setup {
	baseline := metrics.AgentConfig{ID: 0, Kind: "mcts", Rounds: RoundBudget, Exploration: metrics.Float(meta.EXPLORATION)}
	random := metrics.AgentConfig{ID: 100, Kind: "random"}
	configs := []metrics.AgentConfig{baseline, random}
	matchUps := [][2]metrics.AgentConfig{{baseline, random}}
	for i, c := range []float64{0, 0.1, 1, 2} {
		config := metrics.AgentConfig{ID: i + 1, Kind: "mcts", Rounds: RoundBudget, Exploration: metrics.Float(c)}
		configs = append(configs, config)
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return Setup{
		Name:     "exploration",
		Game:     variant,
		Games:    NumGames,
		Configs:  configs,
		MatchUps: matchUps,
	}
}

// Result summarises a finished experiment.
type Result struct {
	Dir   string
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

// Wins counts the games each agent config won.
func (r Result) Wins() map[int]int {
	wins := map[int]int{}
	for _, g := range r.Games {
		switch g.Winner {
		case game.Black:
			wins[g.Agent1]++
		case game.White:
			wins[g.Agent2]++
		}
	}
	return wins
}

type gameResult struct {
	record metrics.GameRecord
	moves  []metrics.MoveMetric
}

// Run plays every game of the setup, at most meta.GO_ROUTINES at a time, and
// stores the records under setup.Out.
func Run(ctx context.Context, setup Setup) (Result, error) {
	variant, err := game.VariantByName(setup.Game)
	if err != nil {
		return Result{}, err
	}
	if setup.Games <= 0 {
		setup.Games = NumGames
	}
	for _, config := range setup.Configs {
		if _, err := newAgent(config, 0); err != nil {
			return Result{}, fmt.Errorf("agent %d: %w", config.ID, err)
		}
	}

	writer, err := metrics.NewWriter(setup.Out, setup.Name)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteSetup(setup); err != nil {
		return Result{}, err
	}
	if err := writer.WriteAgentConfigs(setup.Configs); err != nil {
		return Result{}, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	log.Info().Msgf("starting %s experiment...", setup.Name)

	total := len(setup.MatchUps) * setup.Games
	results := make([]gameResult, total)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(meta.GO_ROUTINES)

	for mi, matchup := range setup.MatchUps {
		log.Info().Msgf("starting matchup %d of %d between agent %d and agent %d...", mi+1, len(setup.MatchUps), matchup[0].ID, matchup[1].ID)
		for i := 0; i < setup.Games; i++ {
			mi, i := mi, i
			id := mi*setup.Games + i
			black, white := matchup[0], matchup[1]
			if i%2 == 1 {
				black, white = white, black
			}
			g.Go(func() error {
				seed := setup.Seed + uint64(id)
				winner, record, moves, err := runGame(ctx, variant, black, white, seed)
				if err != nil {
					return fmt.Errorf("game %d: %w", id+1, err)
				}
				record.ID = id + 1
				results[id] = gameResult{record: record, moves: moves}
				log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(setup.MatchUps), i+1, winner)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	log.Info().Msgf("completed %s experiment", setup.Name)

	result := Result{Dir: writer.Dir()}
	for _, r := range results {
		result.Games = append(result.Games, r.record)
		for _, mm := range r.moves {
			result.Moves = append(result.Moves, metrics.MoveRecord{Game: r.record.ID, MoveMetric: mm})
		}
	}

	if err := writer.WriteGameRecords(result.Games); err != nil {
		return Result{}, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return Result{}, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return result, nil
}

// runGame executes a single game between two agents and returns the winner
func runGame(ctx context.Context, variant *game.Variant, black, white metrics.AgentConfig, seed uint64) (game.Player, metrics.GameRecord, []metrics.MoveMetric, error) {
	blackAgent, err := newAgent(black, seed*2)
	if err != nil {
		return game.None, metrics.GameRecord{}, nil, err
	}
	whiteAgent, err := newAgent(white, seed*2+1)
	if err != nil {
		return game.None, metrics.GameRecord{}, nil, err
	}

	e := engine.NewLocal(variant, blackAgent, whiteAgent)
	winner, gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return game.None, metrics.GameRecord{}, nil, err
	}
	return winner, metrics.GameRecord{Agent1: black.ID, Agent2: white.ID, GameMetric: gameMetric}, moveMetrics, nil
}

func newAgent(config metrics.AgentConfig, seed uint64) (agent.Agent, error) {
	switch config.Kind {
	case "random":
		return agent.NewRandomAgent(rand.New(rand.NewSource(seed))), nil
	case "", "mcts":
	default:
		return nil, fmt.Errorf("unknown agent kind %q", config.Kind)
	}

	mcts, err := createMCTS(config, seed)
	if err != nil {
		return nil, err
	}
	if config.Temperature > 0 {
		return agent.NewTrainingAgent(mcts, config.Temperature, rand.New(rand.NewSource(seed))), nil
	}
	return agent.NewEvaluationAgent(mcts), nil
}

func createMCTS(config metrics.AgentConfig, seed uint64) (*searcher.GridMCTS, error) {
	options := []searcher.Option{searcher.WithSeed(seed)}

	if config.Rounds > 0 {
		options = append(options, searcher.WithRounds(config.Rounds))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Exploration != nil {
		options = append(options, searcher.WithExploration(*config.Exploration))
	}
	if config.Rounds <= 0 && config.Duration <= 0 {
		options = append(options, searcher.WithRounds(meta.ROUNDS))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewGridMCTS(config.Heuristic, config.Expansion, options...)
}
