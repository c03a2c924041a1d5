package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"gridmcts/communication"
	"gridmcts/communication/client"
	"gridmcts/communication/server"
	"gridmcts/experiments"
	"gridmcts/experiments/metrics"
	"gridmcts/game"
	"gridmcts/gamemaster"
	"gridmcts/meta"
	"gridmcts/player"
	"gridmcts/searcher"
	"gridmcts/searcher/agent"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const usage = `usage: gridmcts <command> [flags]

commands:
  play        play a game in the terminal
  serve       run the analysis server
  analyze     ask an analysis server for the policy of a position
  experiment  run an experiment and store its records
`

type searchFlags struct {
	game        *string
	rounds      *int
	duration    *time.Duration
	exploration *float64
	heuristic   *string
	expansion   *string
	seed        *uint64
	logLevel    *string
}

func addSearchFlags(fs *flag.FlagSet) searchFlags {
	return searchFlags{
		game:        fs.String("game", "tictactoe", "Game variant: tictactoe, gomoku or pente"),
		rounds:      fs.Int("rounds", meta.ROUNDS, "Search rounds per move"),
		duration:    fs.Duration("duration", 0, "Search time per move, overrides -rounds"),
		exploration: fs.Float64("exploration", meta.EXPLORATION, "UCB exploration constant"),
		heuristic:   fs.String("heuristic", "rollout", "Leaf evaluation: rollout or pattern"),
		expansion:   fs.String("expansion", "uniform", "Expansion policy: uniform or proximity"),
		seed:        fs.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed"),
		logLevel:    fs.String("log-level", "info", "Log level"),
	}
}

func (f searchFlags) options() []searcher.Option {
	options := []searcher.Option{
		searcher.WithRounds(*f.rounds),
		searcher.WithExploration(*f.exploration),
		searcher.WithSeed(*f.seed),
	}
	if *f.duration > 0 {
		options = append(options, searcher.WithDuration(*f.duration))
	}
	return options
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(ctx, os.Args[2:])
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "analyze":
		err = runAnalyze(ctx, os.Args[2:])
	case "experiment":
		err = runExperiment(ctx, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msgf("%s failed", os.Args[1])
	}
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}

func runPlay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	f := addSearchFlags(fs)
	human := fs.String("human", "black", "Side played from the keyboard: black, white or none")
	size := fs.Int("size", 0, "Board size, 0 for the variant's default")
	temperature := fs.Float64("temperature", 0, "Sample bot moves by visit count at this temperature")
	fs.Parse(args)
	setupLogging(*f.logLevel)

	variant, err := game.VariantByName(*f.game)
	if err != nil {
		return err
	}
	if *size > meta.MAX_BOARD_SIZE {
		return fmt.Errorf("board size %d is above the limit of %d", *size, meta.MAX_BOARD_SIZE)
	}
	if *size > 0 {
		variant = variant.Sized(*size, *size)
	}

	players := map[game.Player]player.Player{}
	for _, side := range []game.Player{game.Black, game.White} {
		if strings.EqualFold(*human, side.String()) {
			players[side] = player.NewHuman(os.Stdin, os.Stdout)
			continue
		}
		// each bot gets its own seed
		options := append(f.options(), searcher.WithSeed(*f.seed+uint64(side)))
		mcts, err := searcher.NewGridMCTS(*f.heuristic, *f.expansion, options...)
		if err != nil {
			return err
		}
		var a agent.Agent = agent.NewEvaluationAgent(mcts)
		if *temperature > 0 {
			a = agent.NewTrainingAgent(mcts, *temperature, rand.New(rand.NewSource(*f.seed+uint64(side))))
		}
		players[side] = player.NewBot(a)
	}

	out := termenv.NewOutput(os.Stdout)
	session := gamemaster.NewSession(variant.NewState())
	gm := gamemaster.NewGameMaster(session, players[game.Black], players[game.White])
	gm.OnUpdate = func(u gamemaster.Update) {
		fmt.Fprintf(os.Stdout, "%s played %s\n", u.State.Player().Opponent(), u.Move)
		fmt.Fprint(os.Stdout, renderBoard(out, u.State, &u.Move))
	}

	fmt.Fprint(os.Stdout, renderBoard(out, session.State(), nil))
	winner, err := gm.RunGame(ctx)
	if err != nil {
		return err
	}
	if winner == game.None {
		fmt.Fprintln(os.Stdout, "draw")
	} else {
		fmt.Fprintf(os.Stdout, "%s wins\n", winner)
	}
	return nil
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "Listen address")
	tick := fs.Duration("tick", meta.ANALYSIS_TICK, "Live analysis tick")
	maxRounds := fs.Int("max-rounds", meta.ANALYSIS_MAX_ROUNDS, "Most rounds a request may ask for")
	logLevel := fs.String("log-level", "info", "Log level")
	fs.Parse(args)
	setupLogging(*logLevel)

	return server.NewServer(server.WithTick(*tick), server.WithMaxRounds(*maxRounds)).ListenAndServe(ctx, *addr)
}

func runAnalyze(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	f := addSearchFlags(fs)
	url := fs.String("url", "http://localhost:8080", "Analysis server")
	board := fs.String("board", "", "Board rows separated by '/', e.g. \"X../.O./...\"")
	side := fs.String("player", "black", "Player to move")
	top := fs.Int("top", 5, "Number of moves to list")
	fs.Parse(args)
	setupLogging(*f.logLevel)

	state := communication.State{Game: *f.game, Player: *side}
	if *board != "" {
		state.Board = strings.Split(*board, "/")
	}
	req := communication.PolicyRequest{
		State:       state,
		Rounds:      *f.rounds,
		Heuristic:   *f.heuristic,
		Expansion:   *f.expansion,
		Exploration: f.exploration,
		Seed:        f.seed,
	}

	c := client.NewClient(*url)
	if err := c.Ping(ctx); err != nil {
		return fmt.Errorf("analysis server unavailable: %w", err)
	}
	resp, err := c.Policy(ctx, req)
	if err != nil {
		return err
	}

	sort.SliceStable(resp.Moves, func(i, j int) bool { return resp.Moves[i].Visits > resp.Moves[j].Visits })
	fmt.Fprintf(os.Stdout, "%d playouts for %s\n", resp.Playouts, resp.Player)
	for i, m := range resp.Moves {
		if i == *top {
			break
		}
		fmt.Fprintf(os.Stdout, "(%d,%d)  value %+.3f  visits %d\n", m.X, m.Y, m.Value, m.Visits)
	}
	if resp.Best != nil {
		fmt.Fprintf(os.Stdout, "best: %s\n", *resp.Best)
	}
	return nil
}

func runExperiment(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("experiment", flag.ExitOnError)
	name := fs.String("name", "heuristic", "Experiment: heuristic, expansion, exploration or throughput")
	variant := fs.String("game", "tictactoe", "Game variant")
	games := fs.Int("games", experiments.NumGames, "Games per match up")
	out := fs.String("out", "results", "Directory for the records")
	seed := fs.Uint64("seed", 1, "Base seed")
	logLevel := fs.String("log-level", "info", "Log level")
	fs.Parse(args)
	setupLogging(*logLevel)

	var setup experiments.Setup
	switch *name {
	case "heuristic":
		setup = experiments.HeuristicExperiment(*variant)
	case "expansion":
		setup = experiments.ExpansionExperiment(*variant)
	case "exploration":
		setup = experiments.ExplorationExperiment(*variant)
	case "throughput":
		configs := []metrics.AgentConfig{
			{ID: 1, Kind: "mcts", Duration: 100 * time.Millisecond, Heuristic: "rollout"},
			{ID: 2, Kind: "mcts", Duration: 100 * time.Millisecond, Heuristic: "pattern"},
			{ID: 3, Kind: "mcts", Duration: 100 * time.Millisecond, Heuristic: "pattern", Expansion: "proximity"},
		}
		results, err := experiments.RunThroughputExperiment(ctx, *variant, configs, 10, *seed)
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Fprintf(os.Stdout, "agent %d: %.0f rounds/s\n", r.Config.ID, r.RoundsPerSecond)
		}
		return nil
	default:
		return fmt.Errorf("unknown experiment %q", *name)
	}

	setup.Games = *games
	setup.Seed = *seed
	setup.Out = *out
	result, err := experiments.Run(ctx, setup)
	if err != nil {
		return err
	}
	wins := result.Wins()
	for _, config := range setup.Configs {
		fmt.Fprintf(os.Stdout, "agent %d (%s): %d wins\n", config.ID, config.Kind, wins[config.ID])
	}
	fmt.Fprintf(os.Stdout, "records stored in %s\n", result.Dir)
	return nil
}
