package engine

import (
	"context"
	"fmt"
	"time"

	"gridmcts/experiments/metrics"
	"gridmcts/game"
	"gridmcts/meta"
	"gridmcts/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Local plays a game between two in-process agents.
type Local struct {
	State    *game.GridState
	Agents   map[game.Player]agent.Agent
	MaxTurns int
}

// NewLocal starts a game of variant with black playing first.
func NewLocal(variant *game.Variant, black, white agent.Agent) *Local {
	return FromState(game.NewState(variant), black, white)
}

// FromState continues a game from an arbitrary position.
func FromState(state *game.GridState, black, white agent.Agent) *Local {
	if black == nil || white == nil {
		panic("need an agent for each player")
	}
	return &Local{
		State:    state,
		Agents:   map[game.Player]agent.Agent{game.Black: black, game.White: white},
		MaxTurns: meta.MAX_TURNS,
	}
}

// Run executes the entire game loop until a winner is found.
func (e *Local) Run(ctx context.Context) (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.State.Player(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("%s to start a game of %s", e.State.Player(), e.State.Variant().Name)

	turn := 1
	for !e.State.IsTerminal() && turn <= e.MaxTurns {
		player := e.State.Player()
		move, metric, err := e.Agents[player].FindMove(ctx, e.State)
		if err != nil {
			return game.None, gameMetric, moveMetrics, fmt.Errorf("turn %d, %s: %w", turn, player, err)
		}

		next, err := e.State.PlayChecked(move)
		if err != nil {
			return game.None, gameMetric, moveMetrics, fmt.Errorf("turn %d, %s: %w", turn, player, err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       player,
			Move:         move,
			SearchMetric: metric,
		})

		e.State = next
		turn++
	}

	if turn > e.MaxTurns && !e.State.IsTerminal() {
		log.Warn().Msgf("stopped after %d turns without a winner", e.MaxTurns)
	}

	gameMetric.Winner = e.State.Winner()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	return gameMetric.Winner, gameMetric, moveMetrics, nil
}
