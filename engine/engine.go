package engine

import (
	"context"

	"gridmcts/experiments/metrics"
	"gridmcts/game"
)

type Engine interface {
	// Run plays a game till there's a winner, the board is full or a max number of turns is reached
	Run(ctx context.Context) (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
