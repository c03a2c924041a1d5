package agent

import (
	"context"
	"errors"

	"gridmcts/experiments/metrics"
	"gridmcts/game"
)

var ErrNoMoves = errors.New("no legal moves")

type Agent interface {
	// FindMove returns the chosen move and performance metrics (if collected) from the search
	FindMove(ctx context.Context, state *game.GridState) (game.Move, metrics.SearchMetric, error)
}
