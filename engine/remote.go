package engine

import (
	"context"
	"fmt"
	"time"

	"gridmcts/communication"
	"gridmcts/experiments/metrics"
	"gridmcts/game"
	"gridmcts/searcher/agent"

	"github.com/rs/zerolog/log"
)

// RemoteAgent asks an analysis server for the policy of each position and
// plays its best move.
type RemoteAgent struct {
	Analyzer  communication.Analyzer
	Rounds    int
	Heuristic string
	Expansion string
}

var _ agent.Agent = (*RemoteAgent)(nil)

func NewRemoteAgent(analyzer communication.Analyzer, rounds int) *RemoteAgent {
	return &RemoteAgent{Analyzer: analyzer, Rounds: rounds}
}

func (a *RemoteAgent) FindMove(ctx context.Context, state *game.GridState) (game.Move, metrics.SearchMetric, error) {
	start := time.Now()
	resp, err := a.Analyzer.Policy(ctx, communication.PolicyRequest{
		State:     communication.EncodeState(state),
		Rounds:    a.Rounds,
		Heuristic: a.Heuristic,
		Expansion: a.Expansion,
	})
	metric := metrics.SearchMetric{Duration: time.Since(start), Rounds: resp.Playouts, RootPlayouts: resp.Playouts}
	if err != nil {
		return game.Move{}, metric, fmt.Errorf("remote policy: %w", err)
	}
	if resp.Best == nil {
		return game.Move{}, metric, agent.ErrNoMoves
	}

	move := *resp.Best
	if !state.IsMoveValid(move) {
		legal := state.LegalMoves()
		if len(legal) == 0 {
			return game.Move{}, metric, agent.ErrNoMoves
		}
		log.Warn().Msgf("analyzer returned illegal move %s, playing %s instead", move, legal[0])
		move = legal[0]
	}
	return move, metric, nil
}
