package engine

import (
	"context"
	"net/http/httptest"
	"testing"

	"gridmcts/communication"
	"gridmcts/communication/client"
	"gridmcts/communication/server"
	"gridmcts/game"
	"gridmcts/searcher"
	"gridmcts/searcher/agent"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestLocal(t *testing.T) {
	ctx := context.Background()

	t.Run("random agents finish a game", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		for _, v := range []*game.Variant{game.TicTacToe, game.Gomoku.Sized(7, 7)} {
			e := NewLocal(v, agent.NewRandomAgent(rng), agent.NewRandomAgent(rng))

			winner, gameMetric, moves, err := e.Run(ctx)

			require.NoError(t, err)
			require.True(t, e.State.IsTerminal(), "%s should end in a decided or full position", v.Name)
			require.Equal(t, e.State.Winner(), winner)
			require.Equal(t, winner, gameMetric.Winner)
			require.Equal(t, game.Black, gameMetric.StartingPlayer)
			require.Equal(t, len(moves), gameMetric.TotalMoves)
			for i, m := range moves {
				require.Equal(t, i+1, m.Step)
				require.Equal(t, game.Player(i%2), m.Player, "Players should alternate")
			}
		}
	})

	t.Run("mcts beats random at tic-tac-toe", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2))
		wins, losses := 0, 0
		for i := 0; i < 10; i++ {
			mcts, err := searcher.NewGridMCTS("rollout", "uniform", searcher.WithRounds(300), searcher.WithSeed(uint64(i)))
			require.NoError(t, err)

			winner, _, _, err := NewLocal(game.TicTacToe, agent.NewEvaluationAgent(mcts), agent.NewRandomAgent(rng)).Run(ctx)

			require.NoError(t, err)
			switch winner {
			case game.Black:
				wins++
			case game.White:
				losses++
			}
		}
		require.GreaterOrEqual(t, wins, 6)
		require.LessOrEqual(t, losses, 1)
	})

	t.Run("stopping at the turn limit", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		e := NewLocal(game.Gomoku, agent.NewRandomAgent(rng), agent.NewRandomAgent(rng))
		e.MaxTurns = 4

		winner, gameMetric, moves, err := e.Run(ctx)

		require.NoError(t, err)
		require.Equal(t, game.None, winner)
		require.Len(t, moves, 4)
		require.Equal(t, 4, gameMetric.TotalMoves)
	})

	t.Run("surfacing agent errors", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()
		mcts, err := searcher.NewGridMCTS("", "", searcher.WithRounds(10))
		require.NoError(t, err)

		_, _, _, err = NewLocal(game.TicTacToe, agent.NewEvaluationAgent(mcts), agent.NewRandomAgent(rand.New(rand.NewSource(5)))).Run(ctx)

		require.ErrorIs(t, err, context.Canceled)
	})
}

type illegalAnalyzer struct{}

func (illegalAnalyzer) Policy(ctx context.Context, req communication.PolicyRequest) (communication.PolicyResponse, error) {
	return communication.PolicyResponse{Best: &game.Move{X: 9, Y: 9}}, nil
}

func TestRemoteAgent(t *testing.T) {
	ctx := context.Background()

	t.Run("playing through an analysis server", func(t *testing.T) {
		ts := httptest.NewServer(server.NewServer().Handler())
		defer ts.Close()
		remote := NewRemoteAgent(client.NewClient(ts.URL), 200)
		state, err := game.FromBoard(game.TicTacToe, mustParse(t, "XX.", "OO.", "..."), game.White, [2]int{})
		require.NoError(t, err)

		move, metric, err := remote.FindMove(ctx, state)

		require.NoError(t, err)
		require.Equal(t, game.Move{X: 2, Y: 1}, move, "White should complete its own row")
		require.Equal(t, 200, metric.RootPlayouts)
	})

	t.Run("the server analyzer can be used in process", func(t *testing.T) {
		rng := rand.New(rand.NewSource(4))
		remote := NewRemoteAgent(server.NewServer(), 50)

		winner, _, moves, err := NewLocal(game.TicTacToe, remote, agent.NewRandomAgent(rng)).Run(ctx)

		require.NoError(t, err)
		require.NotEmpty(t, moves)
		require.Contains(t, []game.Player{game.Black, game.White, game.None}, winner)
	})

	t.Run("replacing illegal answers", func(t *testing.T) {
		state := game.NewState(game.TicTacToe).Play(game.Move{X: 0, Y: 0})

		move, _, err := NewRemoteAgent(illegalAnalyzer{}, 1).FindMove(ctx, state)

		require.NoError(t, err)
		require.Equal(t, state.LegalMoves()[0], move)
	})
}

func mustParse(t *testing.T, rows ...string) game.Board {
	t.Helper()
	b, err := game.ParseBoard(rows...)
	require.NoError(t, err)
	return b
}
