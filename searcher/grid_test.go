package searcher

import (
	"testing"

	"gridmcts/game"

	"github.com/stretchr/testify/require"
)

func TestGridComponents(t *testing.T) {
	t.Run("resolving heuristics", func(t *testing.T) {
		h, err := GridHeuristic("")
		require.NoError(t, err)
		require.IsType(t, &RandomPlayout[game.Move, *game.GridState]{}, h)

		h, err = GridHeuristic("Pattern")
		require.NoError(t, err)
		require.IsType(t, game.PatternHeuristic{}, h)

		_, err = GridHeuristic("oracle")
		require.ErrorIs(t, err, ErrUnknownComponent)
	})

	t.Run("resolving expansion policies", func(t *testing.T) {
		p, err := GridExpansionPolicy("uniform")
		require.NoError(t, err)
		require.IsType(t, UniformPolicy[game.Move, *game.GridState]{}, p)

		p, err = GridExpansionPolicy("proximity")
		require.NoError(t, err)
		require.IsType(t, game.ProximityPolicy{}, p)

		_, err = NewGridMCTS("rollout", "greedy")
		require.ErrorIs(t, err, ErrUnknownComponent)
	})
}

func TestGridMCTS(t *testing.T) {
	t.Run("completing a row", func(t *testing.T) {
		b, err := game.ParseBoard(
			"XX.",
			"OO.",
			"...",
		)
		require.NoError(t, err)
		state, err := game.FromBoard(game.TicTacToe, b, game.Black, [2]int{})
		require.NoError(t, err)
		m, err := NewGridMCTS("rollout", "uniform", WithSeed(17), WithRounds(2000))
		require.NoError(t, err)

		values, err := m.Policy(state, game.Black)

		require.NoError(t, err)
		best, ok := values.Best()
		require.True(t, ok)
		require.Equal(t, game.Move{X: 2, Y: 0}, best)
		require.Equal(t, 1.0, values.Value(game.Move{X: 2, Y: 0}))
	})

	t.Run("pattern heuristic with proximity expansion", func(t *testing.T) {
		v := game.Gomoku.Sized(9, 9)
		state := game.NewState(v).Play(game.Move{X: 4, Y: 4})
		m, err := NewGridMCTS("pattern", "proximity", WithSeed(5), WithRounds(300))
		require.NoError(t, err)

		values, err := m.Policy(state, game.White)

		require.NoError(t, err)
		require.Equal(t, 300, m.Root().Playouts())
		require.NotEmpty(t, values.Moves())
		for _, move := range values.Moves() {
			require.True(t, state.IsMoveValid(move), "Expanded %v should be a legal reply", move)
		}
	})
}
