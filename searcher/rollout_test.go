package searcher

import (
	"testing"

	"gridmcts/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestRandomPlayout(t *testing.T) {
	t.Run("scoring a decided state", func(t *testing.T) {
		h := NewRandomPlayout[int, raceState](5)

		values := h.Evaluate(newRace(1).Play(1))

		require.Equal(t, Values{game.Black: Win, game.White: Loss}, values)
	})

	t.Run("draws are worth nothing to either side", func(t *testing.T) {
		b, err := game.ParseBoard("XOX", "XOO", "OXX")
		require.NoError(t, err)
		drawn, err := game.FromBoard(game.TicTacToe, b, game.White, [2]int{})
		require.NoError(t, err)
		h := NewRandomPlayout[game.Move, *game.GridState](3)

		values := h.Evaluate(drawn)

		require.Equal(t, Values{game.Black: Draw, game.White: Draw}, values)
	})

	t.Run("averaging over playouts", func(t *testing.T) {
		h := NewRandomPlayout[int, raceState](200)
		h.SetRand(rand.New(rand.NewSource(4)))

		values := h.Evaluate(newRace(9))

		require.InDelta(t, 0.0, values[game.Black]+values[game.White], 1e-9, "Race games are zero sum")
		require.Greater(t, values[game.Black], -1.0)
		require.Less(t, values[game.Black], 1.0)
	})

	t.Run("default number of playouts", func(t *testing.T) {
		require.Equal(t, 20, NewRandomPlayout[int, raceState](0).Playouts)
	})

	t.Run("reproducible with a seeded source", func(t *testing.T) {
		evaluate := func() Values {
			h := NewRandomPlayout[game.Move, *game.GridState](20)
			h.SetRand(rand.New(rand.NewSource(8)))
			return h.Evaluate(game.NewState(game.Gomoku.Sized(7, 7)))
		}

		require.Equal(t, evaluate(), evaluate())
	})
}
