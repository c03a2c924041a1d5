package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProximityPolicy(t *testing.T) {
	t.Run("uniform on an empty board", func(t *testing.T) {
		s := NewState(TicTacToe)
		weight := ProximityPolicy{}.Weights(s, s.Player())

		for _, m := range s.LegalMoves() {
			require.Equal(t, 1.0, weight(m))
		}
	})

	t.Run("boosting cells next to stones", func(t *testing.T) {
		s := NewState(Gomoku.Sized(7, 7)).Play(Move{3, 3}).Play(Move{4, 3})
		weight := ProximityPolicy{}.Weights(s, s.Player())

		require.Equal(t, 0.0, weight(Move{3, 3}), "Occupied cells should never be chosen")
		require.Equal(t, 0.0, weight(Move{-1, 3}), "Off-board cells should never be chosen")
		require.Equal(t, 1.0+4*2, weight(Move{3, 4}))
		require.Equal(t, 1.0+4, weight(Move{2, 2}))
		require.Equal(t, 1.0, weight(Move{0, 0}))
	})

	t.Run("wider radius and custom boost", func(t *testing.T) {
		s := NewState(Gomoku.Sized(7, 7)).Play(Move{3, 3})
		weight := ProximityPolicy{Radius: 2, Boost: 10}.Weights(s, s.Player())

		require.Equal(t, 11.0, weight(Move{1, 1}))
		require.Equal(t, 1.0, weight(Move{0, 0}))
	})
}
