package main

import (
	"bytes"
	"strings"
	"testing"

	"gridmcts/game"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestRenderBoard(t *testing.T) {
	out := termenv.NewOutput(&bytes.Buffer{}, termenv.WithProfile(termenv.Ascii))

	t.Run("drawing stones with coordinates", func(t *testing.T) {
		state := game.NewState(game.TicTacToe).Play(game.Move{X: 1, Y: 0}).Play(game.Move{X: 2, Y: 2})

		lines := strings.Split(strings.TrimRight(renderBoard(out, state, nil), "\n"), "\n")

		require.Equal(t, []string{
			"    0 1 2",
			" 0  . X .",
			" 1  . . .",
			" 2  . . O",
		}, lines)
	})

	t.Run("showing captures in pente", func(t *testing.T) {
		require.Contains(t, renderBoard(out, game.NewState(game.Pente), nil), "captures: black 0, white 0")
		require.NotContains(t, renderBoard(out, game.NewState(game.Gomoku), nil), "captures")
	})
}
