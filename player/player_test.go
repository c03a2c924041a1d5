package player

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"gridmcts/game"
	"gridmcts/searcher/agent"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		text string
		want game.Move
		ok   bool
	}{
		{"3 4", game.Move{X: 3, Y: 4}, true},
		{" 0,2 ", game.Move{X: 0, Y: 2}, true},
		{"10\t12", game.Move{X: 10, Y: 12}, true},
		{"3", game.Move{}, false},
		{"a b", game.Move{}, false},
		{"1 2 3", game.Move{}, false},
	}
	for _, tt := range tests {
		move, err := ParseMove(tt.text)
		if !tt.ok {
			require.ErrorIs(t, err, ErrBadInput, tt.text)
			continue
		}
		require.NoError(t, err, tt.text)
		require.Equal(t, tt.want, move, tt.text)
	}
}

func TestHuman(t *testing.T) {
	state := game.NewState(game.TicTacToe)

	t.Run("re-prompting on bad input", func(t *testing.T) {
		var out bytes.Buffer
		h := NewHuman(strings.NewReader("hello\n1 1\n"), &out)

		move, err := h.NextMove(context.Background(), state)

		require.NoError(t, err)
		require.Equal(t, game.Move{X: 1, Y: 1}, move)
		require.Equal(t, 2, strings.Count(out.String(), "black to move"), "Should prompt again after bad input")
		require.Contains(t, out.String(), ErrBadInput.Error())
	})

	t.Run("running out of input", func(t *testing.T) {
		h := NewHuman(strings.NewReader(""), io.Discard)

		_, err := h.NextMove(context.Background(), state)

		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}

func TestBot(t *testing.T) {
	state := game.NewState(game.TicTacToe).Play(game.Move{X: 1, Y: 1})
	b := NewBot(agent.NewRandomAgent(rand.New(rand.NewSource(1))))

	move, err := b.NextMove(context.Background(), state)

	require.NoError(t, err)
	require.True(t, state.IsMoveValid(move))
}
