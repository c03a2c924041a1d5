package main

import (
	"fmt"
	"strings"

	"gridmcts/game"

	"github.com/muesli/termenv"
)

// renderBoard draws the position with column and row numbers, highlighting the
// last move.
func renderBoard(out *termenv.Output, state *game.GridState, last *game.Move) string {
	board := state.Board()
	var sb strings.Builder

	sb.WriteString("   ")
	for x := 0; x < board.Width(); x++ {
		fmt.Fprintf(&sb, "%2d", x%100)
	}
	sb.WriteByte('\n')

	for y := 0; y < board.Height(); y++ {
		fmt.Fprintf(&sb, "%2d ", y)
		for x := 0; x < board.Width(); x++ {
			sb.WriteByte(' ')
			sb.WriteString(cell(out, board.PieceAt(x, y), last != nil && last.X == x && last.Y == y))
		}
		sb.WriteByte('\n')
	}

	if state.Variant().Name == game.Pente.Name {
		fmt.Fprintf(&sb, "captures: black %d, white %d\n", state.Captures(game.Black), state.Captures(game.White))
	}
	return sb.String()
}

func cell(out *termenv.Output, p game.Player, highlight bool) string {
	var style termenv.Style
	switch p {
	case game.Black:
		style = out.String("X").Foreground(out.Color("9"))
	case game.White:
		style = out.String("O").Foreground(out.Color("12"))
	default:
		return out.String(".").Faint().String()
	}
	if highlight {
		style = style.Bold().Underline()
	}
	return style.String()
}
