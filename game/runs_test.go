package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func rotate180(b Board) Board {
	r := NewBoard(b.width, b.height)
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			r.set(b.width-1-x, b.height-1-y, b.PieceAt(x, y))
		}
	}
	return r
}

func mirror(b Board) Board {
	r := NewBoard(b.width, b.height)
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			r.set(b.width-1-x, y, b.PieceAt(x, y))
		}
	}
	return r
}

func randomGame(rng *rand.Rand, s *GridState) []*GridState {
	states := []*GridState{s}
	moves := s.LegalMoves()
	for s.Winner() == None && len(moves) > 0 {
		s = s.Play(moves[rng.Intn(len(moves))])
		states = append(states, s)
		moves = s.LegalMoves()
	}
	return states
}

func TestRuns(t *testing.T) {
	t.Run("building the four families", func(t *testing.T) {
		// X O .
		// . X O
		b, err := ParseBoard("XO.", ".XO")
		require.NoError(t, err)

		runs := b.Runs()

		require.Len(t, runs, 2+3+4+4)
		require.Equal(t, Run{Black, White, None}, runs[0], "First row")
		require.Equal(t, Run{None, Black, White}, runs[1], "Second row")
		require.Equal(t, Run{Black, None}, runs[2], "First column")
		// grouped by x+y
		require.Equal(t, Run{Black}, runs[5])
		require.Equal(t, Run{None, White}, runs[6])
		require.Equal(t, Run{Black, None}, runs[7])
		require.Equal(t, Run{White}, runs[8])
		// mirrored board, grouped by x-y
		require.Equal(t, Run{None}, runs[9])
		require.Equal(t, Run{Black, Black}, runs[10])
		require.Equal(t, Run{White, White}, runs[11])
		require.Equal(t, Run{None}, runs[12])
	})

	t.Run("scanning a run", func(t *testing.T) {
		tests := []struct {
			name string
			run  Run
			n    int
			want Player
		}{
			{"empty run", Run{None, None, None}, 3, None},
			{"full line", Run{White, White, White}, 3, White},
			{"gap resets the count", Run{Black, Black, None, Black, Black}, 3, None},
			{"other player resets the count to one", Run{Black, White, White, Black, Black, Black}, 3, Black},
			{"longer than needed", Run{None, Black, Black, Black, Black}, 2, Black},
		}
		for _, tt := range tests {
			require.Equal(t, tt.want, tt.run.Winner(tt.n), tt.name)
		}
	})

	t.Run("finding the first line in scan order", func(t *testing.T) {
		b, err := ParseBoard(
			"OOO",
			"XXX",
			"...",
		)
		require.NoError(t, err)

		require.Equal(t, White, b.LineWinner(3), "Rows are scanned top to bottom")
		require.Equal(t, None, b.LineWinner(4))
		require.Equal(t, None, b.LineWinner(0))
	})

	t.Run("detecting both diagonal directions", func(t *testing.T) {
		down, err := ParseBoard("X..", ".X.", "..X")
		require.NoError(t, err)
		up, err := ParseBoard("..O", ".O.", "O..")
		require.NoError(t, err)

		require.Equal(t, Black, down.LineWinner(3))
		require.Equal(t, White, up.LineWinner(3))
	})
}

func lineLength(v *Variant) int {
	switch rule := v.Rule.(type) {
	case LineRule:
		return rule.N
	case CaptureRule:
		return rule.Line.N
	}
	return 0
}

func TestWinDetectionSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	variants := []*Variant{TicTacToe, Gomoku.Sized(7, 5), Pente.Sized(6, 8)}

	for _, v := range variants {
		for i := 0; i < 30; i++ {
			for _, s := range randomGame(rng, NewState(v)) {
				n := lineLength(v)
				want := s.board.LineWinner(n)
				require.Equal(t, want, rotate180(s.board).LineWinner(n),
					"%s: 180 degree rotation changed the winner of\n%s", v.Name, s.board)
				require.Equal(t, want, rotate180(rotate180(s.board)).LineWinner(n))
				require.Equal(t, want, mirror(s.board).LineWinner(n),
					"%s: mirroring changed the winner of\n%s", v.Name, s.board)
			}
		}
	}
}
