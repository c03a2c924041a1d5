package game

import (
	"fmt"
	"strings"
)

// Board is a fixed-size grid of cells. Cells are stored column by column so that
// cell (x, y) lives at index x*height+y.
type Board struct {
	width  int
	height int
	cells  []Player
}

// NewBoard returns an empty width x height board.
func NewBoard(width, height int) Board {
	cells := make([]Player, width*height)
	for i := range cells {
		cells[i] = None
	}
	return Board{width: width, height: height, cells: cells}
}

// ParseBoard reads rows top to bottom, one character per cell:
// 'X' for black, 'O' for white and '.', '_' or '-' for empty.
func ParseBoard(rows ...string) (Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Board{}, fmt.Errorf("%w: empty board", ErrMalformedBoard)
	}
	b := NewBoard(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != b.width {
			return Board{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedBoard, y, len(row), b.width)
		}
		for x, c := range []byte(row) {
			switch c {
			case 'X', 'x':
				b.set(x, y, Black)
			case 'O', 'o':
				b.set(x, y, White)
			case '.', '_', '-':
			default:
				return Board{}, fmt.Errorf("%w: unexpected %q at (%d,%d)", ErrMalformedBoard, c, x, y)
			}
		}
	}
	return b, nil
}

func (b Board) Width() int  { return b.width }
func (b Board) Height() int { return b.height }

func (b Board) InRange(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// PieceAt returns the occupant of (x, y), or None when the cell is empty or off the board.
func (b Board) PieceAt(x, y int) Player {
	if !b.InRange(x, y) {
		return None
	}
	return b.cells[x*b.height+y]
}

func (b Board) HasPieceAt(x, y int) bool {
	return b.PieceAt(x, y) != None
}

func (b Board) IsMoveValid(move Move) bool {
	return b.InRange(move.X, move.Y) && !b.HasPieceAt(move.X, move.Y)
}

// ValidMoves lists the empty cells, x in the outer loop and y in the inner one.
// Random sampling downstream depends on this order.
func (b Board) ValidMoves() []Move {
	moves := make([]Move, 0, len(b.cells))
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			if b.cells[x*b.height+y] == None {
				moves = append(moves, Move{X: x, Y: y})
			}
		}
	}
	return moves
}

// Occupied counts the non-empty cells.
func (b Board) Occupied() int {
	count := 0
	for _, c := range b.cells {
		if c != None {
			count++
		}
	}
	return count
}

func (b Board) IsEmpty() bool { return b.Occupied() == 0 }
func (b Board) IsFull() bool  { return b.Occupied() == len(b.cells) }

func (b Board) Clone() Board {
	cells := make([]Player, len(b.cells))
	copy(cells, b.cells)
	return Board{width: b.width, height: b.height, cells: cells}
}

// Place returns a copy of the board with p at (x, y).
func (b Board) Place(x, y int, p Player) Board {
	next := b.Clone()
	next.set(x, y, p)
	return next
}

// set mutates the board in place; only for boards that are still being built.
func (b *Board) set(x, y int, p Player) {
	b.cells[x*b.height+y] = p
}

// Rows renders the board top to bottom in the format accepted by ParseBoard.
func (b Board) Rows() []string {
	rows := make([]string, b.height)
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		sb.Reset()
		for x := 0; x < b.width; x++ {
			sb.WriteByte(symbol(b.PieceAt(x, y)))
		}
		rows[y] = sb.String()
	}
	return rows
}

func (b Board) String() string {
	return strings.Join(b.Rows(), "\n")
}

func symbol(p Player) byte {
	switch p {
	case Black:
		return 'X'
	case White:
		return 'O'
	default:
		return '.'
	}
}
