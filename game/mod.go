package game

import (
	"errors"
	"fmt"
)

// Player identifies a side. None marks an empty cell or the absence of a winner.
type Player int

const (
	None  Player = -1
	Black Player = 0
	White Player = 1
)

// Opponent returns the other side, None stays None.
func (p Player) Opponent() Player {
	if p == None {
		return None
	}
	return 1 - p
}

func (p Player) String() string {
	switch p {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "none"
	}
}

// Move places a stone at (X, Y). Moves are plain values and can be used as map keys.
type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.X, m.Y)
}

var (
	ErrIllegalMove    = errors.New("illegal move")
	ErrGameOver       = errors.New("game is over")
	ErrUnknownVariant = errors.New("unknown variant")
	ErrMalformedBoard = errors.New("malformed board")
)
