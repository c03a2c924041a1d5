package game

import (
	"fmt"
	"strings"
)

// Variant assembles a board size, a win rule and a post-move effect.
type Variant struct {
	Name   string
	Width  int
	Height int
	Rule   WinRule
	Effect PostMoveEffect
}

var (
	TicTacToe = &Variant{
		Name:   "tictactoe",
		Width:  3,
		Height: 3,
		Rule:   LineRule{N: 3},
		Effect: NoEffect{},
	}
	Gomoku = &Variant{
		Name:   "gomoku",
		Width:  19,
		Height: 19,
		Rule:   LineRule{N: 5},
		Effect: NoEffect{},
	}
	Pente = &Variant{
		Name:   "pente",
		Width:  13,
		Height: 13,
		Rule:   CaptureRule{Line: LineRule{N: 5}, Threshold: 10},
		Effect: CaptureEffect{},
	}
)

func Variants() []*Variant {
	return []*Variant{TicTacToe, Gomoku, Pente}
}

// VariantByName looks a variant up by its case-insensitive name.
func VariantByName(name string) (*Variant, error) {
	for _, v := range Variants() {
		if strings.EqualFold(v.Name, name) {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// Sized returns a copy of the variant played on a width x height board.
func (v *Variant) Sized(width, height int) *Variant {
	sized := *v
	sized.Width = width
	sized.Height = height
	return &sized
}

// NewState is shorthand for NewState(v).
func (v *Variant) NewState() *GridState {
	return NewState(v)
}
