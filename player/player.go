package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gridmcts/game"
	"gridmcts/searcher/agent"
)

// Player chooses the moves of one side in an interactive game.
type Player interface {
	NextMove(ctx context.Context, state *game.GridState) (game.Move, error)
}

// Bot plays the moves of an agent.
type Bot struct {
	Agent agent.Agent
}

func NewBot(a agent.Agent) *Bot {
	return &Bot{Agent: a}
}

func (b *Bot) NextMove(ctx context.Context, state *game.GridState) (game.Move, error) {
	move, _, err := b.Agent.FindMove(ctx, state)
	return move, err
}

// Human reads moves as "x y" lines, with x counted from the left and y from
// the top.
type Human struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewHuman(in io.Reader, out io.Writer) *Human {
	return &Human{in: bufio.NewScanner(in), out: out}
}

// NextMove prompts until a well formed move is entered. Legality is left to
// the game master.
func (h *Human) NextMove(ctx context.Context, state *game.GridState) (game.Move, error) {
	for {
		if err := ctx.Err(); err != nil {
			return game.Move{}, err
		}
		fmt.Fprintf(h.out, "%s to move (x y): ", state.Player())
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return game.Move{}, err
			}
			return game.Move{}, io.ErrUnexpectedEOF
		}
		move, err := ParseMove(h.in.Text())
		if err != nil {
			fmt.Fprintln(h.out, err)
			continue
		}
		return move, nil
	}
}

var ErrBadInput = errors.New("expected two numbers, e.g. \"3 4\"")

// ParseMove reads a move written as "x y" or "x,y".
func ParseMove(text string) (game.Move, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) != 2 {
		return game.Move{}, ErrBadInput
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return game.Move{}, ErrBadInput
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return game.Move{}, ErrBadInput
	}
	return game.Move{X: x, Y: y}, nil
}
