package gamemaster

import (
	"context"
	"errors"
	"fmt"

	"gridmcts/game"
	"gridmcts/player"

	"github.com/rs/zerolog/log"
)

const maxInvalidMoves = 3

var ErrTooManyInvalidMoves = errors.New("too many invalid moves")

// GameMaster asks each side for its move in turn and resolves it on the
// session.
type GameMaster struct {
	Session *Session
	Players map[game.Player]player.Player
	// OnUpdate, if set, is called after every accepted move.
	OnUpdate func(Update)
}

// NewGameMaster initializes a new GameMaster.
func NewGameMaster(session *Session, black, white player.Player) *GameMaster {
	if black == nil || white == nil {
		panic("need a player for each side")
	}
	return &GameMaster{
		Session: session,
		Players: map[game.Player]player.Player{game.Black: black, game.White: white},
	}
}

// RunGame plays until the game is over and returns the winner, or None for a
// draw.
func (gm *GameMaster) RunGame(ctx context.Context) (game.Player, error) {
	_, getUpdate := gm.Session.Init()
	invalid := 0
	for {
		state := gm.Session.State()
		if gm.CheckGameOver(state) {
			return state.Winner(), nil
		}

		current := state.Player()
		move, err := gm.Players[current].NextMove(ctx, state)
		if err != nil {
			return game.None, fmt.Errorf("%s: %w", current, err)
		}

		if err := gm.Session.Play(move); err != nil {
			if !errors.Is(err, game.ErrIllegalMove) {
				return game.None, err
			}
			invalid++
			log.Warn().Msgf("rejected move: %v", err)
			if invalid >= maxInvalidMoves {
				return game.None, fmt.Errorf("%s: %w", current, ErrTooManyInvalidMoves)
			}
			continue
		}
		invalid = 0

		for u, ok := getUpdate(); ok; u, ok = getUpdate() {
			if gm.OnUpdate != nil {
				gm.OnUpdate(u)
			}
		}
	}
}

// CheckGameOver determines if the game has ended.
func (gm *GameMaster) CheckGameOver(state *game.GridState) bool {
	if !state.IsTerminal() {
		return false
	}
	if winner := state.Winner(); winner != game.None {
		log.Info().Msgf("%s wins after %d moves", winner, len(gm.Session.History()))
	} else {
		log.Info().Msg("the board is full, the game is drawn")
	}
	return true
}
