package searcher

import (
	"time"

	"gridmcts/game"
	"gridmcts/meta"
	"gridmcts/utils"

	"golang.org/x/exp/rand"
)

// RandomPlayout plays uniformly random moves to the end of the game and scores
// Win for the winner, Loss for the loser and Draw for both when the board fills
// up. The result is averaged over Playouts games.
type RandomPlayout[M comparable, S State[M, S]] struct {
	Playouts int
	rng      *rand.Rand
}

func NewRandomPlayout[M comparable, S State[M, S]](playouts int) *RandomPlayout[M, S] {
	if playouts <= 0 {
		playouts = meta.ROLLOUTS
	}
	return &RandomPlayout[M, S]{
		Playouts: playouts,
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (r *RandomPlayout[M, S]) SetRand(rng *rand.Rand) {
	r.rng = rng
}

func (r *RandomPlayout[M, S]) Evaluate(state S) Values {
	values := Values{game.Black: 0, game.White: 0}
	for i := 0; i < r.Playouts; i++ {
		winner := r.playout(state)
		if winner == game.None {
			continue
		}
		values[winner] += Win
		values[winner.Opponent()] += Loss
	}
	if r.Playouts > 0 {
		for p := range values {
			values[p] /= float64(r.Playouts)
		}
	}
	return values
}

func (r *RandomPlayout[M, S]) playout(state S) game.Player {
	for state.Winner() == game.None {
		moves := state.LegalMoves()
		if len(moves) == 0 {
			return game.None
		}
		state = state.Play(utils.ChooseRandom(r.rng, moves))
	}
	return state.Winner()
}
