package gamemaster

import (
	"fmt"
	"sync"

	"gridmcts/game"
)

// Update records one move and the position it led to.
type Update struct {
	Move  game.Move
	State *game.GridState
}

// UpdateGetter returns the oldest unread update, or false when there is none.
type UpdateGetter func() (Update, bool)

// Session holds the position of one interactive game and validates the moves
// played into it.
type Session struct {
	mu      sync.Mutex
	initial *game.GridState
	state   *game.GridState
	history []Update
	pending []Update
}

func NewSession(state *game.GridState) *Session {
	return &Session{initial: state, state: state}
}

// Init returns the current position and a getter for the updates that follow.
func (s *Session) Init() (*game.GridState, UpdateGetter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.next
}

func (s *Session) next() (Update, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return Update{}, false
	}
	u := s.pending[0]
	s.pending = s.pending[1:]
	return u, true
}

func (s *Session) State() *game.GridState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Play applies move for the player to move.
func (s *Session) Play(move game.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.state.PlayChecked(move)
	if err != nil {
		return fmt.Errorf("%s plays %s: %w", s.state.Player(), move, err)
	}
	s.state = next
	u := Update{Move: move, State: next}
	s.history = append(s.history, u)
	s.pending = append(s.pending, u)
	return nil
}

// Undo takes back the last move. An update for it that has not been read yet
// is withdrawn; one that was already read stays read.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return false
	}
	undone := s.history[len(s.history)-1]
	if n := len(s.pending); n > 0 && s.pending[n-1] == undone {
		s.pending = s.pending[:n-1]
	}
	s.history = s.history[:len(s.history)-1]
	s.state = s.initial
	if len(s.history) > 0 {
		s.state = s.history[len(s.history)-1].State
	}
	return true
}

func (s *Session) History() []Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Update(nil), s.history...)
}

func (s *Session) IsOver() bool {
	return s.State().IsTerminal()
}
