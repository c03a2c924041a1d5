package game

import "fmt"

// GridState is an immutable snapshot of a game: board, side to move, capture
// counters and the variant whose rules apply. Play never mutates its receiver,
// so states can be shared freely between search nodes.
type GridState struct {
	variant  *Variant
	board    Board
	current  Player
	captures [2]int
	winner   Player
}

// NewState returns the initial empty-board state of the variant, black to move.
func NewState(v *Variant) *GridState {
	s := &GridState{
		variant: v,
		board:   NewBoard(v.Width, v.Height),
		current: Black,
	}
	s.winner = v.Rule.Winner(s)
	return s
}

// FromBoard builds a state from an arbitrary position.
func FromBoard(v *Variant, board Board, current Player, captures [2]int) (*GridState, error) {
	if board.Width() != v.Width || board.Height() != v.Height {
		return nil, fmt.Errorf("%w: %dx%d board for %s, want %dx%d",
			ErrMalformedBoard, board.Width(), board.Height(), v.Name, v.Width, v.Height)
	}
	if current != Black && current != White {
		return nil, fmt.Errorf("%w: no side to move", ErrMalformedBoard)
	}
	s := &GridState{
		variant:  v,
		board:    board.Clone(),
		current:  current,
		captures: captures,
	}
	s.winner = v.Rule.Winner(s)
	return s, nil
}

func (s *GridState) Variant() *Variant { return s.variant }

// Board returns a copy of the grid.
func (s *GridState) Board() Board { return s.board.Clone() }

func (s *GridState) PieceAt(x, y int) Player { return s.board.PieceAt(x, y) }

func (s *GridState) IsMoveValid(move Move) bool { return s.board.IsMoveValid(move) }

// Player returns the side to move.
func (s *GridState) Player() Player { return s.current }

// Winner returns the winning side, or None while the game is undecided.
func (s *GridState) Winner() Player { return s.winner }

// Captures returns the number of stones captured by p.
func (s *GridState) Captures(p Player) int {
	if p != Black && p != White {
		return 0
	}
	return s.captures[p]
}

// LegalMoves lists every empty cell in ValidMoves order, or nothing once the
// game has a winner.
func (s *GridState) LegalMoves() []Move {
	if s.winner != None {
		return nil
	}
	return s.board.ValidMoves()
}

// Play returns the state after the side to move places a stone at move.
// The move must be valid; use PlayChecked for untrusted input.
func (s *GridState) Play(move Move) *GridState {
	next := &GridState{
		variant:  s.variant,
		board:    s.board.Clone(),
		current:  s.current.Opponent(),
		captures: s.captures,
	}
	next.board.set(move.X, move.Y, s.current)
	s.variant.Effect.Apply(s, next, move)
	if s.winner == None {
		next.winner = s.variant.Rule.After(next, move)
	} else {
		next.winner = s.variant.Rule.Winner(next)
	}
	return next
}

// PlayChecked validates move before playing it.
func (s *GridState) PlayChecked(move Move) (*GridState, error) {
	if s.winner != None {
		return nil, fmt.Errorf("play %v: %w", move, ErrGameOver)
	}
	if !s.board.IsMoveValid(move) {
		return nil, fmt.Errorf("play %v: %w", move, ErrIllegalMove)
	}
	return s.Play(move), nil
}

// IsTerminal reports whether the game has a winner or no moves are left.
func (s *GridState) IsTerminal() bool {
	return s.winner != None || s.board.IsFull()
}

func (s *GridState) String() string {
	return fmt.Sprintf("%s to move=%s captures=%v\n%s", s.variant.Name, s.current, s.captures, s.board)
}
