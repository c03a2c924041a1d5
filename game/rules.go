package game

// WinRule decides the winner of a state.
type WinRule interface {
	// Winner scans the whole state.
	Winner(s *GridState) Player
	// After returns the winner of s given that its parent had none and move was
	// the stone just placed. It must agree with Winner on every reachable state.
	After(s *GridState, move Move) Player
}

// PostMoveEffect runs after a stone is placed, e.g. to resolve captures.
// prev is the state the move was played on, next the successor being built.
type PostMoveEffect interface {
	Apply(prev, next *GridState, move Move)
}

// LineRule wins with N stones in a row along any row, column or diagonal.
type LineRule struct {
	N int
}

func (r LineRule) Winner(s *GridState) Player {
	return s.board.LineWinner(r.N)
}

func (r LineRule) After(s *GridState, move Move) Player {
	if r.N > 0 && s.board.lineThrough(move, r.N) {
		return s.board.PieceAt(move.X, move.Y)
	}
	return None
}

// CaptureRule adds a capture-count win to a line rule. The line win takes
// precedence, then black's captures, then white's.
type CaptureRule struct {
	Line      LineRule
	Threshold int
}

func (r CaptureRule) Winner(s *GridState) Player {
	if w := r.Line.Winner(s); w != None {
		return w
	}
	return r.byCaptures(s)
}

func (r CaptureRule) After(s *GridState, move Move) Player {
	if w := r.Line.After(s, move); w != None {
		return w
	}
	return r.byCaptures(s)
}

func (r CaptureRule) byCaptures(s *GridState) Player {
	if s.captures[Black] >= r.Threshold {
		return Black
	}
	if s.captures[White] >= r.Threshold {
		return White
	}
	return None
}

type NoEffect struct{}

func (NoEffect) Apply(prev, next *GridState, move Move) {}

// CaptureEffect removes a pair of opponent stones bracketed by the placed stone
// and another stone of the mover, in any of the 8 directions.
type CaptureEffect struct{}

var captureDirections = [8][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}

func (CaptureEffect) Apply(prev, next *GridState, move Move) {
	mover := prev.current
	opponent := mover.Opponent()
	x, y := move.X, move.Y
	for _, d := range captureDirections {
		dx, dy := d[0], d[1]
		a := prev.board.PieceAt(x+dx, y+dy)
		b := prev.board.PieceAt(x+2*dx, y+2*dy)
		c := prev.board.PieceAt(x+3*dx, y+3*dy)
		if a == opponent && b == opponent && c == mover {
			next.board.set(x+dx, y+dy, None)
			next.board.set(x+2*dx, y+2*dy, None)
			next.captures[mover] += 2
		}
	}
}
