package communication

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gridmcts/game"
	"gridmcts/meta"
	"gridmcts/searcher"
)

// Analyzer searches positions on behalf of a caller.
type Analyzer interface {
	Policy(ctx context.Context, req PolicyRequest) (PolicyResponse, error)
}

// State is the wire form of a game.GridState. Board rows are listed top row
// first using 'X' for black, 'O' for white and '.' for empty cells; an empty
// board means the variant's starting position.
type State struct {
	Game     string   `json:"game"`
	Board    []string `json:"board,omitempty"`
	Player   string   `json:"player,omitempty"`
	Captures [2]int   `json:"captures,omitempty"`
	Winner   string   `json:"winner,omitempty"`
}

type PolicyRequest struct {
	State
	Rounds      int      `json:"rounds,omitempty"`
	Heuristic   string   `json:"heuristic,omitempty"`
	Expansion   string   `json:"expansion,omitempty"`
	Exploration *float64 `json:"exploration,omitempty"`
	Seed        *uint64  `json:"seed,omitempty"`
}

type MoveValue struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Value  float64 `json:"value"`
	Visits int     `json:"visits"`
}

type PolicyResponse struct {
	Player   string      `json:"player"`
	Playouts int         `json:"playouts"`
	Moves    []MoveValue `json:"moves"`
	Best     *game.Move  `json:"best,omitempty"`
}

type PlayRequest struct {
	State
	Move game.Move `json:"move"`
}

type PlayResponse struct {
	State State `json:"state"`
}

type VariantInfo struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Message types exchanged on the analysis websocket.
const (
	MessageAnalyze = "analyze" // client: PolicyRequest, restarts the analysis
	MessageStop    = "stop"    // client: pauses the analysis
	MessagePolicy  = "policy"  // server: PolicyResponse snapshot
	MessageDone    = "done"    // server: PolicyResponse after the last round
	MessageError   = "error"   // server: ErrorResponse
)

type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewMessage(kind string, payload any) (Message, error) {
	if payload == nil {
		return Message{Type: kind}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("encode %s payload: %w", kind, err)
	}
	return Message{Type: kind, Payload: raw}, nil
}

func ParsePlayer(name string) (game.Player, error) {
	switch strings.ToLower(name) {
	case "", "black", "x", "0":
		return game.Black, nil
	case "white", "o", "1":
		return game.White, nil
	}
	return game.None, fmt.Errorf("%w: unknown player %q", game.ErrMalformedBoard, name)
}

func EncodeState(s *game.GridState) State {
	out := State{
		Game:     s.Variant().Name,
		Board:    s.Board().Rows(),
		Player:   s.Player().String(),
		Captures: [2]int{s.Captures(game.Black), s.Captures(game.White)},
	}
	if w := s.Winner(); w != game.None {
		out.Winner = w.String()
	}
	return out
}

// Decode rebuilds the game state. Boards of a non-standard size, up to
// meta.MAX_BOARD_SIZE on each side, play the variant's rules on that size.
func (s State) Decode() (*game.GridState, error) {
	variant, err := game.VariantByName(s.Game)
	if err != nil {
		return nil, err
	}
	player, err := ParsePlayer(s.Player)
	if err != nil {
		return nil, err
	}
	if len(s.Board) == 0 {
		state := game.NewState(variant)
		if player != game.Black {
			return game.FromBoard(variant, state.Board(), player, s.Captures)
		}
		return state, nil
	}

	if len(s.Board) > meta.MAX_BOARD_SIZE {
		return nil, fmt.Errorf("%w: %d rows, at most %d allowed", game.ErrMalformedBoard, len(s.Board), meta.MAX_BOARD_SIZE)
	}
	for _, row := range s.Board {
		if len(row) > meta.MAX_BOARD_SIZE {
			return nil, fmt.Errorf("%w: %d columns, at most %d allowed", game.ErrMalformedBoard, len(row), meta.MAX_BOARD_SIZE)
		}
	}
	board, err := game.ParseBoard(s.Board...)
	if err != nil {
		return nil, err
	}
	if board.Width() != variant.Width || board.Height() != variant.Height {
		variant = variant.Sized(board.Width(), board.Height())
	}
	return game.FromBoard(variant, board, player, s.Captures)
}

func EncodePolicy(values searcher.GridValues) PolicyResponse {
	out := PolicyResponse{
		Player:   values.Player().String(),
		Playouts: values.Playouts(),
		Moves:    []MoveValue{},
	}
	for _, move := range values.Moves() {
		out.Moves = append(out.Moves, MoveValue{
			X:      move.X,
			Y:      move.Y,
			Value:  values.Value(move),
			Visits: values.Visits(move),
		})
	}
	if best, ok := values.Best(); ok {
		out.Best = &best
	}
	return out
}
