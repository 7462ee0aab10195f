package chess

import "tablehost/internal/v1/engine/common"

// Snapshot is the family-tagged serializable view of a chess game, matching
// the game_state wire payload for two-player games.
type Snapshot struct {
	GameType   string  `json:"gameType"`
	FEN        string  `json:"fen"`
	Turn       string  `json:"turn"`
	InCheck    bool    `json:"inCheck"`
	IsGameOver bool    `json:"isGameOver"`
	Winner     *string `json:"winner"`
}

// Engine is the authoritative chess game: board state, move validation, and
// win detection. It satisfies common.Engine plus the chess/xiangqi-family
// verbs (move, turn, inCheck, fen) common to two-player board games.
type Engine struct {
	state *State
}

// New starts a game from the standard opening position.
func New() *Engine {
	st, _ := ParseFEN(StartFEN)
	return &Engine{state: st}
}

// NewFromFEN starts a game from an arbitrary legal FEN, used by tests that
// exercise specific positions such as castling and en passant.
func NewFromFEN(fen string) (*Engine, error) {
	st, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Engine{state: st}, nil
}

// Turn returns the side to move, "w" or "b".
func (e *Engine) Turn() string { return string(e.state.Turn) }

// FEN serializes the current position.
func (e *Engine) FEN() string { return e.state.FEN() }

// InCheck reports whether the side to move is currently in check.
func (e *Engine) InCheck() bool {
	return e.state.attacksSquare(e.state.Turn.Opposite(), e.state.kingSquare(e.state.Turn))
}

// Move validates and applies a move requested by the side to move.
func (e *Engine) Move(from, to Square, promotion byte) common.Result {
	if e.IsGameOver() {
		return common.Fail("Game over")
	}

	p := e.state.Board[from.Rank][from.File]
	if p == 0 {
		return common.Fail("No piece at source")
	}
	if pieceColor(p) != e.state.Turn {
		return common.Fail("Not your piece")
	}
	if !e.state.isPseudoLegal(from, to) {
		return common.Fail("Illegal move")
	}

	clone := *e.state
	clone.history = nil
	clone.apply(Move{From: from, To: to, Promotion: promotion})
	if clone.attacksSquare(e.state.Turn.Opposite(), clone.kingSquare(e.state.Turn)) {
		return common.Fail("Move leaves king in check")
	}

	e.state.apply(Move{From: from, To: to, Promotion: promotion})
	return common.Ok()
}

// Undo pops the most recent ply, if any exist.
func (e *Engine) Undo() bool { return e.state.Undo() }

// IsGameOver reports checkmate or stalemate for the side to move.
func (e *Engine) IsGameOver() bool {
	return !e.state.HasAnyLegalMove(e.state.Turn)
}

// Winner returns "white", "black", "draw", or nil when the game continues.
// Checkmate awards the win to the side that delivered it; stalemate draws.
func (e *Engine) Winner() *string {
	if !e.IsGameOver() {
		return nil
	}
	if e.InCheck() {
		winner := "black"
		if e.state.Turn == Black {
			winner = "white"
		}
		return &winner
	}
	draw := "draw"
	return &draw
}

// State returns the broadcastable snapshot of the current game.
func (e *Engine) State() any {
	var winner *string
	if e.IsGameOver() {
		winner = e.Winner()
	}
	return Snapshot{
		GameType:   "chess",
		FEN:        e.state.FEN(),
		Turn:       string(e.state.Turn),
		InCheck:    e.InCheck(),
		IsGameOver: e.IsGameOver(),
		Winner:     winner,
	}
}
