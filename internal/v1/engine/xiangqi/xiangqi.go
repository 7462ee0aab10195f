package xiangqi

import "tablehost/internal/v1/engine/common"

// Snapshot is the family-tagged serializable view of a xiangqi game, sharing
// its shape with the chess game_state payload since both two-player board
// games broadcast unfiltered full state.
type Snapshot struct {
	GameType   string  `json:"gameType"`
	FEN        string  `json:"fen"`
	Turn       string  `json:"turn"`
	InCheck    bool    `json:"inCheck"`
	IsGameOver bool    `json:"isGameOver"`
	Winner     *string `json:"winner"`
}

// Engine is the authoritative Xiangqi (Chinese chess) game.
type Engine struct {
	state *State
}

// New starts a game from the standard Xiangqi opening position.
func New() *Engine {
	st, _ := ParseFEN(StartFEN)
	return &Engine{state: st}
}

// NewFromFEN starts a game from an arbitrary legal position.
func NewFromFEN(fen string) (*Engine, error) {
	st, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Engine{state: st}, nil
}

// Turn returns the side to move, "w" (red) or "b" (black).
func (e *Engine) Turn() string { return string(e.state.Turn) }

// FEN serializes the current position.
func (e *Engine) FEN() string { return e.state.FEN() }

// InCheck reports whether the side to move is in check, including via the
// flying-generals rule.
func (e *Engine) InCheck() bool {
	return e.state.attacksSquare(e.state.Turn.Opposite(), e.state.generalSquare(e.state.Turn))
}

// Move validates and applies a move requested by the side to move.
func (e *Engine) Move(from, to Square, promotion byte) common.Result {
	if e.IsGameOver() {
		return common.Fail("Game over")
	}

	p := e.state.Board[from.Row][from.Col]
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
	clone.apply(Move{From: from, To: to})
	if clone.attacksSquare(e.state.Turn.Opposite(), clone.generalSquare(e.state.Turn)) {
		return common.Fail("Move leaves king in check")
	}

	e.state.apply(Move{From: from, To: to})
	return common.Ok()
}

// Undo pops the most recent ply, if any exist.
func (e *Engine) Undo() bool { return e.state.Undo() }

// IsGameOver reports whether the side to move has no legal move. Unlike
// chess, xiangqi has no stalemate draw: the stalemated side simply loses.
func (e *Engine) IsGameOver() bool {
	return !e.state.HasAnyLegalMove(e.state.Turn)
}

// Winner returns "red" or "black"; xiangqi never draws by stalemate, so a
// nil result only ever means the game is still in progress.
func (e *Engine) Winner() *string {
	if !e.IsGameOver() {
		return nil
	}
	winner := "black"
	if e.state.Turn == Black {
		winner = "red"
	}
	return &winner
}

// State returns the broadcastable snapshot of the current game.
func (e *Engine) State() any {
	var winner *string
	if e.IsGameOver() {
		winner = e.Winner()
	}
	return Snapshot{
		GameType:   "xiangqi",
		FEN:        e.state.FEN(),
		Turn:       string(e.state.Turn),
		InCheck:    e.InCheck(),
		IsGameOver: e.IsGameOver(),
		Winner:     winner,
	}
}
