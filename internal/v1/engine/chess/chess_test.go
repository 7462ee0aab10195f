package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sq(file, rank int) Square { return Square{Rank: rank, File: file} }

func TestNewStartPosition(t *testing.T) {
	e := New()
	assert.Equal(t, "w", e.Turn())
	assert.False(t, e.IsGameOver())
	assert.Equal(t, StartFEN, e.FEN())
}

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range []string{
		StartFEN,
		"rnbqkbnr/pp1ppppp/8/2p5/3P4/8/PPP1PPPP/RNBQKBNR b KQkq d3 0 2",
		"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	} {
		st, err := ParseFEN(fen)
		require.NoError(t, err)
		assert.Equal(t, fen, st.FEN())
	}
}

// TestCastlingKingside plays 1.e4 e5 2.Nf3 Nc6 3.Bb5 Nf6 4.O-O: White's king
// ends on g1, the rook on f1, and the K and Q rights clear while black's
// remain.
func TestCastlingKingside(t *testing.T) {
	e := New()
	moves := []struct {
		from, to Square
	}{
		{sq(4, 6), sq(4, 4)}, // e2e4
		{sq(4, 1), sq(4, 3)}, // e7e5
		{sq(6, 7), sq(5, 5)}, // Ng1f3
		{sq(1, 0), sq(2, 2)}, // Nb8c6
		{sq(5, 7), sq(1, 3)}, // Bf1b5
		{sq(6, 0), sq(5, 2)}, // Ng8f6
	}
	for _, m := range moves {
		res := e.Move(m.from, m.to, 0)
		require.True(t, res.OK, "move %+v failed: %s", m, res.Reason)
	}

	res := e.Move(sq(4, 7), sq(6, 7), 0) // O-O: e1g1
	require.True(t, res.OK, res.Reason)

	assert.Equal(t, byte('K'), e.state.Board[7][6])
	assert.Equal(t, byte('R'), e.state.Board[7][5])
	assert.False(t, e.state.Castling.WhiteKingside)
	assert.False(t, e.state.Castling.WhiteQueenside)
	assert.True(t, e.state.Castling.BlackKingside)
	assert.True(t, e.state.Castling.BlackQueenside)

	fen := e.FEN()
	assert.Contains(t, fen, " kq ")
}

// TestEnPassant plays 1.e4 d5 2.e5 f5 3.exf6: the black pawn on f5 is
// captured en passant, a white pawn lands on f6, and no black pawn
// remains on f5.
func TestEnPassant(t *testing.T) {
	e := New()
	require.True(t, e.Move(sq(4, 6), sq(4, 4), 0).OK) // e2e4
	require.True(t, e.Move(sq(3, 1), sq(3, 3), 0).OK) // d7d5
	require.True(t, e.Move(sq(4, 4), sq(4, 3), 0).OK) // e4e5
	require.True(t, e.Move(sq(5, 1), sq(5, 3), 0).OK) // f7f5

	require.NotNil(t, e.state.EnPassant)
	res := e.Move(sq(4, 3), sq(5, 2), 0) // exf6 en passant
	require.True(t, res.OK, res.Reason)

	assert.Equal(t, byte('P'), e.state.Board[2][5]) // white pawn now on f6
	assert.Equal(t, byte(0), e.state.Board[3][5])   // black pawn on f5 removed
}

func TestNotYourPiece(t *testing.T) {
	e := New()
	res := e.Move(sq(4, 1), sq(4, 3), 0) // black pawn, white to move
	assert.False(t, res.OK)
	assert.Equal(t, "Not your piece", res.Reason)
}

func TestMoveLeavesKingInCheck(t *testing.T) {
	// White king on e1 pinned by a rook on e-file if the e2 pawn moves away.
	e, err := NewFromFEN("4r3/8/8/8/8/3p4/4P3/4K3 w - - 0 1")
	require.NoError(t, err)
	res := e.Move(sq(4, 6), sq(3, 5), 0) // attempt e2xd3, abandoning the pin
	assert.False(t, res.OK)
	assert.Equal(t, "Move leaves king in check", res.Reason)
}

func TestFoolsMateCheckmate(t *testing.T) {
	e := New()
	require.True(t, e.Move(sq(5, 6), sq(5, 5), 0).OK) // f2f3
	require.True(t, e.Move(sq(4, 1), sq(4, 3), 0).OK) // e7e5
	require.True(t, e.Move(sq(6, 6), sq(6, 4), 0).OK) // g2g4
	require.True(t, e.Move(sq(3, 0), sq(7, 4), 0).OK) // Qd8h4#

	assert.True(t, e.IsGameOver())
	winner := e.Winner()
	require.NotNil(t, winner)
	assert.Equal(t, "black", *winner)
}

func TestUndo(t *testing.T) {
	e := New()
	require.True(t, e.Move(sq(4, 6), sq(4, 4), 0).OK)
	assert.Equal(t, "b", e.Turn())
	assert.True(t, e.Undo())
	assert.Equal(t, "w", e.Turn())
	assert.Equal(t, StartFEN, e.FEN())
	assert.False(t, e.Undo())
}

func TestPromotionDefaultsToQueen(t *testing.T) {
	e, err := NewFromFEN("8/P7/8/8/8/8/8/k6K w - - 0 1")
	require.NoError(t, err)
	res := e.Move(sq(0, 1), sq(0, 0), 0)
	require.True(t, res.OK, res.Reason)
	assert.Equal(t, byte('Q'), e.state.Board[0][0])
}
