package boggle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedBoardEngine builds an engine bypassing the dice roll, so tests can
// exercise specific boards deterministically.
func fixedBoardEngine(board string, seats int) *Engine {
	e := &Engine{seats: seats, startedAt: time.Now()}
	copy(e.board[:], board)
	e.submissions = make([]map[string]bool, seats)
	for i := range e.submissions {
		e.submissions[i] = make(map[string]bool)
	}
	return e
}

// TestUniqueScoring reproduces the unique-word scoring scenario: seat 0
// submits TEACH, seat 1 submits TEACH and REACH, both tracing a shared
// E-A-C-H suffix on the board. After EndRound, seat 0 scores 0 (TEACH
// cancelled by the duplicate) and seat 1 scores 2 (only REACH is unique).
func TestUniqueScoring(t *testing.T) {
	e := fixedBoardEngine("TRZZEAZZCHZZZZZZ", 2)

	require.True(t, e.SubmitWord(0, "teach").OK)
	require.True(t, e.SubmitWord(1, "TEACH").OK)
	require.True(t, e.SubmitWord(1, "REACH").OK)

	e.EndRound()

	assert.Equal(t, 0, e.scores[0])
	assert.Equal(t, 2, e.scores[1])

	for _, wr := range e.results[0] {
		if wr.Word == "TEACH" {
			assert.False(t, wr.Unique)
		}
	}
	for _, wr := range e.results[1] {
		if wr.Word == "TEACH" {
			assert.False(t, wr.Unique)
		}
		if wr.Word == "REACH" {
			assert.True(t, wr.Unique)
			assert.Equal(t, 2, wr.Points)
		}
	}
}

func TestEndRoundIdempotent(t *testing.T) {
	e := fixedBoardEngine("TEACHERSAEXAMPLE", 2)
	require.True(t, e.SubmitWord(0, "TEA").OK)

	e.EndRound()
	firstScores := append([]int(nil), e.scores...)
	e.EndRound()
	assert.Equal(t, firstScores, e.scores)
}

func TestDuplicateSubmissionRejected(t *testing.T) {
	e := fixedBoardEngine("TEACHERSAEXAMPLE", 2)
	require.True(t, e.SubmitWord(0, "TEA").OK)
	res := e.SubmitWord(0, "tea")
	assert.False(t, res.OK)
	assert.Equal(t, "Already submitted", res.Reason)
}

func TestWordMustBeFormableOnBoard(t *testing.T) {
	e := fixedBoardEngine("BBBBBBBBBBBBBBBB", 2)
	res := e.SubmitWord(0, "TEACH")
	assert.False(t, res.OK)
	assert.Equal(t, "Cannot be formed on board", res.Reason)
}

func TestTooShortRejected(t *testing.T) {
	e := fixedBoardEngine("TEACHERSAEXAMPLE", 2)
	res := e.SubmitWord(0, "AT")
	assert.False(t, res.OK)
	assert.Equal(t, "Words must be at least 3 letters", res.Reason)
}

func TestQDieContributesDigraph(t *testing.T) {
	board := [16]byte{}
	copy(board[:], "QAAAAAAAAAAAAAAA")
	assert.True(t, canForm(board, "QUA"))
}
