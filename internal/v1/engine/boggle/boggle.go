package boggle

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"tablehost/internal/v1/engine/common"
)

const (
	roundLength   = 180 * time.Second
	minWordLength = 3
)

func wordScore(length int) int {
	switch {
	case length <= 4:
		return 1
	case length == 5:
		return 2
	case length == 6:
		return 3
	case length == 7:
		return 5
	default:
		return 11
	}
}

// WordResult is one annotated word in a seat's final results.
type WordResult struct {
	Word   string `json:"word"`
	Unique bool   `json:"unique"`
	Points int    `json:"points"`
}

// Snapshot is the broadcastable game_state payload. Scores and Words are
// populated only after the round ends.
type Snapshot struct {
	GameType          string         `json:"gameType"`
	Board             string         `json:"board"`
	TimeLeft          int            `json:"timeLeft"`
	SubmissionCounts  []int          `json:"submissionCounts"`
	IsGameOver        bool           `json:"isGameOver"`
	Scores            []int          `json:"scores,omitempty"`
	Words             [][]WordResult `json:"words,omitempty"`
	PlayerCount       int            `json:"playerCount"`
}

// Engine is the authoritative Boggle round for 2..4 seats.
type Engine struct {
	board       [16]byte
	seats       int
	submissions []map[string]bool
	startedAt   time.Time
	over        bool
	scores      []int
	results     [][]WordResult
}

// New starts a round for the given seat count, rolling a fresh board.
func New(seats int, rng *rand.Rand) *Engine {
	e := &Engine{
		board:     newBoard(rng),
		seats:     seats,
		startedAt: time.Now(),
	}
	e.submissions = make([]map[string]bool, seats)
	for i := range e.submissions {
		e.submissions[i] = make(map[string]bool)
	}
	return e
}

// Board renders the 16-letter board string, using 'Q' for the Qu die face.
func (e *Engine) Board() string {
	return string(e.board[:])
}

// TimeLeft returns the seconds remaining in the round, floored at zero.
func (e *Engine) TimeLeft() int {
	elapsed := time.Since(e.startedAt)
	remaining := roundLength - elapsed
	if remaining < 0 {
		return 0
	}
	return int(remaining.Seconds())
}

// SubmitWord validates and records a word for the given seat.
func (e *Engine) SubmitWord(seat int, word string) common.Result {
	if e.over {
		return common.Fail("Round is over")
	}
	if e.TimeLeft() <= 0 {
		return common.Fail("Time is up")
	}
	upper := strings.ToUpper(word)
	if len(upper) < minWordLength {
		return common.Fail("Words must be at least 3 letters")
	}
	for _, r := range upper {
		if r < 'A' || r > 'Z' {
			return common.Fail("Letters only")
		}
	}
	if e.submissions[seat][upper] {
		return common.Fail("Already submitted")
	}
	if !dictionary[upper] {
		return common.Fail("Not a valid word")
	}
	if !canForm(e.board, upper) {
		return common.Fail("Cannot be formed on board")
	}

	e.submissions[seat][upper] = true
	return common.Ok()
}

// SubmissionCounts returns each seat's current submitted-word count,
// without revealing the words themselves.
func (e *Engine) SubmissionCounts() []int {
	counts := make([]int, e.seats)
	for i, s := range e.submissions {
		counts[i] = len(s)
	}
	return counts
}

// EndRound is idempotent: the first call computes final scores via
// duplicate-across-seats cancellation; subsequent calls are no-ops that
// leave scores and results unchanged.
func (e *Engine) EndRound() {
	if e.over {
		return
	}
	e.over = true

	wordSeats := make(map[string][]int)
	for seat, words := range e.submissions {
		for w := range words {
			wordSeats[w] = append(wordSeats[w], seat)
		}
	}

	e.scores = make([]int, e.seats)
	e.results = make([][]WordResult, e.seats)
	for seat, words := range e.submissions {
		var list []WordResult
		for w := range words {
			unique := len(wordSeats[w]) == 1
			points := 0
			if unique {
				points = wordScore(len(w))
				e.scores[seat] += points
			}
			list = append(list, WordResult{Word: w, Unique: unique, Points: points})
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].Unique != list[j].Unique {
				return list[i].Unique
			}
			return list[i].Word < list[j].Word
		})
		e.results[seat] = list
	}
}

// IsGameOver reports whether the round has ended.
func (e *Engine) IsGameOver() bool { return e.over }

// Winner returns the seat with the highest score, ties broken to the lowest
// seat index; nil while the round is in progress.
func (e *Engine) Winner() *int {
	if !e.over {
		return nil
	}
	best := 0
	for seat, score := range e.scores {
		if score > e.scores[best] {
			best = seat
		}
	}
	return &best
}

// State returns the broadcastable game_state payload.
func (e *Engine) State() any {
	snap := Snapshot{
		GameType:         "boggle",
		Board:            e.Board(),
		TimeLeft:         e.TimeLeft(),
		SubmissionCounts: e.SubmissionCounts(),
		IsGameOver:       e.over,
		PlayerCount:      e.seats,
	}
	if e.over {
		snap.Scores = e.scores
		snap.Words = e.results
	}
	return snap
}
