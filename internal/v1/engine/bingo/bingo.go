package bingo

import (
	"math/rand"

	"tablehost/internal/v1/engine/common"
)

// columnRanges gives the inclusive [low, high] range each of the 5 BINGO
// columns draws its numbers from.
var columnRanges = [5][2]int{
	{1, 15},  // B
	{16, 30}, // I
	{31, 45}, // N
	{46, 60}, // G
	{61, 75}, // O
}

// Card is a seat's 5x5 grid of numbers, column-major per columnRanges, with
// the center cell (row 2, col 2) fixed at 0 to mean FREE.
type Card [5][5]int

// Marked mirrors Card with a parallel boolean grid; the FREE square starts
// pre-marked.
type Marked [5][5]bool

// Winner records a seat that has satisfied one or more win patterns.
type Winner struct {
	Seat  int      `json:"seat"`
	Types []string `json:"types"`
}

// Snapshot is the broadcastable game_state payload; every card is public.
type Snapshot struct {
	GameType    string    `json:"gameType"`
	Called      []int     `json:"called"`
	LastCalled  *int      `json:"lastCalled"`
	Cards       []Card    `json:"cards"`
	Marked      []Marked  `json:"marked"`
	IsGameOver  bool      `json:"isGameOver"`
	Winners     []Winner  `json:"winners"`
	CallerSeat  int       `json:"callerSeat"`
	PlayerCount int       `json:"playerCount"`
}

// Engine is the authoritative Bingo game for 2..8 seats. Seat 0 is always
// the caller, the only seat authorized to draw numbers.
type Engine struct {
	cards      []Card
	marked     []Marked
	pool       []int
	called     []int
	isGameOver bool
	winners    []Winner
	won        map[int]bool
}

// New deals one card per seat and shuffles the 1..75 draw pool.
func New(seats int, rng *rand.Rand) *Engine {
	e := &Engine{
		cards:  make([]Card, seats),
		marked: make([]Marked, seats),
		won:    make(map[int]bool),
	}
	for seat := range e.cards {
		e.cards[seat] = dealCard(rng)
		e.marked[seat][2][2] = true
	}

	pool := make([]int, 0, 75)
	for n := 1; n <= 75; n++ {
		pool = append(pool, n)
	}
	common.Shuffle(pool, rng)
	e.pool = pool
	return e
}

func dealCard(rng *rand.Rand) Card {
	var card Card
	for col, r := range columnRanges {
		nums := make([]int, 0, r[1]-r[0]+1)
		for n := r[0]; n <= r[1]; n++ {
			nums = append(nums, n)
		}
		common.Shuffle(nums, rng)
		for row := 0; row < 5; row++ {
			if col == 2 && row == 2 {
				card[row][col] = 0
				continue
			}
			card[row][col] = nums[row]
		}
	}
	return card
}

// CallNumber draws the next number; only seat 0 may call, and only while
// the pool has numbers left and the game has not ended.
func (e *Engine) CallNumber(seat int) common.Result {
	if seat != 0 {
		return common.Fail("Not your turn")
	}
	if e.isGameOver {
		return common.Fail("Game over")
	}
	if len(e.pool) == 0 {
		return common.Fail("No numbers left")
	}

	n := e.pool[0]
	e.pool = e.pool[1:]
	e.called = append(e.called, n)

	for seatIdx, card := range e.cards {
		for row := 0; row < 5; row++ {
			for col := 0; col < 5; col++ {
				if card[row][col] == n {
					e.marked[seatIdx][row][col] = true
				}
			}
		}
	}

	for seatIdx := range e.cards {
		if e.won[seatIdx] {
			continue
		}
		if types := winPatterns(e.marked[seatIdx]); len(types) > 0 {
			e.won[seatIdx] = true
			e.winners = append(e.winners, Winner{Seat: seatIdx, Types: types})
			e.isGameOver = true
		}
	}
	return common.Ok()
}

// winPatterns returns every satisfied pattern label: any complete row or
// column, either main diagonal, or the full card.
func winPatterns(m Marked) []string {
	var types []string

	for row := 0; row < 5; row++ {
		complete := true
		for col := 0; col < 5; col++ {
			if !m[row][col] {
				complete = false
				break
			}
		}
		if complete {
			types = append(types, "row")
			break
		}
	}

	for col := 0; col < 5; col++ {
		complete := true
		for row := 0; row < 5; row++ {
			if !m[row][col] {
				complete = false
				break
			}
		}
		if complete {
			types = append(types, "column")
			break
		}
	}

	diag1, diag2 := true, true
	for i := 0; i < 5; i++ {
		if !m[i][i] {
			diag1 = false
		}
		if !m[i][4-i] {
			diag2 = false
		}
	}
	if diag1 || diag2 {
		types = append(types, "diagonal")
	}

	full := true
	for row := 0; row < 5 && full; row++ {
		for col := 0; col < 5; col++ {
			if !m[row][col] {
				full = false
				break
			}
		}
	}
	if full {
		types = append(types, "fullhouse")
	}

	return types
}

// IsGameOver reports whether any seat has won.
func (e *Engine) IsGameOver() bool { return e.isGameOver }

// Winners returns the accumulated winners list with their pattern labels.
func (e *Engine) Winners() []Winner { return e.winners }

// State returns the broadcastable snapshot; every card is public in Bingo.
func (e *Engine) State() any {
	var last *int
	if len(e.called) > 0 {
		l := e.called[len(e.called)-1]
		last = &l
	}
	winners := e.winners
	if winners == nil {
		winners = []Winner{}
	}
	return Snapshot{
		GameType:    "bingo",
		Called:      e.called,
		LastCalled:  last,
		Cards:       e.cards,
		Marked:      e.marked,
		IsGameOver:  e.isGameOver,
		Winners:     winners,
		CallerSeat:  0,
		PlayerCount: len(e.cards),
	}
}
