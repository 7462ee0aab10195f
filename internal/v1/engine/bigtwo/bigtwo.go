package bigtwo

import (
	"math/rand"

	"tablehost/internal/v1/cards"
	"tablehost/internal/v1/engine/common"
)

// Snapshot is the per-seat personalized game_state payload. Build fresh per
// recipient so a hand never leaves the engine except through this boundary.
type Snapshot struct {
	GameType    string         `json:"gameType"`
	MyHand      []cards.ID     `json:"myHand"`
	HandCounts  [4]int         `json:"handCounts"`
	CurrentSeat int            `json:"currentSeat"`
	TableCombo  *ComboPayload  `json:"tableCombo"`
	TableOwner  *int           `json:"tableOwner"`
	PassCount   int            `json:"passCount"`
	IsGameOver  bool           `json:"isGameOver"`
	Winner      *int           `json:"winner"`
}

// ComboPayload is the wire shape of the table combo: a type tag plus the
// raw card ids, not the internal ComboType enum.
type ComboPayload struct {
	Type     string     `json:"type"`
	CardIds  []cards.ID `json:"cardIds"`
}

var typeNames = map[ComboType]string{
	ComboSingle:        "single",
	ComboPair:          "pair",
	ComboTriple:        "triple",
	ComboStraight:      "straight",
	ComboFlush:         "flush",
	ComboFullHouse:     "fullhouse",
	ComboQuads:         "quads",
	ComboStraightFlush: "straightflush",
}

// Engine is the authoritative Big Two (chordaidi) game for exactly 4 seats.
type Engine struct {
	hands       [4][]cards.ID
	currentSeat int
	table       Combo
	tableOwner  *int
	passCount   int
	firstPlay   bool
	isGameOver  bool
	winner      *int
}

// New deals a fresh game: the full deck is shuffled with rng and dealt by
// taking every fourth card starting at each seat, then the holder of 3♦
// (card id 0) is set to move first, as their opening play is constrained.
func New(rng *rand.Rand) *Engine {
	deck := cards.FullDeck()
	common.Shuffle(deck, rng)

	e := &Engine{firstPlay: true}
	for i, id := range deck {
		seat := i % 4
		e.hands[seat] = append(e.hands[seat], id)
	}
	for seat, hand := range e.hands {
		for _, id := range hand {
			if id == ThreeOfDiamonds {
				e.currentSeat = seat
			}
		}
	}
	return e
}

// Turn returns the seat currently on the move.
func (e *Engine) Turn() int { return e.currentSeat }

func containsAll(hand []cards.ID, ids []cards.ID) bool {
	set := make(map[cards.ID]bool, len(hand))
	for _, id := range hand {
		set[id] = true
	}
	for _, id := range ids {
		if !set[id] {
			return false
		}
	}
	return true
}

func removeAll(hand []cards.ID, ids []cards.ID) []cards.ID {
	remove := make(map[cards.ID]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}
	out := hand[:0:0]
	for _, id := range hand {
		if !remove[id] {
			out = append(out, id)
		}
	}
	return out
}

func containsCard(ids []cards.ID, target cards.ID) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}

// Play validates and applies a play by the given seat.
func (e *Engine) Play(seat int, cardIds []cards.ID) common.Result {
	if e.isGameOver {
		return common.Fail("Game over")
	}
	if seat != e.currentSeat {
		return common.Fail("Not your turn")
	}
	if !containsAll(e.hands[seat], cardIds) {
		return common.Fail("Card not in hand")
	}

	combo := classify(cardIds)
	if combo.Type == ComboNone {
		return common.Fail("Invalid combination")
	}
	if e.firstPlay && !containsCard(cardIds, ThreeOfDiamonds) {
		return common.Fail("First play must include 3♦")
	}
	if e.table.Type != ComboNone && !beats(combo, e.table) {
		return common.Fail("Does not beat the table")
	}

	e.hands[seat] = removeAll(e.hands[seat], cardIds)
	e.table = combo
	owner := seat
	e.tableOwner = &owner
	e.passCount = 0
	e.firstPlay = false
	e.currentSeat = (seat + 1) % 4

	if len(e.hands[seat]) == 0 {
		e.isGameOver = true
		w := seat
		e.winner = &w
	}
	return common.Ok()
}

// Pass validates and applies a pass by the given seat.
func (e *Engine) Pass(seat int) common.Result {
	if e.isGameOver {
		return common.Fail("Game over")
	}
	if seat != e.currentSeat {
		return common.Fail("Not your turn")
	}
	if e.table.Type == ComboNone {
		return common.Fail("Cannot pass on an empty table")
	}
	if e.tableOwner != nil && *e.tableOwner == seat {
		return common.Fail("You own the table — play or wait")
	}

	e.passCount++
	e.currentSeat = (seat + 1) % 4

	if e.passCount >= 3 {
		if e.tableOwner != nil {
			e.currentSeat = *e.tableOwner
		}
		e.table = Combo{}
		e.tableOwner = nil
		e.passCount = 0
	}
	return common.Ok()
}

// IsGameOver reports whether a seat has emptied its hand.
func (e *Engine) IsGameOver() bool { return e.isGameOver }

// Winner returns the winning seat, or nil while the game continues.
func (e *Engine) Winner() *int { return e.winner }

// State returns PersonalizedState(-1): hand counts and table state for
// every seat, with no hand's cards included.
func (e *Engine) State() any { return e.PersonalizedState(-1) }

// PersonalizedState builds the game_state payload for a specific recipient
// seat: myHand is populated only for that seat, others see only counts.
func (e *Engine) PersonalizedState(recipientSeat int) Snapshot {
	var myHand []cards.ID
	if recipientSeat >= 0 && recipientSeat < 4 {
		myHand = append([]cards.ID(nil), e.hands[recipientSeat]...)
	}

	var handCounts [4]int
	for i, h := range e.hands {
		handCounts[i] = len(h)
	}

	var combo *ComboPayload
	if e.table.Type != ComboNone {
		combo = &ComboPayload{Type: typeNames[e.table.Type], CardIds: e.table.Cards}
	}

	var owner *int
	if e.tableOwner != nil {
		o := *e.tableOwner
		owner = &o
	}

	return Snapshot{
		GameType:    "chordaidi",
		MyHand:      myHand,
		HandCounts:  handCounts,
		CurrentSeat: e.currentSeat,
		TableCombo:  combo,
		TableOwner:  owner,
		PassCount:   e.passCount,
		IsGameOver:  e.isGameOver,
		Winner:      e.winner,
	}
}
