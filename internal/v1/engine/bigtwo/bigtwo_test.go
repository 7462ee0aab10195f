package bigtwo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablehost/internal/v1/cards"
)

// seededEngine deals with a fixed-seed rng so the hand placement is
// deterministic across runs, matching the fixed-seed scenario in the spec.
func seededEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	return New(rand.New(rand.NewSource(seed)))
}

func TestDealPreservesFullDeck(t *testing.T) {
	e := seededEngine(t, 1)
	seen := make(map[cards.ID]bool)
	for _, hand := range e.hands {
		assert.Len(t, hand, 13)
		for _, id := range hand {
			assert.False(t, seen[id], "card %v dealt twice", id)
			seen[id] = true
		}
	}
	assert.Len(t, seen, 52)
}

func TestFirstPlayMustIncludeThreeOfDiamonds(t *testing.T) {
	e := seededEngine(t, 1)
	seat := e.Turn()
	require.True(t, containsCard(e.hands[seat], ThreeOfDiamonds))

	other := e.hands[seat][0]
	for other == ThreeOfDiamonds {
		other = e.hands[seat][1]
	}
	res := e.Play(seat, []cards.ID{other})
	assert.False(t, res.OK)
	assert.Equal(t, "First play must include 3♦", res.Reason)

	res = e.Play(seat, []cards.ID{ThreeOfDiamonds})
	require.True(t, res.OK, res.Reason)
	assert.Equal(t, ComboSingle, e.table.Type)
	assert.Equal(t, (seat+1)%4, e.currentSeat)
}

func TestRoundClearReturnsToOwner(t *testing.T) {
	e := &Engine{
		hands:       [4][]cards.ID{{1}, {2}, {3}, {4}},
		currentSeat: 2,
		table:       Combo{Type: ComboSingle, Cards: []cards.ID{cards.NewID(cards.Eight, cards.Hearts)}, Key: cards.NewID(cards.Eight, cards.Hearts)},
	}
	owner := 1
	e.tableOwner = &owner

	require.True(t, e.Pass(2).OK)
	require.True(t, e.Pass(3).OK)
	require.True(t, e.Pass(0).OK)

	assert.Equal(t, ComboNone, e.table.Type)
	assert.Nil(t, e.tableOwner)
	assert.Equal(t, 1, e.currentSeat)
	assert.Equal(t, 0, e.passCount)
}

func TestOwnerCannotPass(t *testing.T) {
	e := &Engine{currentSeat: 1, table: Combo{Type: ComboSingle, Key: 5}}
	owner := 1
	e.tableOwner = &owner
	res := e.Pass(1)
	assert.False(t, res.OK)
	assert.Equal(t, "You own the table — play or wait", res.Reason)
}

func TestCannotPassOnEmptyTable(t *testing.T) {
	e := &Engine{currentSeat: 0}
	res := e.Pass(0)
	assert.False(t, res.OK)
	assert.Equal(t, "Cannot pass on an empty table", res.Reason)
}

func TestClassifyStraightFlush(t *testing.T) {
	ids := []cards.ID{
		cards.NewID(cards.Three, cards.Hearts),
		cards.NewID(cards.Four, cards.Hearts),
		cards.NewID(cards.Five, cards.Hearts),
		cards.NewID(cards.Six, cards.Hearts),
		cards.NewID(cards.Seven, cards.Hearts),
	}
	combo := classify(ids)
	assert.Equal(t, ComboStraightFlush, combo.Type)
}

func TestBeatsHierarchy(t *testing.T) {
	straight := classify([]cards.ID{
		cards.NewID(cards.Three, cards.Diamonds),
		cards.NewID(cards.Four, cards.Diamonds),
		cards.NewID(cards.Five, cards.Clubs),
		cards.NewID(cards.Six, cards.Hearts),
		cards.NewID(cards.Seven, cards.Spades),
	})
	flush := classify([]cards.ID{
		cards.NewID(cards.Three, cards.Hearts),
		cards.NewID(cards.Five, cards.Hearts),
		cards.NewID(cards.Seven, cards.Hearts),
		cards.NewID(cards.Nine, cards.Hearts),
		cards.NewID(cards.Jack, cards.Hearts),
	})
	assert.True(t, beats(flush, straight))
	assert.False(t, beats(straight, flush))
}

func TestWinOnEmptyHand(t *testing.T) {
	e := &Engine{
		hands:       [4][]cards.ID{{ThreeOfDiamonds}, {1}, {2}, {3}},
		currentSeat: 0,
		firstPlay:   true,
	}
	res := e.Play(0, []cards.ID{ThreeOfDiamonds})
	require.True(t, res.OK, res.Reason)
	assert.True(t, e.IsGameOver())
	require.NotNil(t, e.Winner())
	assert.Equal(t, 0, *e.Winner())
}

func TestPersonalizedStateHidesOtherHands(t *testing.T) {
	e := seededEngine(t, 7)
	snap := e.PersonalizedState(0)
	assert.Len(t, snap.MyHand, 13)

	other := e.PersonalizedState(1)
	assert.NotEqual(t, snap.MyHand, other.MyHand)
	assert.Equal(t, 13, other.HandCounts[0])
}
