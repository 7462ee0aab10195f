package bigtwo

import (
	"sort"

	"tablehost/internal/v1/cards"
)

// classify determines the unique ComboType a set of card ids forms, or
// ComboNone if the cards do not form any legal shape. Four-card inputs are
// never legal and fall through to ComboNone.
func classify(ids []cards.ID) Combo {
	sorted := append([]cards.ID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	switch len(sorted) {
	case 1:
		return Combo{Type: ComboSingle, Cards: sorted, Key: sorted[0]}
	case 2:
		if sameRank(sorted) {
			return Combo{Type: ComboPair, Cards: sorted, Key: highest(sorted)}
		}
	case 3:
		if sameRank(sorted) {
			return Combo{Type: ComboTriple, Cards: sorted, Key: highest(sorted)}
		}
	case 5:
		return classifyFive(sorted)
	}
	return Combo{Type: ComboNone, Cards: sorted}
}

func sameRank(ids []cards.ID) bool {
	r := ids[0].Rank()
	for _, id := range ids[1:] {
		if id.Rank() != r {
			return false
		}
	}
	return true
}

func highest(ids []cards.ID) cards.ID {
	max := ids[0]
	for _, id := range ids[1:] {
		if id > max {
			max = id
		}
	}
	return max
}

func isFlush(ids []cards.ID) bool {
	s := ids[0].Suit()
	for _, id := range ids[1:] {
		if id.Suit() != s {
			return false
		}
	}
	return true
}

// isStraight reports whether the five ranks are consecutive in the 3..2
// ordering with no wraparound (so A-2-3-4-5 is not a straight).
func isStraight(ids []cards.ID) bool {
	ranks := make([]int, len(ids))
	for i, id := range ids {
		ranks[i] = int(id.Rank())
	}
	sort.Ints(ranks)
	for i := 1; i < len(ranks); i++ {
		if ranks[i] != ranks[i-1]+1 {
			return false
		}
	}
	return true
}

func rankCounts(ids []cards.ID) map[cards.Rank]int {
	counts := make(map[cards.Rank]int)
	for _, id := range ids {
		counts[id.Rank()]++
	}
	return counts
}

func classifyFive(sorted []cards.ID) Combo {
	counts := rankCounts(sorted)
	flush := isFlush(sorted)
	straight := isStraight(sorted)

	switch {
	case straight && flush:
		return Combo{Type: ComboStraightFlush, Cards: sorted, Key: highest(sorted)}
	case hasCount(counts, 4):
		return Combo{Type: ComboQuads, Cards: sorted, Key: keyOfCount(sorted, counts, 4)}
	case hasCount(counts, 3) && hasCount(counts, 2):
		return Combo{Type: ComboFullHouse, Cards: sorted, Key: keyOfCount(sorted, counts, 3)}
	case flush:
		return Combo{Type: ComboFlush, Cards: sorted, Key: highest(sorted)}
	case straight:
		return Combo{Type: ComboStraight, Cards: sorted, Key: highest(sorted)}
	default:
		return Combo{Type: ComboNone, Cards: sorted}
	}
}

func hasCount(counts map[cards.Rank]int, n int) bool {
	for _, c := range counts {
		if c == n {
			return true
		}
	}
	return false
}

// keyOfCount returns the highest-id card among the cards whose rank
// occurs exactly n times (the quad or the triple, for quads/full-house).
func keyOfCount(sorted []cards.ID, counts map[cards.Rank]int, n int) cards.ID {
	var best cards.ID = -1
	for _, id := range sorted {
		if counts[id.Rank()] == n && id > best {
			best = id
		}
	}
	return best
}

// beats reports whether `incoming` legally beats `table` per the family's
// beat rule: same-type-and-higher-key for singles/pairs/triples, and the
// ranked five-card hierarchy (straight-flush > quads > full-house > flush >
// straight) for five-card combos, with equal types compared by key.
func beats(incoming, table Combo) bool {
	if table.Type == ComboNone {
		return true
	}
	if incoming.Type < ComboStraight || table.Type < ComboStraight {
		return incoming.Type == table.Type && incoming.Key > table.Key
	}
	if incoming.Type != table.Type {
		return incoming.Type > table.Type
	}
	return incoming.Key > table.Key
}
