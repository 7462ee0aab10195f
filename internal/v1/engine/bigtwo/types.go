package bigtwo

import "tablehost/internal/v1/cards"

// ComboType enumerates every legal shape a play can take. Five-card combos
// are ranked straight-flush > quads > full-house > flush > straight; singles,
// pairs, and triples only ever beat a same-typed play with a higher key.
type ComboType int

const (
	ComboNone ComboType = iota
	ComboSingle
	ComboPair
	ComboTriple
	ComboStraight
	ComboFlush
	ComboFullHouse
	ComboQuads
	ComboStraightFlush
)

// Combo is a classified play: its type, the cards that compose it (sorted
// ascending by id), and the key card id used for beat comparisons.
type Combo struct {
	Type  ComboType
	Cards []cards.ID
	Key   cards.ID
}

// ThreeOfDiamonds is the forced opening card: id 0.
const ThreeOfDiamonds = cards.ThreeOfDiamonds
