// Package cards implements the 52-card deck primitive shared by card-based
// game engines. Cards are represented as stable integer ids so that engines
// can move them across the wire and compare them without re-deriving rank
// and suit on every comparison.
package cards

import "fmt"

// Suit is one of the four standard suits, ordered Diamonds < Clubs < Hearts
// < Spades as required by the Big Two tie-break rule.
type Suit int

const (
	Diamonds Suit = iota
	Clubs
	Hearts
	Spades
)

func (s Suit) String() string {
	switch s {
	case Diamonds:
		return "D"
	case Clubs:
		return "C"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	default:
		return "?"
	}
}

// Rank is the card's face value, ordered 3 (lowest) .. 2 (highest) the way
// Big Two ranks cards, rather than the usual Ace-high ordering.
type Rank int

const (
	Three Rank = iota
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
	Two
)

func (r Rank) String() string {
	switch r {
	case Three, Four, Five, Six, Seven, Eight, Nine, Ten:
		return fmt.Sprintf("%d", int(r)+3)
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	case Two:
		return "2"
	default:
		return "?"
	}
}

// ID is the stable integer identity of a card, 0..51, where id = rank*4 + suit.
// Card 0 is therefore the 3 of Diamonds, the lowest card in the deck.
type ID int

// NewID builds a card id from its rank and suit.
func NewID(r Rank, s Suit) ID {
	return ID(int(r)*4 + int(s))
}

// Rank extracts the rank component of a card id.
func (c ID) Rank() Rank {
	return Rank(int(c) / 4)
}

// Suit extracts the suit component of a card id.
func (c ID) Suit() Suit {
	return Suit(int(c) % 4)
}

// String renders a card as "3D", "TC", "AH", "2S" etc.
func (c ID) String() string {
	return fmt.Sprintf("%s%s", c.Rank(), c.Suit())
}

// ThreeOfDiamonds is card id 0, the conventional first-play card in Big Two.
const ThreeOfDiamonds ID = 0

// FullDeck returns the 52 card ids 0..51 in ascending order.
func FullDeck() []ID {
	deck := make([]ID, 52)
	for i := range deck {
		deck[i] = ID(i)
	}
	return deck
}
