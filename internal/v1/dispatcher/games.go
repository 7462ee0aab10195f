package dispatcher

import (
	"math/rand"

	"k8s.io/utils/set"

	"tablehost/internal/v1/cards"
	"tablehost/internal/v1/engine/bingo"
	"tablehost/internal/v1/engine/bigtwo"
	"tablehost/internal/v1/engine/boggle"
	"tablehost/internal/v1/engine/chess"
	"tablehost/internal/v1/engine/common"
	"tablehost/internal/v1/engine/xiangqi"
	"tablehost/internal/v1/roommgr"
)

// knownFamilies is the set of gameType wire values join_game accepts.
var knownFamilies = set.New(
	roommgr.FamilyChess,
	roommgr.FamilyXiangqi,
	roommgr.FamilyBigTwo,
	roommgr.FamilyBoggle,
	roommgr.FamilyBingo,
)

// newEngine constructs the family's authoritative engine at game start. Big
// Two, Boggle, and Bingo need the live seat count; chess and xiangqi are
// always exactly two seats.
func newEngine(family roommgr.GameFamily, seats int) common.Engine {
	switch family {
	case roommgr.FamilyChess:
		return chess.New()
	case roommgr.FamilyXiangqi:
		return xiangqi.New()
	case roommgr.FamilyBigTwo:
		return bigtwo.New(rand.New(rand.NewSource(rand.Int63())))
	case roommgr.FamilyBoggle:
		return boggle.New(seats, rand.New(rand.NewSource(rand.Int63())))
	case roommgr.FamilyBingo:
		return bingo.New(seats, rand.New(rand.NewSource(rand.Int63())))
	default:
		return nil
	}
}

// gameFamilyFromType maps the join_game wire gameType string to the room
// family tag. Every family's wire name equals its GameFamily string value
// (Big Two's is "chordaidi"), so the string is converted directly and
// checked against knownFamilies.
func gameFamilyFromType(gameType string) (roommgr.GameFamily, bool) {
	family := roommgr.GameFamily(gameType)
	if !knownFamilies.Has(family) {
		return "", false
	}
	return family, true
}

// seatIndexForColor resolves a seat's ordinal position from its color label
// within its family's fixed ColorSets, since the Big Two/Boggle/Bingo
// engines address seats by int rather than color string.
func seatIndexForColor(family roommgr.GameFamily, color string) (int, bool) {
	for i, c := range roommgr.ColorSets[family] {
		if c == color {
			return i, true
		}
	}
	return -1, false
}

// colorMatchesTurn reports whether color is authorized to move given the
// engine's reported turn string. Both chess and xiangqi report "w"/"b" for
// their first/second seat, despite xiangqi's seats being named "red"/"black".
func colorMatchesTurn(family roommgr.GameFamily, color, turn string) bool {
	colors := roommgr.ColorSets[family]
	if len(colors) != 2 {
		return false
	}
	switch family {
	case roommgr.FamilyChess, roommgr.FamilyXiangqi:
		return (color == colors[0] && turn == "w") || (color == colors[1] && turn == "b")
	default:
		return false
	}
}

func cardIDs(raw []int) []cards.ID {
	ids := make([]cards.ID, len(raw))
	for i, v := range raw {
		ids[i] = cards.ID(v)
	}
	return ids
}

func chessSquare(w squareWire) chess.Square {
	return chess.Square{Rank: w.Row, File: w.Col}
}

func xiangqiSquare(w squareWire) xiangqi.Square {
	return xiangqi.Square{Row: w.Row, Col: w.Col}
}

func promotionByte(s string) byte {
	if len(s) == 0 {
		return 0
	}
	return s[0]
}
