package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN builds a State from a standard FEN string. Row 0 of the board
// matches Black's back rank, as FEN lists ranks from 8 down to 1.
func ParseFEN(fen string) (*State, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("invalid FEN: expected at least 4 fields, got %d", len(fields))
	}

	var board [8][8]byte
	rows := strings.Split(fields[0], "/")
	if len(rows) != 8 {
		return nil, fmt.Errorf("invalid FEN: expected 8 ranks, got %d", len(rows))
	}
	for r, row := range rows {
		file := 0
		for _, ch := range row {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			if file >= 8 {
				return nil, fmt.Errorf("invalid FEN: rank %d overflows", r)
			}
			board[r][file] = byte(ch)
			file++
		}
	}

	turn := White
	if fields[1] == "b" {
		turn = Black
	}

	var castling CastlingRights
	if fields[2] != "-" {
		castling.WhiteKingside = strings.Contains(fields[2], "K")
		castling.WhiteQueenside = strings.Contains(fields[2], "Q")
		castling.BlackKingside = strings.Contains(fields[2], "k")
		castling.BlackQueenside = strings.Contains(fields[2], "q")
	}

	var ep *Square
	if fields[3] != "-" {
		sq, err := parseAlgebraic(fields[3])
		if err != nil {
			return nil, err
		}
		ep = &sq
	}

	halfmove, fullmove := 0, 1
	if len(fields) >= 5 {
		halfmove, _ = strconv.Atoi(fields[4])
	}
	if len(fields) >= 6 {
		fullmove, _ = strconv.Atoi(fields[5])
		if fullmove == 0 {
			fullmove = 1
		}
	}

	return &State{
		Board:     board,
		Turn:      turn,
		Castling:  castling,
		EnPassant: ep,
		Halfmove:  halfmove,
		Fullmove:  fullmove,
	}, nil
}

// FEN serializes the state back to a standard FEN string.
func (s *State) FEN() string {
	var rows []string
	for r := 0; r < 8; r++ {
		var sb strings.Builder
		empty := 0
		for f := 0; f < 8; f++ {
			p := s.Board[r][f]
			if p == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		rows = append(rows, sb.String())
	}
	board := strings.Join(rows, "/")

	turn := "w"
	if s.Turn == Black {
		turn = "b"
	}

	castling := ""
	if s.Castling.WhiteKingside {
		castling += "K"
	}
	if s.Castling.WhiteQueenside {
		castling += "Q"
	}
	if s.Castling.BlackKingside {
		castling += "k"
	}
	if s.Castling.BlackQueenside {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}

	ep := "-"
	if s.EnPassant != nil {
		ep = toAlgebraic(*s.EnPassant)
	}

	return fmt.Sprintf("%s %s %s %s %d %d", board, turn, castling, ep, s.Halfmove, s.Fullmove)
}

func parseAlgebraic(sq string) (Square, error) {
	if len(sq) != 2 {
		return Square{}, fmt.Errorf("invalid square %q", sq)
	}
	file := int(sq[0] - 'a')
	rankNum := int(sq[1] - '0')
	if file < 0 || file > 7 || rankNum < 1 || rankNum > 8 {
		return Square{}, fmt.Errorf("invalid square %q", sq)
	}
	// Rank 8 is row 0, rank 1 is row 7.
	return Square{Rank: 8 - rankNum, File: file}, nil
}

func toAlgebraic(s Square) string {
	return fmt.Sprintf("%c%d", 'a'+s.File, 8-s.Rank)
}
