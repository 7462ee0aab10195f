package xiangqi

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard Xiangqi opening position. Row 0 is Black's back
// rank, row 9 Red's, following the board convention of §6 of the wire spec.
const StartFEN = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1"

// ParseFEN builds a State from the board field plus a side-to-move letter;
// xiangqi's FEN carries no castling or en-passant fields.
func ParseFEN(fen string) (*State, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return nil, fmt.Errorf("invalid xiangqi FEN: expected at least 2 fields, got %d", len(fields))
	}

	var board [10][9]byte
	rows := strings.Split(fields[0], "/")
	if len(rows) != 10 {
		return nil, fmt.Errorf("invalid xiangqi FEN: expected 10 ranks, got %d", len(rows))
	}
	for r, row := range rows {
		col := 0
		for _, ch := range row {
			if ch >= '1' && ch <= '9' {
				col += int(ch - '0')
				continue
			}
			if col >= 9 {
				return nil, fmt.Errorf("invalid xiangqi FEN: rank %d overflows", r)
			}
			board[r][col] = byte(ch)
			col++
		}
	}

	turn := Red
	if fields[1] == "b" {
		turn = Black
	}

	return &State{Board: board, Turn: turn}, nil
}

// FEN serializes the state back to a board+turn FEN string.
func (s *State) FEN() string {
	var rows []string
	for r := 0; r < 10; r++ {
		var sb strings.Builder
		empty := 0
		for c := 0; c < 9; c++ {
			p := s.Board[r][c]
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
	turn := "w"
	if s.Turn == Black {
		turn = "b"
	}
	return fmt.Sprintf("%s %s - - 0 1", strings.Join(rows, "/"), turn)
}
