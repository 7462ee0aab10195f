package xiangqi

func (s *State) generalSquare(c Color) Square {
	target := byte('K')
	if c == Black {
		target = 'k'
	}
	for r := 0; r < 10; r++ {
		for col := 0; col < 9; col++ {
			if s.Board[r][col] == target {
				return Square{Row: r, Col: col}
			}
		}
	}
	return Square{Row: -1, Col: -1}
}

// flyingGenerals reports whether the two generals face each other on the
// same column with no piece between them, which counts as check regardless
// of whose turn it is.
func (s *State) flyingGenerals() bool {
	red := s.generalSquare(Red)
	black := s.generalSquare(Black)
	if red.Col != black.Col {
		return false
	}
	lo, hi := black.Row, red.Row
	for r := lo + 1; r < hi; r++ {
		if s.Board[r][red.Col] != 0 {
			return false
		}
	}
	return true
}

// attacksSquare reports whether any piece of color `by` attacks `target`,
// including the flying-generals rule when target holds the opposing general.
func (s *State) attacksSquare(by Color, target Square) bool {
	if s.flyingGenerals() {
		tp := s.Board[target.Row][target.Col]
		if tp == 'K' || tp == 'k' {
			if pieceColor(tp) != by {
				return true
			}
		}
	}
	for r := 0; r < 10; r++ {
		for c := 0; c < 9; c++ {
			p := s.Board[r][c]
			if p == 0 || pieceColor(p) != by {
				continue
			}
			from := Square{Row: r, Col: c}
			for _, dst := range s.pseudoDestinations(from, true) {
				if dst == target {
					return true
				}
			}
		}
	}
	return false
}

// pseudoDestinations returns the squares a piece at `from` may move to,
// ignoring whether the mover's own king ends up in check. attacksOnly does
// not change the returned set; the same destinations serve both move
// generation and attacksSquare's threatened-square test.
func (s *State) pseudoDestinations(from Square, attacksOnly bool) []Square {
	p := s.Board[from.Row][from.Col]
	if p == 0 {
		return nil
	}
	color := pieceColor(p)
	var out []Square
	add := func(to Square) bool {
		if !to.InBounds() {
			return false
		}
		if sameColor(s.Board[to.Row][to.Col], color) {
			return false
		}
		out = append(out, to)
		return true
	}

	switch p {
	case 'R', 'r':
		for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			r, c := from.Row+d[0], from.Col+d[1]
			for {
				to := Square{Row: r, Col: c}
				if !to.InBounds() {
					break
				}
				if s.Board[r][c] == 0 {
					out = append(out, to)
				} else {
					add(to)
					break
				}
				r += d[0]
				c += d[1]
			}
		}

	case 'C', 'c':
		for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			r, c := from.Row+d[0], from.Col+d[1]
			jumped := false
			for {
				to := Square{Row: r, Col: c}
				if !to.InBounds() {
					break
				}
				occupied := s.Board[r][c] != 0
				if !jumped {
					if !occupied {
						out = append(out, to)
					} else {
						jumped = true
					}
				} else {
					if occupied {
						add(to)
						break
					}
				}
				r += d[0]
				c += d[1]
			}
		}

	case 'N', 'n':
		type jump struct{ dr, dc, legR, legC int }
		jumps := []jump{
			{-2, -1, -1, 0}, {-2, 1, -1, 0},
			{2, -1, 1, 0}, {2, 1, 1, 0},
			{-1, -2, 0, -1}, {1, -2, 0, -1},
			{-1, 2, 0, 1}, {1, 2, 0, 1},
		}
		for _, j := range jumps {
			legR, legC := from.Row+j.legR, from.Col+j.legC
			if legR < 0 || legR >= 10 || legC < 0 || legC >= 9 || s.Board[legR][legC] != 0 {
				continue
			}
			add(Square{Row: from.Row + j.dr, Col: from.Col + j.dc})
		}

	case 'B', 'b':
		for _, d := range [][2]int{{2, 2}, {2, -2}, {-2, 2}, {-2, -2}} {
			to := Square{Row: from.Row + d[0], Col: from.Col + d[1]}
			mid := Square{Row: from.Row + d[0]/2, Col: from.Col + d[1]/2}
			if !to.InBounds() || s.Board[mid.Row][mid.Col] != 0 {
				continue
			}
			if crossedRiver(to, color) {
				continue
			}
			add(to)
		}

	case 'A', 'a':
		for _, d := range [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
			to := Square{Row: from.Row + d[0], Col: from.Col + d[1]}
			if !inPalace(to, color) {
				continue
			}
			add(to)
		}

	case 'K', 'k':
		for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			to := Square{Row: from.Row + d[0], Col: from.Col + d[1]}
			if !inPalace(to, color) {
				continue
			}
			add(to)
		}

	case 'P', 'p':
		forward := -1
		if color == Black {
			forward = 1
		}
		add(Square{Row: from.Row + forward, Col: from.Col})
		if crossedRiver(from, color) {
			add(Square{Row: from.Row, Col: from.Col + 1})
			add(Square{Row: from.Row, Col: from.Col - 1})
		}
	}

	_ = attacksOnly
	return out
}

func (s *State) isPseudoLegal(from, to Square) bool {
	for _, dst := range s.pseudoDestinations(from, false) {
		if dst == to {
			return true
		}
	}
	return false
}

// LegalDestinations filters pseudo-legal destinations by the own-king-safety
// rule, including the flying-generals check.
func (s *State) LegalDestinations(from Square) []Square {
	p := s.Board[from.Row][from.Col]
	if p == 0 {
		return nil
	}
	color := pieceColor(p)
	var legal []Square
	for _, to := range s.pseudoDestinations(from, false) {
		clone := *s
		clone.history = nil
		clone.apply(Move{From: from, To: to})
		if !clone.attacksSquare(color.Opposite(), clone.generalSquare(color)) {
			legal = append(legal, to)
		}
	}
	return legal
}

func (s *State) HasAnyLegalMove(color Color) bool {
	for r := 0; r < 10; r++ {
		for c := 0; c < 9; c++ {
			p := s.Board[r][c]
			if p == 0 || pieceColor(p) != color {
				continue
			}
			if len(s.LegalDestinations(Square{Row: r, Col: c})) > 0 {
				return true
			}
		}
	}
	return false
}

func (s *State) apply(m Move) {
	captured := s.Board[m.To.Row][m.To.Col]
	s.history = append(s.history, undoRecord{Board: s.Board, Turn: s.Turn, Captured: captured})

	s.Board[m.To.Row][m.To.Col] = s.Board[m.From.Row][m.From.Col]
	s.Board[m.From.Row][m.From.Col] = 0
	s.Turn = s.Turn.Opposite()
}

func (s *State) Undo() bool {
	if len(s.history) == 0 {
		return false
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.Board = last.Board
	s.Turn = last.Turn
	return true
}
