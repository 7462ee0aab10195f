package chess

var knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
var kingOffsets = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
var rookDirs = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
var bishopDirs = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

func upper(p byte) byte {
	if p >= 'a' && p <= 'z' {
		return p - 32
	}
	return p
}

// kingSquare locates the given color's king.
func (s *State) kingSquare(c Color) Square {
	want := byte('K')
	if c == Black {
		want = 'k'
	}
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if s.Board[r][f] == want {
				return Square{Rank: r, File: f}
			}
		}
	}
	return Square{Rank: -1, File: -1}
}

// attacksSquare reports whether `by` attacks target, ignoring whose turn it is.
func (s *State) attacksSquare(by Color, target Square) bool {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			p := s.Board[r][f]
			if p == 0 || !sameColor(p, by) {
				continue
			}
			from := Square{Rank: r, File: f}
			if s.pieceAttacks(p, from, target) {
				return true
			}
		}
	}
	return false
}

// pieceAttacks reports whether the piece at `from` attacks `target`, without
// regard to whether the move would leave the mover's own king in check. This
// is used purely for attack-map queries (check detection, castling safety),
// never to generate a move to actually play.
func (s *State) pieceAttacks(p byte, from, target Square) bool {
	switch upper(p) {
	case 'P':
		dir := -1 // white moves toward rank 0
		if pieceColor(p) == Black {
			dir = 1
		}
		return target.Rank == from.Rank+dir && (target.File == from.File-1 || target.File == from.File+1)
	case 'N':
		dr := target.Rank - from.Rank
		df := target.File - from.File
		for _, o := range knightOffsets {
			if o[0] == dr && o[1] == df {
				return true
			}
		}
		return false
	case 'K':
		dr := target.Rank - from.Rank
		df := target.File - from.File
		if dr < -1 || dr > 1 || df < -1 || df > 1 {
			return false
		}
		return dr != 0 || df != 0
	case 'B':
		return s.slides(from, target, bishopDirs[:])
	case 'R':
		return s.slides(from, target, rookDirs[:])
	case 'Q':
		return s.slides(from, target, rookDirs[:]) || s.slides(from, target, bishopDirs[:])
	}
	return false
}

// slides reports whether target is reachable from `from` along one of the
// given directions with nothing blocking in between.
func (s *State) slides(from, target Square, dirs [][2]int) bool {
	for _, d := range dirs {
		r, f := from.Rank+d[0], from.File+d[1]
		for r >= 0 && r < 8 && f >= 0 && f < 8 {
			if r == target.Rank && f == target.File {
				return true
			}
			if s.Board[r][f] != 0 {
				break
			}
			r += d[0]
			f += d[1]
		}
	}
	return false
}

// pseudoLegalDestinations returns candidate destination squares for the
// piece at `from`, including castling destinations and en passant, but
// without filtering for leaving the mover's own king in check.
func (s *State) pseudoLegalDestinations(from Square) []Square {
	p := s.Board[from.Rank][from.File]
	if p == 0 {
		return nil
	}
	color := pieceColor(p)
	var out []Square

	switch upper(p) {
	case 'N':
		for _, o := range knightOffsets {
			to := Square{Rank: from.Rank + o[0], File: from.File + o[1]}
			if to.InBounds() && !sameColor(s.Board[to.Rank][to.File], color) {
				out = append(out, to)
			}
		}
	case 'K':
		for _, o := range kingOffsets {
			to := Square{Rank: from.Rank + o[0], File: from.File + o[1]}
			if to.InBounds() && !sameColor(s.Board[to.Rank][to.File], color) {
				out = append(out, to)
			}
		}
		out = append(out, s.castlingDestinations(color)...)
	case 'B':
		out = append(out, s.slideDestinations(from, color, bishopDirs[:])...)
	case 'R':
		out = append(out, s.slideDestinations(from, color, rookDirs[:])...)
	case 'Q':
		out = append(out, s.slideDestinations(from, color, rookDirs[:])...)
		out = append(out, s.slideDestinations(from, color, bishopDirs[:])...)
	case 'P':
		out = append(out, s.pawnDestinations(from, color)...)
	}
	return out
}

func (s *State) slideDestinations(from Square, color Color, dirs [][2]int) []Square {
	var out []Square
	for _, d := range dirs {
		r, f := from.Rank+d[0], from.File+d[1]
		for r >= 0 && r < 8 && f >= 0 && f < 8 {
			target := s.Board[r][f]
			if target == 0 {
				out = append(out, Square{Rank: r, File: f})
			} else {
				if !sameColor(target, color) {
					out = append(out, Square{Rank: r, File: f})
				}
				break
			}
			r += d[0]
			f += d[1]
		}
	}
	return out
}

func (s *State) pawnDestinations(from Square, color Color) []Square {
	var out []Square
	dir := -1
	startRank := 6
	if color == Black {
		dir = 1
		startRank = 1
	}

	oneStep := Square{Rank: from.Rank + dir, File: from.File}
	if oneStep.InBounds() && s.Board[oneStep.Rank][oneStep.File] == 0 {
		out = append(out, oneStep)
		twoStep := Square{Rank: from.Rank + 2*dir, File: from.File}
		if from.Rank == startRank && s.Board[twoStep.Rank][twoStep.File] == 0 {
			out = append(out, twoStep)
		}
	}

	for _, df := range []int{-1, 1} {
		target := Square{Rank: from.Rank + dir, File: from.File + df}
		if !target.InBounds() {
			continue
		}
		occupant := s.Board[target.Rank][target.File]
		if occupant != 0 && !sameColor(occupant, color) {
			out = append(out, target)
		} else if s.EnPassant != nil && *s.EnPassant == target {
			out = append(out, target)
		}
	}
	return out
}

// castlingDestinations returns the king's landing squares for any castling
// moves currently available: rights set, path clear, and king not passing
// through or landing on an attacked square.
func (s *State) castlingDestinations(color Color) []Square {
	var out []Square
	opp := color.Opposite()

	if color == White {
		if s.Castling.WhiteKingside &&
			s.Board[7][5] == 0 && s.Board[7][6] == 0 &&
			!s.attacksSquare(opp, Square{7, 4}) && !s.attacksSquare(opp, Square{7, 5}) && !s.attacksSquare(opp, Square{7, 6}) {
			out = append(out, Square{7, 6})
		}
		if s.Castling.WhiteQueenside &&
			s.Board[7][1] == 0 && s.Board[7][2] == 0 && s.Board[7][3] == 0 &&
			!s.attacksSquare(opp, Square{7, 4}) && !s.attacksSquare(opp, Square{7, 3}) && !s.attacksSquare(opp, Square{7, 2}) {
			out = append(out, Square{7, 2})
		}
	} else {
		if s.Castling.BlackKingside &&
			s.Board[0][5] == 0 && s.Board[0][6] == 0 &&
			!s.attacksSquare(opp, Square{0, 4}) && !s.attacksSquare(opp, Square{0, 5}) && !s.attacksSquare(opp, Square{0, 6}) {
			out = append(out, Square{0, 6})
		}
		if s.Castling.BlackQueenside &&
			s.Board[0][1] == 0 && s.Board[0][2] == 0 && s.Board[0][3] == 0 &&
			!s.attacksSquare(opp, Square{0, 4}) && !s.attacksSquare(opp, Square{0, 3}) && !s.attacksSquare(opp, Square{0, 2}) {
			out = append(out, Square{0, 2})
		}
	}
	return out
}

// isPseudoLegal reports whether `to` is among the pseudo-legal destinations
// generated for the piece at `from`.
func (s *State) isPseudoLegal(from, to Square) bool {
	for _, d := range s.pseudoLegalDestinations(from) {
		if d == to {
			return true
		}
	}
	return false
}

// apply mutates the state to reflect the move, updating castling rights,
// en passant target, half/fullmove counters, and handling castling rook
// movement, en passant capture, and promotion. The caller is responsible for
// legality; apply performs no validation. A full board snapshot is pushed
// onto the undo stack first so Undo can restore it verbatim.
func (s *State) apply(m Move) {
	var rec undoRecord
	rec.board = s.Board
	rec.turn = s.Turn
	rec.castling = s.Castling
	rec.enPassant = s.EnPassant
	rec.halfmove = s.Halfmove
	rec.fullmove = s.Fullmove
	rec.lastFrom = m.From
	rec.lastTo = m.To
	rec.lastPromo = m.Promotion
	s.history = append(s.history, rec)

	mover := s.Board[m.From.Rank][m.From.File]
	color := pieceColor(mover)
	captured := s.Board[m.To.Rank][m.To.File]
	isPawn := upper(mover) == 'P'
	isEnPassantCapture := isPawn && s.EnPassant != nil && m.To == *s.EnPassant && captured == 0 && m.From.File != m.To.File

	// Move the piece.
	s.Board[m.To.Rank][m.To.File] = mover
	s.Board[m.From.Rank][m.From.File] = 0

	if isEnPassantCapture {
		captureRank := m.From.Rank
		s.Board[captureRank][m.To.File] = 0
	}

	// Castling: move the rook too.
	if upper(mover) == 'K' && abs(m.To.File-m.From.File) == 2 {
		rank := m.From.Rank
		if m.To.File == 6 {
			s.Board[rank][5] = s.Board[rank][7]
			s.Board[rank][7] = 0
		} else if m.To.File == 2 {
			s.Board[rank][3] = s.Board[rank][0]
			s.Board[rank][0] = 0
		}
	}

	// Promotion.
	lastRank := 0
	if color == Black {
		lastRank = 7
	}
	if isPawn && m.To.Rank == lastRank {
		promo := m.Promotion
		if promo == 0 {
			promo = 'Q'
		}
		promo = upperCasePromotion(promo)
		if color == Black {
			promo = promo + 32
		}
		s.Board[m.To.Rank][m.To.File] = promo
	}

	// En passant target for the next move.
	if isPawn && abs(m.To.Rank-m.From.Rank) == 2 {
		mid := Square{Rank: (m.To.Rank + m.From.Rank) / 2, File: m.From.File}
		s.EnPassant = &mid
	} else {
		s.EnPassant = nil
	}

	// Castling rights.
	if upper(mover) == 'K' {
		if color == White {
			s.Castling.WhiteKingside = false
			s.Castling.WhiteQueenside = false
		} else {
			s.Castling.BlackKingside = false
			s.Castling.BlackQueenside = false
		}
	}
	clearRookRight := func(sq Square) {
		switch sq {
		case Square{7, 0}:
			s.Castling.WhiteQueenside = false
		case Square{7, 7}:
			s.Castling.WhiteKingside = false
		case Square{0, 0}:
			s.Castling.BlackQueenside = false
		case Square{0, 7}:
			s.Castling.BlackKingside = false
		}
	}
	clearRookRight(m.From)
	clearRookRight(m.To)

	// Halfmove/fullmove bookkeeping.
	if isPawn || captured != 0 || isEnPassantCapture {
		s.Halfmove = 0
	} else {
		s.Halfmove++
	}
	if color == Black {
		s.Fullmove++
	}

	s.Turn = color.Opposite()
}

func upperCasePromotion(p byte) byte {
	if p >= 'a' && p <= 'z' {
		return p - 32
	}
	return p
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Undo pops the most recent ply, restoring the prior board exactly.
func (s *State) Undo() bool {
	if len(s.history) == 0 {
		return false
	}
	rec := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.Board = rec.board
	s.Turn = rec.turn
	s.Castling = rec.castling
	s.EnPassant = rec.enPassant
	s.Halfmove = rec.halfmove
	s.Fullmove = rec.fullmove
	return true
}

// LegalDestinations filters pseudo-legal destinations for the piece at
// `from` down to those that do not leave the mover's own king in check.
func (s *State) LegalDestinations(from Square) []Square {
	p := s.Board[from.Rank][from.File]
	if p == 0 {
		return nil
	}
	color := pieceColor(p)
	var out []Square
	for _, to := range s.pseudoLegalDestinations(from) {
		clone := *s
		clone.history = nil
		clone.apply(Move{From: from, To: to})
		if !clone.attacksSquare(color.Opposite(), clone.kingSquare(color)) {
			out = append(out, to)
		}
	}
	return out
}

// HasAnyLegalMove reports whether `color` has at least one legal move,
// used to distinguish checkmate/stalemate from an ongoing game.
func (s *State) HasAnyLegalMove(color Color) bool {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			p := s.Board[r][f]
			if p == 0 || !sameColor(p, color) {
				continue
			}
			if len(s.LegalDestinations(Square{Rank: r, File: f})) > 0 {
				return true
			}
		}
	}
	return false
}
