package boggle

import (
	"math/rand"

	"tablehost/internal/v1/engine/common"
)

// newBoard shuffles the 16 standard dice into the grid, then rolls each die
// by picking one face uniformly at random.
func newBoard(rng *rand.Rand) [16]byte {
	order := [16]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	common.Shuffle(order[:], rng)

	var board [16]byte
	for cell, dieIdx := range order {
		die := standardDice[dieIdx]
		face := die[rng.Intn(len(die))]
		board[cell] = face
	}
	return board
}

// adjacent returns the neighbor cell indices of cell i on the 4x4 grid,
// including diagonals.
func adjacent(i int) []int {
	row, col := i/4, i%4
	var out []int
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if r < 0 || r >= 4 || c < 0 || c >= 4 {
				continue
			}
			out = append(out, r*4+c)
		}
	}
	return out
}

// faceLetters returns the letters a board cell contributes to a word match:
// the Q die face contributes the digraph "QU".
func faceLetters(board [16]byte, cell int) string {
	if board[cell] == 'Q' {
		return "QU"
	}
	return string(board[cell])
}

// canForm performs a DFS over the adjacency graph to test whether `word`
// (already upper-cased) can be traced as a path of distinct cells.
func canForm(board [16]byte, word string) bool {
	for start := 0; start < 16; start++ {
		visited := make([]bool, 16)
		if dfs(board, word, start, visited) {
			return true
		}
	}
	return false
}

func dfs(board [16]byte, remaining string, cell int, visited []bool) bool {
	if visited[cell] {
		return false
	}
	letters := faceLetters(board, cell)
	if len(letters) > len(remaining) || remaining[:len(letters)] != letters {
		return false
	}
	visited[cell] = true
	defer func() { visited[cell] = false }()

	rest := remaining[len(letters):]
	if rest == "" {
		return true
	}
	for _, next := range adjacent(cell) {
		if dfs(board, rest, next, visited) {
			return true
		}
	}
	return false
}
