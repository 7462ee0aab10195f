// Package leaderboard tracks in-memory per-family win counts. There is no
// persistence: the board vanishes on process restart, matching the
// system's fully in-memory design.
package leaderboard

import (
	"sort"
	"sync"
)

// Entry is one ranked row of the leaderboard.
type Entry struct {
	Name string `json:"name"`
	Wins int    `json:"wins"`
}

// Board is a nested map {family -> {display name -> win count}}.
type Board struct {
	mu    sync.Mutex
	wins  map[string]map[string]int
}

func New() *Board {
	return &Board{wins: make(map[string]map[string]int)}
}

// RecordWin increments the named player's win count for the given family.
func (b *Board) RecordWin(family, name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.wins[family] == nil {
		b.wins[family] = make(map[string]int)
	}
	b.wins[family][name]++
}

// GetLeaderboard aggregates wins across one family (or every family when
// family is empty) and returns the top `limit` entries by wins descending,
// ties broken by name ascending.
func (b *Board) GetLeaderboard(family string, limit int) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	totals := make(map[string]int)
	if family != "" {
		for name, wins := range b.wins[family] {
			totals[name] += wins
		}
	} else {
		for _, byName := range b.wins {
			for name, wins := range byName {
				totals[name] += wins
			}
		}
	}

	entries := make([]Entry, 0, len(totals))
	for name, wins := range totals {
		entries = append(entries, Entry{Name: name, Wins: wins})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		return entries[i].Name < entries[j].Name
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
