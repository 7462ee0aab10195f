package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordWinAndAggregate(t *testing.T) {
	b := New()
	b.RecordWin("chess", "alice")
	b.RecordWin("chess", "alice")
	b.RecordWin("chess", "bob")
	b.RecordWin("boggle", "alice")

	chess := b.GetLeaderboard("chess", 10)
	assert.Equal(t, []Entry{{Name: "alice", Wins: 2}, {Name: "bob", Wins: 1}}, chess)

	all := b.GetLeaderboard("", 10)
	assert.Equal(t, []Entry{{Name: "alice", Wins: 3}, {Name: "bob", Wins: 1}}, all)
}

func TestTieBreakByNameAscending(t *testing.T) {
	b := New()
	b.RecordWin("chess", "zed")
	b.RecordWin("chess", "amy")

	entries := b.GetLeaderboard("chess", 10)
	assert.Equal(t, "amy", entries[0].Name)
	assert.Equal(t, "zed", entries[1].Name)
}

func TestLimit(t *testing.T) {
	b := New()
	b.RecordWin("chess", "a")
	b.RecordWin("chess", "b")
	b.RecordWin("chess", "c")

	entries := b.GetLeaderboard("chess", 2)
	assert.Len(t, entries, 2)
}
