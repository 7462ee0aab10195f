// Package roommgr implements the room table: seat allocation, reconnection
// by display name, and grace-period cleanup. It does not know about any
// specific game family's rules; it only tracks seats, colors, and
// connection handles, mirroring the way the teacher's session package
// separates room membership bookkeeping from message routing.
package roommgr

import (
	"time"
)

// GameFamily is the fixed tag a room is created with.
type GameFamily string

const (
	FamilyChess   GameFamily = "chess"
	FamilyXiangqi GameFamily = "xiangqi"
	FamilyBigTwo  GameFamily = "chordaidi"
	FamilyBoggle  GameFamily = "boggle"
	FamilyBingo   GameFamily = "bingo"
)

// ColorSets gives each family's fixed ordered color labels; seat 0 always
// gets the first entry (host/caller/first-to-act).
var ColorSets = map[GameFamily][]string{
	FamilyChess:   {"white", "black"},
	FamilyXiangqi: {"red", "black"},
	FamilyBigTwo:  {"south", "west", "north", "east"},
	FamilyBoggle:  {"p1", "p2", "p3", "p4"},
	FamilyBingo:   {"caller", "p2", "p3", "p4", "p5", "p6", "p7", "p8"},
}

// Connection is the minimal handle the manager needs: an opaque identity
// used to detect which seat a disconnect belongs to. The dispatcher's
// Client satisfies this.
type Connection interface {
	ConnID() string
}

// Seat is one slot in a room's ordered seat list.
type Seat struct {
	Name  string
	Color string
	Conn  Connection // nil when disconnected
}

// Spectator is a non-seated room observer.
type Spectator struct {
	Name string
	Conn Connection
}

// Room is the membership record the manager owns. Game state itself (the
// running engine) is attached and detached by the dispatcher; roommgr only
// ever stores a generic `any` pointer for it so this package stays engine-
// agnostic.
type Room struct {
	ID         string
	Family     GameFamily
	Seats      []Seat
	Spectators []Spectator
	Engine     any
	deleteTimer *time.Timer
	createdAt   time.Time
}

// SeatCount returns the family's fixed slot count. Bingo and Boggle allow a
// variable player count within a family-specific range; the manager uses
// the color set's length as the slot ceiling.
func SeatCount(family GameFamily) int {
	return len(ColorSets[family])
}
