package roommgr

import (
	"crypto/rand"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned when a room id does not resolve to a room.
var ErrNotFound = errors.New("room not found")

// deletionGrace is the window after the last connection leaves a room
// before the room is deleted, per the room lifecycle invariant.
const deletionGrace = 60 * time.Second

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Manager owns the room table. A single mutex serializes every command
// across every room, mirroring the teacher's centralize-the-lock-at-the-
// router pattern rather than giving each room its own actor; see DESIGN.md
// for why this tradeoff was kept instead of per-room mailboxes.
type Manager struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

func NewManager() *Manager {
	return &Manager{rooms: make(map[string]*Room)}
}

func generateRoomID() string {
	var b [6]byte
	buf := make([]byte, 6)
	rand.Read(buf)
	for i, v := range buf {
		b[i] = idAlphabet[int(v)%len(idAlphabet)]
	}
	return string(b[:])
}

// CreateRoom generates a fresh 6-character id, inserts an empty room record
// fixed to the given family, and returns the id.
func (m *Manager) CreateRoom(family GameFamily) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var id string
	for {
		id = generateRoomID()
		if _, exists := m.rooms[id]; !exists {
			break
		}
	}
	m.rooms[id] = &Room{ID: id, Family: family, createdAt: time.Now()}
	return id
}

// JoinResult is returned by JoinRoom.
type JoinResult struct {
	Color       string
	Reconnected bool
}

// JoinRoom resolves a connection's seat: reconnects by name if a seat with
// that name exists, otherwise allocates the next free color, otherwise
// falls back to spectator.
func (m *Manager) JoinRoom(roomID string, conn Connection, name string) (JoinResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[roomID]
	if !ok {
		return JoinResult{}, ErrNotFound
	}

	room.cancelDeletionLocked()

	name = strings.TrimSpace(name)
	if len(name) > 30 {
		name = name[:30]
	}

	for i, seat := range room.Seats {
		if seat.Name == name {
			room.Seats[i].Conn = conn
			return JoinResult{Color: seat.Color, Reconnected: true}, nil
		}
	}

	colors := ColorSets[room.Family]
	if len(room.Seats) < len(colors) {
		color := colors[len(room.Seats)]
		room.Seats = append(room.Seats, Seat{Name: name, Color: color, Conn: conn})
		return JoinResult{Color: color, Reconnected: false}, nil
	}

	room.Spectators = append(room.Spectators, Spectator{Name: name, Conn: conn})
	return JoinResult{Color: "spectator", Reconnected: false}, nil
}

// LeaveResult is returned by LeaveRoom.
type LeaveResult struct {
	RoomID   string
	WasPlayer bool
	Name     string
}

// LeaveRoom finds the seat or spectator slot owned by conn across every
// room, clears its connection handle (seats are kept for reconnection),
// and arms the deletion timer when no seat holds a live connection.
func (m *Manager) LeaveRoom(conn Connection, onDelete func(roomID string)) (LeaveResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, room := range m.rooms {
		for i, seat := range room.Seats {
			if seat.Conn == conn {
				room.Seats[i].Conn = nil
				name := seat.Name
				if room.noLiveSeatsLocked() {
					m.armDeletionLocked(room, onDelete)
				}
				return LeaveResult{RoomID: room.ID, WasPlayer: true, Name: name}, true
			}
		}
		for i, sp := range room.Spectators {
			if sp.Conn == conn {
				name := sp.Name
				room.Spectators = append(room.Spectators[:i], room.Spectators[i+1:]...)
				return LeaveResult{RoomID: room.ID, WasPlayer: false, Name: name}, true
			}
		}
	}
	return LeaveResult{}, false
}

func (r *Room) noLiveSeatsLocked() bool {
	for _, seat := range r.Seats {
		if seat.Conn != nil {
			return false
		}
	}
	return true
}

func (r *Room) cancelDeletionLocked() {
	if r.deleteTimer != nil {
		r.deleteTimer.Stop()
		r.deleteTimer = nil
	}
}

func (m *Manager) armDeletionLocked(room *Room, onDelete func(roomID string)) {
	room.cancelDeletionLocked()
	room.deleteTimer = time.AfterFunc(deletionGrace, func() {
		m.mu.Lock()
		still := room.noLiveSeatsLocked()
		if still {
			delete(m.rooms, room.ID)
		}
		m.mu.Unlock()
		if still {
			slog.Info("room deleted after grace window", "roomId", room.ID)
			if onDelete != nil {
				onDelete(room.ID)
			}
		}
	})
}

// GetRoom returns the room record for roomID, if any.
func (m *Manager) GetRoom(roomID string) (*Room, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[roomID]
	return r, ok
}

// RoomCount returns the number of live rooms.
func (m *Manager) RoomCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rooms)
}

// ConnectionCount sums live seat and spectator connections across every
// room, for the health snapshot.
func (m *Manager) ConnectionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, room := range m.rooms {
		for _, seat := range room.Seats {
			if seat.Conn != nil {
				n++
			}
		}
		n += len(room.Spectators)
	}
	return n
}

// WithRoom runs fn while holding the manager lock, giving callers a safe
// window to read or mutate room/engine state without racing the dispatcher
// or the deletion/grace timers.
func (m *Manager) WithRoom(roomID string, fn func(*Room)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[roomID]
	if !ok {
		return false
	}
	fn(room)
	return true
}
