package dispatcher

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablehost/internal/v1/config"
	"tablehost/internal/v1/engine/bigtwo"
	"tablehost/internal/v1/leaderboard"
	"tablehost/internal/v1/ratelimit"
	"tablehost/internal/v1/roommgr"
)

// fakeConn is a minimal wsConnection that records outbound frames instead
// of touching a socket.
type fakeConn struct {
	written [][]byte
}

func (f *fakeConn) ReadMessage() (int, []byte, error) { return 0, nil, nil }
func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	f.written = append(f.written, data)
	return nil
}
func (f *fakeConn) Close() error                     { return nil }
func (f *fakeConn) SetWriteDeadline(time.Time) error { return nil }

func newTestHub() *Hub {
	rooms := roommgr.NewManager()
	board := leaderboard.New()
	cfg := &config.Config{RateLimitJoinLimit: 100, RateLimitJoinWindow: 60}
	limiter := ratelimit.New(cfg)
	return NewHub(rooms, board, nil, limiter)
}

func testClient(h *Hub) *Client {
	return newClient(&fakeConn{}, h, "1.2.3.4", newConnID())
}

func joinPayload(t *testing.T, roomID, name, gameType string, reconnect bool) Message {
	t.Helper()
	data, err := json.Marshal(joinGamePayload{RoomID: roomID, PlayerName: name, Reconnect: reconnect, GameType: gameType})
	require.NoError(t, err)
	return Message{Event: EventJoinGame, Payload: data}
}

func TestJoinGameCreatesRoomAndAssignsFirstColor(t *testing.T) {
	h := newTestHub()
	c := testClient(h)

	h.dispatch(c, joinPayload(t, "", "alice", "chess", false))

	roomID, name, color := c.seat()
	assert.NotEmpty(t, roomID)
	assert.Equal(t, "alice", name)
	assert.Equal(t, "white", color)
}

func TestJoinGameSecondSeatGetsOtherColor(t *testing.T) {
	h := newTestHub()
	roomID := h.rooms.CreateRoom(roommgr.FamilyChess)

	c1 := testClient(h)
	h.dispatch(c1, joinPayload(t, roomID, "alice", "chess", false))
	c2 := testClient(h)
	h.dispatch(c2, joinPayload(t, roomID, "bob", "chess", false))

	_, _, color := c2.seat()
	assert.Equal(t, "black", color)
}

func TestStartGameChessBuildsEngineAndBroadcastsStart(t *testing.T) {
	h := newTestHub()
	roomID := h.rooms.CreateRoom(roommgr.FamilyChess)
	c := testClient(h)
	h.dispatch(c, joinPayload(t, roomID, "alice", "chess", false))

	h.dispatch(c, Message{Event: EventStartGame})

	room, ok := h.rooms.GetRoom(roomID)
	require.True(t, ok)
	require.NotNil(t, room.Engine)
}

func TestMakeMoveRejectsWrongTurn(t *testing.T) {
	h := newTestHub()
	roomID := h.rooms.CreateRoom(roommgr.FamilyChess)
	white := testClient(h)
	h.dispatch(white, joinPayload(t, roomID, "alice", "chess", false))
	black := testClient(h)
	h.dispatch(black, joinPayload(t, roomID, "bob", "chess", false))
	h.dispatch(white, Message{Event: EventStartGame})

	data, _ := json.Marshal(makeMovePayload{From: squareWire{Row: 6, Col: 4}, To: squareWire{Row: 4, Col: 4}})
	h.dispatch(black, Message{Event: EventMakeMove, Payload: data})

	room, ok := h.rooms.GetRoom(roomID)
	require.True(t, ok)
	type turner interface{ Turn() string }
	eng, ok := room.Engine.(turner)
	require.True(t, ok)
	assert.Equal(t, "w", eng.Turn(), "an out-of-turn move must not mutate engine state")
}

func TestMakeMoveAppliesLegalOpeningMove(t *testing.T) {
	h := newTestHub()
	roomID := h.rooms.CreateRoom(roommgr.FamilyChess)
	white := testClient(h)
	h.dispatch(white, joinPayload(t, roomID, "alice", "chess", false))
	black := testClient(h)
	h.dispatch(black, joinPayload(t, roomID, "bob", "chess", false))
	h.dispatch(white, Message{Event: EventStartGame})

	data, _ := json.Marshal(makeMovePayload{From: squareWire{Row: 6, Col: 4}, To: squareWire{Row: 4, Col: 4}})
	h.dispatch(white, Message{Event: EventMakeMove, Payload: data})

	room, ok := h.rooms.GetRoom(roomID)
	require.True(t, ok)
	type turner interface{ Turn() string }
	eng, ok := room.Engine.(turner)
	require.True(t, ok)
	assert.Equal(t, "b", eng.Turn())
}

func TestMakeMoveXiangqiRedAppliesOpeningMove(t *testing.T) {
	h := newTestHub()
	roomID := h.rooms.CreateRoom(roommgr.FamilyXiangqi)
	red := testClient(h)
	h.dispatch(red, joinPayload(t, roomID, "alice", "xiangqi", false))
	black := testClient(h)
	h.dispatch(black, joinPayload(t, roomID, "bob", "xiangqi", false))
	h.dispatch(red, Message{Event: EventStartGame})

	data, _ := json.Marshal(makeMovePayload{From: squareWire{Row: 6, Col: 4}, To: squareWire{Row: 5, Col: 4}})
	h.dispatch(red, Message{Event: EventMakeMove, Payload: data})

	room, ok := h.rooms.GetRoom(roomID)
	require.True(t, ok)
	type turner interface{ Turn() string }
	eng, ok := room.Engine.(turner)
	require.True(t, ok)
	assert.Equal(t, "b", eng.Turn(), "red's legal opening move must pass the turn to black")
}

func TestResignClearsEngineForRematch(t *testing.T) {
	h := newTestHub()
	roomID := h.rooms.CreateRoom(roommgr.FamilyChess)
	white := testClient(h)
	h.dispatch(white, joinPayload(t, roomID, "alice", "chess", false))
	black := testClient(h)
	h.dispatch(black, joinPayload(t, roomID, "bob", "chess", false))
	h.dispatch(white, Message{Event: EventStartGame})

	h.dispatch(white, Message{Event: EventResign})

	room, ok := h.rooms.GetRoom(roomID)
	require.True(t, ok)
	assert.Nil(t, room.Engine, "a resigned game must drop its engine pointer so a rematch can start")

	h.dispatch(black, Message{Event: EventStartGame})
	room, ok = h.rooms.GetRoom(roomID)
	require.True(t, ok)
	assert.NotNil(t, room.Engine, "start_game must succeed once the prior game's engine has been dropped")
}

func TestBoggleHostEndClearsEngine(t *testing.T) {
	h := newTestHub()
	roomID := h.rooms.CreateRoom(roommgr.FamilyBoggle)
	host := testClient(h)
	h.dispatch(host, joinPayload(t, roomID, "alice", "boggle", false))
	other := testClient(h)
	h.dispatch(other, joinPayload(t, roomID, "bob", "boggle", false))
	h.dispatch(host, Message{Event: EventStartGame})

	h.dispatch(host, Message{Event: EventBoggleEnd})

	room, ok := h.rooms.GetRoom(roomID)
	require.True(t, ok)
	assert.Nil(t, room.Engine, "an ended Boggle round must drop its engine pointer")
}

func TestBigTwoPersonalizedStateHidesOtherHands(t *testing.T) {
	h := newTestHub()
	roomID := h.rooms.CreateRoom(roommgr.FamilyBigTwo)
	seats := []*Client{testClient(h), testClient(h), testClient(h), testClient(h)}
	names := []string{"a", "b", "c", "d"}
	for i, cl := range seats {
		h.dispatch(cl, joinPayload(t, roomID, names[i], "chordaidi", false))
	}
	h.dispatch(seats[0], Message{Event: EventStartGame})

	room, ok := h.rooms.GetRoom(roomID)
	require.True(t, ok)
	require.NotNil(t, room.Engine)
	eng, ok := room.Engine.(*bigtwo.Engine)
	require.True(t, ok)

	// The game_started broadcast reaches every seat, so it carries counts only.
	for _, cl := range seats {
		for len(cl.prioritySend) > 0 {
			var msg Message
			require.NoError(t, json.Unmarshal(<-cl.prioritySend, &msg))
			if msg.Event != EventGameStarted {
				continue
			}
			var snap bigtwo.Snapshot
			require.NoError(t, json.Unmarshal(msg.Payload, &snap))
			assert.Empty(t, snap.MyHand)
			assert.Equal(t, [4]int{13, 13, 13, 13}, snap.HandCounts)
		}
	}

	// Each seat's personalized state holds its own 13 cards and no one else's.
	seen := make(map[int]bool)
	for seat := 0; seat < 4; seat++ {
		hand := eng.PersonalizedState(seat).MyHand
		assert.Len(t, hand, 13)
		for _, id := range hand {
			seen[int(id)] = true
		}
	}
	assert.Len(t, seen, 52)
}

func TestPingRepliesWithPong(t *testing.T) {
	h := newTestHub()
	c := testClient(h)
	h.dispatch(c, Message{Event: EventPing})

	select {
	case data := <-c.send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, EventPong, msg.Event)
	default:
		t.Fatal("expected a queued pong")
	}
}

func TestUnknownEventReturnsError(t *testing.T) {
	h := newTestHub()
	c := testClient(h)
	h.dispatch(c, Message{Event: "not_a_real_event"})

	select {
	case data := <-c.prioritySend:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, EventError, msg.Event)
	default:
		t.Fatal("expected a queued error")
	}
}
