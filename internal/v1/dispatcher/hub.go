package dispatcher

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tablehost/internal/v1/analytics"
	"tablehost/internal/v1/leaderboard"
	"tablehost/internal/v1/logging"
	"tablehost/internal/v1/metrics"
	"tablehost/internal/v1/ratelimit"
	"tablehost/internal/v1/roommgr"
)

// disconnectGrace is how long a seat may sit without a live connection
// before the room is told the player disconnected, separate from and
// shorter than the room's own deletion grace window.
const disconnectGrace = 2 * time.Second

// boggleRoundLength mirrors the Boggle engine's own round duration so the
// dispatcher's timer fires at the same instant the engine starts rejecting
// submissions with "time is up".
const boggleRoundLength = 180 * time.Second

// Hub wires the room table to the live WebSocket connections and is the
// single entry point every inbound Message is routed through.
type Hub struct {
	rooms     *roommgr.Manager
	board     *leaderboard.Board
	analytics *analytics.Sink
	limiter   *ratelimit.Limiter

	mu               sync.Mutex
	disconnectTimers map[string]*time.Timer // keyed by roomID + "/" + seat name
	roundTimers      map[string]*time.Timer // keyed by roomID
}

// NewHub assembles a Hub from its dependencies.
func NewHub(rooms *roommgr.Manager, board *leaderboard.Board, sink *analytics.Sink, limiter *ratelimit.Limiter) *Hub {
	return &Hub{
		rooms:            rooms,
		board:            board,
		analytics:        sink,
		limiter:          limiter,
		disconnectTimers: make(map[string]*time.Timer),
		roundTimers:      make(map[string]*time.Timer),
	}
}

// newConnID mints a unique id for one connection's lifetime, stored on the
// Client as its opaque roommgr.Connection identity.
func newConnID() string {
	return uuid.NewString()
}

// HandleConnection takes an upgraded WebSocket connection, wraps it in a
// Client, and starts its read/write pumps. The caller is responsible for
// the HTTP-to-WebSocket upgrade itself.
func (h *Hub) HandleConnection(conn wsConnection, ip string) {
	client := newClient(conn, h, ip, newConnID())
	metrics.IncConnection()

	go client.writePump()
	go client.readPump()
}

// dispatch routes one decoded inbound Message to its handler.
func (h *Hub) dispatch(c *Client, msg Message) {
	switch msg.Event {
	case EventJoinGame:
		h.handleJoinGame(c, msg)
	case EventStartGame:
		h.handleStartGame(c)
	case EventMakeMove:
		h.handleMakeMove(c, msg)
	case EventCdiPlay:
		h.handleCdiPlay(c, msg)
	case EventCdiPass:
		h.handleCdiPass(c)
	case EventBoggleSubmit:
		h.handleBoggleSubmit(c, msg)
	case EventBoggleEnd:
		h.handleBoggleEnd(c)
	case EventBingoCall:
		h.handleBingoCall(c)
	case EventRequestUndo:
		h.handleRequestUndo(c)
	case EventApproveUndo:
		h.handleApproveUndo(c)
	case EventDeclineUndo:
		h.handleDeclineUndo(c)
	case EventResign:
		h.handleResign(c)
	case EventPing:
		c.deliver(false, Message{Event: EventPong})
	default:
		c.deliver(true, errorMessage("unknown event"))
	}
}

// handleDisconnect is called from readPump's deferred cleanup. It clears
// the client's seat, arms the 2-second disconnect notification, and lets
// roommgr's own 60-second timer own outright room deletion.
func (h *Hub) handleDisconnect(c *Client) {
	res, ok := h.rooms.LeaveRoom(c, h.onRoomDeleted)
	if !ok {
		return
	}
	if !res.WasPlayer {
		return
	}

	h.armDisconnectNotice(res.RoomID, res.Name)
}

func (h *Hub) armDisconnectNotice(roomID, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := roomID + "/" + name
	if t, exists := h.disconnectTimers[key]; exists {
		t.Stop()
	}
	h.disconnectTimers[key] = time.AfterFunc(disconnectGrace, func() {
		h.rooms.WithRoom(roomID, func(room *roommgr.Room) {
			if seatReclaimed(room, name) {
				return
			}
			broadcastRoom(room, true, marshal(EventPlayerDisconnect, playerDisconnectedPayload{PlayerName: name}))
			broadcastRoom(room, false, roomUpdateFor(room))
		})
		h.mu.Lock()
		delete(h.disconnectTimers, key)
		h.mu.Unlock()
	})
}

// armBoggleTimer schedules the round's automatic end, co-resident with the
// room the same way the disconnect notice timer is, so a room whose engine
// is rebuilt (a new round starting) doesn't leave an earlier round's timer
// live.
func (h *Hub) armBoggleTimer(roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if t, exists := h.roundTimers[roomID]; exists {
		t.Stop()
	}
	h.roundTimers[roomID] = time.AfterFunc(boggleRoundLength, func() {
		h.finishCommand(roomID, func(room *roommgr.Room) (bool, string) {
			return endBoggleRound(room)
		}, nil, roomID)
		h.mu.Lock()
		delete(h.roundTimers, roomID)
		h.mu.Unlock()
	})
}

func (h *Hub) onRoomDeleted(roomID string) {
	logging.Info(nil, "room deleted", zap.String("room_id", roomID))
}
