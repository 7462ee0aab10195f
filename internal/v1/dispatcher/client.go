package dispatcher

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tablehost/internal/v1/logging"
	"tablehost/internal/v1/metrics"
)

// wsConnection is the narrow surface Client needs from a websocket
// connection, so tests can substitute a fake.
type wsConnection interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
	SetWriteDeadline(t time.Time) error
}

const writeWait = 10 * time.Second

// Client is one connected player or spectator. It caches the seat it
// currently occupies so command handlers can authorize without a room
// lookup on every message.
type Client struct {
	conn wsConnection
	hub  *Hub
	ip   string

	id string // opaque identity for roommgr.Connection

	mu     sync.RWMutex
	roomID string
	name   string
	color  string

	send         chan []byte
	prioritySend chan []byte
	closeOnce    sync.Once
}

func newClient(conn wsConnection, hub *Hub, ip, id string) *Client {
	return &Client{
		conn:         conn,
		hub:          hub,
		ip:           ip,
		id:           id,
		send:         make(chan []byte, 32),
		prioritySend: make(chan []byte, 32),
	}
}

// ConnID satisfies roommgr.Connection.
func (c *Client) ConnID() string { return c.id }

func (c *Client) seat() (roomID, name, color string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomID, c.name, c.color
}

func (c *Client) setSeat(roomID, name, color string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomID = roomID
	c.name = name
	c.color = color
}

// deliver enqueues a message for delivery, never blocking the caller. Full
// channels drop the message and are logged.
func (c *Client) deliver(priority bool, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		logging.Error(nil, "failed to marshal outbound message", zap.String("event", msg.Event), zap.Error(err))
		return
	}

	ch := c.send
	if priority {
		ch = c.prioritySend
	}
	select {
	case ch <- data:
	default:
		logging.Warn(nil, "client send channel full, dropping message", zap.String("event", msg.Event))
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
		close(c.prioritySend)
	})
}

func (c *Client) readPump() {
	defer func() {
		c.hub.handleDisconnect(c)
		c.conn.Close()
		c.close()
		metrics.DecConnection()
	}()

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.deliver(true, errorMessage("malformed message"))
			continue
		}

		c.hub.dispatch(c, msg)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for {
		select {
		case message, ok := <-c.prioritySend:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case message, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		}
	}
}
