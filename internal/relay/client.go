package relay

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Wire events, mirroring the frontend chat widget.
const (
	EventJoinRoom    = "join_room"
	EventSendMessage = "send_message"
	EventReceive     = "receive_message"
)

const writeWait = 10 * time.Second

// Envelope is the relay wire format. Data is passed through verbatim
// on broadcast.
type Envelope struct {
	Event string          `json:"event"`
	Room  string          `json:"room,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// chatMessage is the subset of send_message data the relay needs to
// route; everything else rides along untouched.
type chatMessage struct {
	Room string `json:"room"`
}

// Client is one websocket connection attached to the hub.
type Client struct {
	id    uuid.UUID
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	rooms map[string]struct{}
}

// NewClient wraps a websocket connection. sendBuffer bounds the
// outbound queue; a full queue means the message is dropped for that
// client.
func NewClient(hub *Hub, conn *websocket.Conn, sendBuffer int) *Client {
	if sendBuffer <= 0 {
		sendBuffer = 32
	}
	return &Client{
		id:    uuid.New(),
		hub:   hub,
		conn:  conn,
		send:  make(chan []byte, sendBuffer),
		rooms: make(map[string]struct{}),
	}
}

// deliver queues payload without blocking. Reports whether the
// payload was accepted.
func (c *Client) deliver(payload []byte) bool {
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// ReadPump consumes inbound envelopes until the connection drops,
// then detaches the client from the hub.
func (c *Client) ReadPump(maxMessageSize int64) {
	defer func() {
		c.hub.Leave(c)
		close(c.send)
		c.conn.Close()
	}()
	if maxMessageSize > 0 {
		c.conn.SetReadLimit(maxMessageSize)
	}

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("[relay] client %s read: %v", c.id, err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			continue // malformed frames are dropped silently
		}

		switch env.Event {
		case EventJoinRoom:
			c.hub.Join(c, env.Room)
		case EventSendMessage:
			var msg chatMessage
			if err := json.Unmarshal(env.Data, &msg); err != nil || msg.Room == "" {
				continue
			}
			out, err := json.Marshal(Envelope{Event: EventReceive, Data: env.Data})
			if err != nil {
				continue
			}
			c.hub.Broadcast(msg.Room, c, out)
		}
	}
}

// WritePump drains the send queue onto the connection.
func (c *Client) WritePump() {
	defer c.conn.Close()
	for payload := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
	// Hub closed the queue; tell the peer we're done.
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
