package netwrk

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 512

	sendBuffer = 256
)

// Client is the server side of one websocket connection. Outbound
// messages go through a buffered channel drained by the write pump; the
// read pump feeds decoded messages to the hub's handler.
type Client struct {
	ID string

	hub  *Hub
	conn *websocket.Conn
	send chan Message
	done chan struct{}

	// current room; guarded by the hub's lock
	room string
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		send: make(chan Message, sendBuffer),
		done: make(chan struct{}),
	}
}

// Send queues a message for delivery and never blocks: when the buffer is
// full the message is dropped. State broadcasts arrive at tick rate, so a
// slow client just sees fewer frames.
func (c *Client) Send(msg Message) {
	select {
	case c.send <- msg:
	default:
		slog.Debug("dropping message, send buffer full", "client", c.ID, "type", msg.Type)
	}
}

// Subscribe routes future broadcasts for matchID to this client, leaving
// whatever room it was in before.
func (c *Client) Subscribe(matchID string) {
	c.hub.Subscribe(c, matchID)
}

// Network reader: decodes envelopes off the wire and hands them to the
// handler. Exits on any read error and unregisters the client.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("client read error", "client", c.ID, "error", err)
			}
			return
		}
		c.hub.handler.OnMessage(c, msg)
	}
}

// Network writer: drains the send buffer onto the wire and keeps the
// connection alive with pings. Exits when the client is unregistered or a
// write fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				slog.Debug("client write error", "client", c.ID, "error", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
