package netwrk

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"webpong/internal/pong"
)

// Hub tracks every connected client and which match each one watches.
// Handler callbacks fire on client goroutines; the hub lock only covers
// its own maps, never sends or game logic.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool
	handler EventHandler
}

func NewHub(handler EventHandler) *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
		rooms:   make(map[string]map[*Client]bool),
		handler: handler,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The browser bundle is served by this same process and the debug
	// client has no origin at all, so accept any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades an HTTP request to a websocket connection, registers
// the client, and starts its pumps. Use as the handler for the /ws route.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	c := newClient(h, conn)
	h.register(c)
	slog.Debug("client connected", "client", c.ID, "remote", conn.RemoteAddr())

	go c.writePump()
	go c.readPump()
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	h.handler.OnConnect(c)
}

// Unregister drops the client from the hub and its room and stops its
// write pump. Safe to call more than once; only the first call acts.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if !h.clients[c] {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	h.leaveLocked(c)
	close(c.done)
	h.mu.Unlock()

	h.handler.OnDisconnect(c)
	slog.Debug("client disconnected", "client", c.ID)
}

// Subscribe moves the client into matchID's room. A client is in at most
// one room; rejoining another match moves it.
func (h *Hub) Subscribe(c *Client, matchID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c)
	room, ok := h.rooms[matchID]
	if !ok {
		room = make(map[*Client]bool)
		h.rooms[matchID] = room
	}
	room[c] = true
	c.room = matchID
}

func (h *Hub) leaveLocked(c *Client) {
	if c.room == "" {
		return
	}
	if room, ok := h.rooms[c.room]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, c.room)
		}
	}
	c.room = ""
}

// BroadcastState fans a match's snapshot out to its room. Membership is
// copied under the lock and the sends happen outside it, each one
// non-blocking, so a stalled client cannot hold up the simulation.
func (h *Hub) BroadcastState(matchID string, state pong.Snapshot) {
	msg, err := NewMessage(TypeState, state)
	if err != nil {
		slog.Debug("dropping unencodable state", "match", matchID, "error", err)
		return
	}

	h.mu.Lock()
	members := make([]*Client, 0, len(h.rooms[matchID]))
	for c := range h.rooms[matchID] {
		members = append(members, c)
	}
	h.mu.Unlock()

	for _, c := range members {
		c.Send(msg)
	}
}
