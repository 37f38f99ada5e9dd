package session

import (
	"log/slog"
	"sync"

	"webpong/internal/netwrk"
	"webpong/internal/pong"
)

// Manager keeps one Session per connected client and applies client
// messages to the match registry. It is the hub's EventHandler; every
// out-of-context message is dropped silently, the one exception being a
// join to an ended match, which is answered with matchEnded.
type Manager struct {
	mu       sync.Mutex
	registry *pong.Registry
	sessions map[Conn]*Session
}

func NewManager(registry *pong.Registry) *Manager {
	return &Manager{
		registry: registry,
		sessions: make(map[Conn]*Session),
	}
}

func (m *Manager) OnConnect(c *netwrk.Client) {
	m.mu.Lock()
	m.sessions[c] = &Session{}
	m.mu.Unlock()
}

func (m *Manager) OnDisconnect(c *netwrk.Client) {
	m.mu.Lock()
	delete(m.sessions, c)
	m.mu.Unlock()
}

// OnMessage decodes and routes one client message.
func (m *Manager) OnMessage(c *netwrk.Client, msg netwrk.Message) {
	m.handleMessage(c, msg)
}

func (m *Manager) handleMessage(c Conn, msg netwrk.Message) {
	switch msg.Type {
	case netwrk.TypeJoin:
		var join netwrk.Join
		if err := msg.Decode(&join); err != nil {
			slog.Debug("bad join payload", "error", err)
			return
		}
		m.Join(c, join.Role, join.MatchID)
	case netwrk.TypePaddle:
		var paddle netwrk.Paddle
		if err := msg.Decode(&paddle); err != nil {
			slog.Debug("bad paddle payload", "error", err)
			return
		}
		m.PaddleInput(c, paddle.Y)
	case netwrk.TypeEndMatch:
		m.EndMatch(c)
	default:
		slog.Debug("unhandled message type", "type", msg.Type)
	}
}

// Join binds the connection's session to a role and match, overwriting
// any previous binding; joining again with a different match just moves
// the session. An ended match is never resurrected: the caller gets
// matchEnded and no state is created.
func (m *Manager) Join(c Conn, role, matchID string) {
	m.mu.Lock()
	sess, ok := m.sessions[c]
	if !ok {
		sess = &Session{}
		m.sessions[c] = sess
	}
	sess.Role = role
	sess.MatchID = matchID
	m.mu.Unlock()

	if m.registry.IsEnded(matchID) {
		c.Send(netwrk.Message{Type: netwrk.TypeMatchEnded})
		return
	}

	m.registry.EnsureCreated(matchID)
	c.Subscribe(matchID)

	state, ok := m.registry.Get(matchID)
	if !ok {
		// Ended in the window since the check above.
		c.Send(netwrk.Message{Type: netwrk.TypeMatchEnded})
		return
	}
	msg, err := netwrk.NewMessage(netwrk.TypeState, state.Snapshot())
	if err != nil {
		slog.Debug("dropping join snapshot", "match", matchID, "error", err)
		return
	}
	c.Send(msg)
	slog.Debug("session joined match", "match", matchID, "role", role)
}

// PaddleInput stores a clamped paddle position for the sender's match.
// The write is keyed strictly by role: p1 moves paddle 1, p2 moves paddle
// 2, everyone else moves nothing.
func (m *Manager) PaddleInput(c Conn, y float64) {
	m.mu.Lock()
	var role, matchID string
	if sess, ok := m.sessions[c]; ok {
		role, matchID = sess.Role, sess.MatchID
	}
	m.mu.Unlock()

	if matchID == "" {
		return
	}
	state, ok := m.registry.Get(matchID)
	if !ok {
		return
	}

	switch role {
	case RolePlayer1:
		state.SetPaddle1Y(y)
	case RolePlayer2:
		state.SetPaddle2Y(y)
	}
}

// EndMatch retires the host's match permanently and notifies every
// session attached to it, whatever their role. Non-hosts are ignored.
func (m *Manager) EndMatch(c Conn) {
	m.mu.Lock()
	sess, ok := m.sessions[c]
	if !ok || sess.Role != RoleHost || sess.MatchID == "" {
		m.mu.Unlock()
		return
	}
	matchID := sess.MatchID
	notify := make([]Conn, 0, len(m.sessions))
	for conn, s := range m.sessions {
		if s.MatchID == matchID {
			notify = append(notify, conn)
		}
	}
	m.mu.Unlock()

	m.registry.MarkEnded(matchID)
	for _, conn := range notify {
		conn.Send(netwrk.Message{Type: netwrk.TypeMatchEnded})
	}
	slog.Info("match ended by host", "match", matchID, "notified", len(notify))
}
