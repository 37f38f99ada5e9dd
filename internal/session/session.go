package session

import (
	"webpong/internal/netwrk"
)

// Roles a connection can join a match as. Only the two player roles may
// move paddles; only the host may end the match.
const (
	RoleHost    = "host"
	RolePlayer1 = "p1"
	RolePlayer2 = "p2"
)

// Session is everything the server remembers about one connection: the
// match it joined and the role it claimed. It lives exactly as long as
// the connection does.
type Session struct {
	Role    string
	MatchID string
}

// Conn is the slice of the transport a session needs: deliver one message,
// follow one match's broadcasts. *netwrk.Client implements it; tests use
// an in-memory fake.
type Conn interface {
	Send(msg netwrk.Message)
	Subscribe(matchID string)
}
