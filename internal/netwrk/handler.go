package netwrk

// EventHandler is the seam between the transport and the game logic. The
// session layer implements it; the hub and the client pumps call it.
//
// OnMessage runs on the sending client's read goroutine, so many calls can
// be in flight at once; implementations do their own locking.
type EventHandler interface {
	OnConnect(c *Client)
	OnDisconnect(c *Client)
	OnMessage(c *Client, msg Message)
}
