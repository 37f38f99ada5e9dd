package netwrk

import (
	"encoding/json"
	"fmt"
)

// Wire message types. Clients send join, paddle, and endMatch; the server
// sends state and matchEnded.
const (
	TypeJoin       = "join"
	TypePaddle     = "paddle"
	TypeEndMatch   = "endMatch"
	TypeState      = "state"
	TypeMatchEnded = "matchEnded"
)

// Message is the envelope for everything on the wire. The payload stays
// raw until the receiver knows the type, then unmarshals into the struct
// for that type.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Join struct {
	Role    string `json:"role"`
	MatchID string `json:"matchId"`
}

type Paddle struct {
	Y float64 `json:"y"`
}

// NewMessage wraps a payload struct in an envelope. A nil payload gives a
// bare typed message.
func NewMessage(msgType string, payload any) (Message, error) {
	if payload == nil {
		return Message{Type: msgType}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("encode %s payload: %w", msgType, err)
	}
	return Message{Type: msgType, Payload: raw}, nil
}

// Decode unmarshals the payload into the struct for the message's type.
func (m Message) Decode(v any) error {
	return json.Unmarshal(m.Payload, v)
}
