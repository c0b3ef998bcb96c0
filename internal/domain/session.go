package domain

import "github.com/google/uuid"

// SessionID names a call or stream session.
type SessionID string

// NewSessionID is used by the HTTP layer when a client asks for a fresh call or stream.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// SessionKind only tells the stores apart; sessions carry no stored type.
type SessionKind string

const (
	SessionCall   SessionKind = "call"
	SessionStream SessionKind = "stream"
)
