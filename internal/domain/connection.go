// Package domain contains entity without logic, just meta-data
package domain

import "github.com/google/uuid"

const placeholderPrefixLen = 4

// ConnectionID identifies one live transport endpoint.
type ConnectionID string

// NewConnectionID returns a fresh opaque connection id.
func NewConnectionID() ConnectionID {
	return ConnectionID(uuid.NewString())
}

// PlaceholderName is the display name used for connections that never set one.
func PlaceholderName(id ConnectionID) string {
	s := string(id)
	if len(s) > placeholderPrefixLen {
		s = s[:placeholderPrefixLen]
	}
	return "Participant " + s
}
