package domain

// Member is one entry of a session's membership.
// DisplayName is empty for stream sessions.
type Member struct {
	ID          ConnectionID `json:"id"`
	DisplayName string       `json:"username,omitempty"`
}
