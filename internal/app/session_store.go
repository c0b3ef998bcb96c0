package app

import (
	"slices"
	"sync"

	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// membership keeps members in join order.
type membership struct {
	order []domain.ConnectionID
	names map[domain.ConnectionID]string
}

// SessionInfo is a read-only view for APIs.
type SessionInfo struct {
	ID          domain.SessionID `json:"id"`
	MemberCount int              `json:"member_count"`
}

// SessionStore owns session memberships. An empty session is deleted as soon
// as its last member leaves.
type SessionStore struct {
	kind     domain.SessionKind
	mu       sync.RWMutex
	sessions map[domain.SessionID]*membership
	order    []domain.SessionID
}

func NewSessionStore(kind domain.SessionKind) *SessionStore {
	return &SessionStore{
		kind:     kind,
		sessions: make(map[domain.SessionID]*membership),
	}
}

func (s *SessionStore) Kind() domain.SessionKind { return s.kind }

func (s *SessionStore) EnsureSession(sid domain.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked(sid)
}

func (s *SessionStore) ensureLocked(sid domain.SessionID) *membership {
	if m, ok := s.sessions[sid]; ok {
		return m
	}
	m := &membership{names: make(map[domain.ConnectionID]string)}
	s.sessions[sid] = m
	s.order = append(s.order, sid)
	log.Debug().Str("module", "app.sessions").Str("kind", string(s.kind)).Str("session", string(sid)).Msg("session created")
	return m
}

// AddMember joins id to sid. A repeated join only refreshes the name.
func (s *SessionStore) AddMember(sid domain.SessionID, id domain.ConnectionID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.ensureLocked(sid)
	if _, ok := m.names[id]; !ok {
		m.order = append(m.order, id)
	}
	m.names[id] = name
	log.Info().Str("module", "app.sessions").Str("kind", string(s.kind)).Str("session", string(sid)).Str("sid", string(id)).Msg("member added")
}

// RemoveMember reports whether id was a member of sid.
func (s *SessionStore) RemoveMember(sid domain.SessionID, id domain.ConnectionID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.sessions[sid]
	if !ok {
		return false
	}
	if _, ok := m.names[id]; !ok {
		return false
	}
	delete(m.names, id)
	m.order = slices.DeleteFunc(m.order, func(x domain.ConnectionID) bool { return x == id })
	log.Info().Str("module", "app.sessions").Str("kind", string(s.kind)).Str("session", string(sid)).Str("sid", string(id)).Msg("member removed")

	if len(m.order) == 0 {
		delete(s.sessions, sid)
		s.order = slices.DeleteFunc(s.order, func(x domain.SessionID) bool { return x == sid })
		log.Info().Str("module", "app.sessions").Str("kind", string(s.kind)).Str("session", string(sid)).Msg("session collected")
	}
	return true
}

// Members returns a snapshot in join order.
func (s *SessionStore) Members(sid domain.SessionID) []domain.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.sessions[sid]
	if !ok {
		return []domain.Member{}
	}
	out := make([]domain.Member, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, domain.Member{ID: id, DisplayName: m.names[id]})
	}
	return out
}

func (s *SessionStore) MemberIDs(sid domain.SessionID) []domain.ConnectionID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.sessions[sid]
	if !ok {
		return nil
	}
	return slices.Clone(m.order)
}

func (s *SessionStore) MemberCount(sid domain.SessionID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.sessions[sid]; ok {
		return len(m.order)
	}
	return 0
}

func (s *SessionStore) Has(sid domain.SessionID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[sid]
	return ok
}

// FirstSessionOf scans sessions in creation order and returns the first one
// that contains id.
func (s *SessionStore) FirstSessionOf(id domain.ConnectionID) (domain.SessionID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sid := range s.order {
		if _, ok := s.sessions[sid].names[id]; ok {
			return sid, true
		}
	}
	return "", false
}

func (s *SessionStore) SessionIDs() []domain.SessionID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) List() []SessionInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]SessionInfo, 0, len(s.order))
	for _, sid := range s.order {
		out = append(out, SessionInfo{ID: sid, MemberCount: len(s.sessions[sid].order)})
	}
	return out
}
