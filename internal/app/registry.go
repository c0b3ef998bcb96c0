package app

import (
	"sync"

	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Registry maps live connections to their display names.
type Registry struct {
	mu    sync.RWMutex
	names map[domain.ConnectionID]string
}

func NewRegistry() *Registry {
	return &Registry{
		names: make(map[domain.ConnectionID]string),
	}
}

// SetDisplayName inserts or overwrites; any string is accepted.
func (r *Registry) SetDisplayName(id domain.ConnectionID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[id] = name
	log.Info().Str("module", "app.registry").Str("sid", string(id)).Str("username", name).Msg("updated username")
}

// DisplayName returns the stored name or the placeholder derived from id.
func (r *Registry) DisplayName(id domain.ConnectionID) string {
	if name, ok := r.Lookup(id); ok {
		return name
	}
	return domain.PlaceholderName(id)
}

// Lookup returns the stored name only.
func (r *Registry) Lookup(id domain.ConnectionID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.names[id]
	return name, ok
}

func (r *Registry) Remove(id domain.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.names[id]; !ok {
		return
	}
	delete(r.names, id)
	log.Info().Str("module", "app.registry").Str("sid", string(id)).Msg("removed username")
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}
