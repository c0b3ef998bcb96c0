package signal

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
)

// Hub is the table of open connections. It implements core.Transport.
type Hub struct {
	mu    sync.RWMutex
	conns map[domain.ConnectionID]core.SignalConnection
}

func NewHub() *Hub {
	return &Hub{conns: make(map[domain.ConnectionID]core.SignalConnection)}
}

func (h *Hub) Add(id domain.ConnectionID, c core.SignalConnection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[id] = c
}

// Remove reports whether id was registered.
func (h *Hub) Remove(id domain.ConnectionID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[id]; !ok {
		return false
	}
	delete(h.conns, id)
	return true
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) get(id domain.ConnectionID) (core.SignalConnection, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.conns[id]
	return c, ok
}

func (h *Hub) Send(to domain.ConnectionID, f core.Frame) error {
	c, ok := h.get(to)
	if !ok {
		return core.ErrUnknownConnection
	}
	err := c.TrySend(f)
	if errors.Is(err, ErrClosed) {
		return core.ErrUnknownConnection
	}
	return err
}

// Alive keeps the ids still registered. A connection leaves the table as
// soon as its read loop ends, before the router hears about it.
func (h *Hub) Alive(ctx context.Context, ids []domain.ConnectionID) ([]domain.ConnectionID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]domain.ConnectionID, 0, len(ids))
	for _, id := range ids {
		if _, ok := h.conns[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

// Kick closes the connection. The read loop notices and runs the usual
// disconnect path on its own goroutine.
func (h *Hub) Kick(id domain.ConnectionID) {
	c, ok := h.get(id)
	if !ok {
		return
	}
	log.Warn().Str("module", "signal").Str("sid", string(id)).Msg("kick")
	c.Close()
}

// CloseAll closes every connection, used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	conns := make([]core.SignalConnection, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()
	for _, c := range conns {
		c.Close()
	}
}
