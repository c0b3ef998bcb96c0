package orch

import (
	"context"
	"slices"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Relay/internal/app"
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
)

type received struct {
	Event core.EventName `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// fakeTransport records every frame per recipient.
type fakeTransport struct {
	mu     sync.Mutex
	open   map[domain.ConnectionID]bool
	inbox  map[domain.ConnectionID][]received
	kicked []domain.ConnectionID
}

func newFakeTransport(ids ...domain.ConnectionID) *fakeTransport {
	ft := &fakeTransport{
		open:  make(map[domain.ConnectionID]bool),
		inbox: make(map[domain.ConnectionID][]received),
	}
	for _, id := range ids {
		ft.open[id] = true
	}
	return ft
}

func (ft *fakeTransport) Send(to domain.ConnectionID, f core.Frame) error {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	if !ft.open[to] {
		return core.ErrUnknownConnection
	}
	var r received
	if err := json.Unmarshal(f, &r); err != nil {
		return err
	}
	ft.inbox[to] = append(ft.inbox[to], r)
	return nil
}

func (ft *fakeTransport) Alive(_ context.Context, ids []domain.ConnectionID) ([]domain.ConnectionID, error) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	out := make([]domain.ConnectionID, 0, len(ids))
	for _, id := range ids {
		if ft.open[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (ft *fakeTransport) Kick(id domain.ConnectionID) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.kicked = append(ft.kicked, id)
}

// drop closes a connection without telling the router.
func (ft *fakeTransport) drop(id domain.ConnectionID) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	delete(ft.open, id)
}

func (ft *fakeTransport) events(id domain.ConnectionID) []received {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return slices.Clone(ft.inbox[id])
}

func (ft *fakeTransport) named(id domain.ConnectionID, name core.EventName) []received {
	var out []received
	for _, r := range ft.events(id) {
		if r.Event == name {
			out = append(out, r)
		}
	}
	return out
}

func (ft *fakeTransport) reset() {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.inbox = make(map[domain.ConnectionID][]received)
}

func newOrchestrator(tr core.Transport) *Orchestrator {
	return &Orchestrator{
		Registry:  app.NewRegistry(),
		Calls:     app.NewSessionStore(domain.SessionCall),
		Streams:   app.NewSessionStore(domain.SessionStream),
		Transport: tr,
		Policy:    app.DropPolicy{},
		Metrics:   app.NewMetrics(prometheus.NewRegistry()),
	}
}

func decodeData(t *testing.T, r received, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, v))
}
