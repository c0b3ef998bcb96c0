// Package orch routes inbound signaling events to their recipients.
//
// All registry and session mutations, together with the fan-out they cause,
// run under one mutex so that membership snapshots and notifications are
// never interleaved between connections. Delivery is a non-blocking enqueue
// through core.Transport.
package orch

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Relay/internal/app"
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
)

type Orchestrator struct {
	Registry  *app.Registry
	Calls     *app.SessionStore
	Streams   *app.SessionStore
	Transport core.Transport
	Policy    app.Policy
	Metrics   *app.Metrics

	mu     sync.Mutex
	online map[domain.ConnectionID]struct{}
}

// Dispatch handles one decoded inbound event from the connection from.
func (o *Orchestrator) Dispatch(ctx context.Context, from domain.ConnectionID, ev core.Event) {
	if o.Metrics != nil {
		o.Metrics.EventsTotal.WithLabelValues(string(ev.Name())).Inc()
	}
	log.Debug().Str("module", "orch").Str("sid", string(from)).Str("event", string(ev.Name())).Msg("dispatch")

	switch e := ev.(type) {
	case core.SetUsername:
		o.SetUsername(from, e.DisplayName)
	case core.JoinCall:
		o.JoinCall(from, e.Session)
	case core.Relay:
		o.Relay(from, e)
	case core.ScreenShare:
		o.ScreenShare(from, e)
	case core.CreateStream:
		o.CreateStream(from, e.Session)
	case core.JoinStream:
		o.JoinStream(ctx, from, e.Session)
	case core.ChatMessage:
		o.ChatBroadcast(from, e)
	case core.PersonalChat:
		o.PersonalChat(from, e)
	default:
		log.Warn().Str("module", "orch").Str("event", string(ev.Name())).Msg("no handler for event")
	}
}

func (o *Orchestrator) SetUsername(id domain.ConnectionID, name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Registry.SetDisplayName(id, name)
}

// emit sends one event to a single connection. Caller holds o.mu.
func (o *Orchestrator) emit(to domain.ConnectionID, out core.Outbound) {
	o.emitMany([]domain.ConnectionID{to}, out)
}

// emitMany encodes once and delivers to every recipient. Caller holds o.mu.
func (o *Orchestrator) emitMany(to []domain.ConnectionID, out core.Outbound) {
	if len(to) == 0 {
		return
	}
	f, err := core.Encode(out)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("event", string(out.Name)).Msg("encode outbound")
		return
	}
	for _, id := range to {
		o.deliver(id, f, out.Name)
	}
}

func (o *Orchestrator) deliver(to domain.ConnectionID, f core.Frame, name core.EventName) {
	err := o.Transport.Send(to, f)
	switch {
	case err == nil:
		o.countDelivery(app.DeliverySent)
	case errors.Is(err, core.ErrBackpressure):
		o.countDelivery(app.DeliveryBackpressure)
		o.onBackpressure(to, name)
	default:
		o.countDelivery(app.DeliveryDropped)
		log.Debug().Err(err).Str("module", "orch").Str("to", string(to)).Str("event", string(name)).Msg("recipient gone, dropped")
	}
}

func (o *Orchestrator) onBackpressure(to domain.ConnectionID, name core.EventName) {
	if o.Policy == nil {
		return
	}
	switch o.Policy.OnBackPressure(to) {
	case app.KickMember:
		log.Warn().Str("module", "orch").Str("to", string(to)).Str("event", string(name)).Msg("send queue full, kicking")
		o.Transport.Kick(to)
	case app.DropFrame:
		log.Debug().Str("module", "orch").Str("to", string(to)).Str("event", string(name)).Msg("send queue full, dropped")
	}
}

func (o *Orchestrator) countDelivery(result string) {
	if o.Metrics != nil {
		o.Metrics.Deliveries.WithLabelValues(result).Inc()
	}
}

func (o *Orchestrator) syncSessionGauges() {
	if o.Metrics == nil {
		return
	}
	o.Metrics.SetSessions(o.Calls.Kind(), o.Calls.Len())
	o.Metrics.SetSessions(o.Streams.Kind(), o.Streams.Len())
}

func memberIDs(members []domain.Member) []domain.ConnectionID {
	out := make([]domain.ConnectionID, 0, len(members))
	for _, m := range members {
		out = append(out, m.ID)
	}
	return out
}

func without(ids []domain.ConnectionID, skip domain.ConnectionID) []domain.ConnectionID {
	out := make([]domain.ConnectionID, 0, len(ids))
	for _, id := range ids {
		if id != skip {
			out = append(out, id)
		}
	}
	return out
}
