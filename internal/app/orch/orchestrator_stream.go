package orch

import (
	"context"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
)

// CreateStream registers the streamer. Nobody is notified.
func (o *Orchestrator) CreateStream(id domain.ConnectionID, sid domain.SessionID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Streams.AddMember(sid, id, "")
	o.syncSessionGauges()
}

// JoinStream adds a viewer, announces it to the members already present and
// then recounts viewers.
func (o *Orchestrator) JoinStream(ctx context.Context, id domain.ConnectionID, sid domain.SessionID) {
	o.mu.Lock()
	o.Streams.AddMember(sid, id, "")
	o.emitMany(without(o.Streams.MemberIDs(sid), id), core.ViewerJoined(id))
	o.syncSessionGauges()
	o.mu.Unlock()

	o.CountViewers(ctx, sid)
}

// CountViewers asks the transport which stream members are still connected,
// forgets the ones that are not and sends the live count to every live member.
// The liveness check runs without the router lock.
func (o *Orchestrator) CountViewers(ctx context.Context, sid domain.SessionID) {
	alive, ok := o.reconcileStream(ctx, sid)
	if !ok {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.emitMany(alive, core.ViewerCount(len(alive)))
	log.Debug().Str("module", "orch").Str("session", string(sid)).Int("viewers", len(alive)).Msg("viewer count")
}

// SweepStreams reconciles every stream session without broadcasting, so
// sessions whose members all went away are collected.
func (o *Orchestrator) SweepStreams(ctx context.Context) {
	for _, sid := range o.Streams.SessionIDs() {
		if ctx.Err() != nil {
			return
		}
		o.reconcileStream(ctx, sid)
	}
}

// RunStreamJanitor sweeps stream sessions every interval until ctx is done.
func (o *Orchestrator) RunStreamJanitor(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "orch").Msg("stream janitor stopped")
			return nil
		case <-ticker.C:
			o.SweepStreams(ctx)
		}
	}
}

func (o *Orchestrator) reconcileStream(ctx context.Context, sid domain.SessionID) ([]domain.ConnectionID, bool) {
	ids := o.Streams.MemberIDs(sid)
	if len(ids) == 0 {
		return nil, false
	}

	start := time.Now()
	alive, err := o.Transport.Alive(ctx, ids)
	if o.Metrics != nil {
		o.Metrics.ViewerRecount.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("session", string(sid)).Msg("liveness check failed")
		return nil, false
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	for _, id := range ids {
		if !slices.Contains(alive, id) && o.Streams.RemoveMember(sid, id) {
			log.Info().Str("module", "orch").Str("session", string(sid)).Str("sid", string(id)).Msg("pruned stale viewer")
		}
	}
	o.syncSessionGauges()
	return alive, true
}

// ChatBroadcast delivers the message to every member of the addressed
// session, sender included.
func (o *Orchestrator) ChatBroadcast(from domain.ConnectionID, e core.ChatMessage) {
	o.mu.Lock()
	defer o.mu.Unlock()

	to := o.Calls.MemberIDs(e.To)
	for _, id := range o.Streams.MemberIDs(e.To) {
		if !slices.Contains(to, id) {
			to = append(to, id)
		}
	}
	o.emitMany(to, core.BroadcastMessage(e.Message, from))
}

// PersonalChat delivers to the target only, with the sender's name as it is
// right now. Senders that never set a name go out under their placeholder.
func (o *Orchestrator) PersonalChat(from domain.ConnectionID, e core.PersonalChat) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.emit(e.To, core.PersonalMessage(e.Message, from, o.Registry.DisplayName(from)))
}
