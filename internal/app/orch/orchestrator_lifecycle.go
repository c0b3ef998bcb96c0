package orch

import (
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
)

// OnConnect is called by the transport once a connection is registered.
func (o *Orchestrator) OnConnect(id domain.ConnectionID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.online == nil {
		o.online = make(map[domain.ConnectionID]struct{})
	}
	if _, seen := o.online[id]; !seen {
		o.online[id] = struct{}{}
		if o.Metrics != nil {
			o.Metrics.Connections.Inc()
		}
	}
	o.emit(id, core.Connected(id))
	log.Info().Str("module", "orch").Str("sid", string(id)).Msg("connected")
}

// OnDisconnect unwinds a connection: its name is forgotten and it leaves the
// first call session it is found in. Only that one session is cleaned up, a
// connection is expected to be in at most one call at a time. Stream
// membership is reconciled by the viewer counter and the janitor.
// Repeated or unknown disconnects leave the connection gauge alone.
func (o *Orchestrator) OnDisconnect(id domain.ConnectionID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("module", "orch").Str("sid", string(id)).Msg("disconnect cleanup panicked")
		}
	}()

	if _, seen := o.online[id]; seen {
		delete(o.online, id)
		if o.Metrics != nil {
			o.Metrics.Connections.Dec()
		}
	}
	o.Registry.Remove(id)

	sid, ok := o.Calls.FirstSessionOf(id)
	if !ok {
		log.Info().Str("module", "orch").Str("sid", string(id)).Msg("disconnected")
		return
	}
	o.Calls.RemoveMember(sid, id)
	o.emitMany(o.Calls.MemberIDs(sid), core.ParticipantLeft(id))
	o.syncSessionGauges()
	log.Info().Str("module", "orch").Str("sid", string(id)).Str("session", string(sid)).Msg("disconnected, left call")
}
