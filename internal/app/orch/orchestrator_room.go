package orch

import (
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
)

// JoinCall adds id to the call session, announces it to the other members
// and sends the joiner the membership snapshot, which already lists the joiner.
func (o *Orchestrator) JoinCall(id domain.ConnectionID, sid domain.SessionID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	name := o.Registry.DisplayName(id)
	o.Calls.AddMember(sid, id, name)
	members := o.Calls.Members(sid)

	o.emitMany(without(memberIDs(members), id), core.PeerJoined(id, name))
	o.emit(id, core.Participants(members))
	o.syncSessionGauges()
	log.Info().Str("module", "orch").Str("sid", string(id)).Str("session", string(sid)).Int("members", len(members)).Msg("joined call")
}

// Relay forwards an offer, answer or candidate to its target only. Whether
// the target shares a session with the sender is not checked. A message
// addressed to the sender itself is dropped.
func (o *Orchestrator) Relay(from domain.ConnectionID, e core.Relay) {
	if e.To == from {
		log.Debug().Str("module", "orch").Str("sid", string(from)).Str("event", string(e.Kind)).Msg("relay to self dropped")
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.emit(e.To, core.RelayFrom(e.Kind, from, e.Payload))
}

// ScreenShare tells the other call members that from started or stopped sharing.
func (o *Orchestrator) ScreenShare(from domain.ConnectionID, e core.ScreenShare) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.emitMany(without(o.Calls.MemberIDs(e.Session), from), core.ScreenShareFrom(e, from))
}
