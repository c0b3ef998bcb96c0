package core

import (
	"github.com/dkeye/Relay/internal/domain"
	"github.com/goccy/go-json"
)

// EventName is the wire tag of an inbound or outbound event.
type EventName string

// Inbound.
const (
	EventSetUsername      EventName = "set-username"
	EventJoinCall         EventName = "join-call"
	EventOffer            EventName = "offer"
	EventAnswer           EventName = "answer"
	EventICECandidate     EventName = "icecandidate"
	EventStartScreenShare EventName = "start-screen-share"
	EventStopScreenShare  EventName = "stop-screen-share"
	EventCreateStream     EventName = "create-stream"
	EventJoinStream       EventName = "join-stream"
	EventChatMessage      EventName = "chat-message"
	EventPersonalChat     EventName = "personal-chat"
)

// Outbound. Screen share is relayed under its inbound name.
const (
	EventConnected        EventName = "connected"
	EventPeerJoined       EventName = "peer-joined"
	EventParticipants     EventName = "participants"
	EventReceiveOffer     EventName = "receive-offer"
	EventReceiveAnswer    EventName = "receive-answer"
	EventReceiveCandidate EventName = "receive-icecandidate"
	EventParticipantLeft  EventName = "participant-left"
	EventViewerCount      EventName = "viewer_count"
	EventBroadcastMessage EventName = "broadcast-message"
	EventPersonalMessage  EventName = "receive-personal-message"
)

// Event is a decoded inbound event. The implementations below are the
// complete set; the router switches over them.
type Event interface {
	Name() EventName
	inbound()
}

type SetUsername struct {
	DisplayName string
}

type JoinCall struct {
	Session domain.SessionID
}

// Relay carries an offer, answer or ICE candidate for a single peer.
type Relay struct {
	Kind    EventName
	To      domain.ConnectionID
	Payload json.RawMessage
}

type ScreenShare struct {
	Session domain.SessionID
	Active  bool
}

type CreateStream struct {
	Session domain.SessionID
}

type JoinStream struct {
	Session domain.SessionID
}

type ChatMessage struct {
	To      domain.SessionID
	Message string
}

type PersonalChat struct {
	To      domain.ConnectionID
	Message string
}

func (SetUsername) Name() EventName  { return EventSetUsername }
func (JoinCall) Name() EventName     { return EventJoinCall }
func (e Relay) Name() EventName      { return e.Kind }
func (CreateStream) Name() EventName { return EventCreateStream }
func (JoinStream) Name() EventName   { return EventJoinStream }
func (ChatMessage) Name() EventName  { return EventChatMessage }
func (PersonalChat) Name() EventName { return EventPersonalChat }

func (e ScreenShare) Name() EventName {
	if e.Active {
		return EventStartScreenShare
	}
	return EventStopScreenShare
}

func (SetUsername) inbound()  {}
func (JoinCall) inbound()     {}
func (Relay) inbound()        {}
func (ScreenShare) inbound()  {}
func (CreateStream) inbound() {}
func (JoinStream) inbound()   {}
func (ChatMessage) inbound()  {}
func (PersonalChat) inbound() {}

// relayField is the payload key used by both directions of a relay.
func relayField(kind EventName) string {
	switch kind {
	case EventOffer:
		return "offer"
	case EventAnswer:
		return "answer"
	default:
		return "candidate"
	}
}

// RelayOutName maps an inbound relay kind to the name the target receives.
func RelayOutName(kind EventName) EventName {
	switch kind {
	case EventOffer:
		return EventReceiveOffer
	case EventAnswer:
		return EventReceiveAnswer
	default:
		return EventReceiveCandidate
	}
}
