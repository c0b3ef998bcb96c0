package core

import (
	"github.com/dkeye/Relay/internal/domain"
	"github.com/goccy/go-json"
)

// Outbound is an event on its way to one or more connections.
type Outbound struct {
	Name EventName
	Data any
}

type peerJoined struct {
	ID       domain.ConnectionID `json:"id"`
	Username string              `json:"username"`
}

type viewerJoined struct {
	ID domain.ConnectionID `json:"id"`
}

type broadcastMessage struct {
	Message string              `json:"message"`
	From    domain.ConnectionID `json:"from"`
}

type personalMessage struct {
	Message  string              `json:"message"`
	From     domain.ConnectionID `json:"from"`
	Username string              `json:"username"`
}

func Connected(id domain.ConnectionID) Outbound {
	return Outbound{Name: EventConnected, Data: map[string]domain.ConnectionID{"id": id}}
}

// PeerJoined announces a call newcomer. The username key is always present,
// even when the name is empty.
func PeerJoined(id domain.ConnectionID, username string) Outbound {
	return Outbound{Name: EventPeerJoined, Data: peerJoined{ID: id, Username: username}}
}

// ViewerJoined announces a stream newcomer, which carries no name.
func ViewerJoined(id domain.ConnectionID) Outbound {
	return Outbound{Name: EventPeerJoined, Data: viewerJoined{ID: id}}
}

// Participants encodes the membership as [id, username] pairs.
func Participants(members []domain.Member) Outbound {
	pairs := make([][2]string, 0, len(members))
	for _, m := range members {
		pairs = append(pairs, [2]string{string(m.ID), m.DisplayName})
	}
	return Outbound{Name: EventParticipants, Data: pairs}
}

func RelayFrom(kind EventName, from domain.ConnectionID, payload json.RawMessage) Outbound {
	if payload == nil {
		payload = json.RawMessage("null")
	}
	return Outbound{
		Name: RelayOutName(kind),
		Data: map[string]any{"from": from, relayField(kind): payload},
	}
}

func ScreenShareFrom(e ScreenShare, from domain.ConnectionID) Outbound {
	return Outbound{Name: e.Name(), Data: from}
}

func ParticipantLeft(id domain.ConnectionID) Outbound {
	return Outbound{Name: EventParticipantLeft, Data: id}
}

func ViewerCount(n int) Outbound {
	return Outbound{Name: EventViewerCount, Data: n}
}

func BroadcastMessage(msg string, from domain.ConnectionID) Outbound {
	return Outbound{Name: EventBroadcastMessage, Data: broadcastMessage{Message: msg, From: from}}
}

func PersonalMessage(msg string, from domain.ConnectionID, username string) Outbound {
	return Outbound{
		Name: EventPersonalMessage,
		Data: personalMessage{Message: msg, From: from, Username: username},
	}
}
