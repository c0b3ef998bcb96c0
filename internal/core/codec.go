package core

import (
	"errors"
	"fmt"

	"github.com/dkeye/Relay/internal/domain"
	"github.com/goccy/go-json"
)

var (
	ErrUnknownEvent = errors.New("unknown event")
	ErrBadPayload   = errors.New("bad payload")
)

type envelope struct {
	Event EventName       `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type relayPayload struct {
	To        domain.ConnectionID `json:"to"`
	Offer     json.RawMessage     `json:"offer"`
	Answer    json.RawMessage     `json:"answer"`
	Candidate json.RawMessage     `json:"candidate"`
}

type chatPayload struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// Decode parses one inbound frame into its typed event.
func Decode(raw []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	switch env.Event {
	case EventSetUsername, EventJoinCall, EventStartScreenShare, EventStopScreenShare,
		EventCreateStream, EventJoinStream:
		var s string
		if err := decodeData(env, &s); err != nil {
			return nil, err
		}
		return stringEvent(env.Event, s), nil
	case EventOffer, EventAnswer, EventICECandidate:
		var p relayPayload
		if err := decodeData(env, &p); err != nil {
			return nil, err
		}
		e := Relay{Kind: env.Event, To: p.To}
		switch env.Event {
		case EventOffer:
			e.Payload = p.Offer
		case EventAnswer:
			e.Payload = p.Answer
		default:
			e.Payload = p.Candidate
		}
		return e, nil
	case EventChatMessage:
		var p chatPayload
		if err := decodeData(env, &p); err != nil {
			return nil, err
		}
		return ChatMessage{To: domain.SessionID(p.To), Message: p.Message}, nil
	case EventPersonalChat:
		var p chatPayload
		if err := decodeData(env, &p); err != nil {
			return nil, err
		}
		return PersonalChat{To: domain.ConnectionID(p.To), Message: p.Message}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Event)
	}
}

func decodeData(env envelope, v any) error {
	if len(env.Data) == 0 {
		return fmt.Errorf("%w: %s without data", ErrBadPayload, env.Event)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadPayload, env.Event, err)
	}
	return nil
}

// stringEvent builds the events whose whole payload is one string.
func stringEvent(name EventName, s string) Event {
	switch name {
	case EventSetUsername:
		return SetUsername{DisplayName: s}
	case EventJoinCall:
		return JoinCall{Session: domain.SessionID(s)}
	case EventCreateStream:
		return CreateStream{Session: domain.SessionID(s)}
	case EventJoinStream:
		return JoinStream{Session: domain.SessionID(s)}
	default:
		return ScreenShare{Session: domain.SessionID(s), Active: name == EventStartScreenShare}
	}
}

// Encode renders an outbound event as a wire frame.
func Encode(out Outbound) (Frame, error) {
	data, err := json.Marshal(out.Data)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", out.Name, err)
	}
	b, err := json.Marshal(envelope{Event: out.Name, Data: data})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", out.Name, err)
	}
	return b, nil
}
