package ws

import (
	"encoding/json"
	"fmt"

	"pollroom/internal/domain"
)

// MessageType represents the type of a WebSocket message
type MessageType string

// Server → Client message types
const (
	MsgRegistered       MessageType = "registered"
	MsgInitialPollState MessageType = "initialPollState"
	MsgNewPoll          MessageType = "newPoll"
	MsgPollStateUpdate  MessageType = "pollStateUpdate"
	MsgPollEnded        MessageType = "pollEnded"
	MsgUpdateClientList MessageType = "updateClientList"
	MsgReceiveMessage   MessageType = "receiveMessage"
	MsgKickedOut        MessageType = "kickedOut"
	MsgError            MessageType = "error"
)

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ClientMessage represents a message from client to server. The type
// is the action's wire name.
type ClientMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// NewClientMessage wraps an action into its wire envelope
func NewClientMessage(action domain.Action) *ClientMessage {
	return &ClientMessage{
		Type:    MessageType(action.ActionType()),
		Payload: action,
	}
}

// DecodeServerMessage parses a raw frame into the session event it
// carries
func DecodeServerMessage(data []byte) (domain.Event, error) {
	var msg ServerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	switch msg.Type {
	case MsgRegistered:
		var identity domain.ClientIdentity
		if err := json.Unmarshal(msg.Payload, &identity); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", msg.Type, err)
		}
		return domain.RegistrationAck{Identity: identity}, nil

	case MsgInitialPollState:
		var ev domain.InitialPollState
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", msg.Type, err)
		}
		return ev, nil

	case MsgNewPoll:
		var poll domain.PollDefinition
		if err := json.Unmarshal(msg.Payload, &poll); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", msg.Type, err)
		}
		return domain.NewPoll{Poll: poll}, nil

	case MsgPollStateUpdate:
		var ev domain.PollStateUpdate
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", msg.Type, err)
		}
		return ev, nil

	case MsgPollEnded:
		var ev domain.PollEnded
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", msg.Type, err)
		}
		return ev, nil

	case MsgUpdateClientList:
		var ev domain.RosterUpdate
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", msg.Type, err)
		}
		return ev, nil

	case MsgReceiveMessage:
		var chat domain.ChatMessage
		if err := json.Unmarshal(msg.Payload, &chat); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", msg.Type, err)
		}
		return domain.ChatReceived{Message: chat}, nil

	case MsgKickedOut:
		// A kick may arrive without a reason; the event still counts.
		var ev domain.KickedOut
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &ev); err != nil {
				return nil, fmt.Errorf("decode %s payload: %w", msg.Type, err)
			}
		}
		return ev, nil

	case MsgError:
		var ev domain.ServerError
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &ev); err != nil {
				return nil, fmt.Errorf("decode %s payload: %w", msg.Type, err)
			}
		}
		return ev, nil

	default:
		return nil, fmt.Errorf("unknown message type %q", msg.Type)
	}
}
