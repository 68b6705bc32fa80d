package ws

import (
	"encoding/json"
)

// MessageType tells the client or server how to read Payload.
type MessageType string

const (
	// client -> server
	MessageTypeMove   MessageType = "move"
	MessageTypeSelect MessageType = "select"
	MessageTypeReset  MessageType = "reset"

	// server -> client
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewMessage encodes v as the payload of a message of type t.
func NewMessage(t MessageType, v any) (Message, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: payload}, nil
}
