// Package protocol defines the JSON envelopes exchanged with headless and
// websocket front ends.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/qnkhuat/chesscoach/pkg/session"
)

var ErrUnknownMessage = errors.New("unknown message type")

type MessageType int

const (
	TypeMessageState MessageType = iota
	TypeMessageMove
	TypeMessageNewGame
	TypeMessageDifficulty
	TypeMessageHint
	TypeMessageError
)

var messageNames = map[MessageType]string{
	TypeMessageState:      "state",
	TypeMessageMove:       "move",
	TypeMessageNewGame:    "newGame",
	TypeMessageDifficulty: "difficulty",
	TypeMessageHint:       "hint",
	TypeMessageError:      "error",
}

func (m MessageType) String() string {
	if name, ok := messageNames[m]; ok {
		return name
	}
	return "unknown"
}

func (m MessageType) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MessageType) UnmarshalText(b []byte) error {
	for t, name := range messageNames {
		if name == string(b) {
			*m = t
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownMessage, b)
}

type MessageInterface interface {
	Type() MessageType
}

// MessageTransport wraps every message on the wire.
type MessageTransport struct {
	MsgType MessageType     `json:"type"`
	Data    json.RawMessage `json:"payload,omitempty"`
}

type MessageState struct {
	session.Update
}

func (m MessageState) Type() MessageType { return TypeMessageState }

type MessageMove struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (m MessageMove) Type() MessageType { return TypeMessageMove }

type MessageNewGame struct{}

func (m MessageNewGame) Type() MessageType { return TypeMessageNewGame }

type MessageDifficulty struct {
	Level string `json:"level"`
}

func (m MessageDifficulty) Type() MessageType { return TypeMessageDifficulty }

type MessageHint struct {
	Square  string   `json:"square"`
	Targets []string `json:"targets,omitempty"`
}

func (m MessageHint) Type() MessageType { return TypeMessageHint }

type MessageError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (m MessageError) Type() MessageType { return TypeMessageError }

// Encode wraps m in a transport and returns one JSON document.
func Encode(m MessageInterface) []byte {
	data, err := json.Marshal(m)
	if err != nil {
		log.Panicf("Failed to encode %s: %s", m.Type(), err)
	}
	b, err := json.Marshal(MessageTransport{MsgType: m.Type(), Data: data})
	if err != nil {
		log.Panicf("Failed to encode transport: %s", err)
	}
	return b
}

// Decode parses one inbound JSON document.
func Decode(b []byte) (MessageInterface, error) {
	var transport MessageTransport
	if err := json.Unmarshal(b, &transport); err != nil {
		return nil, fmt.Errorf("decode transport: %w", err)
	}
	var m MessageInterface
	switch transport.MsgType {
	case TypeMessageMove:
		m = &MessageMove{}
	case TypeMessageNewGame:
		return MessageNewGame{}, nil
	case TypeMessageDifficulty:
		m = &MessageDifficulty{}
	case TypeMessageHint:
		m = &MessageHint{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMessage, transport.MsgType)
	}
	if len(transport.Data) == 0 {
		return nil, fmt.Errorf("decode %s: missing payload", transport.MsgType)
	}
	if err := json.Unmarshal(transport.Data, m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", transport.MsgType, err)
	}
	switch v := m.(type) {
	case *MessageMove:
		return *v, nil
	case *MessageDifficulty:
		return *v, nil
	case *MessageHint:
		return *v, nil
	}
	return m, nil
}
