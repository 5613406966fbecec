package protocol

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/qnkhuat/chesscoach/pkg/session"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		in   string
		want MessageInterface
	}{
		{`{"type":"move","payload":{"from":"e2","to":"e4"}}`, MessageMove{From: "e2", To: "e4"}},
		{`{"type":"newGame"}`, MessageNewGame{}},
		{`{"type":"difficulty","payload":{"level":"hard"}}`, MessageDifficulty{Level: "hard"}},
		{`{"type":"hint","payload":{"square":"g1"}}`, MessageHint{Square: "g1"}},
	}
	for _, tt := range tests {
		got, err := Decode([]byte(tt.in))
		if err != nil {
			t.Fatalf("Decode(%s): %v", tt.in, err)
		}
		if got.Type() != tt.want.Type() {
			t.Fatalf("Decode(%s) type %s, want %s", tt.in, got.Type(), tt.want.Type())
		}
		switch want := tt.want.(type) {
		case MessageMove:
			if got.(MessageMove) != want {
				t.Fatalf("got %+v want %+v", got, want)
			}
		case MessageDifficulty:
			if got.(MessageDifficulty) != want {
				t.Fatalf("got %+v want %+v", got, want)
			}
		case MessageHint:
			if got.(MessageHint).Square != want.Square {
				t.Fatalf("got %+v want %+v", got, want)
			}
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, in := range []string{`nope`, `{"type":"dance"}`, `{"type":"move"}`, `{"type":"state","payload":{}}`} {
		if _, err := Decode([]byte(in)); err == nil {
			t.Fatalf("Decode(%s) should fail", in)
		}
	}
	if _, err := Decode([]byte(`{"type":"dance"}`)); !errors.Is(err, ErrUnknownMessage) {
		t.Fatalf("expected ErrUnknownMessage, got %v", err)
	}
}

func TestEncodeState(t *testing.T) {
	b := Encode(MessageState{session.Update{ID: "abc", Message: "hi", Phase: session.GameOver}})
	var transport struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(b, &transport); err != nil {
		t.Fatal(err)
	}
	if transport.Type != "state" {
		t.Fatalf("type = %s", transport.Type)
	}
	if !strings.Contains(string(transport.Payload), `"phase":"gameOver"`) {
		t.Fatalf("payload = %s", transport.Payload)
	}
}
