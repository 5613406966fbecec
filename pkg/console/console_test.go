package console

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/qnkhuat/chesscoach/pkg/applog"
	"github.com/qnkhuat/chesscoach/pkg/opponent"
	"github.com/qnkhuat/chesscoach/pkg/rules"
	"github.com/qnkhuat/chesscoach/pkg/session"
)

var immediate = session.SchedulerFunc(func(d time.Duration, fn func()) { fn() })

func newConsole(t *testing.T, input string, jsonMode bool) (*Console, *session.Session, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	out := &bytes.Buffer{}
	c := New(strings.NewReader(input), out, jsonMode, applog.Discard())
	s, err := session.New(session.Options{
		ID:        "console",
		Scheduler: immediate,
		Sink:      c,
		Logger:    applog.Discard(),
		Rand:      rand.New(rand.NewSource(3)),
		Welcome:   Welcome,
	})
	if err != nil {
		t.Fatal(err)
	}
	c.Bind(s)
	return c, s, out
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Command
	}{
		{"e2e4", Command{Kind: CommandMove, From: "e2", To: "e4"}},
		{"E2 E4", Command{Kind: CommandMove, From: "e2", To: "e4"}},
		{"e2-e4", Command{Kind: CommandMove, From: "e2", To: "e4"}},
		{"e7e8q", Command{Kind: CommandMove, From: "e7", To: "e8"}},
		{"new", Command{Kind: CommandNewGame}},
		{"level hard", Command{Kind: CommandDifficulty, Difficulty: opponent.Hard}},
		{"level 1", Command{Kind: CommandDifficulty, Difficulty: opponent.Easy}},
		{"hint g1", Command{Kind: CommandHint, Square: "g1"}},
		{"board", Command{Kind: CommandBoard}},
		{"?", Command{Kind: CommandHelp}},
		{"quit", Command{Kind: CommandQuit}},
		{`{"type":"move","payload":{"from":"d2","to":"d4"}}`, Command{Kind: CommandMove, From: "d2", To: "d4"}},
		{`{"type":"difficulty","payload":{"level":"easy"}}`, Command{Kind: CommandDifficulty, Difficulty: opponent.Easy}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in  string
		err error
	}{
		{"dance", ErrUnknownCommand},
		{"z9e4", ErrUnknownCommand},
		{"e2e4z", ErrUnknownCommand},
		{"e7e8n", ErrUnknownCommand},
		{"level", ErrUnknownCommand},
		{"level impossible", opponent.ErrUnknownDifficulty},
		{"hint k9", rules.ErrMalformedSquare},
	}
	for _, tt := range tests {
		if _, err := Parse(tt.in); !errors.Is(err, tt.err) {
			t.Fatalf("Parse(%q) error = %v, want %v", tt.in, err, tt.err)
		}
	}
}

func TestRunText(t *testing.T) {
	c, s, out := newConsole(t, "e2e4\nhint b1\nquit\ne2e3\n", false)
	if err := c.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	text := out.String()
	for _, want := range []string{Welcome, "Coach: ", "Moves: e4 ", "b1 can go to: ", "White's Turn"} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
	hint := text[strings.Index(text, "b1 can go to: "):]
	hint = hint[:strings.Index(hint, "\n")]
	if !strings.Contains(hint, "a3") || !strings.Contains(hint, "c3") {
		t.Fatalf("hint line %q", hint)
	}
	if got := len(s.Engine().HistorySAN()); got != 2 {
		t.Fatalf("played %d plies, want 2", got)
	}
}

func TestRunTextIllegalMove(t *testing.T) {
	c, s, out := newConsole(t, "e2e5\n", false)
	if err := c.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), session.MsgIllegal) {
		t.Fatalf("output missing illegal move hint:\n%s", out.String())
	}
	if len(s.Engine().HistorySAN()) != 0 {
		t.Fatal("illegal move was played")
	}
}

func TestRunJSON(t *testing.T) {
	input := strings.Join([]string{
		`{"type":"move","payload":{"from":"e2","to":"e4"}}`,
		`{"type":"hint","payload":{"square":"b1"}}`,
		`dance`,
	}, "\n")
	c, _, out := newConsole(t, input, true)
	if err := c.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	types := map[string]int{}
	scanner := bufio.NewScanner(out)
	scanner.Buffer(nil, 1<<20)
	for scanner.Scan() {
		var transport struct {
			Type    string          `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &transport); err != nil {
			t.Fatalf("line is not JSON: %s", scanner.Text())
		}
		types[transport.Type]++
	}
	if types["state"] < 3 || types["hint"] != 1 || types["error"] != 1 {
		t.Fatalf("unexpected message mix %v", types)
	}
}

func TestRunWithoutSession(t *testing.T) {
	c := New(strings.NewReader(""), &bytes.Buffer{}, false, applog.Discard())
	if err := c.Run(context.Background()); err == nil {
		t.Fatal("expected an error without a session")
	}
}
