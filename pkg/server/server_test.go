package server

import (
	"reflect"
	"strings"
	"testing"
)

func TestNickname(t *testing.T) {
	tests := []struct {
		user string
		want string
	}{
		{"alice", "alice"},
		{"bob smith", "bobsmith"},
		{"<script>", "script"},
		{"averyveryverylongusername", "averyveryverylon"},
	}
	for _, tt := range tests {
		if got := Nickname(tt.user); got != tt.want {
			t.Fatalf("Nickname(%q) = %q, want %q", tt.user, got, tt.want)
		}
	}
}

func TestNicknameGenerated(t *testing.T) {
	for _, user := range []string{"", "root", "!!!"} {
		got := Nickname(user)
		if got == "" || got == user || !strings.Contains(got, "-") {
			t.Fatalf("Nickname(%q) = %q, want a generated name", user, got)
		}
	}
}

func TestCommandArgs(t *testing.T) {
	want := []string{"--ui", "tui", "--name", "alice"}
	if got := CommandArgs("alice"); !reflect.DeepEqual(got, want) {
		t.Fatalf("CommandArgs = %v", got)
	}
}

func TestNewNeedsCommand(t *testing.T) {
	if _, err := New(Options{Addr: ":0"}); err == nil {
		t.Fatal("expected an error without a command")
	}
}
