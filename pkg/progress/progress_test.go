package progress

import (
	"testing"

	"github.com/qnkhuat/chesscoach/pkg/rules"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		flags rules.Flags
		kind  Kind
		xp    int
	}{
		{"normal", rules.Normal, KindMove, MoveXP},
		{"capture", rules.Capture, KindCapture, CaptureXP},
		{"en passant", rules.EnPassant, KindCapture, CaptureXP},
		{"kingside", rules.KingsideCastle, KindCastle, CastleXP},
		{"queenside", rules.QueensideCastle, KindCastle, CastleXP},
		{"promotion", rules.Promotion, KindPromotion, PromotionXP},
		{"capture and promotion", rules.Capture | rules.Promotion, KindPromotion, PromotionXP},
		{"promotion capture", rules.Capture | rules.Promotion | rules.PromotionCapture, KindPromotion, PromotionXP},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Classify(rules.Move{Flags: tt.flags})
			if a.Kind != tt.kind || a.XP != tt.xp {
				t.Fatalf("Classify(%s) = %v/%d, want %v/%d", tt.flags, a.Kind, a.XP, tt.kind, tt.xp)
			}
			if a.Message == "" {
				t.Fatal("award without a message")
			}
		})
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name   string
		start  State
		add    int
		want   State
		levels int
	}{
		{"within level", State{XP: 10, Level: 1}, 2, State{XP: 12, Level: 1}, 0},
		{"exact rollover", State{XP: 90, Level: 1}, 10, State{XP: 0, Level: 2}, 1},
		{"rollover", State{XP: 80, Level: 1}, 60, State{XP: 40, Level: 2}, 1},
		{"double rollover", State{XP: 0, Level: 1}, 250, State{XP: 50, Level: 3}, 2},
		{"zero", State{XP: 5, Level: 4}, 0, State{XP: 5, Level: 4}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.start
			levels := s.Add(tt.add)
			if s != tt.want || levels != tt.levels {
				t.Fatalf("Add(%d) from %+v = %+v (%d levels), want %+v (%d levels)", tt.add, tt.start, s, levels, tt.want, tt.levels)
			}
		})
	}
}

func TestFill(t *testing.T) {
	s := NewState()
	if s.Fill() != 0 || s.Level != 1 {
		t.Fatalf("unexpected new state %+v", s)
	}
	s.Add(CheckmateXP)
	if s.Fill() != 50 {
		t.Fatalf("Fill = %d, want 50", s.Fill())
	}
}
