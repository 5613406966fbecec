package rules

import (
	"errors"
	"testing"

	"github.com/notnil/chess"
)

func mustSquare(t *testing.T, s string) chess.Square {
	t.Helper()
	sq, err := ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return sq
}

func mustFEN(t *testing.T, fen string) *Game {
	t.Helper()
	g, err := GameFromFEN(fen)
	if err != nil {
		t.Fatalf("GameFromFEN: %v", err)
	}
	return g
}

func play(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if _, err := g.Apply(mustSquare(t, m[:2]), mustSquare(t, m[2:4]), chess.NoPieceType); err != nil {
			t.Fatalf("Apply %s: %v", m, err)
		}
	}
}

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in   string
		want chess.Square
		err  bool
	}{
		{"a1", chess.A1, false},
		{"e4", chess.E4, false},
		{"H8", chess.H8, false},
		{" g7 ", chess.G7, false},
		{"i1", chess.NoSquare, true},
		{"a9", chess.NoSquare, true},
		{"e", chess.NoSquare, true},
		{"", chess.NoSquare, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSquare(tt.in)
			if tt.err {
				if !errors.Is(err, ErrMalformedSquare) {
					t.Fatalf("expected ErrMalformedSquare, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("ParseSquare(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestApplyRejectsIllegalMove(t *testing.T) {
	g := NewGame()
	before := g.FEN()
	_, err := g.Apply(chess.E2, chess.E5, chess.NoPieceType)
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
	if g.FEN() != before {
		t.Fatalf("position changed after illegal move: %s", g.FEN())
	}
}

func TestUndoRestoresPosition(t *testing.T) {
	g := NewGame()
	if err := g.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
	play(t, g, "e2e4", "e7e5")
	before := g.FEN()
	play(t, g, "g1f3")
	if err := g.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if g.FEN() != before {
		t.Fatalf("Undo: got %s want %s", g.FEN(), before)
	}
	if got := len(g.HistorySAN()); got != 2 {
		t.Fatalf("history length %d, want 2", got)
	}
}

func TestUndoStopsAtCustomStart(t *testing.T) {
	fen := "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"
	g := mustFEN(t, fen)
	play(t, g, "e2e4")
	if err := g.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if g.FEN() != fen {
		t.Fatalf("Undo: got %s want %s", g.FEN(), fen)
	}
	g.Reset()
	if g.FEN() != StartFEN {
		t.Fatalf("Reset: got %s want %s", g.FEN(), StartFEN)
	}
}

func TestMoveFlags(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		move  string
		want  Flags
		piece chess.PieceType
	}{
		{"quiet", StartFEN, "g1f3", Normal, chess.Knight},
		{"capture", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", "e4d5", Capture, chess.Pawn},
		{"en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2", "e5d6", EnPassant, chess.Pawn},
		{"kingside castle", "4k3/8/8/8/8/8/8/4K2R w K - 0 1", "e1g1", KingsideCastle, chess.King},
		{"queenside castle", "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1", "e1c1", QueensideCastle, chess.King},
		{"promotion", "4k3/1P6/8/8/8/8/8/4K3 w - - 0 1", "b7b8", Promotion, chess.Pawn},
		{"promotion capture", "r3k3/1P6/8/8/8/8/8/4K3 w - - 0 1", "b7a8", Capture | Promotion | PromotionCapture, chess.Pawn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustFEN(t, tt.fen)
			m, err := g.Apply(mustSquare(t, tt.move[:2]), mustSquare(t, tt.move[2:]), chess.NoPieceType)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if m.Flags != tt.want {
				t.Fatalf("flags = %s, want %s", m.Flags, tt.want)
			}
			if m.Piece != tt.piece {
				t.Fatalf("piece = %v, want %v", m.Piece, tt.piece)
			}
		})
	}
}

func TestPromotionDefaultsToQueen(t *testing.T) {
	g := mustFEN(t, "4k3/1P6/8/8/8/8/8/4K3 w - - 0 1")
	m, err := g.Apply(chess.B7, chess.B8, chess.NoPieceType)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if m.Promotion != chess.Queen || g.PieceAt(chess.B8) != chess.WhiteQueen {
		t.Fatalf("expected queen promotion, got %v on b8", g.PieceAt(chess.B8))
	}
	if m.UCI() != "b7b8q" {
		t.Fatalf("UCI = %s", m.UCI())
	}
}

func TestLegalMovesFromSquare(t *testing.T) {
	g := NewGame()
	if got := len(g.LegalMoves(chess.NoSquare)); got != 20 {
		t.Fatalf("all legal moves = %d, want 20", got)
	}
	if got := len(g.LegalMoves(chess.G1)); got != 2 {
		t.Fatalf("knight moves = %d, want 2", got)
	}
	if got := len(g.LegalMoves(chess.A1)); got != 0 {
		t.Fatalf("rook moves = %d, want 0", got)
	}
}

func TestCheckmateAndHistory(t *testing.T) {
	g := NewGame()
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	if !g.IsCheckmate() || !g.IsGameOver() || g.Outcome() != chess.BlackWon {
		t.Fatalf("expected black to have mated, outcome %v method %v", g.Outcome(), g.Method())
	}
	if !g.InCheck() {
		t.Fatal("mated side should be in check")
	}
	want := []string{"f3", "e5", "g4", "Qh4#"}
	got := g.HistorySAN()
	if len(got) != len(want) {
		t.Fatalf("history = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("history = %v, want %v", got, want)
		}
	}
	if _, err := g.Apply(chess.E2, chess.E4, chess.NoPieceType); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected moves after mate to be rejected, got %v", err)
	}
}

func TestThreefoldRepetitionIsClaimed(t *testing.T) {
	g := NewGame()
	play(t, g, "g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8")
	if !g.IsDraw() || g.Method() != chess.ThreefoldRepetition {
		t.Fatalf("expected threefold draw, outcome %v method %v", g.Outcome(), g.Method())
	}
	if err := g.Undo(); err != nil {
		t.Fatal(err)
	}
	if g.IsGameOver() || len(g.LegalMoves(chess.NoSquare)) == 0 {
		t.Fatalf("undo should reopen the game, outcome %v", g.Outcome())
	}
	if got := len(g.HistorySAN()); got != 7 {
		t.Fatalf("history length %d, want 7", got)
	}
}

func TestStalemate(t *testing.T) {
	g := mustFEN(t, "7k/8/6Q1/8/8/8/8/4K3 w - - 0 1")
	play(t, g, "e1e2")
	// black king on h8, queen g6: no legal moves, not in check
	if !g.IsDraw() || g.Method() != chess.Stalemate {
		t.Fatalf("expected stalemate, outcome %v method %v", g.Outcome(), g.Method())
	}
}
