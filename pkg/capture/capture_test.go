package capture

import (
	"encoding/json"
	"testing"

	"github.com/notnil/chess"
	"github.com/qnkhuat/chesscoach/pkg/rules"
)

func equal(a, b []chess.PieceType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestComputeAtStart(t *testing.T) {
	sets := Compute(rules.NewGame())
	if len(sets.ByWhite) != 0 || len(sets.ByBlack) != 0 {
		t.Fatalf("expected no captures at start, got %+v", sets)
	}
	white, black := Count(rules.NewGame())
	for pt, n := range Standard {
		if white[pt] != n || black[pt] != n {
			t.Fatalf("%v: white %d black %d, want %d", pt, white[pt], black[pt], n)
		}
	}
}

func TestComputeAfterPawnCapture(t *testing.T) {
	g := rules.NewGame()
	for _, m := range [][2]chess.Square{{chess.E2, chess.E4}, {chess.D7, chess.D5}, {chess.E4, chess.D5}} {
		if _, err := g.Apply(m[0], m[1], chess.NoPieceType); err != nil {
			t.Fatalf("Apply: %v", err)
		}
	}
	sets := Compute(g)
	if !equal(sets.ByWhite, []chess.PieceType{chess.Pawn}) {
		t.Fatalf("ByWhite = %v, want [pawn]", sets.ByWhite)
	}
	if len(sets.ByBlack) != 0 {
		t.Fatalf("ByBlack = %v, want empty", sets.ByBlack)
	}
}

func TestComputeOrder(t *testing.T) {
	// black is missing a queen, a rook, a knight and two pawns
	g, err := rules.GameFromFEN("1nb1kb2/r1pppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQ - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	sets := Compute(g)
	want := []chess.PieceType{chess.Pawn, chess.Pawn, chess.Knight, chess.Rook, chess.Queen}
	if !equal(sets.ByWhite, want) {
		t.Fatalf("ByWhite = %v, want %v", sets.ByWhite, want)
	}
	if got := Value(sets.ByWhite, map[chess.PieceType]int{chess.Pawn: 1, chess.Knight: 3, chess.Rook: 5, chess.Queen: 9}); got != 19 {
		t.Fatalf("Value = %d, want 19", got)
	}
}

func TestPromotionUndercounts(t *testing.T) {
	// a promoted second queen hides the missing pawn
	g, err := rules.GameFromFEN("4k3/8/8/8/8/8/8/QQ2K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	sets := Compute(g)
	for _, pt := range sets.ByBlack {
		if pt == chess.Queen {
			t.Fatal("an extra queen must not be reported as captured")
		}
	}
	if len(sets.ByBlack) != 8+2+2+2 {
		t.Fatalf("ByBlack has %d pieces, want 14", len(sets.ByBlack))
	}
}

func TestMarshalJSON(t *testing.T) {
	b, err := json.Marshal(Sets{ByWhite: []chess.PieceType{chess.Pawn, chess.Queen}, ByBlack: []chess.PieceType{}})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), `{"byWhite":["pawn","queen"],"byBlack":[]}`; got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}
