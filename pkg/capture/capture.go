// Package capture derives the captured pieces of each side from the pieces
// still standing on the board.
package capture

import (
	"encoding/json"

	"github.com/notnil/chess"
)

// Board is anything that can report the piece on a square.
type Board interface {
	PieceAt(sq chess.Square) chess.Piece
}

// Material counts pieces per kind for one colour.
type Material map[chess.PieceType]int

// Order is the display order of captured pieces. Kings are never captured.
var Order = []chess.PieceType{chess.Pawn, chess.Knight, chess.Bishop, chess.Rook, chess.Queen}

// Standard is the material each side starts with.
var Standard = Material{
	chess.Pawn:   8,
	chess.Knight: 2,
	chess.Bishop: 2,
	chess.Rook:   2,
	chess.Queen:  1,
	chess.King:   1,
}

// Count returns the material currently on the board.
func Count(b Board) (white, black Material) {
	white, black = Material{}, Material{}
	for sq := chess.A1; sq <= chess.H8; sq++ {
		p := b.PieceAt(sq)
		if p == chess.NoPiece {
			continue
		}
		switch p.Color() {
		case chess.White:
			white[p.Type()]++
		case chess.Black:
			black[p.Type()]++
		}
	}
	return white, black
}

// Sets holds the pieces taken by each side.
type Sets struct {
	ByWhite []chess.PieceType // black pieces missing
	ByBlack []chess.PieceType // white pieces missing
}

// Compute returns the captured sets as standard minus current counts. A
// promoted pawn hides a capture, which is accepted.
func Compute(b Board) Sets {
	white, black := Count(b)
	return Sets{
		ByWhite: missing(black),
		ByBlack: missing(white),
	}
}

func missing(current Material) []chess.PieceType {
	out := []chess.PieceType{}
	for _, pt := range Order {
		for i := current[pt]; i < Standard[pt]; i++ {
			out = append(out, pt)
		}
	}
	return out
}

// Value sums the piece values of a set using the given table.
func Value(set []chess.PieceType, values map[chess.PieceType]int) int {
	total := 0
	for _, pt := range set {
		total += values[pt]
	}
	return total
}

var kindNames = map[chess.PieceType]string{
	chess.Pawn:   "pawn",
	chess.Knight: "knight",
	chess.Bishop: "bishop",
	chess.Rook:   "rook",
	chess.Queen:  "queen",
	chess.King:   "king",
}

func names(set []chess.PieceType) []string {
	out := make([]string, 0, len(set))
	for _, pt := range set {
		out = append(out, kindNames[pt])
	}
	return out
}

func (s Sets) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ByWhite []string `json:"byWhite"`
		ByBlack []string `json:"byBlack"`
	}{names(s.ByWhite), names(s.ByBlack)})
}
