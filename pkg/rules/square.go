package rules

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

const (
	numrows             = 8
	numcols             = 8
	numOfSquaresInBoard = numrows * numcols
)

// Square reexports the rules engine square so callers don't need both imports.
type Square = chess.Square

func getSquare(f chess.File, r chess.Rank) chess.Square {
	return chess.Square((int(r) * numcols) + int(f))
}

// ParseSquare converts algebraic notation ("e4") into a square.
func ParseSquare(s string) (chess.Square, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return chess.NoSquare, fmt.Errorf("%w: %q", ErrMalformedSquare, s)
	}
	return getSquare(chess.File(s[0]-'a'), chess.Rank(s[1]-'1')), nil
}

// Squares lists every square from a1 to h8.
func Squares() []chess.Square {
	out := make([]chess.Square, 0, numOfSquaresInBoard)
	for sq := chess.A1; sq <= chess.H8; sq++ {
		out = append(out, sq)
	}
	return out
}

// SquareAt maps a display row (0 is the top rank) and file column to a square,
// seen from the given side.
func SquareAt(row, col int, side chess.Color) chess.Square {
	if side != chess.Black {
		row = numrows - row - 1
	} else {
		col = numcols - col - 1
	}
	return chess.Square(row*numcols + col)
}

// IsLight reports whether the square is a light square.
func IsLight(sq chess.Square) bool {
	return (int(sq.File())+int(sq.Rank()))%2 != 0
}

var pieceNames = map[chess.PieceType]string{
	chess.Pawn:   "Pawn",
	chess.Knight: "Knight",
	chess.Bishop: "Bishop",
	chess.Rook:   "Rook",
	chess.Queen:  "Queen",
	chess.King:   "King",
}

// PieceName returns the friendly name of a piece kind.
func PieceName(pt chess.PieceType) string {
	if name, ok := pieceNames[pt]; ok {
		return name
	}
	return "Piece"
}

// ColorName returns "white" or "black".
func ColorName(c chess.Color) string {
	switch c {
	case chess.White:
		return "white"
	case chess.Black:
		return "black"
	default:
		return "none"
	}
}
