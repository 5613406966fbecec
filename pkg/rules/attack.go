package rules

import (
	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

// Attack tables, indexed a1=0 .. h8=63 like both engines.
var (
	knightMasks [numOfSquaresInBoard]uint64
	kingMasks   [numOfSquaresInBoard]uint64
)

func init() {
	knightSteps := [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps := [][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	for sq := 0; sq < numOfSquaresInBoard; sq++ {
		knightMasks[sq] = stepMask(sq, knightSteps)
		kingMasks[sq] = stepMask(sq, kingSteps)
	}
}

func stepMask(sq int, steps [][2]int) uint64 {
	f, r := sq%numcols, sq/numcols
	var mask uint64
	for _, s := range steps {
		nf, nr := f+s[0], r+s[1]
		if nf < 0 || nf >= numcols || nr < 0 || nr >= numrows {
			continue
		}
		mask |= 1 << uint(nr*numcols+nf)
	}
	return mask
}

// pawnAttackers returns the squares a pawn of the given colour must stand on
// to attack target.
func pawnAttackers(target int, by chess.Color) uint64 {
	f, r := target%numcols, target/numcols
	if by == chess.White {
		r--
	} else {
		r++
	}
	if r < 0 || r >= numrows {
		return 0
	}
	var mask uint64
	for _, nf := range []int{f - 1, f + 1} {
		if nf >= 0 && nf < numcols {
			mask |= 1 << uint(r*numcols+nf)
		}
	}
	return mask
}

// attackersOf returns every piece of colour by that attacks sq.
func attackersOf(board *dragontoothmg.Board, sq chess.Square, by chess.Color) uint64 {
	target := uint8(sq)
	occupied := board.White.All | board.Black.All
	them := board.White
	if by == chess.Black {
		them = board.Black
	}

	hit := dragontoothmg.CalculateRookMoveBitboard(target, occupied) & (them.Rooks | them.Queens)
	hit |= dragontoothmg.CalculateBishopMoveBitboard(target, occupied) & (them.Bishops | them.Queens)
	hit |= knightMasks[target] & them.Knights
	hit |= kingMasks[target] & them.Kings
	hit |= pawnAttackers(int(target), by) & them.Pawns
	return hit
}

// isAttacked answers attack queries on a FEN, which is how notnil positions
// are shared with the bitboard engine.
func isAttacked(fen string, sq chess.Square, by chess.Color) bool {
	if sq == chess.NoSquare {
		return false
	}
	board := dragontoothmg.ParseFen(fen)
	return attackersOf(&board, sq, by) != 0
}
