package gui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/qnkhuat/chesscoach/pkg/progress"
	"github.com/qnkhuat/chesscoach/pkg/rules"
	"github.com/qnkhuat/chesscoach/pkg/session"
)

const meterWidth = 20

var glyphs = map[string]string{
	"K": "♔", "Q": "♕", "R": "♖", "B": "♗", "N": "♘", "P": "♙",
	"k": "♚", "q": "♛", "r": "♜", "b": "♝", "n": "♞", "p": "♟",
}

// pieceGlyph returns the chess symbol for a FEN piece letter
func pieceGlyph(letter string) string {
	if g, ok := glyphs[letter]; ok {
		return g
	}
	return " "
}

// squareBg returns the theme's colour for a square given the current update
func squareBg(sq chess.Square, u session.Update, t Theme) tcell.Color {
	name := sq.String()
	switch {
	case u.Selected == name:
		return t.SquareHigh
	case isTarget(u, name):
		return t.SquareHint
	case u.InCheck && u.Pieces[name] == kingToMove(u):
		return t.SquareCheck
	case u.LastMove != nil && (u.LastMove.From == name || u.LastMove.To == name):
		return t.SquareLast
	case rules.IsLight(sq):
		return t.SquareLight
	default:
		return t.SquareDark
	}
}

// kingToMove is the piece letter of the king whose side is to move, the
// only king that can be in check.
func kingToMove(u session.Update) string {
	if u.Turn == rules.ColorName(chess.Black) {
		return "k"
	}
	return "K"
}

func isTarget(u session.Update, name string) bool {
	if u.Selected == "" {
		return false
	}
	for _, to := range u.Targets[u.Selected] {
		if to == name {
			return true
		}
	}
	return false
}

func isThreatened(u session.Update, name string) bool {
	for _, sq := range u.Threatened {
		if sq == name {
			return true
		}
	}
	return false
}

// movePairs formats a SAN history as numbered pairs, "1. e4 e5"
func movePairs(history []string) []string {
	pairs := make([]string, 0, (len(history)+1)/2)
	for i := 0; i < len(history); i += 2 {
		row := fmt.Sprintf("%d. %-7s", i/2+1, history[i])
		if i+1 < len(history) {
			row += " " + history[i+1]
		}
		pairs = append(pairs, strings.TrimRight(row, " "))
	}
	return pairs
}

// xpBar draws the experience meter with tview colour tags
func xpBar(s progress.State, t Theme) string {
	filled := s.XP * meterWidth / progress.LevelXP
	return fmt.Sprintf("Level %d  [#%06x]%s[#%06x]%s[-]  %d/%d XP",
		s.Level,
		t.MeterFill.Hex(), strings.Repeat("█", filled),
		t.MeterBase.Hex(), strings.Repeat("░", meterWidth-filled),
		s.XP, progress.LevelXP)
}

// capturedLine lists captured piece symbols of the given colour
func capturedLine(set []chess.PieceType, color chess.Color) string {
	if len(set) == 0 {
		return "-"
	}
	var b strings.Builder
	for _, pt := range set {
		b.WriteString(pieceGlyph(session.PieceLetter(chess.NewPiece(pt, color))))
	}
	return b.String()
}
