package rules

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

// Flags is a set of move characteristics. A move may carry several flags at
// once: a capturing promotion has Capture, Promotion and PromotionCapture.
type Flags uint8

const (
	Normal Flags = 1 << iota
	Capture
	EnPassant
	KingsideCastle
	QueensideCastle
	Promotion
	PromotionCapture
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{Normal, "normal"},
	{Capture, "capture"},
	{EnPassant, "en-passant"},
	{KingsideCastle, "kingside-castle"},
	{QueensideCastle, "queenside-castle"},
	{Promotion, "promotion"},
	{PromotionCapture, "promotion-capture"},
}

// Has reports whether every flag in f is set.
func (fs Flags) Has(f Flags) bool { return fs&f == f }

// Any reports whether at least one flag in f is set.
func (fs Flags) Any(f Flags) bool { return fs&f != 0 }

func (fs Flags) String() string {
	names := make([]string, 0, len(flagNames))
	for _, fn := range flagNames {
		if fs.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// Move describes a transition reported by the rules engine.
type Move struct {
	From      chess.Square
	To        chess.Square
	Piece     chess.PieceType
	Promotion chess.PieceType
	Flags     Flags
	SAN       string
}

func (m Move) IsCapture() bool   { return m.Flags.Any(Capture | EnPassant) }
func (m Move) IsCastle() bool    { return m.Flags.Any(KingsideCastle | QueensideCastle) }
func (m Move) IsPromotion() bool { return m.Flags.Any(Promotion | PromotionCapture) }

// UCI returns the move in coordinate notation, e.g. "e7e8q".
func (m Move) UCI() string {
	s := fmt.Sprintf("%s%s", m.From.String(), m.To.String())
	if m.Promotion != chess.NoPieceType {
		s += strings.ToLower(m.Promotion.String())
	}
	return s
}

func (m Move) String() string {
	if m.SAN != "" {
		return m.SAN
	}
	return m.UCI()
}

// fromChess translates an engine move generated for pos.
func fromChess(pos *chess.Position, m *chess.Move) Move {
	board := pos.Board()
	var flags Flags
	if m.HasTag(chess.KingSideCastle) {
		flags |= KingsideCastle
	}
	if m.HasTag(chess.QueenSideCastle) {
		flags |= QueensideCastle
	}
	if m.HasTag(chess.EnPassant) {
		flags |= EnPassant
	} else if m.HasTag(chess.Capture) || board.Piece(m.S2()) != chess.NoPiece {
		flags |= Capture
	}
	if m.Promo() != chess.NoPieceType {
		flags |= Promotion
		if flags.Has(Capture) {
			flags |= PromotionCapture
		}
	}
	if flags == 0 {
		flags = Normal
	}
	return Move{
		From:      m.S1(),
		To:        m.S2(),
		Piece:     board.Piece(m.S1()).Type(),
		Promotion: m.Promo(),
		Flags:     flags,
		SAN:       chess.AlgebraicNotation{}.Encode(pos, m),
	}
}
