package rules

import "github.com/notnil/chess"

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Engine is the rules oracle used by the rest of chesscoach. It owns the
// position; callers only query and request transitions.
type Engine interface {
	// LegalMoves lists legal moves starting at from, or all of them for NoSquare.
	LegalMoves(from chess.Square) []Move
	Apply(from, to chess.Square, promo chess.PieceType) (Move, error)
	Undo() error
	Reset()

	SideToMove() chess.Color
	InCheck() bool
	IsCheckmate() bool
	IsDraw() bool
	IsGameOver() bool
	Outcome() chess.Outcome
	Method() chess.Method
	IsSquareAttacked(sq chess.Square, by chess.Color) bool
	PieceAt(sq chess.Square) chess.Piece
	HistorySAN() []string
	FEN() string
}
