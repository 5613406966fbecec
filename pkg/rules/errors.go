package rules

import "errors"

var (
	// ErrIllegalMove is returned when the engine rejects a move.
	ErrIllegalMove = errors.New("illegal move")
	// ErrMalformedSquare is returned for square names outside a1..h8.
	ErrMalformedSquare = errors.New("malformed square")
	// ErrNothingToUndo is returned by Undo on a game without moves.
	ErrNothingToUndo = errors.New("nothing to undo")
)
