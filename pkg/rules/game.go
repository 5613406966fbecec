package rules

import (
	"fmt"

	"github.com/notnil/chess"
)

// Game is an Engine backed by notnil/chess.
type Game struct {
	game *chess.Game
	// undo holds the game as it was before each applied move.
	undo []*chess.Game
}

func newChessGame(start func(*chess.Game)) *chess.Game {
	opts := []func(*chess.Game){chess.UseNotation(chess.UCINotation{})}
	if start != nil {
		opts = append(opts, start)
	}
	return chess.NewGame(opts...)
}

// NewGame returns an engine at the standard starting position.
func NewGame() *Game {
	return &Game{game: newChessGame(nil)}
}

// GameFromFEN returns an engine starting from an arbitrary position. Undo
// never goes past that position, but Reset returns to the standard start.
func GameFromFEN(fen string) (*Game, error) {
	start, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen: %w", err)
	}
	return &Game{game: newChessGame(start)}, nil
}

func (g *Game) LegalMoves(from chess.Square) []Move {
	if g.IsGameOver() {
		return nil
	}
	pos := g.game.Position()
	var moves []Move
	for _, m := range g.game.ValidMoves() {
		if from != chess.NoSquare && m.S1() != from {
			continue
		}
		moves = append(moves, fromChess(pos, m))
	}
	return moves
}

// Apply plays from→to. promo picks the promotion piece and defaults to a queen.
func (g *Game) Apply(from, to chess.Square, promo chess.PieceType) (Move, error) {
	if g.IsGameOver() {
		return Move{}, fmt.Errorf("%w: game is over", ErrIllegalMove)
	}
	if promo == chess.NoPieceType {
		promo = chess.Queen
	}
	pos := g.game.Position()
	for _, m := range g.game.ValidMoves() {
		if m.S1() != from || m.S2() != to {
			continue
		}
		if m.Promo() != chess.NoPieceType && m.Promo() != promo {
			continue
		}
		move := fromChess(pos, m)
		prev := g.game.Clone()
		if err := g.game.Move(m); err != nil {
			return Move{}, fmt.Errorf("%w: %v", ErrIllegalMove, err)
		}
		g.undo = append(g.undo, prev)
		g.claimDraws()
		return move, nil
	}
	return Move{}, fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
}

// claimDraws ends the game on draws that notnil only makes claimable.
func (g *Game) claimDraws() {
	if g.game.Outcome() != chess.NoOutcome {
		return
	}
	for _, method := range g.game.EligibleDraws() {
		if method == chess.ThreefoldRepetition || method == chess.FiftyMoveRule {
			if err := g.game.Draw(method); err == nil {
				return
			}
		}
	}
}

// Undo takes back the last move by restoring the game saved before it.
func (g *Game) Undo() error {
	n := len(g.undo)
	if n == 0 {
		return ErrNothingToUndo
	}
	g.game = g.undo[n-1]
	g.undo[n-1] = nil
	g.undo = g.undo[:n-1]
	return nil
}

func (g *Game) Reset() {
	g.game = newChessGame(nil)
	g.undo = nil
}

func (g *Game) SideToMove() chess.Color { return g.game.Position().Turn() }

func (g *Game) InCheck() bool {
	side := g.SideToMove()
	return g.IsSquareAttacked(g.kingSquare(side), side.Other())
}

func (g *Game) IsCheckmate() bool { return g.game.Method() == chess.Checkmate }
func (g *Game) IsDraw() bool      { return g.game.Outcome() == chess.Draw }
func (g *Game) IsGameOver() bool  { return g.game.Outcome() != chess.NoOutcome }

func (g *Game) Outcome() chess.Outcome { return g.game.Outcome() }
func (g *Game) Method() chess.Method   { return g.game.Method() }

func (g *Game) IsSquareAttacked(sq chess.Square, by chess.Color) bool {
	return isAttacked(g.FEN(), sq, by)
}

func (g *Game) PieceAt(sq chess.Square) chess.Piece {
	return g.game.Position().Board().Piece(sq)
}

func (g *Game) kingSquare(c chess.Color) chess.Square {
	king := chess.WhiteKing
	if c == chess.Black {
		king = chess.BlackKing
	}
	for sq, p := range g.game.Position().Board().SquareMap() {
		if p == king {
			return sq
		}
	}
	return chess.NoSquare
}

func (g *Game) HistorySAN() []string {
	positions := g.game.Positions()
	moves := g.game.Moves()
	san := make([]string, 0, len(moves))
	for i, m := range moves {
		san = append(san, chess.AlgebraicNotation{}.Encode(positions[i], m))
	}
	return san
}

func (g *Game) FEN() string { return g.game.Position().String() }

// Board exposes the underlying board, used by text renderers.
func (g *Game) Board() *chess.Board { return g.game.Position().Board() }
