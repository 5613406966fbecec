// Package opponent chooses the computer's moves.
package opponent

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/notnil/chess"
	"github.com/qnkhuat/chesscoach/pkg/capture"
	"github.com/qnkhuat/chesscoach/pkg/rules"
)

var ErrNoLegalMoves = errors.New("no legal moves")

const (
	DefaultNoise       = 2.5
	DefaultCaptureBias = 0.7
)

// Values is the material table used by the hard opponent.
var Values = map[chess.PieceType]int{
	chess.Pawn:   10,
	chess.Knight: 30,
	chess.Bishop: 30,
	chess.Rook:   50,
	chess.Queen:  90,
	chess.King:   900,
}

// Material is white's material minus black's.
func Material(b capture.Board) int {
	score := 0
	for sq := chess.A1; sq <= chess.H8; sq++ {
		p := b.PieceAt(sq)
		switch p.Color() {
		case chess.White:
			score += Values[p.Type()]
		case chess.Black:
			score -= Values[p.Type()]
		}
	}
	return score
}

type Selector struct {
	rnd *rand.Rand

	// Noise is the half-width of the uniform jitter added to hard scores.
	Noise float64
	// CaptureBias is how often the medium opponent insists on capturing.
	CaptureBias float64
}

func New(rnd *rand.Rand) *Selector {
	return &Selector{rnd: rnd, Noise: DefaultNoise, CaptureBias: DefaultCaptureBias}
}

// Select picks a move for the side to move. The engine is left exactly as
// it was found.
func (s *Selector) Select(e rules.Engine, d Difficulty) (rules.Move, error) {
	moves := e.LegalMoves(chess.NoSquare)
	if len(moves) == 0 {
		return rules.Move{}, ErrNoLegalMoves
	}
	switch d {
	case Easy:
		return s.pick(moves), nil
	case Medium:
		return s.medium(moves), nil
	case Hard:
		return s.hard(e, moves)
	default:
		return rules.Move{}, fmt.Errorf("%w: %d", ErrUnknownDifficulty, int(d))
	}
}

func (s *Selector) pick(moves []rules.Move) rules.Move {
	return moves[s.rnd.Intn(len(moves))]
}

func (s *Selector) medium(moves []rules.Move) rules.Move {
	var captures []rules.Move
	for _, m := range moves {
		if m.IsCapture() {
			captures = append(captures, m)
		}
	}
	if len(captures) > 0 && s.rnd.Float64() < s.CaptureBias {
		return s.pick(captures)
	}
	return s.pick(moves)
}

// hard plays a noisy one-ply material search. A strictly better move resets
// the candidates, a move within one point of the best joins them.
func (s *Selector) hard(e rules.Engine, moves []rules.Move) (rules.Move, error) {
	sign := 1.0
	if e.SideToMove() == chess.White {
		sign = -1.0
	}
	best := math.Inf(1)
	var candidates []rules.Move
	for _, m := range moves {
		score, err := s.score(e, m)
		if err != nil {
			return rules.Move{}, err
		}
		score *= sign
		if score < best {
			best = score
			candidates = []rules.Move{m}
		} else if math.Abs(score-best) < 1 {
			candidates = append(candidates, m)
		}
	}
	return s.pick(candidates), nil
}

func (s *Selector) score(e rules.Engine, m rules.Move) (float64, error) {
	if _, err := e.Apply(m.From, m.To, m.Promotion); err != nil {
		return 0, fmt.Errorf("try %s: %w", m.UCI(), err)
	}
	defer func() {
		if err := e.Undo(); err != nil {
			log.Panicf("Failed to undo %s: %s", m.UCI(), err)
		}
	}()
	noise := (s.rnd.Float64() - 0.5) * 2 * s.Noise
	return float64(Material(e)) + noise, nil
}
