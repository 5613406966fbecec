package session

import (
	"github.com/notnil/chess"
	"github.com/qnkhuat/chesscoach/pkg/capture"
	"github.com/qnkhuat/chesscoach/pkg/opponent"
	"github.com/qnkhuat/chesscoach/pkg/progress"
	"github.com/qnkhuat/chesscoach/pkg/rules"
)

// MoveInfo describes the last move played.
type MoveInfo struct {
	From  string `json:"from"`
	To    string `json:"to"`
	SAN   string `json:"san"`
	Piece string `json:"piece"`
	By    string `json:"by"`
}

// Update is a snapshot of the session published after every transition.
// Front ends must treat it as read only.
type Update struct {
	ID         string              `json:"id"`
	Epoch      int                 `json:"epoch"`
	Phase      Phase               `json:"phase"`
	Message    string              `json:"message"`
	Status     string              `json:"status"`
	FEN        string              `json:"fen"`
	Turn       string              `json:"turn"`
	Pieces     map[string]string   `json:"pieces"`
	LastMove   *MoveInfo           `json:"lastMove,omitempty"`
	History    []string            `json:"history"`
	Progress   progress.State      `json:"progress"`
	LevelUp    bool                `json:"levelUp"`
	Captures   capture.Sets        `json:"captures"`
	InCheck    bool                `json:"inCheck"`
	Difficulty opponent.Difficulty `json:"difficulty"`
	Selected   string              `json:"selected,omitempty"`
	Targets    map[string][]string `json:"targets"`
	Threatened []string            `json:"threatened"`
	Result     *Result             `json:"result,omitempty"`
	Cue        Cue                 `json:"cue,omitempty"`
}

// Sink receives updates.
type Sink interface {
	Publish(u Update)
}

type SinkFunc func(u Update)

func (f SinkFunc) Publish(u Update) { f(u) }

var pieceLetters = map[chess.PieceType]string{
	chess.Pawn:   "p",
	chess.Knight: "n",
	chess.Bishop: "b",
	chess.Rook:   "r",
	chess.Queen:  "q",
	chess.King:   "k",
}

// PieceLetter returns the FEN letter of p: upper case for white.
func PieceLetter(p chess.Piece) string {
	letter := pieceLetters[p.Type()]
	if p.Color() == chess.White {
		return string(letter[0] - 'a' + 'A')
	}
	return letter
}

func pieces(e rules.Engine) map[string]string {
	out := map[string]string{}
	for _, sq := range rules.Squares() {
		if p := e.PieceAt(sq); p != chess.NoPiece {
			out[sq.String()] = PieceLetter(p)
		}
	}
	return out
}
