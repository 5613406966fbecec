// Package progress turns moves into experience points and levels.
package progress

import "github.com/qnkhuat/chesscoach/pkg/rules"

const (
	// LevelXP is the experience needed for one level.
	LevelXP = 100

	CastleXP    = 15
	PromotionXP = 20
	CaptureXP   = 10
	MoveXP      = 2
	CheckmateXP = 50
	DrawXP      = 20
)

const (
	MsgCastle    = "King safety is important! Good castle! +15 XP"
	MsgPromotion = "Promotion! You got a Queen! +20 XP!"
	MsgCapture   = "Awesome capture! +10 XP!"
	MsgMove      = "Nice move! Keep controlling the center!"
	MsgLevelUp   = "LEVEL UP! You are getting stronger!"
	MsgCheckmate = "Checkmate! You won! +50 XP!"
	MsgDraw      = "It's a draw! Good game!"
)

type Kind int

const (
	KindMove Kind = iota
	KindCapture
	KindPromotion
	KindCastle
	KindCheckmate
	KindDraw
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindCapture:
		return "capture"
	case KindPromotion:
		return "promotion"
	case KindCastle:
		return "castle"
	case KindCheckmate:
		return "checkmate"
	case KindDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// Award is the experience granted for one event.
type Award struct {
	Kind    Kind
	XP      int
	Message string
}

// Classify scores a human move. The first matching rule wins: castle,
// promotion, capture, then any other move.
func Classify(m rules.Move) Award {
	switch {
	case m.IsCastle():
		return Award{KindCastle, CastleXP, MsgCastle}
	case m.IsPromotion():
		return Award{KindPromotion, PromotionXP, MsgPromotion}
	case m.IsCapture():
		return Award{KindCapture, CaptureXP, MsgCapture}
	default:
		return Award{KindMove, MoveXP, MsgMove}
	}
}

func CheckmateAward() Award { return Award{KindCheckmate, CheckmateXP, MsgCheckmate} }
func DrawAward() Award      { return Award{KindDraw, DrawXP, MsgDraw} }

// State is the player's progression. XP stays in [0, LevelXP).
type State struct {
	XP    int `json:"xp"`
	Level int `json:"level"`
}

func NewState() State {
	return State{XP: 0, Level: 1}
}

// Add grants xp and returns how many levels were gained.
func (s *State) Add(xp int) int {
	if xp <= 0 {
		return 0
	}
	s.XP += xp
	levels := 0
	for s.XP >= LevelXP {
		s.XP -= LevelXP
		s.Level++
		levels++
	}
	return levels
}

// Fill is the progress bar fill as a percentage.
func (s State) Fill() int {
	return s.XP * 100 / LevelXP
}
