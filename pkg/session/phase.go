package session

type Phase int

const (
	AwaitingHumanMove Phase = iota
	Validating
	Applied
	CheckingGameOver
	AwaitingComputerMove
	ComputerApplied
	GameOver
)

var phaseNames = map[Phase]string{
	AwaitingHumanMove:    "awaitingHumanMove",
	Validating:           "validating",
	Applied:              "applied",
	CheckingGameOver:     "checkingGameOver",
	AwaitingComputerMove: "awaitingComputerMove",
	ComputerApplied:      "computerApplied",
	GameOver:             "gameOver",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Cue is the sound a front end should play after an update.
type Cue string

const (
	CueNone     Cue = ""
	CueMove     Cue = "move"
	CueCapture  Cue = "capture"
	CueLevelUp  Cue = "levelup"
	CueGameOver Cue = "gameover"
)

// Outcome is the game result from the human's point of view.
type Outcome string

const (
	Win  Outcome = "win"
	Lose Outcome = "lose"
	Draw Outcome = "draw"
)

type Result struct {
	Outcome Outcome `json:"outcome"`
	Reason  string  `json:"reason"`
	Message string  `json:"message"`
}
