package gui

type Action string

const (
	ActionNewGame    Action = "New Game"
	ActionPlayAgain  Action = "Play again"
	ActionClose      Action = "Close"
	ActionDifficulty Action = "Level: "
	ActionTheme      Action = "Theme: "
)

var difficultyLabels = []string{"Easy", "Medium", "Hard"}

var cueGlyphs = map[string]string{
	"move":     "♪",
	"capture":  "♫ crunch!",
	"levelup":  "★ ★ ★",
	"gameover": "♫ ♫ ♫",
}
