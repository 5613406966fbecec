package console

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qnkhuat/chesscoach/pkg/opponent"
	"github.com/qnkhuat/chesscoach/pkg/protocol"
	"github.com/qnkhuat/chesscoach/pkg/rules"
)

var ErrUnknownCommand = errors.New("unknown command")

type CommandKind int

const (
	CommandMove CommandKind = iota
	CommandNewGame
	CommandDifficulty
	CommandHint
	CommandBoard
	CommandHelp
	CommandQuit
)

type Command struct {
	Kind       CommandKind
	From, To   string
	Square     string
	Difficulty opponent.Difficulty
}

const helpText = `Commands:
  e2e4 or e2 e4       move a piece
  hint e2             show where a piece can go
  level easy|medium|hard
  new                 start a new game
  board               show the board
  quit`

// Parse reads one input line. JSON lines are decoded as protocol messages.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "{") {
		return parseMessage(line)
	}
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}
	switch fields[0] {
	case "quit", "exit", "q":
		return Command{Kind: CommandQuit}, nil
	case "new", "restart":
		return Command{Kind: CommandNewGame}, nil
	case "board", "b":
		return Command{Kind: CommandBoard}, nil
	case "help", "?":
		return Command{Kind: CommandHelp}, nil
	case "level", "difficulty":
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("%w: level needs one of easy, medium, hard", ErrUnknownCommand)
		}
		d, err := opponent.ParseDifficulty(fields[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandDifficulty, Difficulty: d}, nil
	case "hint", "select":
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("%w: hint needs a square", ErrUnknownCommand)
		}
		if _, err := rules.ParseSquare(fields[1]); err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandHint, Square: fields[1]}, nil
	}
	return parseMove(strings.Join(fields, ""))
}

// parseMove accepts "e2e4", "e2-e4" and "e7e8q". Promotion always makes a queen.
func parseMove(s string) (Command, error) {
	s = strings.ReplaceAll(s, "-", "")
	if len(s) != 4 && len(s) != 5 {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
	}
	if _, err := rules.ParseSquare(s[:2]); err != nil {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
	}
	if _, err := rules.ParseSquare(s[2:4]); err != nil {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
	}
	if len(s) == 5 && s[4] != 'q' {
		return Command{}, fmt.Errorf("%w: %q, pawns always promote to a queen", ErrUnknownCommand, s)
	}
	return Command{Kind: CommandMove, From: s[:2], To: s[2:4]}, nil
}

func parseMessage(line string) (Command, error) {
	m, err := protocol.Decode([]byte(line))
	if err != nil {
		return Command{}, err
	}
	switch msg := m.(type) {
	case protocol.MessageMove:
		return Command{Kind: CommandMove, From: msg.From, To: msg.To}, nil
	case protocol.MessageNewGame:
		return Command{Kind: CommandNewGame}, nil
	case protocol.MessageDifficulty:
		d, err := opponent.ParseDifficulty(msg.Level)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandDifficulty, Difficulty: d}, nil
	case protocol.MessageHint:
		return Command{Kind: CommandHint, Square: msg.Square}, nil
	}
	return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, m.Type())
}
