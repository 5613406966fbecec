// Package console is a line based front end for pipes and plain terminals.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/fatih/color"
	"github.com/qnkhuat/chesscoach/pkg/protocol"
	"github.com/qnkhuat/chesscoach/pkg/rules"
	"github.com/qnkhuat/chesscoach/pkg/session"
)

// Welcome is the greeting for players who type their moves.
const Welcome = "Good luck! You are playing as White. Pick a pawn to start!"

var (
	coachColor  = color.New(color.FgCyan, color.Bold)
	statusColor = color.New(color.FgYellow)
	errorColor  = color.New(color.FgRed)
	xpColor     = color.New(color.FgGreen)
)

type Console struct {
	in      io.Reader
	out     io.Writer
	json    bool
	session *session.Session
	logger  *log.Logger

	shownMoves int
	shownEpoch int
}

func New(in io.Reader, out io.Writer, jsonMode bool, logger *log.Logger) *Console {
	return &Console{in: in, out: out, json: jsonMode, logger: logger, shownMoves: -1}
}

// Bind sets the session driven by the console. The session must publish to
// the console.
func (c *Console) Bind(s *session.Session) {
	c.session = s
}

// Publish prints an update.
func (c *Console) Publish(u session.Update) {
	if c.json {
		c.writeLine(protocol.Encode(protocol.MessageState{Update: u}))
		return
	}
	if u.Message != "" {
		coachColor.Fprintf(c.out, "Coach: %s\n", u.Message)
	}
	if u.Epoch != c.shownEpoch || len(u.History) != c.shownMoves {
		if u.Phase != session.AwaitingComputerMove {
			c.shownEpoch, c.shownMoves = u.Epoch, len(u.History)
			c.drawBoard(u)
		}
	}
	if u.LevelUp || u.Cue == session.CueGameOver {
		xpColor.Fprintf(c.out, "Level %d, %d/100 XP\n", u.Progress.Level, u.Progress.XP)
	}
	if u.Result != nil && u.Cue == session.CueGameOver {
		statusColor.Fprintf(c.out, "%s (%s). Type 'new' to play again.\n", u.Result.Message, u.Result.Reason)
		return
	}
	statusColor.Fprintln(c.out, u.Status)
}

func (c *Console) drawBoard(u session.Update) {
	g, err := rules.GameFromFEN(u.FEN)
	if err != nil {
		c.logger.Printf("Failed to draw %s: %s", u.FEN, err)
		return
	}
	fmt.Fprint(c.out, g.Board().Draw())
	if n := len(u.History); n > 0 {
		fmt.Fprintf(c.out, "Moves: %s\n", strings.Join(u.History, " "))
	}
	fmt.Fprintf(c.out, "XP: level %d, %d/100  Captured by you: %d  by computer: %d\n",
		u.Progress.Level, u.Progress.XP, len(u.Captures.ByWhite), len(u.Captures.ByBlack))
}

func (c *Console) writeLine(b []byte) {
	c.out.Write(append(b, '\n'))
}

func (c *Console) fail(err error) {
	if c.json {
		c.writeLine(protocol.Encode(protocol.MessageError{Error: err.Error(), Message: c.session.Message()}))
		return
	}
	errorColor.Fprintf(c.out, "%s\n", err)
}

// Run reads commands until quit, EOF or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	if c.session == nil {
		return errors.New("console has no session")
	}
	c.session.Start()
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, err := Parse(line)
		if err != nil {
			c.fail(err)
			continue
		}
		if cmd.Kind == CommandQuit {
			return nil
		}
		c.exec(cmd)
	}
	return scanner.Err()
}

func (c *Console) exec(cmd Command) {
	s := c.session
	switch cmd.Kind {
	case CommandMove:
		if err := s.Submit(cmd.From, cmd.To); err != nil {
			c.logger.Printf("Move %s%s: %s", cmd.From, cmd.To, err)
			if c.json {
				c.fail(err)
			}
		}
	case CommandNewGame:
		s.NewGame()
	case CommandDifficulty:
		s.SetDifficulty(cmd.Difficulty)
	case CommandHint:
		targets, err := s.Select(cmd.Square)
		if err != nil {
			c.fail(err)
			return
		}
		if c.json {
			c.writeLine(protocol.Encode(protocol.MessageHint{Square: cmd.Square, Targets: targets}))
			return
		}
		if len(targets) > 0 {
			fmt.Fprintf(c.out, "%s can go to: %s\n", cmd.Square, strings.Join(targets, " "))
		}
	case CommandBoard:
		u := s.Snapshot()
		if c.json {
			c.writeLine(protocol.Encode(protocol.MessageState{Update: u}))
			return
		}
		c.drawBoard(u)
	case CommandHelp:
		fmt.Fprintln(c.out, helpText)
	}
}
