// Package session runs one game between the human (white) and the computer.
package session

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/google/uuid"
	"github.com/notnil/chess"
	"github.com/qnkhuat/chesscoach/pkg/capture"
	"github.com/qnkhuat/chesscoach/pkg/opponent"
	"github.com/qnkhuat/chesscoach/pkg/progress"
	"github.com/qnkhuat/chesscoach/pkg/random"
	"github.com/qnkhuat/chesscoach/pkg/rules"
)

var (
	ErrNotYourTurn = errors.New("not your turn")
	ErrIllegalMove = rules.ErrIllegalMove
)

const (
	MsgWelcome     = "Good luck! You are playing as White. Drag a pawn to start!"
	MsgSelected    = "You selected a piece! It can move to the green dots!"
	MsgStuck       = "Uh oh, this piece is stuck! Try another one."
	MsgIllegal     = "Oops! You can't go there. Try a green circle!"
	MsgNotYourTurn = "Hold on, it's not your turn yet!"
	MsgThinking    = "Great move! Now let me think..."
	MsgInDanger    = "Watch out! Your King is in danger!"
	MsgComputerWon = "Oh no! Checkmate. The computer won."
	MsgGameOver    = "Game over! Press New Game to play again."
)

type Options struct {
	ID         string
	Engine     rules.Engine
	Selector   *opponent.Selector
	Difficulty opponent.Difficulty
	// Delay is the think time range. Nil uses DefaultDelay; a zero range
	// makes the computer answer at once.
	Delay     *Delay
	Scheduler Scheduler
	Sink      Sink
	Logger    *log.Logger
	Rand      *rand.Rand
	// Welcome replaces the greeting shown at the start of every game.
	Welcome string
}

type Session struct {
	id         string
	engine     rules.Engine
	selector   *opponent.Selector
	difficulty opponent.Difficulty
	human      chess.Color
	delay      Delay
	rnd        *rand.Rand
	scheduler  Scheduler
	sink       Sink
	logger     *log.Logger
	welcome    string

	progress progress.State
	captures capture.Sets
	phase    Phase
	epoch    int
	settled  bool
	result   *Result
	message  string
	last     *MoveInfo
	levelUp  bool
	cue      Cue
	selected chess.Square
}

func New(opts Options) (*Session, error) {
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.Engine == nil {
		opts.Engine = rules.NewGame()
	}
	if opts.Rand == nil {
		rnd, err := random.New(0)
		if err != nil {
			return nil, fmt.Errorf("seed session: %w", err)
		}
		opts.Rand = rnd
	}
	if opts.Selector == nil {
		opts.Selector = opponent.New(opts.Rand)
	}
	if opts.Difficulty == 0 {
		opts.Difficulty = opponent.Medium
	}
	delay := DefaultDelay
	if opts.Delay != nil {
		delay = *opts.Delay
	}
	if opts.Scheduler == nil {
		opts.Scheduler = SleepScheduler
	}
	if opts.Sink == nil {
		opts.Sink = SinkFunc(func(Update) {})
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Welcome == "" {
		opts.Welcome = MsgWelcome
	}
	s := &Session{
		id:         opts.ID,
		engine:     opts.Engine,
		selector:   opts.Selector,
		difficulty: opts.Difficulty,
		human:      chess.White,
		delay:      delay,
		rnd:        opts.Rand,
		scheduler:  opts.Scheduler,
		sink:       opts.Sink,
		logger:     opts.Logger,
		welcome:    opts.Welcome,
		progress:   progress.NewState(),
		selected:   chess.NoSquare,
	}
	s.resetState()
	return s, nil
}

func (s *Session) ID() string                      { return s.id }
func (s *Session) Phase() Phase                    { return s.phase }
func (s *Session) Epoch() int                      { return s.epoch }
func (s *Session) Progress() progress.State        { return s.progress }
func (s *Session) Captures() capture.Sets          { return s.captures }
func (s *Session) Difficulty() opponent.Difficulty { return s.difficulty }
func (s *Session) Engine() rules.Engine            { return s.engine }
func (s *Session) Result() *Result                 { return s.result }
func (s *Session) Message() string                 { return s.message }

// Start publishes the opening state.
func (s *Session) Start() {
	s.logger.Printf("Session %s started at %s", s.id, s.difficulty)
	s.publish()
}

// resetState clears everything tied to one game except the position.
func (s *Session) resetState() {
	s.captures = capture.Compute(s.engine)
	s.phase = AwaitingHumanMove
	s.settled = false
	s.result = nil
	s.last = nil
	s.selected = chess.NoSquare
	s.message = s.welcome
	s.cue = CueNone
	s.levelUp = false
}

// NewGame abandons the current game from any phase. Progress is kept and a
// pending computer move is invalidated.
func (s *Session) NewGame() {
	s.epoch++
	s.engine.Reset()
	s.resetState()
	s.logger.Printf("Session %s: new game, epoch %d", s.id, s.epoch)
	s.publish()
}

// SetDifficulty applies from the next computer turn.
func (s *Session) SetDifficulty(d opponent.Difficulty) {
	s.difficulty = d
	s.cue = CueNone
	s.levelUp = false
	s.logger.Printf("Session %s: difficulty %s", s.id, d)
	s.publish()
}

// Select highlights a human piece and its destinations. Selecting the same
// square again clears the selection.
func (s *Session) Select(square string) ([]string, error) {
	s.cue = CueNone
	s.levelUp = false
	sq, err := rules.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	if sq == s.selected {
		s.selected = chess.NoSquare
		s.publish()
		return []string{}, nil
	}
	targets := s.targets(sq)
	if s.phase != AwaitingHumanMove || s.engine.PieceAt(sq).Color() != s.human {
		s.selected = chess.NoSquare
		s.publish()
		return targets, nil
	}
	s.selected = sq
	if len(targets) > 0 {
		s.message = MsgSelected
	} else {
		s.message = MsgStuck
	}
	s.publish()
	return targets, nil
}

// Targets lists legal destinations for a human piece on square.
func (s *Session) Targets(square string) ([]string, error) {
	sq, err := rules.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	return s.targets(sq), nil
}

func (s *Session) targets(sq chess.Square) []string {
	if s.phase != AwaitingHumanMove || s.engine.PieceAt(sq).Color() != s.human {
		return []string{}
	}
	seen := map[chess.Square]bool{}
	out := []string{}
	for _, m := range s.engine.LegalMoves(sq) {
		if seen[m.To] {
			continue
		}
		seen[m.To] = true
		out = append(out, m.To.String())
	}
	return out
}

// Threatened lists human pieces the computer currently attacks.
func (s *Session) Threatened() []string {
	out := []string{}
	for _, sq := range rules.Squares() {
		if s.engine.PieceAt(sq).Color() != s.human {
			continue
		}
		if s.engine.IsSquareAttacked(sq, s.human.Other()) {
			out = append(out, sq.String())
		}
	}
	return out
}

// Submit plays the human move from→to, promoting to a queen.
func (s *Session) Submit(from, to string) error {
	s.cue = CueNone
	s.levelUp = false
	if s.phase != AwaitingHumanMove {
		return s.reject(fmt.Errorf("submit %s%s: %w", from, to, ErrNotYourTurn), MsgNotYourTurn)
	}
	f, err := rules.ParseSquare(from)
	if err != nil {
		return s.reject(fmt.Errorf("submit: %w", err), MsgIllegal)
	}
	t, err := rules.ParseSquare(to)
	if err != nil {
		return s.reject(fmt.Errorf("submit: %w", err), MsgIllegal)
	}

	s.phase = Validating
	move, err := s.engine.Apply(f, t, chess.Queen)
	if err != nil {
		s.phase = AwaitingHumanMove
		return s.reject(fmt.Errorf("submit %s%s: %w", from, to, err), MsgIllegal)
	}

	s.phase = Applied
	s.selected = chess.NoSquare
	s.last = moveInfo(move, s.human)
	award := progress.Classify(move)
	s.message = award.Message
	s.cue = CueMove
	if move.IsCapture() {
		s.cue = CueCapture
	}
	s.addXP(award.XP)
	s.captures = capture.Compute(s.engine)
	s.logger.Printf("Session %s: human played %s (+%d XP)", s.id, move, award.XP)

	s.phase = CheckingGameOver
	if s.CheckGameOver() {
		s.publish()
		return nil
	}
	s.awaitComputer()
	return nil
}

func (s *Session) reject(err error, message string) error {
	s.message = message
	s.logger.Printf("Session %s: rejected move: %s", s.id, err)
	s.publish()
	return err
}

func (s *Session) addXP(xp int) {
	if levels := s.progress.Add(xp); levels > 0 {
		s.message = progress.MsgLevelUp
		s.levelUp = true
		s.cue = CueLevelUp
	}
}

// CheckGameOver settles the game when the engine reports it finished. The
// end-of-game bonus is only ever awarded once per game.
func (s *Session) CheckGameOver() bool {
	if !s.engine.IsGameOver() {
		return false
	}
	if !s.settled {
		s.settled = true
		s.settle()
	}
	s.phase = GameOver
	return true
}

func (s *Session) settle() {
	result := &Result{Reason: methodName(s.engine.Method())}
	s.cue = CueGameOver
	switch {
	case s.engine.IsCheckmate() && s.engine.SideToMove() != s.human:
		award := progress.CheckmateAward()
		result.Outcome, result.Message = Win, award.Message
		s.message = award.Message
		s.addXP(award.XP)
	case s.engine.IsCheckmate():
		result.Outcome, result.Message = Lose, MsgComputerWon
		s.message = MsgComputerWon
	default:
		award := progress.DrawAward()
		result.Outcome, result.Message = Draw, award.Message
		s.message = award.Message
		s.addXP(award.XP)
	}
	s.result = result
	s.logger.Printf("Session %s: game over, %s by %s", s.id, result.Outcome, result.Reason)
}

func (s *Session) awaitComputer() {
	s.phase = AwaitingComputerMove
	epoch := s.epoch
	d := s.delay.Next(s.rnd)
	s.publish()
	s.scheduler.AfterFunc(d, func() { s.computerTurn(epoch) })
}

func (s *Session) computerTurn(epoch int) {
	if epoch != s.epoch || s.phase != AwaitingComputerMove {
		s.logger.Printf("Session %s: dropping stale computer move for epoch %d (now %d, %s)", s.id, epoch, s.epoch, s.phase)
		return
	}
	choice, err := s.selector.Select(s.engine, s.difficulty)
	if err != nil {
		s.logger.Panicf("Session %s: computer has no move in %s: %s", s.id, s.engine.FEN(), err)
	}
	move, err := s.engine.Apply(choice.From, choice.To, choice.Promotion)
	if err != nil {
		s.logger.Panicf("Session %s: computer move %s rejected: %s", s.id, choice, err)
	}

	s.phase = ComputerApplied
	s.levelUp = false
	s.last = moveInfo(move, s.human.Other())
	s.captures = capture.Compute(s.engine)
	s.message = s.explain(move)
	s.cue = CueMove
	if move.IsCapture() {
		s.cue = CueCapture
	}
	s.logger.Printf("Session %s: computer played %s", s.id, move)

	s.phase = CheckingGameOver
	if !s.CheckGameOver() {
		s.phase = AwaitingHumanMove
	}
	s.publish()
}

func (s *Session) explain(m rules.Move) string {
	text := fmt.Sprintf("Computer moved %s from %s to %s.", rules.PieceName(m.Piece), m.From, m.To)
	switch {
	case m.IsCapture():
		text += " It captured your piece! Oh no!"
	case s.engine.InCheck():
		text += " Your King is in check!"
	default:
		text += " Your turn!"
	}
	return text
}

func (s *Session) statusLine() string {
	switch {
	case s.phase == GameOver:
		return MsgGameOver
	case s.phase == AwaitingComputerMove:
		return MsgThinking
	case s.engine.InCheck() && s.engine.SideToMove() == s.human:
		return MsgInDanger
	case s.engine.SideToMove() == chess.White:
		return "White's Turn"
	default:
		return "Black's Turn"
	}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Update {
	u := Update{
		ID:         s.id,
		Epoch:      s.epoch,
		Phase:      s.phase,
		Message:    s.message,
		Status:     s.statusLine(),
		FEN:        s.engine.FEN(),
		Turn:       rules.ColorName(s.engine.SideToMove()),
		Pieces:     pieces(s.engine),
		LastMove:   s.last,
		History:    s.engine.HistorySAN(),
		Progress:   s.progress,
		LevelUp:    s.levelUp,
		Captures:   s.captures,
		InCheck:    s.engine.InCheck(),
		Difficulty: s.difficulty,
		Targets:    map[string][]string{},
		Threatened: s.Threatened(),
		Result:     s.result,
		Cue:        s.cue,
	}
	if u.History == nil {
		u.History = []string{}
	}
	if s.selected != chess.NoSquare {
		u.Selected = s.selected.String()
	}
	if s.phase == AwaitingHumanMove {
		for _, sq := range rules.Squares() {
			if targets := s.targets(sq); len(targets) > 0 {
				u.Targets[sq.String()] = targets
			}
		}
	}
	return u
}

func (s *Session) publish() {
	s.sink.Publish(s.Snapshot())
}

func moveInfo(m rules.Move, by chess.Color) *MoveInfo {
	return &MoveInfo{
		From:  m.From.String(),
		To:    m.To.String(),
		SAN:   m.SAN,
		Piece: rules.PieceName(m.Piece),
		By:    rules.ColorName(by),
	}
}

func methodName(m chess.Method) string {
	switch m {
	case chess.Checkmate:
		return "checkmate"
	case chess.Stalemate:
		return "stalemate"
	case chess.InsufficientMaterial:
		return "insufficient material"
	case chess.ThreefoldRepetition:
		return "threefold repetition"
	case chess.FivefoldRepetition:
		return "fivefold repetition"
	case chess.FiftyMoveRule:
		return "fifty-move rule"
	case chess.SeventyFiveMoveRule:
		return "seventy-five-move rule"
	default:
		return fmt.Sprint(m)
	}
}
