// Package gui is the terminal front end built on tview.
package gui

import (
	"fmt"
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/qnkhuat/chesscoach/pkg/opponent"
	"github.com/qnkhuat/chesscoach/pkg/rules"
	"github.com/qnkhuat/chesscoach/pkg/session"
	"github.com/rivo/tview"
)

const (
	numrows = 8
	numcols = 8

	pageGame     = "game"
	pageGameOver = "gameover"
)

type Client struct {
	App        *tview.Application
	Pages      *tview.Pages
	Layout     *tview.Grid
	Board      *tview.Table
	Coach      *tview.TextView
	Status     *tview.TextView
	XP         *tview.TextView
	Moves      *tview.TextView
	Captures   *tview.TextView
	Difficulty *tview.DropDown
	ThemeMenu  *tview.DropDown
	NewGame    *tview.Button

	loop   *session.Loop
	theme  Theme
	name   string
	last   session.Update
	ending bool
}

func NewClient(theme Theme, name string) *Client {
	app := tview.NewApplication()
	cl := &Client{
		App:      app,
		Board:    tview.NewTable(),
		Coach:    tview.NewTextView().SetWordWrap(true).SetDynamicColors(true),
		Status:   tview.NewTextView().SetDynamicColors(true),
		XP:       tview.NewTextView().SetDynamicColors(true),
		Moves:    tview.NewTextView().SetScrollable(true),
		Captures: tview.NewTextView(),
		theme:    theme,
		name:     name,
	}
	cl.Coach.SetBorder(true).SetTitle(" Coach ")
	cl.Moves.SetBorder(true).SetTitle(" Moves ")
	cl.Captures.SetBorder(true).SetTitle(" Captured ")

	cl.Difficulty = tview.NewDropDown().SetLabel(string(ActionDifficulty))
	for _, label := range difficultyLabels {
		cl.Difficulty.AddOption(label, nil)
	}
	cl.ThemeMenu = tview.NewDropDown().SetLabel(string(ActionTheme))
	for _, name := range ThemeNames() {
		cl.ThemeMenu.AddOption(name, nil)
	}
	cl.NewGame = tview.NewButton(string(ActionNewGame)).SetSelectedFunc(func() {
		cl.post(func(s *session.Session) { s.NewGame() })
	})

	options := tview.NewGrid().
		SetColumns(-1, -1, 12).
		AddItem(cl.Difficulty, 0, 0, 1, 1, 0, 0, false).
		AddItem(cl.ThemeMenu, 0, 1, 1, 1, 0, 0, false).
		AddItem(cl.NewGame, 0, 2, 1, 1, 0, 0, false)

	title := "chesscoach"
	if name != "" {
		title = fmt.Sprintf("chesscoach - %s", name)
	}
	header := tview.NewTextView().SetText(title).SetTextAlign(tview.AlignCenter)

	side := tview.NewGrid().
		SetRows(1, 1, 5, 4, -1, 1).
		AddItem(cl.Status, 0, 0, 1, 1, 0, 0, false).
		AddItem(cl.XP, 1, 0, 1, 1, 0, 0, false).
		AddItem(cl.Coach, 2, 0, 1, 1, 0, 0, false).
		AddItem(cl.Captures, 3, 0, 1, 1, 0, 0, false).
		AddItem(cl.Moves, 4, 0, 1, 1, 0, 0, false).
		AddItem(options, 5, 0, 1, 1, 0, 0, false)

	cl.Layout = tview.NewGrid().
		SetRows(1, 20, -1).
		SetColumns(-1, 30, 50, -1).
		AddItem(header, 0, 1, 1, 2, 0, 0, false).
		AddItem(cl.Board, 1, 1, 1, 1, 0, 0, true).
		AddItem(side, 1, 2, 1, 1, 0, 0, false)

	cl.Pages = tview.NewPages().AddPage(pageGame, cl.Layout, true, true)
	cl.initTable()
	cl.initKeys()
	return cl
}

// Attach connects the client to the session it displays.
func (cl *Client) Attach(loop *session.Loop) {
	cl.loop = loop
	cl.Difficulty.SetSelectedFunc(func(text string, index int) {
		d := opponent.Difficulty(index + 1)
		if d == cl.last.Difficulty {
			return
		}
		cl.post(func(s *session.Session) { s.SetDifficulty(d) })
	})
	cl.ThemeMenu.SetSelectedFunc(func(text string, index int) {
		theme, err := Lookup(text)
		if err != nil {
			log.Printf("Failed to switch theme: %s", err)
			return
		}
		cl.theme = theme
		cl.render(cl.last)
	})
}

func (cl *Client) post(fn func(*session.Session)) {
	if cl.loop == nil || !cl.loop.Do(fn) {
		log.Printf("Dropped input, session is closed")
	}
}

// Publish is called from the session loop.
func (cl *Client) Publish(u session.Update) {
	cl.App.QueueUpdateDraw(func() {
		cl.render(u)
	})
}

func (cl *Client) Run() error {
	return cl.App.SetRoot(cl.Pages, true).EnableMouse(true).Run()
}

func (cl *Client) Stop() {
	cl.App.Stop()
}

func (cl *Client) initKeys() {
	cl.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyCtrlN:
			cl.post(func(s *session.Session) { s.NewGame() })
			return nil
		case event.Key() == tcell.KeyTab:
			cl.cycleFocus()
			return nil
		}
		return event
	})
}

func (cl *Client) cycleFocus() {
	order := []tview.Primitive{cl.Board, cl.Difficulty, cl.ThemeMenu, cl.NewGame}
	current := cl.App.GetFocus()
	for i, p := range order {
		if p == current {
			cl.App.SetFocus(order[(i+1)%len(order)])
			return
		}
	}
	cl.App.SetFocus(cl.Board)
}

func (cl *Client) initTable() {
	cl.Board.SetSelectable(true, true)
	cl.Board.Select(numrows-2, 5).SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			cl.App.Stop()
		}
	}).SetSelectedFunc(func(row, col int) {
		if row >= numrows || col == 0 {
			return
		}
		sq := cl.posToSquare(row, col)
		cl.choose(sq)
	})
	cl.renderTable(session.Update{})
}

// choose turns board clicks into pick-piece then pick-destination moves.
func (cl *Client) choose(sq chess.Square) {
	name := sq.String()
	selected := cl.last.Selected
	piece := cl.last.Pieces[name]
	ownPiece := piece != "" && strings.ToUpper(piece) == piece
	switch {
	case selected == "" || selected == name || ownPiece:
		cl.post(func(s *session.Session) {
			if _, err := s.Select(name); err != nil {
				log.Printf("Select %s: %s", name, err)
			}
		})
	default:
		cl.post(func(s *session.Session) {
			if err := s.Submit(selected, name); err != nil {
				log.Printf("Move %s%s: %s", selected, name, err)
			}
		})
	}
}

func (cl *Client) posToSquare(row, col int) chess.Square {
	// column 0 holds the rank labels
	return rules.SquareAt(row, col-1, chess.White)
}

func (cl *Client) render(u session.Update) {
	cl.last = u
	cl.renderTable(u)

	status := u.Status
	if glyph, ok := cueGlyphs[string(u.Cue)]; ok {
		status = fmt.Sprintf("%s  %s", status, glyph)
	}
	cl.Status.SetText(status)
	cl.XP.SetText(xpBar(u.Progress, cl.theme))
	cl.Coach.SetTextColor(cl.theme.Msg).SetText(u.Message)
	cl.Moves.SetText(strings.Join(movePairs(u.History), "\n")).ScrollToEnd()
	cl.Captures.SetText(fmt.Sprintf("You took:      %s\nComputer took: %s",
		capturedLine(u.Captures.ByWhite, chess.Black),
		capturedLine(u.Captures.ByBlack, chess.White)))
	if u.Difficulty >= opponent.Easy && u.Difficulty <= opponent.Hard {
		if current, _ := cl.Difficulty.GetCurrentOption(); current != int(u.Difficulty)-1 {
			cl.Difficulty.SetCurrentOption(int(u.Difficulty) - 1)
		}
	}

	switch {
	case u.Phase == session.GameOver && u.Result != nil && !cl.ending:
		cl.ending = true
		cl.showGameOver(u.Result)
	case u.Phase != session.GameOver && cl.ending:
		cl.ending = false
		cl.Pages.RemovePage(pageGameOver)
	}
}

func (cl *Client) showGameOver(r *session.Result) {
	modal := tview.NewModal().
		SetText(fmt.Sprintf("%s\n(%s)", r.Message, r.Reason)).
		AddButtons([]string{string(ActionPlayAgain), string(ActionClose)}).
		SetDoneFunc(func(index int, label string) {
			cl.Pages.RemovePage(pageGameOver)
			cl.App.SetFocus(cl.Board)
			if label == string(ActionPlayAgain) {
				cl.post(func(s *session.Session) { s.NewGame() })
			}
		})
	cl.Pages.AddPage(pageGameOver, modal, false, true)
	cl.App.SetFocus(modal)
}

func (cl *Client) renderTable(u session.Update) {
	t := cl.theme
	for r := 0; r <= numrows; r++ {
		for f := 0; f <= numcols; f++ {
			switch {
			case f == 0 && r != numrows: // rank labels
				rank := chess.Rank(numrows - r - 1)
				cl.Board.SetCell(r, f, tview.NewTableCell(rank.String()).
					SetTextColor(t.Rank).
					SetAlign(tview.AlignCenter).
					SetSelectable(false))
			case r == numrows && f > 0: // file labels
				file := chess.File(f - 1)
				cl.Board.SetCell(r, f, tview.NewTableCell(file.String()).
					SetTextColor(t.File).
					SetAlign(tview.AlignCenter).
					SetSelectable(false))
			case r == numrows && f == 0:
				cl.Board.SetCell(r, f, tview.NewTableCell("").SetSelectable(false))
			default:
				sq := cl.posToSquare(r, f)
				name := sq.String()
				letter := u.Pieces[name]
				fg := t.Black
				if letter != "" && strings.ToUpper(letter) == letter {
					fg = t.White
					if isThreatened(u, name) {
						fg = t.Danger
					}
				}
				text := fmt.Sprintf(" %s ", pieceGlyph(letter))
				if letter == "" && isTarget(u, name) {
					text = " • "
				}
				cl.Board.SetCell(r, f, tview.NewTableCell(text).
					SetAlign(tview.AlignCenter).
					SetTextColor(fg).
					SetBackgroundColor(squareBg(sq, u, t)))
			}
		}
	}
}
