package gui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

var ErrUnknownTheme = errors.New("theme: no theme found")

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name        string      `json:"name"`
	SquareLight tcell.Color `json:"squareLight"`
	SquareDark  tcell.Color `json:"squareDark"`
	SquareHigh  tcell.Color `json:"squareHigh"`
	SquareHint  tcell.Color `json:"squareHint"`
	SquareLast  tcell.Color `json:"squareLast"`
	SquareCheck tcell.Color `json:"squareCheck"`
	Danger      tcell.Color `json:"danger"`
	White       tcell.Color `json:"white"`
	Black       tcell.Color `json:"black"`
	Msg         tcell.Color `json:"msg"`
	Rank        tcell.Color `json:"rank"`
	File        tcell.Color `json:"file"`
	MeterFill   tcell.Color `json:"meterFill"`
	MeterBase   tcell.Color `json:"meterBase"`
}

// ThemeHex is the serialisable form of a Theme
type ThemeHex struct {
	Name        string `json:"name"`
	SquareLight string `json:"squareLight"`
	SquareDark  string `json:"squareDark"`
	SquareHigh  string `json:"squareHigh"`
	SquareHint  string `json:"squareHint"`
	SquareLast  string `json:"squareLast"`
	SquareCheck string `json:"squareCheck"`
	Danger      string `json:"danger"`
	White       string `json:"white"`
	Black       string `json:"black"`
	Msg         string `json:"msg"`
	Rank        string `json:"rank"`
	File        string `json:"file"`
	MeterFill   string `json:"meterFill"`
	MeterBase   string `json:"meterBase"`
}

// fmtHex returns a one character hex for the ColorDefault
// and otherwise it returns a standard hex.
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		t.Name,
		fmtHex(t.SquareLight.Hex()),
		fmtHex(t.SquareDark.Hex()),
		fmtHex(t.SquareHigh.Hex()),
		fmtHex(t.SquareHint.Hex()),
		fmtHex(t.SquareLast.Hex()),
		fmtHex(t.SquareCheck.Hex()),
		fmtHex(t.Danger.Hex()),
		fmtHex(t.White.Hex()),
		fmtHex(t.Black.Hex()),
		fmtHex(t.Msg.Hex()),
		fmtHex(t.Rank.Hex()),
		fmtHex(t.File.Hex()),
		fmtHex(t.MeterFill.Hex()),
		fmtHex(t.MeterBase.Hex()),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		t.Name,
		tcell.GetColor(t.SquareLight),
		tcell.GetColor(t.SquareDark),
		tcell.GetColor(t.SquareHigh),
		tcell.GetColor(t.SquareHint),
		tcell.GetColor(t.SquareLast),
		tcell.GetColor(t.SquareCheck),
		tcell.GetColor(t.Danger),
		tcell.GetColor(t.White),
		tcell.GetColor(t.Black),
		tcell.GetColor(t.Msg),
		tcell.GetColor(t.Rank),
		tcell.GetColor(t.File),
		tcell.GetColor(t.MeterFill),
		tcell.GetColor(t.MeterBase),
	}
}

// ImportThemes returns the theme called want from themes
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	for _, t := range themes {
		if strings.EqualFold(t.Name, want) {
			return t.Theme(), nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, want)
}

// Lookup finds one of the built-in themes by name
func Lookup(name string) (Theme, error) {
	return ImportThemes(name, Themes)
}

// ThemeNames lists the built-in themes in menu order
func ThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for _, t := range Themes {
		names = append(names, t.Name)
	}
	return names
}

func boardTheme(name, light, dark string) ThemeHex {
	return ThemeHex{
		Name:        name,
		SquareLight: light,
		SquareDark:  dark,
		SquareHigh:  "#facc15", // selected piece
		SquareHint:  "#86efac", // green dots
		SquareLast:  "#fde68a",
		SquareCheck: "#f87171",
		Danger:      "#dc2626",
		White:       "#ffffff",
		Black:       "#111827",
		Msg:         "#2563eb",
		Rank:        "#9ca3af",
		File:        "#9ca3af",
		MeterFill:   "#22c55e",
		MeterBase:   "#4b5563",
	}
}

// Themes are the board colour sets offered to the player
var Themes = []ThemeHex{
	boardTheme("classic", "#F0FDF4", "#4ADE80"),
	boardTheme("blue", "#EEF2FF", "#6366F1"),
	boardTheme("candy", "#FFF1F2", "#FB7185"),
	boardTheme("wood", "#EAD8B1", "#966F33"),
}
