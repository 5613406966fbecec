package gui

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"classic", "blue", "candy", "wood", "WOOD"} {
		theme, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if !strings.EqualFold(theme.Name, name) {
			t.Fatalf("Lookup(%q) returned %q", name, theme.Name)
		}
	}
	if _, err := Lookup("neon"); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
}

func TestThemeColors(t *testing.T) {
	theme, err := Lookup("wood")
	if err != nil {
		t.Fatal(err)
	}
	if theme.SquareLight != tcell.NewHexColor(0xEAD8B1) || theme.SquareDark != tcell.NewHexColor(0x966F33) {
		t.Fatalf("wood colours = %v %v", theme.SquareLight, theme.SquareDark)
	}
}

func TestHexRoundTrip(t *testing.T) {
	theme, _ := Lookup("candy")
	hex := theme.Hex()
	if hex.SquareDark != "#fb7185" || hex.Name != "candy" {
		t.Fatalf("Hex() = %+v", hex)
	}
	if hex.Theme() != theme {
		t.Fatal("converting back changed the theme")
	}
}

func TestThemeNames(t *testing.T) {
	if got := strings.Join(ThemeNames(), ","); got != "classic,blue,candy,wood" {
		t.Fatalf("ThemeNames = %s", got)
	}
}
