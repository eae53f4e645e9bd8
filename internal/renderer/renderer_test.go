package renderer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dshills/rpncalc/internal/engine"
	"github.com/dshills/rpncalc/internal/engine/mode"
	"github.com/dshills/rpncalc/internal/renderer/backend"
	"github.com/dshills/rpncalc/internal/renderer/core"
)

func newTestRenderer(t *testing.T, w, h int) (*Renderer, *backend.NullBackend) {
	t.Helper()
	b := backend.NewNullBackend(w, h)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return New(b, DefaultTheme()), b
}

func TestDrawTitleAndLines(t *testing.T) {
	r, b := newTestRenderer(t, 40, 10)

	f := engine.Frame{Title: ">> rpn <<", Mode: mode.Basic, Entries: []string{"42"}}
	r.Draw(f.Title, Layout(f), "7")

	if got := strings.TrimSpace(b.Row(0)); got != ">> rpn <<" {
		t.Errorf("title row = %q", got)
	}
	if got := b.Row(1); got != ModeBar("BASIC", "") {
		t.Errorf("row 1 = %q", got)
	}
	if got := b.Row(3); got != "0> 42" {
		t.Errorf("row 3 = %q", got)
	}
	if got := b.Row(4); got != "1> 7" {
		t.Errorf("row 4 = %q, want prompt with input", got)
	}

	x, y, visible := b.CursorPosition()
	if x != 4 || y != 4 || !visible {
		t.Errorf("cursor = (%d, %d, %v), want (4, 4, true)", x, y, visible)
	}
}

func TestDrawStyles(t *testing.T) {
	r, b := newTestRenderer(t, 40, 10)
	theme := DefaultTheme()

	f := engine.Frame{Mode: mode.Stats, Message: "ERROR:  Illegal digit or command z"}
	r.Draw("", Layout(f), "")

	if got := b.GetCell(0, 0).Style; got != theme.Title {
		t.Errorf("title style = %+v", got)
	}
	if got := b.GetCell(0, 1).Style; got != theme.ModeBar {
		t.Errorf("mode bar style = %+v", got)
	}
	if got := b.GetCell(33, 2).Style; got != theme.Error {
		t.Errorf("error style = %+v", got)
	}
}

func TestDrawScrollsToPrompt(t *testing.T) {
	r, b := newTestRenderer(t, 30, 6)

	entries := make([]string, 20)
	for i := range entries {
		entries[i] = fmt.Sprint(i)
	}
	f := engine.Frame{Mode: mode.Basic, Entries: entries}
	lines := Layout(f)
	r.Draw("", lines, "")

	if got := r.Scroll(); got != len(lines)-5 {
		t.Errorf("Scroll() = %d, want %d", got, len(lines)-5)
	}
	if got := b.Row(5); got != "20>" {
		t.Errorf("last row = %q, want prompt", got)
	}
	if got := b.Row(4); got != "19> 19" {
		t.Errorf("row 4 = %q", got)
	}
}

func TestDrawClipsWideLines(t *testing.T) {
	r, b := newTestRenderer(t, 10, 4)

	r.Draw("", []Line{{Kind: LinePrompt, Text: "0> "}}, strings.Repeat("1", 20))

	if got := b.Row(1); got != "0> 1111111" {
		t.Errorf("row 1 = %q", got)
	}
	x, _, _ := b.CursorPosition()
	if x != 9 {
		t.Errorf("cursor x = %d, want 9", x)
	}
}

func TestDrawAfterResize(t *testing.T) {
	r, b := newTestRenderer(t, 20, 4)
	b.Resize(40, 8)
	r.Resize(40, 8)

	f := engine.Frame{Mode: mode.Basic, Entries: []string{"1", "2", "3"}}
	r.Draw("t", Layout(f), "")
	if r.Scroll() != 0 {
		t.Errorf("Scroll() = %d, want 0 after growing", r.Scroll())
	}
	if got := b.Row(6); got != "3>" {
		t.Errorf("row 6 = %q", got)
	}
}

func TestNewThemeRejectsBadColor(t *testing.T) {
	p := DefaultPalette()
	p.Error = "not-a-color"
	if _, err := NewTheme(p); err == nil {
		t.Error("expected error for bad color")
	}
}

func TestThemeStyleByKind(t *testing.T) {
	theme := DefaultTheme()
	if theme.Style(LineStack) != core.DefaultStyle() {
		t.Error("stack lines should use the default style")
	}
	if theme.Style(LineRuler) != theme.Ruler {
		t.Error("ruler style mismatch")
	}
	if !theme.Ruler.Attributes.Has(core.AttrDim) {
		t.Error("ruler should be dim")
	}
}
