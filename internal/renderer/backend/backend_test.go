package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/rpncalc/internal/renderer/core"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	cell := core.Cell{Rune: 'X', Width: 1, Style: core.NewStyle(core.ColorFromRGB(255, 0, 0))}
	b.SetCell(10, 5, cell)

	if got := b.GetCell(10, 5); got != cell {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)

	if empty := b.GetCell(-1, 0); empty != core.EmptyCell() {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendClearAndRow(t *testing.T) {
	b := NewNullBackend(20, 4)
	b.Init()

	for i, c := range core.CellsFromString("0> 42", core.DefaultStyle()) {
		b.SetCell(i, 1, c)
	}
	if got := b.Row(1); got != "0> 42" {
		t.Errorf("Row(1) = %q, want %q", got, "0> 42")
	}

	b.Clear()
	if got := b.Row(1); got != "" {
		t.Errorf("Row(1) after Clear = %q, want empty", got)
	}
}

func TestNullBackendCursor(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.ShowCursor(15, 10)
	x, y, visible := b.CursorPosition()
	if x != 15 || y != 10 || !visible {
		t.Errorf("cursor position: expected (15, 10, true), got (%d, %d, %v)", x, y, visible)
	}

	b.HideCursor()
	_, _, visible = b.CursorPosition()
	if visible {
		t.Error("cursor should be hidden")
	}
}

func TestNullBackendResize(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.Resize(100, 40)

	w, h := b.Size()
	if w != 100 || h != 40 {
		t.Errorf("expected size (100, 40), got (%d, %d)", w, h)
	}
	ev := b.PollEvent()
	if ev.Type != EventResize || ev.Width != 100 || ev.Height != 40 {
		t.Errorf("expected resize event, got %+v", ev)
	}
}

func TestNullBackendPostEvent(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.PostEvent(Event{Type: EventKey, Key: KeyEnter})
	b.PostEvent(Event{Type: EventInterrupt, Data: "reload"})

	if got := b.PollEvent(); got.Type != EventKey || got.Key != KeyEnter {
		t.Errorf("expected enter key event, got %+v", got)
	}
	if got := b.PollEvent(); got.Type != EventInterrupt || got.Data != "reload" {
		t.Errorf("expected interrupt event, got %+v", got)
	}
}

func TestNullBackendBeep(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Beep()
	b.Beep()
	if b.Beeps() != 2 {
		t.Errorf("Beeps() = %d, want 2", b.Beeps())
	}
}

func TestModMaskHas(t *testing.T) {
	mod := ModShift | ModCtrl

	if !mod.Has(ModShift) {
		t.Error("should have shift")
	}
	if !mod.Has(ModCtrl) {
		t.Error("should have ctrl")
	}
	if mod.Has(ModAlt) {
		t.Error("should not have alt")
	}
}

func TestKeyConversionRoundTrip(t *testing.T) {
	for _, k := range []Key{KeyEscape, KeyEnter, KeyTab, KeyBackspace, KeyDelete, KeyCtrlC, KeyCtrlL, KeyCtrlQ, KeyCtrlR} {
		if got := convertKey(convertToTcellKey(k)); got != k {
			t.Errorf("round trip of %d = %d", k, got)
		}
	}
	if got := convertKey(tcell.KeyBackspace); got != KeyBackspace {
		t.Errorf("convertKey(KeyBackspace) = %d, want KeyBackspace", got)
	}
	if got := convertKey(tcell.KeyF5); got != KeyNone {
		t.Errorf("convertKey(F5) = %d, want KeyNone", got)
	}
}

func TestConvertEvent(t *testing.T) {
	ev := convertEvent(tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone))
	if ev.Type != EventKey || ev.Key != KeyRune || ev.Rune != '+' {
		t.Errorf("key event = %+v", ev)
	}

	ev = convertEvent(tcell.NewEventResize(90, 30))
	if ev.Type != EventResize || ev.Width != 90 || ev.Height != 30 {
		t.Errorf("resize event = %+v", ev)
	}

	ev = convertEvent(tcell.NewEventInterrupt(42))
	if ev.Type != EventInterrupt || ev.Data != 42 {
		t.Errorf("interrupt event = %+v", ev)
	}
}

func TestStyleConversionRoundTrip(t *testing.T) {
	s := core.NewStyle(core.ColorFromRGB(10, 200, 30)).Bold().Reverse()
	got := convertTcellStyle(convertStyle(s))
	if got != s {
		t.Errorf("round trip = %+v, want %+v", got, s)
	}
	if got := convertTcellStyle(convertStyle(core.DefaultStyle())); got != core.DefaultStyle() {
		t.Errorf("default round trip = %+v", got)
	}
}
