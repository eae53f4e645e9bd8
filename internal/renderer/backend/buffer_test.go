package backend

import (
	"testing"

	"github.com/dshills/rpncalc/internal/renderer/core"
)

func TestNewScreenBuffer(t *testing.T) {
	sb := NewScreenBuffer(80, 24)
	w, h := sb.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
	if sb.GetCell(0, 0) != core.EmptyCell() {
		t.Error("new buffer should be empty")
	}
}

func TestScreenBufferSetGetCell(t *testing.T) {
	sb := NewScreenBuffer(10, 5)
	cell := core.Cell{Rune: '7', Width: 1, Style: core.DefaultStyle()}

	sb.SetCell(3, 2, cell)
	if got := sb.GetCell(3, 2); got != cell {
		t.Errorf("GetCell = %+v, want %+v", got, cell)
	}

	sb.SetCell(10, 0, cell)
	if got := sb.GetCell(10, 0); got != core.EmptyCell() {
		t.Error("out of bounds should return empty cell")
	}
}

func TestScreenBufferFirstDiffIsFull(t *testing.T) {
	sb := NewScreenBuffer(4, 3)
	if got := len(sb.ComputeDiff()); got != 12 {
		t.Errorf("first diff has %d changes, want 12", got)
	}
	sb.Sync()
	if got := len(sb.ComputeDiff()); got != 0 {
		t.Errorf("diff after sync has %d changes, want 0", got)
	}
}

func TestScreenBufferComputeDiffSkipsUnchanged(t *testing.T) {
	sb := NewScreenBuffer(10, 5)
	sb.Sync()

	cell := core.Cell{Rune: 'x', Width: 1, Style: core.DefaultStyle()}
	sb.SetCell(1, 1, cell)
	sb.SetCell(2, 2, core.EmptyCell())

	changes := sb.ComputeDiff()
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	if changes[0].X != 1 || changes[0].Y != 1 || changes[0].Cell != cell {
		t.Errorf("change = %+v", changes[0])
	}
}

func TestScreenBufferClear(t *testing.T) {
	sb := NewScreenBuffer(10, 5)
	sb.SetCell(1, 1, core.Cell{Rune: 'x', Width: 1})
	sb.Sync()

	sb.Clear()
	changes := sb.ComputeDiff()
	if len(changes) != 1 || changes[0].Cell != core.EmptyCell() {
		t.Errorf("changes after Clear = %+v", changes)
	}
}

func TestScreenBufferResize(t *testing.T) {
	sb := NewScreenBuffer(10, 5)
	sb.Sync()

	sb.Resize(20, 2)
	w, h := sb.Size()
	if w != 20 || h != 2 {
		t.Errorf("expected size (20, 2), got (%d, %d)", w, h)
	}
	if got := len(sb.ComputeDiff()); got != 40 {
		t.Errorf("diff after resize has %d changes, want 40", got)
	}
}

func TestScreenBufferFlush(t *testing.T) {
	b := NewNullBackend(10, 3)
	b.Init()
	sb := NewScreenBuffer(10, 3)

	for i, c := range core.CellsFromString("1> 5", core.DefaultStyle()) {
		sb.SetCell(i, 1, c)
	}
	if n := sb.Flush(b); n != 30 {
		t.Errorf("first Flush wrote %d cells, want 30", n)
	}
	if got := b.Row(1); got != "1> 5" {
		t.Errorf("Row(1) = %q", got)
	}

	sb.SetCell(3, 1, core.Cell{Rune: '6', Width: 1, Style: core.DefaultStyle()})
	if n := sb.Flush(b); n != 1 {
		t.Errorf("second Flush wrote %d cells, want 1", n)
	}
	if got := b.Row(1); got != "1> 6" {
		t.Errorf("Row(1) = %q", got)
	}
}
