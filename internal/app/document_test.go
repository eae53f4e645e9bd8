package app

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/rpncalc/internal/engine"
	"github.com/dshills/rpncalc/internal/engine/mode"
	"github.com/dshills/rpncalc/internal/renderer"
)

// recorder counts notifications.
type recorder struct {
	activated, modified int
}

func (r *recorder) OnActivated(engine.View) error { r.activated++; return nil }
func (r *recorder) OnModified(engine.View) error  { r.modified++; return nil }

func TestDocument_InsertBackspace(t *testing.T) {
	d := NewDocument()
	rec := &recorder{}
	d.SetListener(rec)

	if err := d.Insert("1é"); err != nil {
		t.Fatal(err)
	}
	if d.Text() != "1é" || d.Len() != 3 {
		t.Errorf("Text() = %q, Len() = %d", d.Text(), d.Len())
	}
	if err := d.Backspace(); err != nil {
		t.Fatal(err)
	}
	if d.Text() != "1" {
		t.Errorf("Text() after Backspace = %q, want 1", d.Text())
	}
	if rec.modified != 2 {
		t.Errorf("modified = %d, want 2", rec.modified)
	}

	// Empty edits do not notify.
	_ = d.Backspace()
	_ = d.Backspace()
	_ = d.Insert("")
	if rec.modified != 3 {
		t.Errorf("modified = %d, want 3", rec.modified)
	}
}

func TestDocument_Render(t *testing.T) {
	d := NewDocument()
	rec := &recorder{}
	d.SetListener(rec)

	f := engine.Frame{Mode: mode.Basic, Entries: []string{"1"}, Message: engine.HelpHint}
	if err := d.Render(f); err != nil {
		t.Fatal(err)
	}
	if d.Text() != renderer.Text(f) {
		t.Errorf("Text() = %q, want %q", d.Text(), renderer.Text(f))
	}
	if diff := cmp.Diff(renderer.Layout(f), d.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
	if rec.modified != 1 {
		t.Errorf("Render notified %d times, want 1", rec.modified)
	}

	_ = d.Insert("12\n")
	if d.Input() != "12" {
		t.Errorf("Input() = %q, want 12", d.Input())
	}
	if got := d.TextFrom(len(renderer.Text(f))); got != "12\n" {
		t.Errorf("TextFrom() = %q", got)
	}
	if got := d.TextFrom(d.Len() + 5); got != "" {
		t.Errorf("TextFrom(past end) = %q", got)
	}
}

func TestDocument_RenderKeepsInput(t *testing.T) {
	d := NewDocument()
	f := engine.Frame{Mode: mode.Programmer, Input: "12"}
	if err := d.Render(f); err != nil {
		t.Fatal(err)
	}
	if want := renderer.Text(f) + "12"; d.Text() != want {
		t.Errorf("Text() = %q, want %q", d.Text(), want)
	}
	if d.Input() != "12" {
		t.Errorf("Input() = %q, want 12", d.Input())
	}

	_ = d.Backspace()
	if d.Input() != "1" {
		t.Errorf("Input() after Backspace = %q, want 1", d.Input())
	}
}

func TestDocument_Activate(t *testing.T) {
	d := NewDocument()
	if err := d.Activate(); err != nil {
		t.Errorf("Activate() without listener = %v", err)
	}
	rec := &recorder{}
	d.SetListener(rec)
	_ = d.Activate()
	if rec.activated != 1 {
		t.Errorf("activated = %d, want 1", rec.activated)
	}
}
