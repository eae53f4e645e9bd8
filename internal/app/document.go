package app

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dshills/rpncalc/internal/engine"
	"github.com/dshills/rpncalc/internal/renderer"
)

// Listener is notified of document changes. *engine.Engine satisfies it.
type Listener interface {
	OnActivated(v engine.View) error
	OnModified(v engine.View) error
}

// Document is the text buffer a session's engine draws into. Rendered
// output comes first; typed input is appended after it.
//
// Every change is reported to the listener synchronously, including the
// replacement made by Render, the way an editor reports its own edits.
type Document struct {
	mu sync.Mutex

	text     string
	lines    []renderer.Line
	rendered int

	listener Listener
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// SetListener sets the listener notified of changes.
func (d *Document) SetListener(l Listener) {
	d.listener = l
}

// Len implements engine.View.
func (d *Document) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.text)
}

// TextFrom implements engine.View.
func (d *Document) TextFrom(off int) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if off < 0 {
		off = 0
	}
	if off >= len(d.text) {
		return ""
	}
	return d.text[off:]
}

// Render implements engine.View. It replaces the whole text with the
// frame's layout and input and reports the change. The input stays
// editable.
func (d *Document) Render(f engine.Frame) error {
	lines := renderer.Layout(f)

	d.mu.Lock()
	d.lines = lines
	d.text = renderer.Join(lines)
	d.rendered = len(d.text)
	d.text += f.Input
	d.mu.Unlock()

	return d.notify()
}

// Insert appends s to the end of the document.
func (d *Document) Insert(s string) error {
	if s == "" {
		return nil
	}
	d.mu.Lock()
	d.text += s
	d.mu.Unlock()
	return d.notify()
}

// Backspace removes the last character. It does nothing on an empty
// document.
func (d *Document) Backspace() error {
	d.mu.Lock()
	if d.text == "" {
		d.mu.Unlock()
		return nil
	}
	_, size := utf8.DecodeLastRuneInString(d.text)
	d.text = d.text[:len(d.text)-size]
	if d.rendered > len(d.text) {
		d.rendered = len(d.text)
	}
	d.mu.Unlock()
	return d.notify()
}

// Activate reports that the document gained focus.
func (d *Document) Activate() error {
	if d.listener == nil {
		return nil
	}
	return d.listener.OnActivated(d)
}

// Text returns the whole document.
func (d *Document) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}

// Lines returns the laid out lines of the last render.
func (d *Document) Lines() []renderer.Line {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lines
}

// Input returns the text typed since the last render, without line
// breaks.
func (d *Document) Input() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.rendered >= len(d.text) {
		return ""
	}
	return strings.ReplaceAll(d.text[d.rendered:], "\n", "")
}

func (d *Document) notify() error {
	if d.listener == nil {
		return nil
	}
	return d.listener.OnModified(d)
}
