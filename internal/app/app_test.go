package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dshills/rpncalc/internal/config"
	"github.com/dshills/rpncalc/internal/engine/mode"
	"github.com/dshills/rpncalc/internal/renderer"
	"github.com/dshills/rpncalc/internal/renderer/backend"
)

func keys(b *backend.NullBackend, s string) {
	for _, r := range s {
		switch r {
		case '\n':
			b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyEnter})
		case '\b':
			b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyBackspace})
		default:
			b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r})
		}
	}
}

func ctrl(b *backend.NullBackend, k backend.Key) {
	b.PostEvent(backend.Event{Type: backend.EventKey, Key: k, Mod: backend.ModCtrl})
}

// runApp queues the events, runs the application until they are handled
// and returns it.
func runApp(t *testing.T, b *backend.NullBackend, opts Options, queue func()) *Application {
	t.Helper()
	if opts.Config.WindowTitle == "" {
		opts.Config = config.Default()
	}
	app := New(opts)
	if err := app.SetBackend(b); err != nil {
		t.Fatal(err)
	}
	queue()

	done := make(chan error, 1)
	go func() { done <- app.Run() }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return")
	}
	return app
}

func TestApplication_TypeAndQuit(t *testing.T) {
	b := backend.NewNullBackend(40, 10)
	runApp(t, b, Options{}, func() {
		keys(b, "12 3+")
		ctrl(b, backend.KeyCtrlQ)
	})

	if got, want := b.Row(0), strings.Repeat(" ", 15)+engineTitle(); got != want {
		t.Errorf("title row = %q, want %q", got, want)
	}
	if got, want := b.Row(1), renderer.ModeBar(mode.Programmer.String(), mode.Decimal.String()); got != want {
		t.Errorf("mode bar = %q, want %q", got, want)
	}
	if got := b.Row(4); got != "0> 15" {
		t.Errorf("row 4 = %q, want 0> 15", got)
	}
	if got := b.Row(5); got != "1>" {
		t.Errorf("row 5 = %q, want 1>", got)
	}
	if x, y, visible := b.CursorPosition(); x != 3 || y != 5 || !visible {
		t.Errorf("cursor = (%d, %d, %v), want (3, 5, true)", x, y, visible)
	}
}

func engineTitle() string {
	return config.Default().WindowTitle
}

func TestApplication_PendingInput(t *testing.T) {
	b := backend.NewNullBackend(40, 10)
	runApp(t, b, Options{}, func() {
		keys(b, "42\b3")
		ctrl(b, backend.KeyCtrlC)
	})

	if got := b.Row(4); got != "0> 43" {
		t.Errorf("row 4 = %q, want typed input 0> 43", got)
	}
}

func TestApplication_IllegalKeyBeeps(t *testing.T) {
	b := backend.NewNullBackend(40, 10)
	runApp(t, b, Options{}, func() {
		keys(b, "z")
		ctrl(b, backend.KeyCtrlQ)
	})

	if b.Beeps() != 1 {
		t.Errorf("Beeps() = %d, want 1", b.Beeps())
	}
	if !strings.HasSuffix(b.Row(2), "ERROR:  Illegal digit or command z") {
		t.Errorf("message row = %q", b.Row(2))
	}
}

func TestApplication_IllegalKeyKeepsInput(t *testing.T) {
	b := backend.NewNullBackend(40, 10)
	runApp(t, b, Options{}, func() {
		keys(b, "12z")
		ctrl(b, backend.KeyCtrlQ)
	})

	if got := b.Row(4); got != "0> 12" {
		t.Errorf("row 4 = %q, want kept input 0> 12", got)
	}
	if x, y, _ := b.CursorPosition(); x != 5 || y != 4 {
		t.Errorf("cursor = (%d,%d), want (5,4)", x, y)
	}
}

func TestApplication_ReopenSession(t *testing.T) {
	b := backend.NewNullBackend(40, 10)
	runApp(t, b, Options{}, func() {
		keys(b, "5\n")
		ctrl(b, backend.KeyCtrlR)
		keys(b, "7\n")
		ctrl(b, backend.KeyCtrlQ)
	})

	if got := b.Row(4); got != "0> 7" {
		t.Errorf("row 4 = %q, want 0> 7", got)
	}
	if got := b.Row(5); got != "1>" {
		t.Errorf("row 5 = %q, want 1>", got)
	}
}

func TestApplication_ReloadAppliesToNextSession(t *testing.T) {
	reloaded := config.Default()
	reloaded.WindowTitle = "calc"
	reload := backend.Event{Type: backend.EventInterrupt, Data: configReload{cfg: &reloaded}}

	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	// The open session keeps its config.
	b := backend.NewNullBackend(40, 10)
	runApp(t, b, Options{Logger: logger, ConfigPath: "config.toml"}, func() {
		b.PostEvent(reload)
		keys(b, "5\n")
		b.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: quitRequest{}})
	})
	if got := strings.TrimSpace(b.Row(0)); got != engineTitle() {
		t.Errorf("title = %q, want %q", got, engineTitle())
	}
	if got := b.Row(4); got != "0> 5" {
		t.Errorf("row 4 = %q, want 0> 5", got)
	}
	if !strings.Contains(buf.String(), "applies to the next session") {
		t.Errorf("reload not logged: %s", buf.String())
	}

	// A reopened session picks it up.
	b = backend.NewNullBackend(40, 10)
	runApp(t, b, Options{Logger: logger}, func() {
		b.PostEvent(reload)
		ctrl(b, backend.KeyCtrlR)
		ctrl(b, backend.KeyCtrlQ)
	})
	if got := strings.TrimSpace(b.Row(0)); got != "calc" {
		t.Errorf("title = %q, want calc", got)
	}
}

func TestApplication_RecoverEvent(t *testing.T) {
	var buf bytes.Buffer
	app := New(Options{Config: config.Default(), Logger: NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})})
	b := backend.NewNullBackend(40, 10)
	_ = b.Init()
	if err := app.SetBackend(b); err != nil {
		t.Fatal(err)
	}

	// No session is open, so the redraw dereferences nil.
	err := app.handleEvent(backend.Event{Type: backend.EventFocus, Focused: true})
	var perr *RecoveredPanicError
	if !errors.As(err, &perr) {
		t.Fatalf("handleEvent() error = %v, want RecoveredPanicError", err)
	}
	if !strings.Contains(buf.String(), "[ERROR]") || !strings.Contains(buf.String(), "panic:") {
		t.Errorf("panic not logged:\n%s", buf.String())
	}
	if b.Row(0) != "" {
		t.Errorf("screen written during recovery: %q", b.Row(0))
	}
}

func TestApplication_RunErrors(t *testing.T) {
	app := New(Options{Config: config.Default()})
	if err := app.Run(); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Run() without backend = %v, want ErrNoBackend", err)
	}
	if app.IsRunning() {
		t.Error("IsRunning() = true")
	}
}

func TestApplication_Resize(t *testing.T) {
	b := backend.NewNullBackend(40, 10)
	b.Resize(30, 8)
	runApp(t, b, Options{}, func() {
		ctrl(b, backend.KeyCtrlL)
		ctrl(b, backend.KeyCtrlQ)
	})

	if got, want := b.Row(0), strings.Repeat(" ", 10)+engineTitle(); got != want {
		t.Errorf("title row = %q, want %q", got, want)
	}
}
