package engine

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/rpncalc/internal/engine/command"
	"github.com/dshills/rpncalc/internal/engine/format"
	"github.com/dshills/rpncalc/internal/engine/lexer"
	"github.com/dshills/rpncalc/internal/engine/mode"
	"github.com/dshills/rpncalc/internal/engine/stack"
	"github.com/dshills/rpncalc/internal/engine/value"
)

// Logger receives dispatch diagnostics.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// View is the host surface the calculator draws into and reads typed
// text from.
type View interface {
	// Len returns the length of the view's text in bytes.
	Len() int

	// TextFrom returns the view's text from byte offset off to the end.
	TextFrom(off int) string

	// Render replaces the view's content with the frame, followed by the
	// frame's Input. Hosts may report the replacement back through
	// OnModified before returning.
	Render(f Frame) error
}

// Frame is everything a host needs to draw the calculator.
type Frame struct {
	Title    string
	Mode     mode.Mode
	PrevMode mode.Mode
	Base     mode.Base
	Notation mode.Notation

	// Stack holds the values bottom first; Entries holds their display
	// strings.
	Stack   []value.Value
	Entries []string

	// Help is the help text, set only in Help mode.
	Help string

	// Message is the status line; empty hides it.
	Message string

	// Input is typed text that survives the render. Hosts place it after
	// the prompt, still editable.
	Input string

	// Bits is the Programmer mode word width.
	Bits int
}

// Engine is the calculator state machine for one session.
//
// Engine is not safe for concurrent use. Hosts deliver one event at a time.
type Engine struct {
	cfg        Config
	logger     Logger
	extensions []Extension

	registry  *command.Registry
	formatter *format.Formatter
	stack     *stack.Stack

	mode     mode.Mode
	prev     mode.Mode
	base     mode.Base
	notation mode.Notation
	help     string
	message  string
	lastErr  error

	// selfUpdate is set while the engine's own render is being applied to
	// the view and consumed by the modification event it causes.
	selfUpdate bool
	editStart  int

	// carry is put back as Input by the next render; carried is its
	// length in the view after that render.
	carry   string
	carried int
}

// New creates an engine in its initial state.
func New(cfg Config, opts ...Option) *Engine {
	cfg = cfg.withDefaults()
	e := &Engine{
		cfg:    cfg,
		logger: nopLogger{},
		stack:  stack.New(),
		formatter: format.New(format.Options{
			BinMaxBits:   cfg.BinMaxBits,
			SciPrecision: cfg.SciPrecision,
			SciThreshold: cfg.SciThreshold,
		}),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.registry = command.NewRegistry(command.Options{BinMaxBits: cfg.BinMaxBits})
	for _, ext := range e.extensions {
		if err := e.registry.Extend(ext.Mode, ext.Set); err != nil {
			e.logger.Warn("extension %q skipped: %v", ext.Set.Title, err)
		}
	}

	e.Reset()
	return e
}

// Reset returns the session to its initial state: empty stack and
// history, Programmer mode, decimal base, regular notation.
func (e *Engine) Reset() {
	e.stack.Reset()
	e.mode = mode.Programmer
	e.prev = mode.Programmer
	e.base = mode.Decimal
	e.notation = mode.Regular
	e.help = ""
	e.message = HelpHint
	e.lastErr = nil
	e.selfUpdate = false
	e.editStart = 0
	e.carry = ""
	e.carried = 0
}

// Config returns the session configuration.
func (e *Engine) Config() Config { return e.cfg }

// Mode returns the active mode.
func (e *Engine) Mode() mode.Mode { return e.mode }

// PrevMode returns the mode an overlay returns to.
func (e *Engine) PrevMode() mode.Mode { return e.prev }

// Base returns the Programmer mode base.
func (e *Engine) Base() mode.Base { return e.base }

// Notation returns the Scientific mode notation.
func (e *Engine) Notation() mode.Notation { return e.notation }

// Message returns the current status message.
func (e *Engine) Message() string { return e.message }

// Values returns a copy of the stack, bottom first.
func (e *Engine) Values() []value.Value { return e.stack.Values() }

// UndoDepth returns the number of stored undo snapshots.
func (e *Engine) UndoDepth() int { return e.stack.UndoCount() }

// EditStart returns the view offset where typed input begins.
func (e *Engine) EditStart() int { return e.editStart }

// Err returns the error recorded by the most recent event, if any.
func (e *Engine) Err() error { return e.lastErr }

// Table returns the command table of the active mode, or of the mode an
// overlay returns to.
func (e *Engine) Table() *command.Table {
	if e.mode.IsOverlay() {
		return e.registry.Table(e.prev)
	}
	return e.registry.Table(e.mode)
}

// Frame returns the current display state.
func (e *Engine) Frame() Frame {
	vals := e.stack.Values()
	entries := make([]string, len(vals))
	for i, v := range vals {
		entries[i] = e.formatter.Format(v, e.mode, e.base, e.notation)
	}
	f := Frame{
		Title:    e.cfg.WindowTitle,
		Mode:     e.mode,
		PrevMode: e.prev,
		Base:     e.base,
		Notation: e.notation,
		Stack:    vals,
		Entries:  entries,
		Message:  e.message,
		Bits:     e.cfg.BinMaxBits,
		Input:    e.carry,
	}
	if e.mode == mode.Help {
		f.Help = e.help
	}
	return f
}

// OnActivated redraws the view when it regains focus, unless the
// activation was caused by the engine's own render.
func (e *Engine) OnActivated(v View) error {
	if e.selfUpdate {
		return nil
	}
	return e.render(v)
}

// OnModified handles a change to the view's text. Text beyond the edit
// start is the input typed since the last render.
func (e *Engine) OnModified(v View) error {
	if e.selfUpdate {
		e.selfUpdate = false
		e.editStart = max(v.Len()-e.carried, 0)
		return nil
	}

	// A deletion reached into the rendered output.
	if v.Len() < e.editStart {
		return e.render(v)
	}

	text := v.TextFrom(e.editStart)
	e.lastErr = nil

	switch e.mode {
	case mode.Help:
		e.mode = e.prev
		return e.render(v)
	case mode.ChangeMode:
		e.changeMode(text)
		return e.render(v)
	}

	if !e.handleInput(text) {
		return nil
	}
	return e.render(v)
}

// handleInput classifies the last typed character and reports whether the
// view needs a redraw.
func (e *Engine) handleInput(text string) bool {
	key, size := utf8.DecodeLastRuneInString(text)
	if size == 0 {
		return false
	}
	prefix := text[:len(text)-size]
	table := e.registry.Table(e.mode)

	if lexer.Scan(e.mode, e.base, prefix).CanAccept(key) {
		return false
	}

	if op, ok := table.Lookup(key); ok {
		if strings.TrimSpace(prefix) != "" {
			if err := e.pushLiteral(prefix); err != nil {
				return true
			}
		}
		e.dispatch(op)
		return true
	}

	if unicode.IsSpace(key) {
		if strings.TrimSpace(text) != "" {
			_ = e.pushLiteral(text)
		}
		return true
	}

	e.fail(&IllegalKeyError{Key: key}, fmt.Sprintf("ERROR:  Illegal digit or command %c", key))
	e.carry = prefix
	return true
}

func (e *Engine) pushLiteral(text string) error {
	text = strings.TrimSpace(text)
	v, err := lexer.Parse(e.mode, e.base, text)
	if err != nil {
		perr := &ParseError{Text: text, Err: err}
		e.fail(perr, fmt.Sprintf("ERROR:  Unable to convert %s to a number.", text))
		return perr
	}
	e.message = HelpHint
	e.stack.Snapshot()
	e.stack.Push(v)
	e.logger.Debug("push %v", v)
	return nil
}

// dispatch runs one operation: snapshot unless exempt, pop operands, apply
// the function, push results, and apply the fault policy on failure.
func (e *Engine) dispatch(op command.Operation) {
	e.message = HelpHint
	if !op.Exempt() {
		e.stack.Snapshot()
	}
	e.logger.Debug("dispatch %s in %v", op.Name, e.mode)

	switch op.Action {
	case command.ActionUndo:
		if err := e.stack.Undo(); err != nil {
			e.fail(err, "ERROR:  No previous stack available.")
		}
		return
	case command.ActionClear:
		e.stack.Clear()
		return
	case command.ActionHelp:
		e.enterHelp()
		return
	case command.ActionChangeMode:
		e.prev = e.mode
		e.mode = mode.ChangeMode
		return
	}

	var (
		args []value.Value
		err  error
	)
	switch {
	case op.Arity == command.AllValues:
		args, err = e.stack.PopAll()
	case op.Arity > 0:
		args, err = e.stack.PopN(op.Arity)
	}
	if err != nil {
		var de *stack.DepthError
		if errors.As(err, &de) {
			e.fail(err, fmt.Sprintf("ERROR:  Not enough values for operation: %d required, but only %d available.",
				de.Required, de.Available))
		} else {
			e.fail(err, "ERROR:  "+err.Error())
		}
		return
	}

	results, err := op.Fn(args)
	if err != nil {
		if !errors.Is(err, command.ErrMathDomain) {
			err = command.Fault(op.Name, err)
		}
		e.fail(err, "math error: "+faultCause(err).Error())
		e.logger.Warn("fault in %s: %v", op.Name, err)
		if op.Policy == command.ReportAndUndo {
			if uerr := e.stack.Undo(); uerr != nil {
				e.logger.Warn("rollback after %s failed: %v", op.Name, uerr)
			}
		}
		return
	}

	for _, r := range results {
		e.stack.Push(r)
	}
	if op.Info != "" {
		e.message = op.Info
	}
}

func faultCause(err error) error {
	var fe *command.FaultError
	if errors.As(err, &fe) && fe.Err != nil {
		return fe.Err
	}
	return err
}

func (e *Engine) enterHelp() {
	if e.mode != mode.Help {
		e.prev = e.mode
		e.help = e.registry.Table(e.mode).HelpText()
	}
	e.mode = mode.Help
}

// changeMode applies a change-mode menu key. Unknown input is ignored.
func (e *Engine) changeMode(text string) {
	if utf8.RuneCountInString(text) != 1 {
		return
	}
	key, _ := utf8.DecodeRuneInString(text)
	sel, ok := command.LookupSelection(e.prev, key)
	if !ok {
		return
	}
	switch sel.Kind {
	case command.SelectMode:
		e.mode = sel.Mode
	case command.SelectBase:
		e.base = sel.Base
		e.mode = e.prev
	case command.SelectNotation:
		e.notation = sel.Notation
		e.mode = e.prev
	case command.SelectExit:
		e.mode = e.prev
	}
	e.logger.Debug("mode %v base %v notation %v", e.mode, e.base, e.notation)
}

func (e *Engine) fail(err error, msg string) {
	e.lastErr = err
	e.message = msg
	e.logger.Debug("%s", msg)
}

// render draws the current frame. The modification it causes is consumed
// by OnModified; hosts that do not report it have it consumed here.
func (e *Engine) render(v View) error {
	f := e.Frame()
	e.carry = ""
	e.carried = len(f.Input)
	e.selfUpdate = true
	err := v.Render(f)
	if e.selfUpdate {
		e.selfUpdate = false
		e.editStart = max(v.Len()-e.carried, 0)
	}
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
