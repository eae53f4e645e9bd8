// Package command defines the calculator operations and the per-mode
// tables that map a trigger key to an operation.
//
// # Operations
//
// An Operation is data: a trigger key, a name, a help string, an arity and
// either a pure function over its operands or a control Action that the
// engine carries out itself (undo, clear, help, change mode). Pure functions
// receive operands in pop order, so args[0] is the value that was on top
// ("x") and args[1] the one below it ("y").
//
// # Fault policy
//
// When a function fails the engine reports the fault. Operations with the
// ReportAndUndo policy additionally roll the stack back to its state before
// the operation.
//
// # Tables
//
// Each calculating mode owns a Table composed from sets: the fundamental
// and basic sets are shared, and one mode-specific set is layered on top.
// Keys are scoped to a table, so '^' is XOR in Programmer mode and an
// exponent in Scientific mode.
package command

import (
	"errors"
	"fmt"

	"github.com/dshills/rpncalc/internal/engine/value"
)

// AllValues is the Arity of operations that consume the whole stack.
const AllValues = -1

// Func computes an operation's results from its operands. Results are
// pushed in order, so the last result becomes the new top.
type Func func(args []value.Value) ([]value.Value, error)

// Action identifies operations the engine performs on its own state.
type Action uint8

const (
	// ActionNone marks an operation implemented by its Func.
	ActionNone Action = iota
	// ActionUndo restores the previous stack.
	ActionUndo
	// ActionClear empties the stack.
	ActionClear
	// ActionHelp opens the help overlay.
	ActionHelp
	// ActionChangeMode opens the mode/base/notation menu.
	ActionChangeMode
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionUndo:
		return "undo"
	case ActionClear:
		return "clear"
	case ActionHelp:
		return "help"
	case ActionChangeMode:
		return "change-mode"
	default:
		return "unknown"
	}
}

// FaultPolicy says what the engine does when an operation's Func fails.
type FaultPolicy uint8

const (
	// ReportOnly shows the fault; the consumed operands stay consumed.
	ReportOnly FaultPolicy = iota
	// ReportAndUndo shows the fault and restores the pre-operation stack.
	ReportAndUndo
)

// String returns a human-readable policy name.
func (p FaultPolicy) String() string {
	switch p {
	case ReportOnly:
		return "report"
	case ReportAndUndo:
		return "report-and-undo"
	default:
		return "unknown"
	}
}

// Operation describes one command.
type Operation struct {
	// Key is the single character that triggers the operation.
	Key rune

	// Name identifies the operation in logs.
	Name string

	// Doc is the help line shown next to the key.
	Doc string

	// Arity is the number of operands popped, or AllValues.
	Arity int

	// Fn computes the results. Nil for control actions.
	Fn Func

	// Action is set for operations the engine performs itself.
	Action Action

	// Policy applies when Fn fails.
	Policy FaultPolicy

	// Info replaces the help hint on success, e.g. "x | y".
	Info string
}

// Exempt reports whether the operation is excluded from undo snapshots.
func (op Operation) Exempt() bool {
	switch op.Action {
	case ActionUndo, ActionHelp, ActionChangeMode:
		return true
	default:
		return false
	}
}

// Set is a titled group of operations.
type Set struct {
	Title string
	Ops   []Operation
}

// Errors reported by operations. Every fault wraps one of the causes below
// in a *FaultError, which also matches ErrMathDomain.
var (
	ErrMathDomain        = errors.New("math error")
	ErrNegativeFactorial = errors.New("factorial not defined for negative values")
	ErrFactorialRange    = errors.New("factorial argument too large")
	ErrNotInteger        = errors.New("integer operand required")
	ErrLogDomain         = errors.New("logarithm of a non-positive value")
	ErrSqrtDomain        = errors.New("square root of a negative value")
	ErrShiftCount        = errors.New("shift count out of range")
	ErrFieldOrder        = errors.New("values must be MSB first, LSB second: x[y:z]")
	ErrPowDomain         = errors.New("math domain error")
	ErrOverflow          = errors.New("math range error")
)

// FaultError is a numeric or domain fault raised by an operation.
type FaultError struct {
	Op  string
	Err error
}

// Fault wraps cause as a fault of the named operation.
func Fault(op string, cause error) *FaultError {
	return &FaultError{Op: op, Err: cause}
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FaultError) Unwrap() error {
	return e.Err
}

// Is matches ErrMathDomain in addition to the wrapped cause.
func (e *FaultError) Is(target error) bool {
	return target == ErrMathDomain
}
