package engine

import (
	"errors"
	"fmt"

	"github.com/dshills/rpncalc/internal/engine/command"
	"github.com/dshills/rpncalc/internal/engine/stack"
)

// Errors recorded by the engine. All of them are recovered: the engine
// reports them on the message line and stays usable.
var (
	// ErrInsufficientDepth indicates an operation needed more values than
	// the stack holds.
	ErrInsufficientDepth = stack.ErrInsufficientDepth

	// ErrNothingToUndo indicates undo was requested with no history.
	ErrNothingToUndo = stack.ErrNothingToUndo

	// ErrMathDomain indicates a numeric fault inside an operation.
	ErrMathDomain = command.ErrMathDomain

	// ErrNumericParse indicates typed text is not a number in the active
	// mode and base.
	ErrNumericParse = errors.New("unable to convert to a number")

	// ErrIllegalKey indicates a keystroke that is neither a digit nor a
	// command in the active mode.
	ErrIllegalKey = errors.New("illegal digit or command")
)

// ParseError records a literal that could not be converted.
type ParseError struct {
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to convert %q to a number", e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches ErrNumericParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrNumericParse
}

// IllegalKeyError records a rejected keystroke.
type IllegalKeyError struct {
	Key rune
}

func (e *IllegalKeyError) Error() string {
	return fmt.Sprintf("illegal digit or command %q", e.Key)
}

// Is matches ErrIllegalKey.
func (e *IllegalKeyError) Is(target error) bool {
	return target == ErrIllegalKey
}
