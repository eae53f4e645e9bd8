package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a command runs too long.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrBadCommand is returned when rpn.command is called with an
	// invalid definition.
	ErrBadCommand = errors.New("invalid command definition")

	// ErrBadResult is returned when a command returns a non-number.
	ErrBadResult = errors.New("command must return numbers")
)
