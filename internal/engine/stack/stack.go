// Package stack provides the calculator value stack and its undo history.
//
// The history records full snapshots of the stack. The engine takes a
// snapshot immediately before every stack-mutating command, so Undo always
// restores the stack as it was before the most recent command:
//
//	s := stack.New()
//	s.Push(value.FromInt64(3))
//	s.Snapshot()
//	s.Push(value.FromInt64(4))
//	s.Undo() // stack is [3] again
//
// A Stack is owned by a single engine session and is not safe for
// concurrent use.
package stack

import (
	"errors"
	"fmt"

	"github.com/dshills/rpncalc/internal/engine/value"
)

// Common errors for stack operations.
var (
	// ErrInsufficientDepth is matched by every *DepthError.
	ErrInsufficientDepth = errors.New("insufficient stack depth")

	// ErrNothingToUndo is returned by Undo when no snapshot is recorded.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// DepthError reports an operation that needed more values than the stack held.
type DepthError struct {
	Required  int
	Available int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("%d values required, but only %d available", e.Required, e.Available)
}

// Is matches ErrInsufficientDepth.
func (e *DepthError) Is(target error) bool {
	return target == ErrInsufficientDepth
}

// Stack is an ordered sequence of values; the last element is the top.
type Stack struct {
	values  []value.Value
	history [][]value.Value
}

// New creates an empty stack with an empty history.
func New() *Stack {
	return &Stack{}
}

// Len returns the number of values on the stack.
func (s *Stack) Len() int {
	return len(s.values)
}

// Values returns a copy of the stack, bottom first.
func (s *Stack) Values() []value.Value {
	return clone(s.values)
}

// Push appends v as the new top.
func (s *Stack) Push(v value.Value) {
	s.values = append(s.values, v)
}

// Peek returns the top value without removing it.
func (s *Stack) Peek() (value.Value, error) {
	if len(s.values) == 0 {
		return value.Value{}, &DepthError{Required: 1}
	}
	return s.values[len(s.values)-1], nil
}

// PopN removes and returns the top n values in pop order: the first element
// is the value that was on top. The stack is unchanged on error.
func (s *Stack) PopN(n int) ([]value.Value, error) {
	if n < 1 {
		return nil, fmt.Errorf("pop count %d: must be at least 1", n)
	}
	if len(s.values) < n {
		return nil, &DepthError{Required: n, Available: len(s.values)}
	}
	vals := make([]value.Value, n)
	for i := 0; i < n; i++ {
		vals[i] = s.values[len(s.values)-1-i]
	}
	s.values = s.values[:len(s.values)-n]
	return vals, nil
}

// PopAll empties the stack and returns its values in insertion order.
func (s *Stack) PopAll() ([]value.Value, error) {
	if len(s.values) == 0 {
		return nil, &DepthError{Required: 1}
	}
	vals := s.values
	s.values = nil
	return vals, nil
}

// Clear empties the stack. History is kept so the clear can be undone.
func (s *Stack) Clear() {
	s.values = nil
}

// Snapshot records a copy of the current stack in the undo history.
func (s *Stack) Snapshot() {
	s.history = append(s.history, clone(s.values))
}

// Undo replaces the stack with the most recent snapshot.
func (s *Stack) Undo() error {
	if len(s.history) == 0 {
		return ErrNothingToUndo
	}
	last := len(s.history) - 1
	s.values = s.history[last]
	s.history[last] = nil
	s.history = s.history[:last]
	return nil
}

// CanUndo returns true if a snapshot is available.
func (s *Stack) CanUndo() bool {
	return len(s.history) > 0
}

// UndoCount returns the number of recorded snapshots.
func (s *Stack) UndoCount() int {
	return len(s.history)
}

// Reset empties both the stack and its history.
func (s *Stack) Reset() {
	s.values = nil
	s.history = nil
}

func clone(vals []value.Value) []value.Value {
	if len(vals) == 0 {
		return nil
	}
	out := make([]value.Value, len(vals))
	copy(out, vals)
	return out
}
