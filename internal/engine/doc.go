// Package engine provides the RPN calculator state machine.
//
// The engine owns the value stack with its undo history, the active mode,
// base and notation, and the status message. It is driven by a host View:
// the host reports every change to its text through OnModified, and the
// engine answers with Render calls carrying a Frame.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - value: integer or floating-point calculator values
//   - stack: the value stack and its snapshot-based undo history
//   - lexer: incremental recognition of numeric literals
//   - command: operations and the per-mode command tables
//   - format: mode, base and notation aware display strings
//   - mode: the Mode, Base and Notation enumerations
//
// # Input
//
// Text typed after the last render is the pending input. On each change
// the last character decides what happens:
//
//   - a character that extends the numeric literal is accumulated
//   - a command key first pushes any pending literal, then runs the command
//   - whitespace pushes the pending literal
//   - anything else is reported as an illegal key
//
// In Help mode any key returns to the previous mode. In ChangeMode the key
// selects a mode, base or notation from the menu.
//
// # Dispatch
//
// Every command except undo, help and change-mode snapshots the stack
// first, so undo is the inverse of any other command. Operands are popped,
// the operation computes its results and the results are pushed. When an
// operation faults the engine reports it; division, modulo and bit-field
// extraction also restore the pre-operation stack.
//
// # Basic Usage
//
//	e := engine.New(engine.DefaultConfig())
//	view := newHostView() // implements engine.View
//	e.OnActivated(view)    // first render
//	// ...host appends typed text to view...
//	e.OnModified(view)
//
// # Thread Safety
//
// Engine is not safe for concurrent use; hosts serialize events.
package engine
