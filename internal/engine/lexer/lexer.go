// Package lexer recognizes numeric literals as they are typed, one
// character at a time.
//
// The accepted grammar depends on the calculator mode:
//
//	Programmer:  digit+                       (digits of the active base)
//	Basic/Stats: digit* ['.' digit*]          (at least one digit overall)
//	Scientific:  mantissa ['E' ['-'] digit+] | 'e' | 'p'
//
// where mantissa is the Basic/Stats form, 'e' is Euler's number and 'p'
// is pi. A Lexer tells the engine whether the next character extends the
// literal; characters it rejects are then looked up as commands.
package lexer

import (
	"strings"

	"github.com/dshills/rpncalc/internal/engine/mode"
)

// State is the position of the lexer inside a literal.
type State uint8

const (
	// Start is the empty literal.
	Start State = iota
	// IntDigits follows one or more integer digits.
	IntDigits
	// LeadingDot follows a '.' with no digits before it.
	LeadingDot
	// FracDigits follows a '.' that has at least one digit before or after it.
	FracDigits
	// ExpMark follows the exponent marker 'E'.
	ExpMark
	// ExpSign follows the '-' after 'E'.
	ExpSign
	// ExpDigits follows one or more exponent digits.
	ExpDigits
	// Constant follows a named constant ('e' or 'p').
	Constant
	// Rejected is entered after an illegal character and never left.
	Rejected
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Start:
		return "start"
	case IntDigits:
		return "int"
	case LeadingDot:
		return "dot"
	case FracDigits:
		return "frac"
	case ExpMark:
		return "exp-mark"
	case ExpSign:
		return "exp-sign"
	case ExpDigits:
		return "exp"
	case Constant:
		return "constant"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Lexer tracks a literal being typed in one mode/base.
type Lexer struct {
	mode  mode.Mode
	base  mode.Base
	state State
}

// New creates a lexer for literals entered in the given mode and base.
// The base only matters in Programmer mode.
func New(m mode.Mode, b mode.Base) *Lexer {
	return &Lexer{mode: m, base: b}
}

// Scan feeds text through a new lexer and returns it. The lexer is in the
// Rejected state if any character was illegal.
func Scan(m mode.Mode, b mode.Base, text string) *Lexer {
	l := New(m, b)
	for _, r := range text {
		if !l.Accept(r) {
			break
		}
	}
	return l
}

// State returns the current state.
func (l *Lexer) State() State {
	return l.state
}

// Accept advances over r if it legally extends the literal. On failure the
// lexer moves to Rejected.
func (l *Lexer) Accept(r rune) bool {
	next, ok := l.next(r)
	if !ok {
		l.state = Rejected
		return false
	}
	l.state = next
	return true
}

// CanAccept reports whether r would extend the literal, without advancing.
func (l *Lexer) CanAccept(r rune) bool {
	_, ok := l.next(r)
	return ok
}

// Complete reports whether the text consumed so far is a whole literal.
func (l *Lexer) Complete() bool {
	switch l.state {
	case IntDigits, FracDigits, ExpDigits, Constant:
		return true
	default:
		return false
	}
}

func (l *Lexer) next(r rune) (State, bool) {
	if l.state == Rejected {
		return Rejected, false
	}
	switch l.mode {
	case mode.Programmer:
		if strings.ContainsRune(l.base.Digits(), r) && (l.state == Start || l.state == IntDigits) {
			return IntDigits, true
		}
		return Rejected, false
	case mode.Basic, mode.Stats:
		return l.decimal(r, false)
	case mode.Scientific:
		return l.decimal(r, true)
	default:
		return Rejected, false
	}
}

func (l *Lexer) decimal(r rune, scientific bool) (State, bool) {
	digit := r >= '0' && r <= '9'
	switch l.state {
	case Start:
		switch {
		case digit:
			return IntDigits, true
		case r == '.':
			return LeadingDot, true
		case scientific && (r == 'e' || r == 'p'):
			return Constant, true
		}
	case IntDigits:
		switch {
		case digit:
			return IntDigits, true
		case r == '.':
			return FracDigits, true
		case scientific && r == 'E':
			return ExpMark, true
		}
	case LeadingDot:
		if digit {
			return FracDigits, true
		}
	case FracDigits:
		switch {
		case digit:
			return FracDigits, true
		case scientific && r == 'E':
			return ExpMark, true
		}
	case ExpMark:
		switch {
		case digit:
			return ExpDigits, true
		case r == '-':
			return ExpSign, true
		}
	case ExpSign, ExpDigits:
		if digit {
			return ExpDigits, true
		}
	}
	return Rejected, false
}
