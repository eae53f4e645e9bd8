// Package mode defines the calculator modes, integer bases and display
// notations tracked by the engine state machine.
package mode

// Mode identifies the active calculator mode.
type Mode uint8

const (
	// Basic is four-function arithmetic on floating-point values.
	Basic Mode = iota

	// Programmer works on integers shown in the active Base.
	Programmer

	// Scientific adds transcendental operations and large-value notation.
	Scientific

	// Stats adds aggregate operations over the whole stack.
	Stats

	// Help shows the help overlay until the next keystroke.
	Help

	// ChangeMode shows the mode/base/notation menu.
	ChangeMode
)

// Modes lists the calculating modes, in menu order.
var Modes = []Mode{Basic, Programmer, Scientific, Stats}

// String returns the name shown on the mode bar.
func (m Mode) String() string {
	switch m {
	case Basic:
		return "BASIC"
	case Programmer:
		return "PROGRAMMER"
	case Scientific:
		return "SCIENTIFIC"
	case Stats:
		return "STATISTICS"
	case Help:
		return "HELP"
	case ChangeMode:
		return ""
	default:
		return "UNKNOWN"
	}
}

// Name returns the lower-case identifier used in config files and plugins.
func (m Mode) Name() string {
	switch m {
	case Basic:
		return "basic"
	case Programmer:
		return "programmer"
	case Scientific:
		return "scientific"
	case Stats:
		return "stats"
	case Help:
		return "help"
	case ChangeMode:
		return "change-mode"
	default:
		return "unknown"
	}
}

// IsOverlay reports whether m is a transient overlay (Help or ChangeMode)
// rather than a calculating mode.
func (m Mode) IsOverlay() bool {
	return m == Help || m == ChangeMode
}

// Parse returns the calculating mode with the given Name.
func Parse(name string) (Mode, bool) {
	for _, m := range Modes {
		if m.Name() == name {
			return m, true
		}
	}
	return 0, false
}

// Base is the radix used for Programmer mode entry and display.
type Base int

// Supported bases.
const (
	Binary  Base = 2
	Octal   Base = 8
	Decimal Base = 10
	Hex     Base = 16
)

// String returns the mode bar abbreviation.
func (b Base) String() string {
	switch b {
	case Binary:
		return "BIN"
	case Octal:
		return "OCT"
	case Decimal:
		return "DEC"
	case Hex:
		return "HEX"
	default:
		return "???"
	}
}

// Digits returns the characters accepted as digits in this base.
func (b Base) Digits() string {
	switch b {
	case Binary:
		return "01"
	case Octal:
		return "01234567"
	case Hex:
		return "0123456789abcdefABCDEF"
	default:
		return "0123456789"
	}
}

// Notation selects how Scientific mode shows large values.
type Notation uint8

const (
	// Regular is plain scientific notation (d.dddE+n).
	Regular Notation = iota

	// Engineering keeps exponents at multiples of three.
	Engineering
)

// String returns the mode bar abbreviation.
func (n Notation) String() string {
	switch n {
	case Regular:
		return "REG"
	case Engineering:
		return "ENG"
	default:
		return "???"
	}
}
