// Package format converts calculator values to their display strings.
//
// Programmer mode shows integers in the active base, zero-padded to the
// configured word width, with negatives in two's complement and binary,
// octal and hex digits grouped in fours from the right. Scientific mode
// switches to scientific or engineering notation at a magnitude threshold.
// Everything else uses the shortest general representation.
package format

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dshills/rpncalc/internal/engine/mode"
	"github.com/dshills/rpncalc/internal/engine/value"
)

// Options configures a Formatter.
type Options struct {
	// BinMaxBits is the Programmer mode word width.
	BinMaxBits int

	// SciPrecision is the number of significant digits in notation output.
	SciPrecision int

	// SciThreshold is the magnitude at which Scientific mode switches to
	// notation output.
	SciThreshold float64
}

// DefaultOptions returns the standard 48-bit, 10-digit configuration.
func DefaultOptions() Options {
	return Options{
		BinMaxBits:   48,
		SciPrecision: 10,
		SciThreshold: 10000,
	}
}

// Formatter renders values for display.
type Formatter struct {
	opts    Options
	modulus *big.Int
}

// New creates a Formatter.
func New(opts Options) *Formatter {
	return &Formatter{
		opts:    opts,
		modulus: new(big.Int).Lsh(big.NewInt(1), uint(opts.BinMaxBits)),
	}
}

// Options returns the formatter configuration.
func (f *Formatter) Options() Options {
	return f.opts
}

// Format returns the display string of v in the given mode, base and
// notation.
func (f *Formatter) Format(v value.Value, m mode.Mode, b mode.Base, n mode.Notation) string {
	switch m {
	case mode.Programmer:
		if s, ok := f.integer(v, b); ok {
			return s
		}
	case mode.Scientific:
		if math.Abs(v.Float64()) >= f.opts.SciThreshold {
			if s, ok := f.notation(v, n); ok {
				return s
			}
		}
	}
	return General(v)
}

// General returns the shortest representation that round-trips v.
func General(v value.Value) string {
	return strconv.FormatFloat(v.Float64(), 'G', -1, 64)
}

func (f *Formatter) integer(v value.Value, b mode.Base) (string, bool) {
	n, ok := v.Trunc()
	if !ok {
		return "", false
	}
	if n.Sign() < 0 {
		n.Mod(n, f.modulus)
	}

	s := strings.ToUpper(n.Text(int(b)))
	if b == mode.Decimal {
		return s, true
	}
	if w := f.width(b); len(s) < w {
		s = strings.Repeat("0", w-len(s)) + s
	}
	return Group(s, 4, '_'), true
}

func (f *Formatter) width(b mode.Base) int {
	switch b {
	case mode.Binary:
		return f.opts.BinMaxBits
	case mode.Octal:
		return f.opts.BinMaxBits / 3
	case mode.Hex:
		return f.opts.BinMaxBits / 4
	default:
		return 0
	}
}

// Group inserts sep every size characters counting from the right. Strings
// of at most size characters are returned unchanged.
func Group(s string, size int, sep byte) string {
	if len(s) <= size {
		return s
	}
	var sb strings.Builder
	lead := len(s) % size
	if lead == 0 {
		lead = size
	}
	sb.WriteString(s[:lead])
	for i := lead; i < len(s); i += size {
		sb.WriteByte(sep)
		sb.WriteString(s[i : i+size])
	}
	return sb.String()
}

func (f *Formatter) notation(v value.Value, n mode.Notation) (string, bool) {
	var d decimal.Decimal
	if i, ok := v.BigInt(); ok && v.IsInt() {
		d = decimal.NewFromBigInt(i, 0)
	} else {
		x := v.Float64()
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return "", false
		}
		d = decimal.NewFromFloat(x)
	}
	if d.IsZero() {
		return "", false
	}

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	d = d.Round(int32(f.opts.SciPrecision - 1 - adjusted(d)))
	exp := adjusted(d)
	if n == mode.Engineering {
		exp = floorDiv(exp, 3) * 3
	}
	mantissa := d.Shift(int32(-exp))
	return sign + mantissa.String() + "E" + signed(exp), true
}

// adjusted returns the exponent of the leading digit of a non-zero d.
func adjusted(d decimal.Decimal) int {
	digits := len(new(big.Int).Abs(d.Coefficient()).String())
	return digits - 1 + int(d.Exponent())
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func signed(n int) string {
	if n < 0 {
		return strconv.Itoa(n)
	}
	return "+" + strconv.Itoa(n)
}
