// Package value provides the numeric type held on the calculator stack.
//
// A Value is either an arbitrary-precision integer or a float64. Integer
// arithmetic stays exact; mixing an integer with a float promotes the
// result to float, and true division of integers yields an integer only
// when the quotient is exact.
package value

import (
	"errors"
	"math"
	"math/big"
	"strconv"
)

// ErrDivideByZero is returned by Quo and Mod for a zero divisor.
var ErrDivideByZero = errors.New("division by zero")

// Kind discriminates the two representations of a Value.
type Kind uint8

const (
	// Float values are IEEE-754 doubles.
	Float Kind = iota

	// Int values are arbitrary-precision integers.
	Int
)

// Value is an immutable calculator number. The zero Value is float 0.
type Value struct {
	kind Kind
	i    *big.Int
	f    float64
}

// FromInt64 returns an integer Value.
func FromInt64(n int64) Value {
	return Value{kind: Int, i: big.NewInt(n)}
}

// FromBigInt returns an integer Value holding a copy of n.
func FromBigInt(n *big.Int) Value {
	return Value{kind: Int, i: new(big.Int).Set(n)}
}

// FromFloat returns a float Value.
func FromFloat(f float64) Value {
	return Value{kind: Float, f: f}
}

// Kind returns the representation of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsInt reports whether v is an integer Value.
func (v Value) IsInt() bool {
	return v.kind == Int && v.i != nil
}

// Float64 returns v as a float64, rounding large integers.
func (v Value) Float64() float64 {
	if v.IsInt() {
		f, _ := new(big.Float).SetInt(v.i).Float64()
		return f
	}
	return v.f
}

// BigInt returns v as an integer when it has an exact integer value:
// integers always do, floats only when finite and integral.
func (v Value) BigInt() (*big.Int, bool) {
	if v.IsInt() {
		return new(big.Int).Set(v.i), true
	}
	if math.IsInf(v.f, 0) || math.IsNaN(v.f) || v.f != math.Trunc(v.f) {
		return nil, false
	}
	n, _ := new(big.Float).SetFloat64(v.f).Int(nil)
	return n, true
}

// Trunc returns v truncated toward zero. It fails only for NaN and infinities.
func (v Value) Trunc() (*big.Int, bool) {
	if v.IsInt() {
		return new(big.Int).Set(v.i), true
	}
	if math.IsInf(v.f, 0) || math.IsNaN(v.f) {
		return nil, false
	}
	n, _ := new(big.Float).SetFloat64(v.f).Int(nil)
	return n, true
}

// Sign returns -1, 0 or +1. NaN reports 0.
func (v Value) Sign() int {
	if v.IsInt() {
		return v.i.Sign()
	}
	switch {
	case v.f < 0:
		return -1
	case v.f > 0:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether v equals zero.
func (v Value) IsZero() bool {
	if v.IsInt() {
		return v.i.Sign() == 0
	}
	return v.f == 0
}

// Equal reports whether v and o are numerically equal, so Int 2 equals
// Float 2.0.
func (v Value) Equal(o Value) bool {
	if v.IsInt() && o.IsInt() {
		return v.i.Cmp(o.i) == 0
	}
	return Compare(v, o) == 0 && !math.IsNaN(v.Float64()) && !math.IsNaN(o.Float64())
}

// String returns a debugging representation.
func (v Value) String() string {
	if v.IsInt() {
		return v.i.String()
	}
	return strconv.FormatFloat(v.f, 'g', -1, 64)
}

// Compare orders a and b numerically. NaN sorts before every other value.
func Compare(a, b Value) int {
	if a.IsInt() && b.IsInt() {
		return a.i.Cmp(b.i)
	}
	af, bf := a.Float64(), b.Float64()
	switch {
	case math.IsNaN(af) && math.IsNaN(bf):
		return 0
	case math.IsNaN(af):
		return -1
	case math.IsNaN(bf):
		return 1
	case af < bf:
		return -1
	case af > bf:
		return 1
	}
	// Equal as floats; break ties exactly when one side is a wide integer.
	if a.IsInt() || b.IsInt() {
		if math.IsInf(af, 0) {
			return 0
		}
		return toBigFloat(a).Cmp(toBigFloat(b))
	}
	return 0
}

func toBigFloat(v Value) *big.Float {
	if v.IsInt() {
		return new(big.Float).SetPrec(uint(v.i.BitLen()) + 64).SetInt(v.i)
	}
	return new(big.Float).SetFloat64(v.f)
}

// Add returns y + x.
func Add(y, x Value) Value {
	if y.IsInt() && x.IsInt() {
		return Value{kind: Int, i: new(big.Int).Add(y.i, x.i)}
	}
	return FromFloat(y.Float64() + x.Float64())
}

// Sub returns y - x.
func Sub(y, x Value) Value {
	if y.IsInt() && x.IsInt() {
		return Value{kind: Int, i: new(big.Int).Sub(y.i, x.i)}
	}
	return FromFloat(y.Float64() - x.Float64())
}

// Mul returns y * x.
func Mul(y, x Value) Value {
	if y.IsInt() && x.IsInt() {
		return Value{kind: Int, i: new(big.Int).Mul(y.i, x.i)}
	}
	return FromFloat(y.Float64() * x.Float64())
}

// Quo returns the true quotient y / x. Two integers give an integer when
// the division is exact and a float otherwise.
func Quo(y, x Value) (Value, error) {
	if x.IsZero() {
		return Value{}, ErrDivideByZero
	}
	if y.IsInt() && x.IsInt() {
		q, r := new(big.Int).QuoRem(y.i, x.i, new(big.Int))
		if r.Sign() == 0 {
			return Value{kind: Int, i: q}, nil
		}
		f, _ := new(big.Rat).SetFrac(y.i, x.i).Float64()
		return FromFloat(f), nil
	}
	return FromFloat(y.Float64() / x.Float64()), nil
}

// Mod returns y mod x with the sign of the divisor (floored modulo).
func Mod(y, x Value) (Value, error) {
	if x.IsZero() {
		return Value{}, ErrDivideByZero
	}
	if y.IsInt() && x.IsInt() {
		r := new(big.Int).Rem(y.i, x.i)
		if r.Sign() != 0 && r.Sign() != x.i.Sign() {
			r.Add(r, x.i)
		}
		return Value{kind: Int, i: r}, nil
	}
	xf := x.Float64()
	r := math.Mod(y.Float64(), xf)
	if r != 0 && (r < 0) != (xf < 0) {
		r += xf
	}
	return FromFloat(r), nil
}

// Neg returns -x.
func Neg(x Value) Value {
	if x.IsInt() {
		return Value{kind: Int, i: new(big.Int).Neg(x.i)}
	}
	return FromFloat(-x.f)
}
