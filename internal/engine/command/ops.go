package command

import (
	"math"
	"math/big"
	"sort"

	"github.com/dshills/rpncalc/internal/engine/value"
)

// Limits that keep every operation bounded in time and memory.
const (
	MaxShift     = 1 << 14
	MaxFactorial = 3000
)

// Options parameterizes the built-in operations.
type Options struct {
	// BinMaxBits is the Programmer mode word width used by BitwiseNot.
	BinMaxBits int
}

func unary(name string, f func(x value.Value) (value.Value, error)) Func {
	return func(args []value.Value) ([]value.Value, error) {
		v, err := f(args[0])
		if err != nil {
			return nil, wrap(name, err)
		}
		return []value.Value{v}, nil
	}
}

func binary(name string, f func(y, x value.Value) (value.Value, error)) Func {
	return func(args []value.Value) ([]value.Value, error) {
		v, err := f(args[1], args[0])
		if err != nil {
			return nil, wrap(name, err)
		}
		return []value.Value{v}, nil
	}
}

func aggregate(name string, f func(vals []value.Value) (value.Value, error)) Func {
	return func(args []value.Value) ([]value.Value, error) {
		v, err := f(args)
		if err != nil {
			return nil, wrap(name, err)
		}
		return []value.Value{v}, nil
	}
}

func wrap(name string, err error) error {
	if _, ok := err.(*FaultError); ok {
		return err
	}
	return Fault(name, err)
}

// floatResult rejects NaN and infinite results that did not come from NaN
// or infinite inputs.
func floatResult(r float64, in ...float64) (value.Value, error) {
	propagated := false
	for _, f := range in {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			propagated = true
		}
	}
	switch {
	case propagated:
	case math.IsNaN(r):
		return value.Value{}, ErrPowDomain
	case math.IsInf(r, 0):
		return value.Value{}, ErrOverflow
	}
	return value.FromFloat(r), nil
}

func intArg(v value.Value) (*big.Int, error) {
	n, ok := v.BigInt()
	if !ok {
		return nil, ErrNotInteger
	}
	return n, nil
}

func shiftCount(v value.Value) (uint, error) {
	n, err := intArg(v)
	if err != nil {
		return 0, err
	}
	if n.Sign() < 0 || !n.IsInt64() || n.Int64() > MaxShift {
		return 0, ErrShiftCount
	}
	return uint(n.Int64()), nil
}

func onesMask(bits uint) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), bits)
	return m.Sub(m, big.NewInt(1))
}

// Fundamental operations, present in every mode.

func fundamentalSet() Set {
	return Set{
		Title: "Fundamental Commands",
		Ops: []Operation{
			{Key: 'U', Name: "undo", Doc: "Undo: Retrieves previous stack", Action: ActionUndo},
			{Key: 'X', Name: "clear", Doc: "Clear the stack", Action: ActionClear},
			{Key: 'S', Name: "swap", Doc: "Swap the last two values on the stack", Arity: 2, Fn: swap},
			{Key: 'x', Name: "pop", Doc: "Pop the last value from the stack and discards it", Arity: 1, Fn: discard},
			{Key: '?', Name: "help", Doc: "Display this help screen.", Action: ActionHelp},
			{Key: ':', Name: "change-mode", Doc: "Press colon to change calculator modes and bases.", Action: ActionChangeMode},
		},
	}
}

func swap(args []value.Value) ([]value.Value, error) {
	return []value.Value{args[0], args[1]}, nil
}

func discard([]value.Value) ([]value.Value, error) {
	return nil, nil
}

// Basic arithmetic, present in every calculating mode.

func basicSet() Set {
	return Set{
		Title: "Basic Commands",
		Ops: []Operation{
			{Key: '+', Name: "add", Doc: "Add: y + x", Arity: 2, Fn: binary("add", func(y, x value.Value) (value.Value, error) {
				return value.Add(y, x), nil
			})},
			{Key: '-', Name: "subtract", Doc: "Subtract: y - x", Arity: 2, Fn: binary("subtract", func(y, x value.Value) (value.Value, error) {
				return value.Sub(y, x), nil
			})},
			{Key: '*', Name: "multiply", Doc: "Multiply: y * x", Arity: 2, Fn: binary("multiply", func(y, x value.Value) (value.Value, error) {
				return value.Mul(y, x), nil
			})},
			{Key: '/', Name: "divide", Doc: "Divide: y / x", Arity: 2, Policy: ReportAndUndo, Fn: binary("divide", value.Quo)},
			{Key: '%', Name: "modulo", Doc: "Modulo: remainder of y / x", Arity: 2, Policy: ReportAndUndo, Fn: binary("modulo", value.Mod)},
			{Key: 'n', Name: "negate", Doc: "Negate: Negate the current value: -x", Arity: 1, Fn: unary("negate", func(x value.Value) (value.Value, error) {
				return value.Neg(x), nil
			})},
		},
	}
}

// Programmer operations on integers.

func programmerSet(opts Options) Set {
	mask := onesMask(uint(opts.BinMaxBits))
	bitwise := func(name string, f func(z, y, x *big.Int) *big.Int) Func {
		return binary(name, func(y, x value.Value) (value.Value, error) {
			yi, err := intArg(y)
			if err != nil {
				return value.Value{}, err
			}
			xi, err := intArg(x)
			if err != nil {
				return value.Value{}, err
			}
			return value.FromBigInt(f(new(big.Int), yi, xi)), nil
		})
	}
	shift := func(name string, left bool) Func {
		return binary(name, func(y, x value.Value) (value.Value, error) {
			yi, err := intArg(y)
			if err != nil {
				return value.Value{}, err
			}
			n, err := shiftCount(x)
			if err != nil {
				return value.Value{}, err
			}
			if left {
				return value.FromBigInt(yi.Lsh(yi, n)), nil
			}
			return value.FromBigInt(yi.Rsh(yi, n)), nil
		})
	}
	shiftOne := func(name string, left bool) Func {
		return unary(name, func(x value.Value) (value.Value, error) {
			xi, err := intArg(x)
			if err != nil {
				return value.Value{}, err
			}
			if left {
				return value.FromBigInt(xi.Lsh(xi, 1)), nil
			}
			return value.FromBigInt(xi.Rsh(xi, 1)), nil
		})
	}
	not := unary("not", func(x value.Value) (value.Value, error) {
		xi, err := intArg(x)
		if err != nil {
			return value.Value{}, err
		}
		xi.Not(xi)
		return value.FromBigInt(xi.And(xi, mask)), nil
	})

	return Set{
		Title: "Programmer Commands",
		Ops: []Operation{
			{Key: '|', Name: "or", Doc: "Bitwise OR: x | y", Info: "x | y", Arity: 2, Fn: bitwise("or", (*big.Int).Or)},
			{Key: '&', Name: "and", Doc: "Bitwise AND: x & y", Info: "x & y", Arity: 2, Fn: bitwise("and", (*big.Int).And)},
			{Key: '^', Name: "xor", Doc: "Bitwise XOR: x ^ y", Info: "x ^ y", Arity: 2, Fn: bitwise("xor", (*big.Int).Xor)},
			{Key: '~', Name: "not", Doc: "Bitwise NOT: ~x", Info: "~x", Arity: 1, Fn: not},
			{Key: '$', Name: "field-bits", Doc: "Display field of bits: x[y:z]", Info: "x[y:z]", Arity: 3, Policy: ReportAndUndo, Fn: fieldBits},
			{Key: ',', Name: "shift-left", Doc: "Shift left: x << 1", Info: "x << 1", Arity: 1, Fn: shiftOne("shift-left", true)},
			{Key: '.', Name: "shift-right", Doc: "Shift right: x >> 1", Info: "x >> 1", Arity: 1, Fn: shiftOne("shift-right", false)},
			{Key: '<', Name: "shift-left-by", Doc: "Shift left: x << y", Info: "x << y", Arity: 2, Fn: shift("shift-left-by", true)},
			{Key: '>', Name: "shift-right-by", Doc: "Shift right: x >> y", Info: "x >> y", Arity: 2, Fn: shift("shift-right-by", false)},
		},
	}
}

// fieldBits extracts value[msb:lsb] inclusive. Operands are entered as
// value, msb, lsb, so lsb is on top.
func fieldBits(args []value.Value) ([]value.Value, error) {
	const name = "field-bits"
	lsb, err := shiftCount(args[0])
	if err != nil {
		return nil, Fault(name, err)
	}
	msb, err := shiftCount(args[1])
	if err != nil {
		return nil, Fault(name, err)
	}
	if lsb > msb {
		return nil, Fault(name, ErrFieldOrder)
	}
	v, err := intArg(args[2])
	if err != nil {
		return nil, Fault(name, err)
	}
	v.Rsh(v, lsb)
	v.And(v, onesMask(msb-lsb+1))
	return []value.Value{value.FromBigInt(v)}, nil
}

// Scientific operations on floats.

func scientificSet() Set {
	return Set{
		Title: "Scientific Commands",
		Ops: []Operation{
			{Key: '^', Name: "exponent", Doc: "Exponent: Computes x^y", Info: "x^y", Arity: 2, Fn: binary("exponent", func(y, x value.Value) (value.Value, error) {
				yf, xf := y.Float64(), x.Float64()
				return floatResult(math.Pow(yf, xf), yf, xf)
			})},
			{Key: '!', Name: "factorial", Doc: "Factorial: Find x!", Info: "x!", Arity: 1, Fn: unary("factorial", factorial)},
			{Key: 'q', Name: "square", Doc: "Square: Compute x^2", Info: "x^2", Arity: 1, Fn: unary("square", func(x value.Value) (value.Value, error) {
				xf := x.Float64()
				return floatResult(xf*xf, xf)
			})},
			{Key: 'r', Name: "root", Doc: "Square root: Compute sqrt(x)", Info: "sqrt(x)", Arity: 1, Fn: unary("root", func(x value.Value) (value.Value, error) {
				if x.Sign() < 0 {
					return value.Value{}, ErrSqrtDomain
				}
				xf := x.Float64()
				return floatResult(math.Sqrt(xf), xf)
			})},
			{Key: 'l', Name: "log2", Doc: "log2: Compute log2(x)", Info: "log2(x)", Arity: 1, Fn: unary("log2", logFunc(math.Log2))},
			{Key: 'L', Name: "ln", Doc: "ln: Compute natural log ln(x)", Info: "ln(x)", Arity: 1, Fn: unary("ln", logFunc(math.Log))},
			{Key: 'I', Name: "inverse", Doc: "Inverse: Compute 1/x", Info: "1/x", Arity: 1, Fn: unary("inverse", func(x value.Value) (value.Value, error) {
				return value.Quo(value.FromInt64(1), x)
			})},
		},
	}
}

func logFunc(f func(float64) float64) func(x value.Value) (value.Value, error) {
	return func(x value.Value) (value.Value, error) {
		xf := x.Float64()
		if math.IsNaN(xf) {
			return x, nil
		}
		if x.Sign() <= 0 {
			return value.Value{}, ErrLogDomain
		}
		return floatResult(f(xf), xf)
	}
}

func factorial(x value.Value) (value.Value, error) {
	n, err := intArg(x)
	if err != nil {
		return value.Value{}, err
	}
	if n.Sign() < 0 {
		return value.Value{}, ErrNegativeFactorial
	}
	if n.Cmp(big.NewInt(MaxFactorial)) > 0 {
		return value.Value{}, ErrFactorialRange
	}
	return value.FromBigInt(new(big.Int).MulRange(1, n.Int64())), nil
}

// Statistical operations consume the whole stack.

func statsSet() Set {
	return Set{
		Title: "Statistical Commands",
		Ops: []Operation{
			{Key: 's', Name: "sum", Doc: "Sum: Returns the sum of all values in the stack.", Info: "SUM", Arity: AllValues, Fn: aggregate("sum", func(vals []value.Value) (value.Value, error) {
				return sum(vals), nil
			})},
			{Key: 'a', Name: "average", Doc: "Average/Mean: Returns the mean of all values in the stack.", Info: "AVG", Arity: AllValues, Fn: aggregate("average", func(vals []value.Value) (value.Value, error) {
				return value.Quo(sum(vals), value.FromInt64(int64(len(vals))))
			})},
			{Key: 'm', Name: "median", Doc: "Median: Returns the median of all values in the stack.", Info: "MEDIAN", Arity: AllValues, Fn: aggregate("median", median)},
		},
	}
}

func sum(vals []value.Value) value.Value {
	total := vals[0]
	for _, v := range vals[1:] {
		total = value.Add(total, v)
	}
	return total
}

func median(vals []value.Value) (value.Value, error) {
	sorted := make([]value.Value, len(vals))
	copy(sorted, vals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return value.Compare(sorted[i], sorted[j]) < 0
	})
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], nil
	}
	return value.Quo(value.Add(sorted[mid-1], sorted[mid]), value.FromInt64(2))
}
