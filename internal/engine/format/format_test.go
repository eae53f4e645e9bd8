package format

import (
	"math"
	"math/big"
	"testing"

	"github.com/dshills/rpncalc/internal/engine/mode"
	"github.com/dshills/rpncalc/internal/engine/value"
)

func TestProgrammer(t *testing.T) {
	f := New(DefaultOptions())
	tests := []struct {
		name string
		v    value.Value
		base mode.Base
		want string
	}{
		{"minus one hex", value.FromInt64(-1), mode.Hex, "FFFF_FFFF_FFFF"},
		{"255 hex", value.FromInt64(255), mode.Hex, "0000_0000_00FF"},
		{"255 decimal", value.FromInt64(255), mode.Decimal, "255"},
		{"minus one decimal", value.FromInt64(-1), mode.Decimal, "281474976710655"},
		{"five binary", value.FromInt64(5), mode.Binary, "0000_0000_0000_0000_0000_0000_0000_0000_0000_0000_0000_0101"},
		{"eight octal", value.FromInt64(8), mode.Octal, "0000_0000_0000_0010"},
		{"wide value is not truncated", value.FromBigInt(new(big.Int).Lsh(big.NewInt(1), 48)), mode.Hex, "1_0000_0000_0000"},
		{"float truncates", value.FromFloat(2.9), mode.Decimal, "2"},
		{"nan falls back", value.FromFloat(math.NaN()), mode.Hex, "NaN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Format(tt.v, mode.Programmer, tt.base, mode.Regular); got != tt.want {
				t.Errorf("Format(%v, %v) = %q, want %q", tt.v, tt.base, got, tt.want)
			}
		})
	}
}

func TestNarrowWord(t *testing.T) {
	f := New(Options{BinMaxBits: 8, SciPrecision: 10, SciThreshold: 10000})
	if got := f.Format(value.FromInt64(-2), mode.Programmer, mode.Binary, mode.Regular); got != "1111_1110" {
		t.Errorf("Format(-2) = %q, want 1111_1110", got)
	}
	if got := f.Format(value.FromInt64(-256), mode.Programmer, mode.Hex, mode.Regular); got != "00" {
		t.Errorf("Format(-256) = %q, want 00", got)
	}
}

func TestScientific(t *testing.T) {
	f := New(DefaultOptions())
	tests := []struct {
		name     string
		v        value.Value
		notation mode.Notation
		want     string
	}{
		{"below threshold", value.FromFloat(9999.5), mode.Regular, "9999.5"},
		{"threshold", value.FromFloat(10000), mode.Regular, "1E+4"},
		{"regular", value.FromFloat(12345), mode.Regular, "1.2345E+4"},
		{"rounded to precision", value.FromFloat(123456789012), mode.Regular, "1.23456789E+11"},
		{"negative", value.FromFloat(-12345), mode.Regular, "-1.2345E+4"},
		{"integer", value.FromInt64(3628800), mode.Regular, "3.6288E+6"},
		{"engineering", value.FromFloat(12345), mode.Engineering, "12.345E+3"},
		{"engineering threshold", value.FromFloat(10000), mode.Engineering, "10E+3"},
		{"engineering six", value.FromFloat(123456789), mode.Engineering, "123.456789E+6"},
		{"infinity", value.FromFloat(math.Inf(1)), mode.Regular, "+Inf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Format(tt.v, mode.Scientific, mode.Decimal, tt.notation); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}

func TestGeneral(t *testing.T) {
	f := New(DefaultOptions())
	tests := []struct {
		v    value.Value
		want string
	}{
		{value.FromFloat(2.5), "2.5"},
		{value.FromFloat(100000), "100000"},
		{value.FromFloat(1.0 / 3), "0.3333333333333333"},
		{value.FromFloat(1e21), "1E+21"},
		{value.FromInt64(42), "42"},
	}
	for _, tt := range tests {
		for _, m := range []mode.Mode{mode.Basic, mode.Stats} {
			if got := f.Format(tt.v, m, mode.Hex, mode.Engineering); got != tt.want {
				t.Errorf("Format(%v, %v) = %q, want %q", tt.v, m, got, tt.want)
			}
		}
	}
}

func TestGroup(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"FF", "FF"},
		{"ABCD", "ABCD"},
		{"ABCDE", "A_BCDE"},
		{"12345678", "1234_5678"},
	}
	for _, tt := range tests {
		if got := Group(tt.in, 4, '_'); got != tt.want {
			t.Errorf("Group(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
