package lexer

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/dshills/rpncalc/internal/engine/mode"
	"github.com/dshills/rpncalc/internal/engine/value"
)

// ErrSyntax is returned by Parse for text that is not a complete literal.
var ErrSyntax = errors.New("invalid numeric literal")

// Parse converts a complete literal typed in the given mode and base.
// Programmer literals become integers in the base; Scientific 'e' and 'p'
// become Euler's number and pi; everything else is a float.
func Parse(m mode.Mode, b mode.Base, text string) (value.Value, error) {
	text = strings.TrimSpace(text)
	if !Scan(m, b, text).Complete() {
		return value.Value{}, ErrSyntax
	}

	switch {
	case m == mode.Programmer:
		n, ok := new(big.Int).SetString(text, int(b))
		if !ok {
			return value.Value{}, ErrSyntax
		}
		return value.FromBigInt(n), nil
	case m == mode.Scientific && text == "p":
		return value.FromFloat(math.Pi), nil
	case m == mode.Scientific && text == "e":
		return value.FromFloat(math.E), nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return value.Value{}, ErrSyntax
	}
	return value.FromFloat(f), nil
}
