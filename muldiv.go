package ratio

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

var (
	// ErrDivisionByZero is returned when a conversion would divide by zero,
	// e.g. applying a ratio with a zero denominator or inverting a ratio
	// with a zero numerator.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrOverflow is returned when the exact result, or an intermediate value
	// needed to compute it, does not fit into the result type.
	ErrOverflow = errors.New("amount overflow")
	// ErrInvalidFee is returned when a fee fraction is greater than one.
	ErrInvalidFee = errors.New("invalid fee")
	// ErrNoPreimage is returned by reverse conversions when no amount
	// maps to the given result.
	ErrNoPreimage = errors.New("no preimage")
)

// RoundingMode selects which of the two integers enclosing an inexact
// quotient is returned.
// The zero value is [Down].
type RoundingMode int

const (
	// Down rounds towards zero, i.e. returns the floor of the exact result.
	Down RoundingMode = iota
	// Up rounds away from zero, i.e. returns the ceiling of the exact result.
	Up
)

// Opposite returns [Up] for [Down] and vice versa.
func (m RoundingMode) Opposite() RoundingMode {
	switch m {
	case Down:
		return Up
	case Up:
		return Down
	}
	panic(fmt.Sprintf("RoundingMode(%d).Opposite() failed: unknown rounding mode", int(m)))
}

// String implements the [fmt.Stringer] interface.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (m RoundingMode) String() string {
	switch m {
	case Down:
		return "down"
	case Up:
		return "up"
	}
	return fmt.Sprintf("RoundingMode(%d)", int(m))
}

// ParseRoundingMode converts "down" or "up" to a rounding mode.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch s {
	case "down", "Down", "DOWN":
		return Down, nil
	case "up", "Up", "UP":
		return Up, nil
	}
	return Down, fmt.Errorf("unknown rounding mode %q", s)
}

// MulDiv returns amount * num / denom rounded according to the mode.
// The product is computed in a 256-bit intermediate, so it never overflows
// for uint64 operands.
//
// MulDiv returns an error if:
//   - denom is zero;
//   - the rounded quotient does not fit into uint64.
func MulDiv(amount, num, denom uint64, mode RoundingMode) (uint64, error) {
	q, err := mulDiv(amount, num, denom, mode)
	if err != nil {
		return 0, fmt.Errorf("computing [%v * %v / %v]: %w", amount, num, denom, err)
	}
	return q, nil
}

func mulDiv(amount, num, denom uint64, mode RoundingMode) (uint64, error) {
	if denom == 0 {
		return 0, ErrDivisionByZero
	}
	var p uint256.Int
	p.Mul(uint256.NewInt(amount), uint256.NewInt(num))
	switch mode {
	case Down:
	case Up:
		if _, overflow := p.AddOverflow(&p, uint256.NewInt(denom-1)); overflow {
			return 0, ErrOverflow
		}
	default:
		panic(fmt.Sprintf("mulDiv(%v, %v, %v, %v) failed: unknown rounding mode", amount, num, denom, mode))
	}
	p.Div(&p, uint256.NewInt(denom))
	if !p.IsUint64() {
		return 0, ErrOverflow
	}
	return p.Uint64(), nil
}
