package ratio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/govalues/decimal"
)

const (
	// BpsDenom is the denominator of fees expressed in basis points.
	BpsDenom = 10_000
	// PerMilleDenom is the denominator of fees expressed in per-mille.
	PerMilleDenom = 1_000
)

// Fee represents the fraction of an amount that is retained as a fee.
// The fraction always lies within [0, 1].
// The zero value corresponds to a fee of "0/0", which charges nothing.
// Fee is designed to be safe for concurrent use by multiple goroutines.
type Fee struct {
	ratio Ratio
}

// NewFee returns a fee equal to num / denom.
// A zero denominator is accepted and means no fee is charged.
//
// NewFee returns an error if num > denom.
func NewFee(num, denom uint64) (Fee, error) {
	if num > denom {
		return Fee{}, fmt.Errorf("fee %v/%v is greater than one: %w", num, denom, ErrInvalidFee)
	}
	return Fee{ratio: NewRatio(num, denom)}, nil
}

// MustNewFee is like [NewFee] but panics if the fee cannot be constructed.
// It simplifies safe initialization of global variables holding fees.
func MustNewFee(num, denom uint64) Fee {
	f, err := NewFee(num, denom)
	if err != nil {
		panic(fmt.Sprintf("NewFee(%v, %v) failed: %v", num, denom, err))
	}
	return f
}

// NewBpsFee returns a fee of bps basis points, i.e. bps / 10_000.
//
// NewBpsFee returns an error if bps > 10_000.
func NewBpsFee(bps uint16) (Fee, error) {
	return NewFee(uint64(bps), BpsDenom)
}

// NewPerMilleFee returns a fee of pm per-mille, i.e. pm / 1_000.
//
// NewPerMilleFee returns an error if pm > 1_000.
func NewPerMilleFee(pm uint16) (Fee, error) {
	return NewFee(uint64(pm), PerMilleDenom)
}

// NewFeeFromDecimal returns a fee equal to d, e.g. 0.003 for 30 basis points.
//
// NewFeeFromDecimal returns an error if d is negative or greater than one.
func NewFeeFromDecimal(d decimal.Decimal) (Fee, error) {
	r, err := NewRatioFromDecimal(d)
	if err != nil {
		return Fee{}, err
	}
	return NewFee(r.Num(), r.Denom())
}

// ParseFee converts a string to a fee.
// In addition to the forms accepted by [ParseRatio], a string with the "bps"
// suffix is interpreted as basis points, e.g. "30bps".
func ParseFee(s string) (Fee, error) {
	if b, ok := strings.CutSuffix(strings.TrimSpace(s), "bps"); ok {
		bps, err := strconv.ParseUint(strings.TrimSpace(b), 10, 16)
		if err != nil {
			return Fee{}, fmt.Errorf("parsing basis points: %w", err)
		}
		return NewBpsFee(uint16(bps))
	}
	r, err := ParseRatio(s)
	if err != nil {
		return Fee{}, err
	}
	return NewFee(r.Num(), r.Denom())
}

// MustParseFee is like [ParseFee] but panics if the string cannot be parsed.
func MustParseFee(s string) Fee {
	f, err := ParseFee(s)
	if err != nil {
		panic(fmt.Sprintf("ParseFee(%q) failed: %v", s, err))
	}
	return f
}

// Ratio returns the fee as a ratio.
func (f Fee) Ratio() Ratio {
	return f.ratio
}

// IsZero returns true if the fee charges nothing.
func (f Fee) IsZero() bool {
	return f.ratio.IsZero()
}

// afterFee returns the complementary ratio (denom - num) / denom.
func (f Fee) afterFee() Ratio {
	return NewRatio(f.ratio.denom-f.ratio.num, f.ratio.denom)
}

// FeeAmount returns the fee charged on the amount, rounded according
// to the mode.
// Use [Up] to ensure the fee collector never under-collects.
func (f Fee) FeeAmount(amount uint64, mode RoundingMode) (uint64, error) {
	if f.ratio.denom == 0 {
		return 0, nil
	}
	fee, err := f.ratio.Apply(amount, mode)
	if err != nil {
		return 0, fmt.Errorf("computing fee %v on %v: %w", f, amount, err)
	}
	return fee, nil
}

// AmountAfterFee returns the amount remaining after the fee, rounded
// according to the mode.
// The fee is rounded in the opposite direction, so that
//
//	f.FeeAmount(a, m) + f.AmountAfterFee(a, m.Opposite()) == a
func (f Fee) AmountAfterFee(amount uint64, mode RoundingMode) (uint64, error) {
	fee, err := f.FeeAmount(amount, mode.Opposite())
	if err != nil {
		return 0, err
	}
	return amount - fee, nil
}

// Charged is the result of charging a fee on an amount.
// AfterFee + Fee always equals the original amount.
type Charged struct {
	AfterFee uint64
	Fee      uint64
}

// Split charges the fee on the amount.
// The fee is rounded according to the mode and the remainder is returned
// as the amount after fee.
func (f Fee) Split(amount uint64, mode RoundingMode) (Charged, error) {
	fee, err := f.FeeAmount(amount, mode)
	if err != nil {
		return Charged{}, err
	}
	if fee > amount {
		panic(fmt.Sprintf("%v.Split(%v, %v) failed: fee %v exceeds amount", f, amount, mode, fee))
	}
	return Charged{AfterFee: amount - fee, Fee: fee}, nil
}

// Reverse returns the range of all amounts a for which
// f.AmountAfterFee(a, mode) == afterFee.
// A zero fee reverses an amount to itself.
//
// Reverse returns an error if no amount maps to afterFee, e.g. any non-zero
// amount with a fee of 100%.
func (f Fee) Reverse(afterFee uint64, mode RoundingMode) (Range, error) {
	if f.ratio.denom == 0 {
		return Range{Min: afterFee, Max: afterFee}, nil
	}
	g, err := f.afterFee().reverse(afterFee, mode)
	if err != nil {
		return Range{}, fmt.Errorf("reversing fee %v for %v: %w", f, afterFee, err)
	}
	return g, nil
}

// Decimal returns the fee as a decimal, e.g. 0.003 for 30 basis points.
// A zero fee returns 0.
func (f Fee) Decimal() (decimal.Decimal, error) {
	if f.ratio.denom == 0 {
		return decimal.Decimal{}, nil
	}
	return f.ratio.Decimal()
}

// String implements the [fmt.Stringer] interface and returns a string
// representation of the fee, such as "30/10000".
func (f Fee) String() string {
	return f.ratio.String()
}
