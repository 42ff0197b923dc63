package ratio

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/govalues/decimal"
	"github.com/holiman/uint256"
)

// Ratio represents a proportional relationship num / denom between two
// quantities, e.g. a pool's total shares over its total deposited tokens.
// Its zero value corresponds to "0/0", which compares as zero but cannot
// be applied to amounts.
// Ratio is designed to be safe for concurrent use by multiple goroutines.
type Ratio struct {
	num   uint64 // units of the derived quantity
	denom uint64 // units of the base quantity
}

// NewRatio returns a ratio equal to num / denom.
// Any pair is accepted; a ratio with a zero denominator can be constructed
// and compared, but applying it returns [ErrDivisionByZero].
func NewRatio(num, denom uint64) Ratio {
	return Ratio{num: num, denom: denom}
}

// NewRatioFromDecimal returns a ratio equal to d.
// The numerator is the coefficient of d and the denominator is 10^scale,
// so no precision is lost.
//
// NewRatioFromDecimal returns an error if d is negative.
func NewRatioFromDecimal(d decimal.Decimal) (Ratio, error) {
	if d.IsNeg() {
		return Ratio{}, fmt.Errorf("converting %v: ratio must not be negative", d)
	}
	return NewRatio(d.Coef(), pow10[d.Scale()]), nil
}

// ParseRatio converts a string to a ratio.
// The string is either a fraction of two unsigned integers, such as "3/2",
// or a non-negative decimal, such as "1.5".
// See also constructor [NewRatioFromDecimal].
func ParseRatio(s string) (Ratio, error) {
	if n, d, ok := strings.Cut(s, "/"); ok {
		num, err := strconv.ParseUint(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return Ratio{}, fmt.Errorf("parsing numerator: %w", err)
		}
		denom, err := strconv.ParseUint(strings.TrimSpace(d), 10, 64)
		if err != nil {
			return Ratio{}, fmt.Errorf("parsing denominator: %w", err)
		}
		return NewRatio(num, denom), nil
	}
	d, err := decimal.Parse(strings.TrimSpace(s))
	if err != nil {
		return Ratio{}, fmt.Errorf("parsing decimal: %w", err)
	}
	return NewRatioFromDecimal(d)
}

// MustParseRatio is like [ParseRatio] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding ratios.
func MustParseRatio(s string) Ratio {
	r, err := ParseRatio(s)
	if err != nil {
		panic(fmt.Sprintf("ParseRatio(%q) failed: %v", s, err))
	}
	return r
}

// Num returns the numerator of the ratio.
func (r Ratio) Num() uint64 {
	return r.num
}

// Denom returns the denominator of the ratio.
func (r Ratio) Denom() uint64 {
	return r.denom
}

// IsValid returns true if the ratio can be applied, i.e. its denominator
// is not zero.
func (r Ratio) IsValid() bool {
	return r.denom != 0
}

// IsZero returns:
//
//	true  if r == 0 (including any ratio with a zero denominator)
//	false otherwise
func (r Ratio) IsZero() bool {
	return r.num == 0 || r.denom == 0
}

// IsOne returns:
//
//	true  if r == 1
//	false otherwise
func (r Ratio) IsOne() bool {
	return r.denom != 0 && r.num == r.denom
}

// Inv returns the ratio with numerator and denominator swapped.
func (r Ratio) Inv() Ratio {
	return NewRatio(r.denom, r.num)
}

// Apply converts an amount of the base quantity to the derived quantity,
// returning amount * num / denom rounded according to the mode.
//
// Apply returns an error if:
//   - the denominator is zero;
//   - the result does not fit into uint64.
func (r Ratio) Apply(amount uint64, mode RoundingMode) (uint64, error) {
	q, err := mulDiv(amount, r.num, r.denom, mode)
	if err != nil {
		return 0, fmt.Errorf("applying %v to %v: %w", r, amount, err)
	}
	return q, nil
}

// ApplyInv converts an amount of the derived quantity back to the base
// quantity, returning amount * denom / num rounded according to the mode.
//
// ApplyInv returns an error if:
//   - the numerator is zero;
//   - the result does not fit into uint64.
func (r Ratio) ApplyInv(amount uint64, mode RoundingMode) (uint64, error) {
	q, err := mulDiv(amount, r.denom, r.num, mode)
	if err != nil {
		return 0, fmt.Errorf("applying inverse of %v to %v: %w", r, amount, err)
	}
	return q, nil
}

// Range is an inclusive range [Min, Max] of amounts.
type Range struct {
	Min, Max uint64
}

// Contains returns true if Min <= amount <= Max.
func (g Range) Contains(amount uint64) bool {
	return g.Min <= amount && amount <= g.Max
}

// String implements the [fmt.Stringer] interface.
func (g Range) String() string {
	return "[" + strconv.FormatUint(g.Min, 10) + ", " + strconv.FormatUint(g.Max, 10) + "]"
}

// Reverse returns the range of all amounts x for which
// r.Apply(x, mode) == applied.
// Every amount in the range is a valid input; the range is clamped to uint64.
// A zero ratio reverses 0 to the whole uint64 range.
//
// Reverse returns an error if:
//   - the denominator is zero;
//   - no amount maps to applied, e.g. 3 with a ratio of 2/1 rounded down.
func (r Ratio) Reverse(applied uint64, mode RoundingMode) (Range, error) {
	g, err := r.reverse(applied, mode)
	if err != nil {
		return Range{}, fmt.Errorf("reversing %v for %v: %w", r, applied, err)
	}
	return g, nil
}

func (r Ratio) reverse(applied uint64, mode RoundingMode) (Range, error) {
	if r.denom == 0 {
		return Range{}, ErrDivisionByZero
	}
	if r.num == 0 {
		if applied != 0 {
			return Range{}, ErrNoPreimage
		}
		return Range{Min: 0, Max: math.MaxUint64}, nil
	}

	y := uint256.NewInt(applied)
	n := uint256.NewInt(r.num)
	d := uint256.NewInt(r.denom)
	one := uint256.NewInt(1)
	var lo, hi uint256.Int

	switch mode {
	case Down:
		// y*d <= x*n < (y+1)*d
		lo.Mul(y, d)
		lo.Add(&lo, uint256.NewInt(r.num-1))
		lo.Div(&lo, n)
		hi.Add(y, one)
		hi.Mul(&hi, d)
		hi.Sub(&hi, one)
		hi.Div(&hi, n)
	case Up:
		// (y-1)*d < x*n <= y*d
		if applied != 0 {
			lo.Sub(y, one)
			lo.Mul(&lo, d)
			lo.Div(&lo, n)
			lo.Add(&lo, one)
			hi.Mul(y, d)
			hi.Div(&hi, n)
		}
	default:
		panic(fmt.Sprintf("%v.reverse(%v, %v) failed: unknown rounding mode", r, applied, mode))
	}

	if !lo.IsUint64() || lo.Gt(&hi) {
		return Range{}, ErrNoPreimage
	}
	g := Range{Min: lo.Uint64(), Max: math.MaxUint64}
	if hi.IsUint64() {
		g.Max = hi.Uint64()
	}
	return g, nil
}

// Cmp compares ratios by value and returns:
//
//	-1 if r < q
//	 0 if r == q
//	+1 if r > q
//
// A ratio with a zero denominator compares as zero, so 0/0 == 0/5.
func (r Ratio) Cmp(q Ratio) int {
	rn, rd := r.normalized()
	qn, qd := q.normalized()
	var lhs, rhs uint256.Int
	lhs.Mul(uint256.NewInt(rn), uint256.NewInt(qd))
	rhs.Mul(uint256.NewInt(qn), uint256.NewInt(rd))
	return lhs.Cmp(&rhs)
}

// Equal returns true if ratios have the same value, e.g. 3/2 and 6/4.
// Use == to compare the numerator and denominator exactly.
func (r Ratio) Equal(q Ratio) bool {
	return r.Cmp(q) == 0
}

func (r Ratio) normalized() (num, denom uint64) {
	if r.denom == 0 {
		return 0, 1
	}
	return r.num, r.denom
}

// Decimal returns the value of the ratio as a (possibly rounded) decimal.
// It is intended for display only; conversions of amounts must use
// [Ratio.Apply] and [Ratio.ApplyInv].
//
// Decimal returns an error if:
//   - the denominator is zero;
//   - the numerator or the denominator has more than [decimal.MaxPrec] digits;
//   - the integer part of the result has more than [decimal.MaxPrec] digits.
func (r Ratio) Decimal() (decimal.Decimal, error) {
	n, err := newDecimalFromUint64(r.num)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting numerator: %w", err)
	}
	d, err := newDecimalFromUint64(r.denom)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting denominator: %w", err)
	}
	q, err := n.Quo(d)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("computing [%v / %v]: %w", n, d, err)
	}
	return q, nil
}

// String implements the [fmt.Stringer] interface and returns a string
// representation of the ratio, such as "3/2".
func (r Ratio) String() string {
	return strconv.FormatUint(r.num, 10) + "/" + strconv.FormatUint(r.denom, 10)
}

func newDecimalFromUint64(u uint64) (decimal.Decimal, error) {
	if u <= math.MaxInt64 {
		return decimal.New(int64(u), 0)
	}
	return decimal.Parse(strconv.FormatUint(u, 10))
}

// pow10 is a cache of powers of 10, indexed by decimal scale.
var pow10 = [...]uint64{
	1,                          // 10^0
	10,                         // 10^1
	100,                        // 10^2
	1_000,                      // 10^3
	10_000,                     // 10^4
	100_000,                    // 10^5
	1_000_000,                  // 10^6
	10_000_000,                 // 10^7
	100_000_000,                // 10^8
	1_000_000_000,              // 10^9
	10_000_000_000,             // 10^10
	100_000_000_000,            // 10^11
	1_000_000_000_000,          // 10^12
	10_000_000_000_000,         // 10^13
	100_000_000_000_000,        // 10^14
	1_000_000_000_000_000,      // 10^15
	10_000_000_000_000_000,     // 10^16
	100_000_000_000_000_000,    // 10^17
	1_000_000_000_000_000_000,  // 10^18
	10_000_000_000_000_000_000, // 10^19
}
