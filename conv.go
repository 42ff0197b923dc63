package ratio

import (
	"fmt"
)

// Quote is the result of a conversion.
// In is the amount supplied by the caller, Fee is the fee charged in
// base units, and Out is the amount obtained in exchange.
type Quote struct {
	In  uint64
	Fee uint64
	Out uint64
}

// Converter converts amounts between a base quantity (e.g. deposited tokens)
// and a derived quantity (e.g. pool shares) using an exchange rate and
// an optional fee.
//
// Fees are always charged in base units: on the way in they are deducted
// from the base amount before the rate is applied, on the way out they are
// deducted from the base amount obtained by the inverse rate.
// Charging the fee on the derived amount instead would yield a different
// result whenever the rate is not one.
//
// Converter holds no state beyond its parameters and is designed to be safe
// for concurrent use by multiple goroutines.
type Converter struct {
	rate Ratio // derived units per base unit
	fee  Fee
}

// NewConverter returns a converter with the given rate and fee.
// Use the zero [Fee] for conversions without a fee.
func NewConverter(rate Ratio, fee Fee) Converter {
	return Converter{rate: rate, fee: fee}
}

// Rate returns the number of derived units per base unit.
func (c Converter) Rate() Ratio {
	return c.rate
}

// Fee returns the fee charged on base amounts.
func (c Converter) Fee() Fee {
	return c.fee
}

// Conv converts an amount of the base quantity to the derived quantity.
// The fee is deducted from the base amount first, with the remainder rounded
// according to the mode, then the rate is applied with the same mode.
// With [Down] both steps favor the converter, which is the usual choice
// when issuing shares for a deposit.
//
// Conv returns an error if the rate cannot be applied, see [Ratio.Apply].
func (c Converter) Conv(amount uint64, mode RoundingMode) (Quote, error) {
	after, err := c.fee.AmountAfterFee(amount, mode)
	if err != nil {
		return Quote{}, fmt.Errorf("converting %v with %v: %w", amount, c, err)
	}
	out, err := c.rate.Apply(after, mode)
	if err != nil {
		return Quote{}, fmt.Errorf("converting %v with %v: %w", amount, c, err)
	}
	return Quote{In: amount, Fee: amount - after, Out: out}, nil
}

// ConvInv converts an amount of the derived quantity back to the base
// quantity.
// The inverse rate is applied first, rounded according to the mode, then
// the fee is deducted from the resulting base amount with the remainder
// rounded according to the same mode.
// With [Down] both steps favor the converter, which is the usual choice
// when redeeming shares for a withdrawal.
//
// ConvInv returns an error if the inverse rate cannot be applied,
// see [Ratio.ApplyInv].
func (c Converter) ConvInv(amount uint64, mode RoundingMode) (Quote, error) {
	base, err := c.rate.ApplyInv(amount, mode)
	if err != nil {
		return Quote{}, fmt.Errorf("converting %v back with %v: %w", amount, c, err)
	}
	after, err := c.fee.AmountAfterFee(base, mode)
	if err != nil {
		return Quote{}, fmt.Errorf("converting %v back with %v: %w", amount, c, err)
	}
	return Quote{In: amount, Fee: base - after, Out: after}, nil
}

// String implements the [fmt.Stringer] interface, e.g. "3/2 fee 30/10000".
func (c Converter) String() string {
	return c.rate.String() + " fee " + c.fee.String()
}
