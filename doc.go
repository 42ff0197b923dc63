/*
Package ratio implements integer conversions between token amounts that are
related by a ratio, such as a pool's deposited tokens and the shares they
entitle the holder to.
All arithmetic is performed on unsigned integers; there is no floating-point
step anywhere on the conversion path.

# Features

  - Immutable ratios and fees, ensuring safe usage across multiple goroutines
  - Explicit rounding direction on every conversion
  - Overflow and division by zero reported as errors, never wrapped or truncated
  - Fees expressed as arbitrary fractions, basis points, or per-mille
  - Reverse conversions returning every amount that could have produced a result

# Representation

A [Ratio] is a pair of uint64 values, numerator and denominator.
It converts an amount of the base quantity to the derived quantity by
multiplying by the numerator and dividing by the denominator.
A [Fee] wraps a ratio that is never greater than one and is interpreted as the
fraction of an amount retained as a fee.
A [Converter] combines a rate and a fee into deposit-style ([Converter.Conv])
and withdraw-style ([Converter.ConvInv]) conversions.

# Rounding

Every operation takes a [RoundingMode], either [Down] or [Up].
The package does not choose a default: the caller decides which party the
rounding must favor.
In value-settlement contexts the usual policy is to round amounts paid out by
the protocol down and fees collected by the protocol up.

Products are computed in a 256-bit intermediate before division, so
amount * numerator never overflows for uint64 operands.
Only the final quotient has to fit into uint64.

# Errors

Arithmetic errors are reported as [ErrDivisionByZero] or [ErrOverflow],
wrapped with the operands that caused them.
Fees greater than one are rejected at construction with [ErrInvalidFee].
Reverse conversions return [ErrNoPreimage] when no amount maps to the result.
All errors can be matched with [errors.Is].
Methods panic only on an unknown [RoundingMode], which indicates a
programming error rather than invalid input.
*/
package ratio
