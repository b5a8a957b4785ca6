package signing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Scaling multipliers for converting decimal business quantities into
// integer contract units. Prices always use the fixed global multiplier;
// sizes use the instrument's own base decimals; fee rates use the 10_000
// multiplier (e.g. "0.001" -> 10).
const (
	PriceMultiplier   = 1_000_000_000
	FeeRateMultiplier = 10_000
)

func scaleDecimal(value string, multiplier decimal.Decimal) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidDecimal, value)
	}
	return d.Mul(multiplier).Round(0), nil
}

// ScaleUint64 converts a decimal string into a uint64 contract quantity,
// computed as round(value * multiplier) in exact decimal arithmetic.
func ScaleUint64(value string, multiplier decimal.Decimal) (uint64, error) {
	scaled, err := scaleDecimal(value, multiplier)
	if err != nil {
		return 0, err
	}
	if scaled.IsNegative() {
		return 0, fmt.Errorf("%w: %s is negative", ErrOverflow, value)
	}
	bi := scaled.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("%w: %s does not fit uint64", ErrOverflow, value)
	}
	return bi.Uint64(), nil
}

// ScaleUint32 is ScaleUint64 narrowed to uint32 targets (fee rates, nonces).
func ScaleUint32(value string, multiplier decimal.Decimal) (uint32, error) {
	u, err := ScaleUint64(value, multiplier)
	if err != nil {
		return 0, err
	}
	if u > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %s does not fit uint32", ErrOverflow, value)
	}
	return uint32(u), nil
}

// ScalePrice converts a decimal limit price into contract price units using
// the fixed global price multiplier.
func ScalePrice(value string) (uint64, error) {
	return ScaleUint64(value, decimal.NewFromInt(PriceMultiplier))
}

// ScaleSize converts a decimal order size into contract size units using the
// instrument's own base decimals.
func ScaleSize(value string, baseDecimals int32) (uint64, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDecimal, value)
	}
	scaled := d.Shift(baseDecimals).Round(0)
	if scaled.IsNegative() {
		return 0, fmt.Errorf("%w: %s is negative", ErrOverflow, value)
	}
	bi := scaled.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("%w: %s does not fit uint64", ErrOverflow, value)
	}
	return bi.Uint64(), nil
}

// ScaleFeeRate converts a decimal fee rate into its uint32 signing value.
func ScaleFeeRate(value string) (uint32, error) {
	return ScaleUint32(value, decimal.NewFromInt(FeeRateMultiplier))
}
