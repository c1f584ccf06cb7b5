package money

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// TokenDecimals is the minor-unit precision of the vault's stable token.
const TokenDecimals = 6

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrTooManyDigits  = errors.New("amount has more fractional digits than the token supports")
	ErrAmountOverflow = errors.New("amount does not fit into 64 bits")
)

// ParseAmount converts a decimal currency string ("25.50") into integer
// minor units. Floats never carry money through this package.
func ParseAmount(s string, decimals int32) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return 0, ErrInvalidAmount
	}
	if d.Exponent() < -decimals {
		return 0, ErrTooManyDigits
	}
	minor := d.Shift(decimals)
	if !minor.IsInteger() {
		return 0, ErrTooManyDigits
	}
	if !minor.BigInt().IsInt64() {
		return 0, ErrAmountOverflow
	}
	return minor.BigInt().Int64(), nil
}

// Format renders minor units back into a decimal currency string with
// the full token precision, e.g. 25500000 -> "25.500000".
func Format(minor int64, decimals int32) string {
	return decimal.New(minor, -decimals).StringFixed(decimals)
}

// ToWei converts minor units to the big.Int representation contract
// calls expect.
func ToWei(minor int64) *big.Int {
	return big.NewInt(minor)
}

// FromWei converts an on-chain amount back to minor units.
func FromWei(wei *big.Int) (int64, error) {
	if wei == nil {
		return 0, ErrInvalidAmount
	}
	if !wei.IsInt64() {
		return 0, fmt.Errorf("%w: %s", ErrAmountOverflow, wei.String())
	}
	return wei.Int64(), nil
}
