package utils

import (
	"fmt"
	"strconv"

	"github.com/MikeRez0/ypcheckout/internal/core/domain"
	"github.com/govalues/decimal"
)

var half = decimal.MustNew(5, 1)

// ToMinorUnits converts a non-negative major-unit amount into the integer
// minor units the provider uses, rounding half up.
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	if amount.Sign() < 0 {
		return 0, fmt.Errorf("negative amount %s: %w", amount, domain.ErrInvalidAmount)
	}
	scaled, err := amount.Mul(decimal.Hundred)
	if err != nil {
		return 0, fmt.Errorf("math error: %w", err)
	}
	scaled, err = scaled.Add(half)
	if err != nil {
		return 0, fmt.Errorf("math error: %w", err)
	}
	minor, err := strconv.ParseInt(scaled.Floor(0).String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %s out of range: %w", amount, domain.ErrInvalidAmount)
	}
	return minor, nil
}

// FromMinorUnits converts provider minor units back into major units.
func FromMinorUnits(minor int64) (decimal.Decimal, error) {
	return decimal.New(minor, 2)
}

// Reconcile compares the server-held order total against the amount the
// provider recorded. Any difference is a mismatch.
func Reconcile(serverTotal decimal.Decimal, providerAmountMinor int64) error {
	expected, err := ToMinorUnits(serverTotal)
	if err != nil {
		return err
	}
	if expected != providerAmountMinor {
		return fmt.Errorf("expected %d, provider reported %d: %w",
			expected, providerAmountMinor, domain.ErrAmountMismatch)
	}
	return nil
}

// RoundMoney rounds an amount half up to two decimal places.
func RoundMoney(amount decimal.Decimal) (decimal.Decimal, error) {
	minor, err := ToMinorUnits(amount)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return FromMinorUnits(minor)
}
