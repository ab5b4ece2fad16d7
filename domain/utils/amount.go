package utils

import (
	"github.com/shopspring/decimal"

	"coinhouse/domain/entities"
)

// nativeDecimals is the base-unit exponent of the native asset (wei-style).
const nativeDecimals = 18

// FormatAmount renders a base-unit amount for logs and display. Native
// amounts are scaled to whole-coin notation; token amounts pass through as
// integer base units since each token defines its own decimals.
func FormatAmount(asset entities.Asset, amount int64) string {
	if asset.IsNative() {
		return decimal.New(amount, -nativeDecimals).String()
	}
	return decimal.NewFromInt(amount).String()
}

// NativeUnits converts a whole-coin decimal string ("0.11") to base units.
// Fractions below one base unit are truncated.
func NativeUnits(coins string) (int64, error) {
	d, err := decimal.NewFromString(coins)
	if err != nil {
		return 0, err
	}
	return d.Shift(nativeDecimals).IntPart(), nil
}
