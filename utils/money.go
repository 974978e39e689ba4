package utils

import (
	"fmt"
	"math"
)

// CurrencyCode is the single currency every price is quoted in.
const CurrencyCode = "GBP"

// RoundMoney rounds an amount to two decimal places.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatGBP renders an amount for display, e.g. £875.50.
func FormatGBP(amount float64) string {
	return fmt.Sprintf("£%.2f", RoundMoney(amount))
}

// ToPence converts a pound amount to the minor unit used by payment processors.
func ToPence(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
