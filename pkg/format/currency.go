// Package format renders monetary and percentage values for display. None of
// these helpers participate in arithmetic; calculations stay in raw float64.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands
// separators (e.g., "-$1,234.56"). Whole-dollar amounts drop the cents.
func Currency(amount float64) string {
	sign := ""
	abs := math.Abs(amount)
	if amount < 0 {
		sign = "-"
	}
	if abs == math.Trunc(abs) {
		return printer.Sprintf("%s$%.0f", sign, abs)
	}
	return printer.Sprintf("%s$%.2f", sign, abs)
}

// NumericCurrency returns a currency string without a currency symbol but
// with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	return printer.Sprintf("%s%.2f", sign, math.Abs(amount))
}

// Percent renders a percentage with one decimal place (e.g., "33.2%").
func Percent(value float64) string {
	return printer.Sprintf("%.1f%%", value)
}
