// Package amountutils provides fallible parsing and fixed-format rendering of
// monetary cells taken from bank exports.
package amountutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyNoiseRe = regexp.MustCompile(`[€$£¥₹\s]`)

// Standardize converts the amount notations seen in bank exports into a form
// decimal.NewFromString accepts. It strips currency symbols and whitespace,
// removes thousands separators ("1,234.50", "1'234.50") and converts a
// decimal comma ("1234,56", "1.234,56") to a dot.
func Standardize(amountStr string) string {
	amountStr = currencyNoiseRe.ReplaceAllString(amountStr, "")

	if strings.Contains(amountStr, ",") && strings.Contains(amountStr, ".") {
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// European notation: dot groups thousands, comma is the decimal mark.
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	} else if strings.Contains(amountStr, ",") {
		parts := strings.Split(amountStr, ",")
		if len(parts) > 1 && len(parts[len(parts)-1]) <= 2 {
			// Comma is the decimal mark (1234,56).
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	amountStr = strings.ReplaceAll(amountStr, "'", "")

	return amountStr
}

// Parse parses an amount cell into a decimal value. The returned error is the
// explicit "unparsable" signal; callers choose whether to omit the field or
// keep the raw text.
func Parse(amountStr string) (decimal.Decimal, error) {
	standardized := Standardize(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount %q: %w", amountStr, err)
	}
	return amount, nil
}

// FormatFixed renders an amount with exactly two decimal places and no
// thousands separators. Reformatting never changes magnitude, only
// representation.
func FormatFixed(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// IsPositive reports whether an amount is strictly greater than zero.
func IsPositive(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero)
}
