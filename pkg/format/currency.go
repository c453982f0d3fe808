// Package format renders currency and rate values for display.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// WholeDollars rounds to whole dollars without separators (e.g., "$1394").
func WholeDollars(amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-$%.0f", math.Abs(amount))
	}
	return fmt.Sprintf("$%.0f", amount)
}

// Percent renders a decimal fraction as a percentage (e.g., 0.065 -> "6.50%").
func Percent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}

func formatPositiveCurrency(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
