package helpers

import (
	"fmt"
	"strings"
)

// Display formatting only. The calculation core never rounds; these helpers
// are applied at output time by the presentation layer.

// -----------------------------------------------------------------------------

// FormatCurrency renders a USD amount, e.g. 48000 -> "$48,000.00".
func FormatCurrency(amount float64, decimals int) string {
	return "$" + groupThousands(fmt.Sprintf("%.*f", decimals, amount))
}

// -----------------------------------------------------------------------------

// FormatTokens renders a token amount with thousands separators.
func FormatTokens(amount float64, decimals int) string {
	return groupThousands(fmt.Sprintf("%.*f", decimals, amount))
}

// -----------------------------------------------------------------------------

// FormatPercentage renders a percentage, e.g. 25 -> "25.0%".
func FormatPercentage(pct float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, pct)
}

// -----------------------------------------------------------------------------

// groupThousands inserts commas into the integer part of a formatted number.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}

	out := intPart + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
