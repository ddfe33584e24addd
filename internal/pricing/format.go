package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupiah formats an amount the way id-ID locales do: "Rp 1.500.000" or "Rp 12.345,5".
// Fractions are kept up to two digits with trailing zeros dropped.
func FormatRupiah(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	whole := d.Truncate(0)
	fraction := d.Sub(whole)

	digits := whole.String()
	var grouped strings.Builder
	for i, ch := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(ch)
	}

	out := "Rp " + sign + grouped.String()
	if !fraction.IsZero() {
		// fraction.String() is "0.5" or "0.25"
		out += "," + strings.TrimPrefix(fraction.String(), "0.")
	}
	return out
}

// FormatPercent formats a percentage with two decimals, e.g. "70.00%"
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}
