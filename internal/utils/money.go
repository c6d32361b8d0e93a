package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupiah renders an amount with thousand separators, e.g. Rp1.250.000.
// Fractions are dropped unless non-zero.
func FormatRupiah(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	whole := amount.Truncate(0)
	frac := amount.Sub(whole)

	out := fmt.Sprintf("%sRp%s", sign, formatThousand(whole.String()))
	if !frac.IsZero() {
		out += "," + strings.TrimPrefix(frac.StringFixed(2), "0.")
	}
	return out
}

func formatThousand(str string) string {
	if str == "" || str == "0" {
		return "0"
	}
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
