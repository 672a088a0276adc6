package response

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount in cents the way the storefront shows prices, 123456 is "R$ 1.234,56".
func FormatBRL(cents int64) string {
	amount := decimal.New(cents, -2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	integer, fraction, _ := strings.Cut(amount.StringFixed(2), ".")
	var grouped strings.Builder
	for i, digit := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}
	return sign + "R$ " + grouped.String() + "," + fraction
}
