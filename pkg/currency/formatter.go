package currency

import (
	"fmt"
	"math"
)

// FormatUSD renders an amount as "$1,234.56" with thousands separators.
func FormatUSD(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	cents := int64(math.Round(amount * 100))
	dollars := cents / 100

	formatted := groupThousands(dollars)
	result := fmt.Sprintf("$%s.%02d", formatted, cents%100)
	if negative {
		return "-" + result
	}
	return result
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
