package currency

import "testing"

func TestFormatUSD(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{158.40, "$158.40"},
		{0, "$0.00"},
		{0.5, "$0.50"},
		{1234.56, "$1,234.56"},
		{1234567.89, "$1,234,567.89"},
		{999.999, "$1,000.00"},
		{-42.10, "-$42.10"},
	}
	for _, tc := range cases {
		if got := FormatUSD(tc.amount); got != tc.want {
			t.Fatalf("FormatUSD(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}
