package pricing

import "testing"

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount Money
		want   string
	}{
		{0, "0,00 kr"},
		{50, "0,50 kr"},
		{123456, "1 234,56 kr"},
		{100000000, "1 000 000,00 kr"},
		{-9900, "-99,00 kr"},
	}
	for _, tc := range cases {
		if got := FormatCurrency(tc.amount); got != tc.want {
			t.Fatalf("FormatCurrency(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(20); got != "20 %" {
		t.Fatalf("FormatPercent(20) = %q", got)
	}
}
