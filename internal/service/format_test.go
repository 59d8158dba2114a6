package service

import (
	"testing"
	"time"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{1250, "$12.50"},
		{123456, "$1,234.56"},
		{100000000, "$1,000,000.00"},
		{-666, "-$6.66"},
	}

	for _, tt := range tests {
		if got := FormatCurrency(tt.cents); got != tt.want {
			t.Errorf("FormatCurrency(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	date := time.Date(2022, time.December, 6, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(date); got != "Dec 6, 2022" {
		t.Errorf("FormatDate() = %q, want %q", got, "Dec 6, 2022")
	}
}
