package service

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders minor units as US dollars, e.g. 123456 → "$1,234.56"
func FormatCurrency(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%s.%02d", sign, usPrinter.Sprintf("%d", cents/100), cents%100)
}

// FormatDate renders an invoice date for display, e.g. "Dec 6, 2022"
func FormatDate(date time.Time) string {
	return date.Format("Jan 2, 2006")
}
