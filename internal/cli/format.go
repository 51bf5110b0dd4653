package cli

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	titleCaser    = cases.Title(language.English)
	amountPrinter = message.NewPrinter(language.English)
)

// FormatAmount renders an amount with digit grouping and at most two
// decimals, e.g. 1,200 or 300.25.
func FormatAmount(amount float64) string {
	return amountPrinter.Sprint(number.Decimal(amount, number.MaxFractionDigits(2)))
}
