// Package format renders monetary values for display, the way the menus of
// the budget program show them.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Amount renders a monetary value with a dollar sign, thousands separators
// and two decimal places, e.g. 1234.5 -> "$1,234.50" and -20 -> "-$20.00".
func Amount(d decimal.Decimal) string {
	f, _ := d.Abs().Float64()
	s := printer.Sprintf("$%v", number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))

	if d.IsNegative() {
		return "-" + s
	}
	return s
}
