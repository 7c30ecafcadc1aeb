// Package money formats minor-unit amounts for display.
//
// The commerce API reports every amount as an integer in the currency's minor
// unit; rendering divides by 100 and applies locale-aware formatting.
package money

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts for one display locale.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter creates a formatter for the given language tag.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Format renders a minor-unit amount in the given ISO 4217 currency.
// An unrecognized currency code falls back to a plain decimal rendering so a
// bad code never blanks a price on the page.
func (f *Formatter) Format(amount int64, currencyCode string) string {
	if f == nil || f.printer == nil {
		return Format(amount, currencyCode, language.English)
	}
	return format(f.printer, amount, currencyCode)
}

// Format renders a minor-unit amount using a one-off printer for tag.
func Format(amount int64, currencyCode string, tag language.Tag) string {
	return format(message.NewPrinter(tag), amount, currencyCode)
}

func format(printer *message.Printer, amount int64, currencyCode string) string {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%.2f %s", float64(amount)/100, code)
	}
	return printer.Sprintf("%v", currency.Symbol(unit.Amount(float64(amount)/100)))
}
