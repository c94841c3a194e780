// Package moedas formats monetary values for display. The numeric model
// stays plain float64 with 2 fraction digits; locale formatting is a
// presentation concern layered on top.
package moedas

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// BRL renders a value with pt-BR grouping and exactly two fraction digits,
// e.g. 1234.5 -> "R$ 1.234,50".
func BRL(v float64) string {
	return printer.Sprintf("R$ %v", number.Decimal(v,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
