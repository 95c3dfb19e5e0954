// Package format renders monetary amounts for display.
package format

import (
	"fmt"
	"strings"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts as a currency symbol followed by the value grouped
// by thousands with a fixed number of fraction digits. The zero value renders
// without a symbol, in English, with no fraction digits.
type Formatter struct {
	symbol        string
	decimalPlaces int
	locale        language.Tag

	printer *message.Printer
}

// NewFormatter builds a Formatter. An unparsable locale falls back to English
// and a negative number of decimal places falls back to the default.
func NewFormatter(symbol, locale string, decimalPlaces int) *Formatter {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil || tag == language.Und {
		tag = language.English
	}
	if decimalPlaces < 0 || decimalPlaces > constants.MaxDecimalPlaces {
		decimalPlaces = constants.DefaultDecimalPlaces
	}

	return &Formatter{
		symbol:        symbol,
		decimalPlaces: decimalPlaces,
		locale:        tag,
		printer:       message.NewPrinter(tag),
	}
}

// Default returns the formatter used when nothing is configured ("£1,234.50").
func Default() *Formatter {
	return NewFormatter(constants.DefaultCurrencySymbol, constants.DefaultLocale, constants.DefaultDecimalPlaces)
}

// Symbol returns the currency symbol prefixed to every amount.
func (f *Formatter) Symbol() string {
	return f.symbol
}

// DecimalPlaces returns the number of fraction digits shown.
func (f *Formatter) DecimalPlaces() int {
	return f.decimalPlaces
}

// Locale returns the locale driving grouping and the decimal mark.
func (f *Formatter) Locale() language.Tag {
	return f.locale
}

// Currency returns the display string for an amount, e.g. "£1,234.50".
// Halves round away from zero. NaN and infinite values render as Zero.
func (f *Formatter) Currency(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return f.Zero()
	}
	return f.render(mathutil.RoundTo(amount, f.decimalPlaces))
}

// Zero returns the zero-currency string, e.g. "£0.00".
func (f *Formatter) Zero() string {
	return f.render(0)
}

func (f *Formatter) render(amount float64) string {
	p := f.printer
	if p == nil {
		p = message.NewPrinter(language.English)
	}
	return f.symbol + p.Sprintf(fmt.Sprintf("%%.%df", f.decimalPlaces), amount)
}
