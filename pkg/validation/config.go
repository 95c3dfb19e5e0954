// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iwvelando/loan-calculator/pkg/constants"
)

// maxSymbolLength bounds the currency symbol, in runes.
const maxSymbolLength = 4

// ValidateDecimalPlaces checks the number of fraction digits shown for amounts.
func ValidateDecimalPlaces(places int) error {
	if places < 0 || places > constants.MaxDecimalPlaces {
		return fmt.Errorf("decimal places must be between 0 and %d, got %d", constants.MaxDecimalPlaces, places)
	}
	return nil
}

// ValidateDisplay checks the display options and returns warnings for values
// that are accepted but probably unintended.
func ValidateDisplay(currencySymbol string, decimalPlaces int, placeholder string) ([]string, error) {
	var warnings []string

	if err := ValidateDecimalPlaces(decimalPlaces); err != nil {
		return nil, err
	}

	if currencySymbol == "" {
		warnings = append(warnings, "currency symbol is empty - amounts will be shown without a symbol")
	} else if strings.TrimSpace(currencySymbol) == "" {
		return nil, fmt.Errorf("currency symbol must not be only whitespace")
	} else if utf8.RuneCountInString(currencySymbol) > maxSymbolLength {
		warnings = append(warnings, fmt.Sprintf("currency symbol %q is longer than %d characters", currencySymbol, maxSymbolLength))
	}

	if placeholder == "" {
		warnings = append(warnings, "placeholder is empty - the default marker will be used")
	}

	if decimalPlaces != constants.DefaultDecimalPlaces {
		warnings = append(warnings, fmt.Sprintf("showing %d decimal places instead of %d", decimalPlaces, constants.DefaultDecimalPlaces))
	}

	return warnings, nil
}
