package calculator

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/iwvelando/loan-calculator/pkg/loans"
)

var numericPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ParseNumber reads the longest numeric prefix of a field value. Leading
// whitespace is skipped and trailing garbage ignored, so "12abc" is 12.
// Anything without a numeric prefix, and NaN, is 0.
func ParseNumber(raw string) float64 {
	trimmed := strings.TrimLeftFunc(raw, isLeadingSpace)
	match := numericPrefix.FindString(trimmed)
	if match == "" {
		return 0
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		// Out of range values still carry the signed infinity.
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
			return 0
		}
	}
	if math.IsNaN(value) || value == 0 {
		return 0
	}
	return value
}

// isLeadingSpace matches the characters a browser skips before a number,
// which include the byte order mark.
func isLeadingSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// ReadLoanInput converts raw form values into a LoanInput. It never fails:
// unparsable numbers become 0 and an unknown or missing loan type is Repayment.
func ReadLoanInput(values FormValues) loans.LoanInput {
	return loans.LoanInput{
		Principal:         ParseNumber(values.Amount),
		TermYears:         ParseNumber(values.Term),
		AnnualRatePercent: ParseNumber(values.Rate),
		Type:              loans.ParseLoanType(values.LoanType),
	}
}
