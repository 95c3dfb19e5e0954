// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/iwvelando/loan-calculator/pkg/loans"
)

// Result is one calculation as entered and as displayed.
type Result struct {
	Amount   string
	Term     string
	Rate     string
	LoanType string
	Monthly  string
	Total    string
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, result Result) error {
	rows := [][2]string{
		{"Loan amount", result.Amount},
		{"Term (years)", result.Term},
		{"Annual rate (%)", result.Rate},
		{"Loan type", loans.ParseLoanType(result.LoanType).String()},
		{"Monthly repayment", result.Monthly},
		{"Total repaid", result.Total},
	}

	if _, err := fmt.Fprintf(w, "--- Loan calculation ---\n"); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%-17s | %s\n", row[0], row[1]); err != nil {
			return err
		}
	}
	return nil
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(w io.Writer, result Result) error {
	cw := csv.NewWriter(w)
	records := [][]string{
		{"amount", "term", "rate", "type", "monthly", "total"},
		{
			result.Amount,
			result.Term,
			result.Rate,
			loans.ParseLoanType(result.LoanType).String(),
			result.Monthly,
			result.Total,
		},
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
