// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/loan-calculator/internal/calculator"
	"github.com/iwvelando/loan-calculator/pkg/constants"
)

// RecordingForm is an in-memory FormPort that keeps every display written to it.
type RecordingForm struct {
	Values calculator.FormValues
	Writes []calculator.Display
	Resets int
}

// NewRecordingForm returns a form holding the given inputs.
func NewRecordingForm(amount, term, rate, loanType string) *RecordingForm {
	return &RecordingForm{Values: calculator.FormValues{
		Amount:   amount,
		Term:     term,
		Rate:     rate,
		LoanType: loanType,
	}}
}

// ReadInputs returns the current inputs.
func (f *RecordingForm) ReadInputs() calculator.FormValues {
	return f.Values
}

// WriteResult records a result display.
func (f *RecordingForm) WriteResult(d calculator.Display) {
	f.Writes = append(f.Writes, d)
}

// WriteReset clears the inputs and records the display.
func (f *RecordingForm) WriteReset(d calculator.Display) {
	f.Values = calculator.FormValues{LoanType: constants.LoanTypeRepayment}
	f.Resets++
	f.Writes = append(f.Writes, d)
}

// Last returns the most recent display, or the zero Display when nothing
// has been written.
func (f *RecordingForm) Last() calculator.Display {
	if len(f.Writes) == 0 {
		return calculator.Display{}
	}
	return f.Writes[len(f.Writes)-1]
}
