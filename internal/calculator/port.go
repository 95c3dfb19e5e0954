// Package calculator connects a hosting form to the loan calculations. It reads
// raw form state through a FormPort, runs the calculation and writes the
// formatted figures back.
package calculator

// FormValues is the raw state of the calculator form as entered by the user.
type FormValues struct {
	Amount   string `json:"amount"`
	Term     string `json:"term"`
	Rate     string `json:"rate"`
	LoanType string `json:"type"`
}

// Display holds the text shown in the two output fields.
type Display struct {
	Monthly string `json:"monthly"`
	Total   string `json:"total"`
}

// FormPort is the capability a hosting surface offers the Adapter.
type FormPort interface {
	// ReadInputs returns the current values of the amount, term, rate and
	// loan type fields.
	ReadInputs() FormValues
	// WriteResult replaces the text of both output fields.
	WriteResult(Display)
	// WriteReset empties the input fields, selects the first loan type
	// option and writes the given outputs.
	WriteReset(Display)
}
