package server

import (
	"html"
	"net/url"
	"strings"
	"sync"

	"github.com/iwvelando/loan-calculator/internal/calculator"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/microcosm-cc/bluemonday"
)

var (
	fieldPolicyOnce sync.Once
	fieldPolicy     *bluemonday.Policy
)

// sanitizeField strips any markup from a value before it is echoed back into
// the page. The template escapes the remaining text.
func sanitizeField(raw string) string {
	fieldPolicyOnce.Do(func() {
		fieldPolicy = bluemonday.StrictPolicy()
	})
	cleaned := fieldPolicy.Sanitize(strings.TrimSpace(raw))
	return html.UnescapeString(cleaned)
}

// requestForm is the FormPort for a single HTTP request. It starts from the
// submitted values and collects what the adapter writes back.
type requestForm struct {
	values  calculator.FormValues
	display calculator.Display
	written bool
}

// newRequestForm keeps the submitted values as entered; they are only
// sanitized when echoed.
func newRequestForm(values url.Values) *requestForm {
	return &requestForm{
		values: calculator.FormValues{
			Amount:   values.Get(constants.FieldAmount),
			Term:     values.Get(constants.FieldTerm),
			Rate:     values.Get(constants.FieldRate),
			LoanType: values.Get(constants.FieldLoanType),
		},
	}
}

func (f *requestForm) ReadInputs() calculator.FormValues {
	return f.values
}

func (f *requestForm) WriteResult(d calculator.Display) {
	f.display = d
	f.written = true
}

func (f *requestForm) WriteReset(d calculator.Display) {
	f.values = calculator.FormValues{LoanType: constants.LoanTypeRepayment}
	f.display = d
	f.written = true
}

// echoed returns the input values with markup removed, for rendering.
func (f *requestForm) echoed() calculator.FormValues {
	return calculator.FormValues{
		Amount:   sanitizeField(f.values.Amount),
		Term:     sanitizeField(f.values.Term),
		Rate:     sanitizeField(f.values.Rate),
		LoanType: sanitizeField(f.values.LoanType),
	}
}
