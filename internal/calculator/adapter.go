package calculator

import (
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/format"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"go.uber.org/zap"
)

// Adapter runs calculation cycles against a FormPort. It keeps no form state
// of its own; every call re-reads the port.
type Adapter struct {
	port        FormPort
	formatter   *format.Formatter
	placeholder string
	logger      *zap.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for debug tracing of calculation cycles.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithPlaceholder overrides the marker shown when inputs cannot be computed.
func WithPlaceholder(placeholder string) Option {
	return func(a *Adapter) {
		if placeholder != "" {
			a.placeholder = placeholder
		}
	}
}

// NewAdapter creates an Adapter for the given port. A nil formatter uses the
// default currency formatting.
func NewAdapter(port FormPort, formatter *format.Formatter, opts ...Option) *Adapter {
	if formatter == nil {
		formatter = format.Default()
	}
	a := &Adapter{
		port:        port,
		formatter:   formatter,
		placeholder: constants.Placeholder,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Evaluate maps raw form values onto the text of the two output fields.
func (a *Adapter) Evaluate(values FormValues) Display {
	input := ReadLoanInput(values)

	result, ok := loans.Calculate(input)
	if !ok {
		a.logger.Debug("inputs not computable, showing placeholder",
			zap.String("op", "calculator.Evaluate"),
			zap.Float64("amount", input.Principal),
			zap.Float64("term", input.TermYears),
			zap.Float64("rate", input.AnnualRatePercent),
		)
		return a.Placeholder()
	}

	a.logger.Debug("loan calculated",
		zap.String("op", "calculator.Evaluate"),
		zap.Stringer("type", input.Type),
		zap.Float64("monthly", result.MonthlyPayment),
		zap.Float64("total", result.TotalPayment),
	)

	return Display{
		Monthly: a.formatter.Currency(result.MonthlyPayment),
		Total:   a.formatter.Currency(result.TotalPayment),
	}
}

// CalculateAndRender reads the form, computes the payments and writes them to
// the output fields, or the placeholder when the inputs fail validation.
func (a *Adapter) CalculateAndRender() {
	a.port.WriteResult(a.Evaluate(a.port.ReadInputs()))
}

// ResetAll clears the form and shows the zero-currency string in both outputs.
func (a *Adapter) ResetAll() {
	a.port.WriteReset(a.ZeroDisplay())
}

// Placeholder returns the display written when inputs cannot be computed.
func (a *Adapter) Placeholder() Display {
	return Display{Monthly: a.placeholder, Total: a.placeholder}
}

// ZeroDisplay returns the display written after a reset.
func (a *Adapter) ZeroDisplay() Display {
	zero := a.formatter.Zero()
	return Display{Monthly: zero, Total: zero}
}
