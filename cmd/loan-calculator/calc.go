package main

import (
	"fmt"
	"io"

	"github.com/iwvelando/loan-calculator/internal/calculator"
	"github.com/iwvelando/loan-calculator/internal/config"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/output"
	"go.uber.org/zap"
)

// cliForm is the FormPort for calc mode: inputs come from flags and the
// result is captured for printing.
type cliForm struct {
	values  calculator.FormValues
	display calculator.Display
}

func (f *cliForm) ReadInputs() calculator.FormValues {
	return f.values
}

func (f *cliForm) WriteResult(d calculator.Display) {
	f.display = d
}

func (f *cliForm) WriteReset(d calculator.Display) {
	f.values = calculator.FormValues{LoanType: constants.LoanTypeRepayment}
	f.display = d
}

// runCalc performs a single calculation and prints it in the configured
// output format.
func runCalc(w io.Writer, conf *config.Configuration, values calculator.FormValues, logger *zap.Logger) error {
	form := &cliForm{values: values}
	adapter := calculator.NewAdapter(form, conf.Display.Formatter(),
		calculator.WithLogger(logger),
		calculator.WithPlaceholder(conf.Display.Placeholder),
	)
	adapter.CalculateAndRender()

	logger.Debug("calculation complete",
		zap.String("op", "main.runCalc"),
		zap.String("monthly", form.display.Monthly),
		zap.String("total", form.display.Total),
	)

	result := output.Result{
		Amount:   form.values.Amount,
		Term:     form.values.Term,
		Rate:     form.values.Rate,
		LoanType: form.values.LoanType,
		Monthly:  form.display.Monthly,
		Total:    form.display.Total,
	}

	switch conf.Output.Format {
	case constants.OutputFormatPretty:
		return output.PrettyFormat(w, result)
	case constants.OutputFormatCSV:
		return output.CsvFormat(w, result)
	default:
		return fmt.Errorf("unsupported output format: %s", conf.Output.Format)
	}
}
