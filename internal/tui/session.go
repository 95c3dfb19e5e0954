// Package tui hosts the calculator form as interactive terminal prompts.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/iwvelando/loan-calculator/internal/calculator"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/format"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"go.uber.org/zap"
)

// Menu entries, in display order.
const (
	menuAmount = iota
	menuTerm
	menuRate
	menuLoanType
	menuCalculate
	menuClear
	menuQuit
)

var menuOptions = []string{
	"Edit loan amount",
	"Edit term (years)",
	"Edit annual rate (%)",
	"Change loan type",
	"Calculate",
	"Clear all",
	"Quit",
}

var loanTypeOptions = []string{"Repayment", "Interest only"}

// Form is the terminal FormPort: it holds the values entered at the prompts
// and the last figures written by the adapter.
type Form struct {
	values  calculator.FormValues
	display calculator.Display
}

// ReadInputs returns the values entered so far.
func (f *Form) ReadInputs() calculator.FormValues {
	return f.values
}

// WriteResult records the figures to show.
func (f *Form) WriteResult(d calculator.Display) {
	f.display = d
}

// WriteReset empties the inputs and selects Repayment.
func (f *Form) WriteReset(d calculator.Display) {
	f.values = calculator.FormValues{LoanType: constants.LoanTypeRepayment}
	f.display = d
}

// Display returns the figures currently shown.
func (f *Form) Display() calculator.Display {
	return f.display
}

// Session runs the calculator form against a PromptDriver.
type Session struct {
	driver    PromptDriver
	form      *Form
	formatter *format.Formatter
	adapter   *calculator.Adapter
	logger    *zap.Logger
}

// NewSession creates a session with an empty form.
func NewSession(driver PromptDriver, formatter *format.Formatter, placeholder string, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if formatter == nil {
		formatter = format.Default()
	}
	form := &Form{values: calculator.FormValues{LoanType: constants.LoanTypeRepayment}}
	return &Session{
		driver:    driver,
		form:      form,
		formatter: formatter,
		adapter: calculator.NewAdapter(form, formatter,
			calculator.WithLogger(logger),
			calculator.WithPlaceholder(placeholder),
		),
		logger: logger,
	}
}

// Form exposes the session's form state.
func (s *Session) Form() *Form {
	return s.form
}

// Run shows the form until the user quits. An interrupt ends the session
// without error.
func (s *Session) Run(ctx context.Context) error {
	if s.driver == nil {
		return ErrNoDriver
	}

	err := s.run(ctx)
	if errors.Is(err, ErrAborted) {
		s.logger.Debug("session aborted", zap.String("op", "tui.Run"))
		return nil
	}
	return err
}

func (s *Session) run(ctx context.Context) error {
	s.adapter.HandleEvent(calculator.Event{Kind: calculator.EventLoad})
	if err := s.show(ctx); err != nil {
		return err
	}

	for {
		choice, err := s.driver.Select(ctx, SelectConfig{
			Message:      "Loan calculator",
			Options:      menuOptions,
			DefaultIndex: menuCalculate,
		})
		if err != nil {
			return err
		}

		switch choice {
		case menuAmount:
			err = s.editField(ctx, constants.FieldAmount, "Loan amount ("+s.symbol()+")", &s.form.values.Amount)
		case menuTerm:
			err = s.editField(ctx, constants.FieldTerm, "Term (years)", &s.form.values.Term)
		case menuRate:
			err = s.editField(ctx, constants.FieldRate, "Annual interest rate (%)", &s.form.values.Rate)
		case menuLoanType:
			err = s.selectLoanType(ctx)
		case menuCalculate:
			s.adapter.HandleEvent(calculator.Event{Kind: calculator.EventCalculate})
			err = s.show(ctx)
		case menuClear:
			s.adapter.HandleEvent(calculator.Event{Kind: calculator.EventClear})
			err = s.show(ctx)
		case menuQuit:
			return nil
		default:
			err = fmt.Errorf("unexpected menu choice %d", choice)
		}
		if err != nil {
			return err
		}
	}
}

// editField prompts for one input field. A changed value counts as an input
// event; submitting the value unchanged counts as the activation key.
func (s *Session) editField(ctx context.Context, field, message string, value *string) error {
	entered, err := s.driver.Input(ctx, InputConfig{
		Message: message,
		Default: *value,
	})
	if err != nil {
		return err
	}

	event := calculator.Event{Kind: calculator.EventKeyDown, Field: field, Key: constants.ActivationKey}
	if entered != *value {
		*value = entered
		event = calculator.Event{Kind: calculator.EventInput, Field: field}
	}
	s.adapter.HandleEvent(event)
	return s.show(ctx)
}

// selectLoanType changes the selector. Like the web form it does not
// recalculate until the next calculate action or input change.
func (s *Session) selectLoanType(ctx context.Context) error {
	current := 0
	if loans.ParseLoanType(s.form.values.LoanType) == loans.InterestOnly {
		current = 1
	}

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      "Loan type",
		Options:      loanTypeOptions,
		DefaultIndex: current,
	})
	if err != nil {
		return err
	}

	switch idx {
	case 1:
		s.form.values.LoanType = loans.InterestOnly.String()
	default:
		s.form.values.LoanType = loans.Repayment.String()
	}
	return nil
}

func (s *Session) show(ctx context.Context) error {
	d := s.form.Display()
	return s.driver.Info(ctx, fmt.Sprintf("Monthly repayment: %s\nTotal repaid:      %s", d.Monthly, d.Total))
}

func (s *Session) symbol() string {
	return s.formatter.Symbol()
}
