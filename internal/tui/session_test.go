package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iwvelando/loan-calculator/internal/calculator"
	"github.com/iwvelando/loan-calculator/pkg/format"
	"go.uber.org/zap"
)

// scriptedDriver answers prompts from a fixed script and records output.
type scriptedDriver struct {
	selects []int
	inputs  []string
	infos   []string
	err     error // returned once the script runs out
}

func (d *scriptedDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", d.exhausted("input")
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	if next == "<keep>" {
		return cfg.Default, nil
	}
	return next, nil
}

func (d *scriptedDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, d.exhausted("select")
	}
	next := d.selects[0]
	d.selects = d.selects[1:]
	return next, nil
}

func (d *scriptedDriver) Info(ctx context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func (d *scriptedDriver) exhausted(kind string) error {
	if d.err != nil {
		return d.err
	}
	return fmt.Errorf("script exhausted at %s prompt", kind)
}

func (d *scriptedDriver) last() string {
	if len(d.infos) == 0 {
		return ""
	}
	return d.infos[len(d.infos)-1]
}

func newTestSession(driver PromptDriver) *Session {
	return NewSession(driver, format.Default(), "", zap.NewNop())
}

func TestSessionInitialLoadShowsPlaceholder(t *testing.T) {
	driver := &scriptedDriver{selects: []int{menuQuit}}
	if err := newTestSession(driver).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(driver.infos) != 1 {
		t.Fatalf("expected one render, got %d", len(driver.infos))
	}
	if !strings.Contains(driver.infos[0], "—") {
		t.Errorf("expected placeholder on load, got %q", driver.infos[0])
	}
}

func TestSessionRepaymentFlow(t *testing.T) {
	driver := &scriptedDriver{
		selects: []int{menuAmount, menuTerm, menuRate, menuQuit},
		inputs:  []string{"100000", "25", "5"},
	}
	session := newTestSession(driver)
	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := calculator.Display{Monthly: "£584.59", Total: "£175,377.01"}
	if diff := cmp.Diff(want, session.Form().Display()); diff != "" {
		t.Errorf("display mismatch (-want +got):\n%s", diff)
	}
	// load + one render per edited field
	if len(driver.infos) != 4 {
		t.Errorf("expected 4 renders, got %d", len(driver.infos))
	}
	if !strings.Contains(driver.last(), "£584.59") {
		t.Errorf("expected rendered monthly figure, got %q", driver.last())
	}
}

func TestSessionLoanTypeWaitsForCalculate(t *testing.T) {
	driver := &scriptedDriver{
		selects: []int{menuAmount, menuTerm, menuRate, menuLoanType, 1, menuCalculate, menuQuit},
		inputs:  []string{"100000", "25", "5"},
	}
	session := newTestSession(driver)
	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := calculator.Display{Monthly: "£416.67", Total: "£125,000.00"}
	if diff := cmp.Diff(want, session.Form().Display()); diff != "" {
		t.Errorf("display mismatch (-want +got):\n%s", diff)
	}
	// The selector change itself does not render.
	if len(driver.infos) != 5 {
		t.Errorf("expected 5 renders, got %d", len(driver.infos))
	}
	if !strings.Contains(driver.infos[3], "£584.59") {
		t.Errorf("expected repayment figures before calculate, got %q", driver.infos[3])
	}
}

func TestSessionUnchangedInputActsAsEnter(t *testing.T) {
	driver := &scriptedDriver{
		selects: []int{menuAmount, menuTerm, menuRate, menuRate, menuQuit},
		inputs:  []string{"100000", "25", "5", "<keep>"},
	}
	session := newTestSession(driver)
	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(driver.infos) != 5 {
		t.Fatalf("expected 5 renders, got %d", len(driver.infos))
	}
	if driver.infos[4] != driver.infos[3] {
		t.Errorf("expected the same figures after resubmitting, got %q and %q", driver.infos[3], driver.infos[4])
	}
}

func TestSessionClear(t *testing.T) {
	driver := &scriptedDriver{
		selects: []int{menuAmount, menuTerm, menuRate, menuLoanType, 1, menuClear, menuQuit},
		inputs:  []string{"100000", "25", "5"},
	}
	session := newTestSession(driver)
	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if diff := cmp.Diff(calculator.Display{Monthly: "£0.00", Total: "£0.00"}, session.Form().Display()); diff != "" {
		t.Errorf("display mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(calculator.FormValues{LoanType: "repayment"}, session.Form().ReadInputs()); diff != "" {
		t.Errorf("form values mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionAbortEndsCleanly(t *testing.T) {
	driver := &scriptedDriver{
		selects: []int{menuAmount},
		err:     ErrAborted,
	}
	if err := newTestSession(driver).Run(context.Background()); err != nil {
		t.Fatalf("expected abort to end the session without error, got %v", err)
	}
}

func TestSessionPropagatesDriverErrors(t *testing.T) {
	boom := errors.New("terminal gone")
	driver := &scriptedDriver{err: boom}
	if err := newTestSession(driver).Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected driver error, got %v", err)
	}
}

func TestSessionWithoutDriver(t *testing.T) {
	if err := NewSession(nil, nil, "", nil).Run(context.Background()); !errors.Is(err, ErrNoDriver) {
		t.Fatalf("expected ErrNoDriver, got %v", err)
	}
}

func TestIndexOf(t *testing.T) {
	if got := indexOf(loanTypeOptions, "Interest only"); got != 1 {
		t.Errorf("indexOf() = %d, expected 1", got)
	}
	if got := indexOf(loanTypeOptions, "Variable"); got != -1 {
		t.Errorf("indexOf() = %d, expected -1", got)
	}
}
