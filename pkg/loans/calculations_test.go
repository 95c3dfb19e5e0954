package loans

import (
	"math"
	"testing"

	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

func TestComputeRepayment(t *testing.T) {
	tests := []struct {
		name              string
		principal         float64
		annualRatePercent float64
		termYears         float64
		expectedRange     []float64 // [min, max] expected range
	}{
		{
			name:              "Standard 25-year mortgage",
			principal:         100000,
			annualRatePercent: 5.0,
			termYears:         25,
			expectedRange:     []float64{584.58, 584.60}, // Around £584.59
		},
		{
			name:              "30-year mortgage",
			principal:         240000,
			annualRatePercent: 6.0,
			termYears:         30,
			expectedRange:     []float64{1400, 1500}, // Around £1439
		},
		{
			name:              "Zero interest loan",
			principal:         12000,
			annualRatePercent: 0.0,
			termYears:         5,
			expectedRange:     []float64{200, 200}, // Exactly £200
		},
		{
			name:              "High interest loan",
			principal:         10000,
			annualRatePercent: 18.0,
			termYears:         3,
			expectedRange:     []float64{361, 362}, // Around £361.52
		},
		{
			name:              "Fractional term",
			principal:         100000,
			annualRatePercent: 5.0,
			termYears:         0.5,
			expectedRange:     []float64{16910, 16911},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeRepayment(tt.principal, tt.annualRatePercent, tt.termYears)

			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("ComputeRepayment() = %.4f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestComputeRepaymentZeroRateIsStraightLine(t *testing.T) {
	tests := []struct {
		principal float64
		termYears float64
	}{
		{12000, 5},
		{100000, 25},
		{1, 1},
		{333333.33, 7},
		{50000, 2.5},
	}

	for _, tt := range tests {
		got := ComputeRepayment(tt.principal, 0, tt.termYears)
		want := tt.principal / (tt.termYears * 12)
		if got != want {
			t.Errorf("ComputeRepayment(%v, 0, %v) = %v, want exactly %v", tt.principal, tt.termYears, got, want)
		}
	}
}

func TestComputeRepaymentRoundTrip(t *testing.T) {
	tests := []struct {
		principal         float64
		annualRatePercent float64
		termYears         float64
	}{
		{100000, 5, 25},
		{175000, 4.5, 30},
		{5000, 0.01, 1},
		{1e6, 12, 40},
		{750, 29.9, 2},
	}

	for _, tt := range tests {
		v := ComputeRepayment(tt.principal, tt.annualRatePercent, tt.termYears)
		r := MonthlyRate(tt.annualRatePercent)
		n := Periods(tt.termYears)
		recovered := v * (1 - math.Pow(1+r, -n)) / r

		if math.Abs(recovered-tt.principal) > tt.principal*1e-9 {
			t.Errorf("round trip for %+v recovered principal %v", tt, recovered)
		}
	}
}

func TestComputeInterestOnly(t *testing.T) {
	tests := []struct {
		name              string
		principal         float64
		annualRatePercent float64
		expected          float64
	}{
		{
			name:              "Standard mortgage interest",
			principal:         100000,
			annualRatePercent: 5.0,
			expected:          416.67, // 100000 * 0.05 / 12
		},
		{
			name:              "Car loan interest",
			principal:         15000,
			annualRatePercent: 4.5,
			expected:          56.25, // 15000 * 0.045 / 12
		},
		{
			name:              "Zero interest",
			principal:         10000,
			annualRatePercent: 0.0,
			expected:          0.0,
		},
		{
			name:              "High interest",
			principal:         5000,
			annualRatePercent: 24.0,
			expected:          100.0, // 5000 * 0.24 / 12
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeInterestOnly(tt.principal, tt.annualRatePercent)

			if !mathutil.WithinTolerance(result, tt.expected, 0.01) {
				t.Errorf("ComputeInterestOnly() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}

	if got := ComputeInterestOnly(250000, 0); got != 0 {
		t.Errorf("ComputeInterestOnly(250000, 0) = %v, want 0", got)
	}
}

func TestInterestOnlyIndependentOfTerm(t *testing.T) {
	base, ok := Calculate(LoanInput{Principal: 100000, AnnualRatePercent: 5, TermYears: 10, Type: InterestOnly})
	if !ok {
		t.Fatal("expected computable input")
	}
	for _, years := range []float64{1, 5, 25, 40} {
		result, _ := Calculate(LoanInput{Principal: 100000, AnnualRatePercent: 5, TermYears: years, Type: InterestOnly})
		if result.MonthlyPayment != base.MonthlyPayment {
			t.Errorf("monthly payment for %v years = %v, want %v", years, result.MonthlyPayment, base.MonthlyPayment)
		}
	}
}

func TestTotalPayment(t *testing.T) {
	tests := []struct {
		name      string
		loanType  LoanType
		monthly   float64
		termYears float64
		expected  float64
	}{
		{"Repayment over 25 years", Repayment, 584.59, 25, 584.59 * 300},
		{"Interest-only over 25 years", InterestOnly, 416.67, 25, 416.67 * 300},
		{"Repayment over a fractional term", Repayment, 100, 2.5, 3000},
		{"Interest-only zero rate", InterestOnly, 0, 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TotalPayment(tt.loanType, tt.monthly, tt.termYears)
			if math.Abs(result-tt.expected) > 1e-6 {
				t.Errorf("TotalPayment() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name            string
		input           LoanInput
		expectOK        bool
		expectedMonthly float64
		expectedTotal   float64
	}{
		{
			name:            "Repayment end-to-end",
			input:           LoanInput{Principal: 100000, AnnualRatePercent: 5, TermYears: 25, Type: Repayment},
			expectOK:        true,
			expectedMonthly: 584.59,
			expectedTotal:   175377.01,
		},
		{
			name:            "Interest-only end-to-end",
			input:           LoanInput{Principal: 100000, AnnualRatePercent: 5, TermYears: 25, Type: InterestOnly},
			expectOK:        true,
			expectedMonthly: 416.67,
			expectedTotal:   125000.00,
		},
		{
			name:            "Zero rate repayment",
			input:           LoanInput{Principal: 12000, AnnualRatePercent: 0, TermYears: 5, Type: Repayment},
			expectOK:        true,
			expectedMonthly: 200,
			expectedTotal:   12000,
		},
		{
			name:     "Zero principal",
			input:    LoanInput{Principal: 0, AnnualRatePercent: 5, TermYears: 25},
			expectOK: false,
		},
		{
			name:     "Negative principal",
			input:    LoanInput{Principal: -100, AnnualRatePercent: 5, TermYears: 25},
			expectOK: false,
		},
		{
			name:     "Zero term",
			input:    LoanInput{Principal: 100000, AnnualRatePercent: 5, TermYears: 0},
			expectOK: false,
		},
		{
			name:     "Negative rate",
			input:    LoanInput{Principal: 100000, AnnualRatePercent: -1, TermYears: 25},
			expectOK: false,
		},
		{
			name:     "NaN principal",
			input:    LoanInput{Principal: math.NaN(), AnnualRatePercent: 5, TermYears: 25},
			expectOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := Calculate(tt.input)
			if ok != tt.expectOK {
				t.Fatalf("Calculate() ok = %v, expected %v", ok, tt.expectOK)
			}
			if !ok {
				if result != (LoanResult{}) {
					t.Errorf("expected zero result when unavailable, got %+v", result)
				}
				return
			}
			if !mathutil.WithinTolerance(result.MonthlyPayment, tt.expectedMonthly, 0.005) {
				t.Errorf("MonthlyPayment = %.4f, expected %.2f", result.MonthlyPayment, tt.expectedMonthly)
			}
			if !mathutil.WithinTolerance(result.TotalPayment, tt.expectedTotal, 0.005) {
				t.Errorf("TotalPayment = %.4f, expected %.2f", result.TotalPayment, tt.expectedTotal)
			}
		})
	}
}

func TestParseLoanType(t *testing.T) {
	tests := []struct {
		value    string
		expected LoanType
	}{
		{"repayment", Repayment},
		{"interest-only", InterestOnly},
		{"Interest-Only", InterestOnly},
		{" interest_only ", InterestOnly},
		{"", Repayment},
		{"variable", Repayment},
	}

	for _, tt := range tests {
		if got := ParseLoanType(tt.value); got != tt.expected {
			t.Errorf("ParseLoanType(%q) = %v, expected %v", tt.value, got, tt.expected)
		}
	}

	if Repayment.String() != "repayment" || InterestOnly.String() != "interest-only" {
		t.Errorf("unexpected loan type strings %q, %q", Repayment.String(), InterestOnly.String())
	}
}

func TestMonthlyRate(t *testing.T) {
	tests := []struct {
		annualRatePercent float64
		expected          float64
	}{
		{6, 0.005},
		{5, 0.05 / 12},
		{0, 0},
	}

	for _, tt := range tests {
		if got := MonthlyRate(tt.annualRatePercent); !mathutil.WithinTolerance(got, tt.expected, 1e-15) {
			t.Errorf("MonthlyRate(%v) = %v, expected %v", tt.annualRatePercent, got, tt.expected)
		}
	}
}
