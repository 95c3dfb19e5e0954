// Package loans provides the monthly payment calculations for repayment and
// interest-only loans.
package loans

import (
	"math"
	"strings"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

// LoanType selects the financial model used for a calculation.
type LoanType int

const (
	// Repayment is an amortizing loan where each payment covers interest and
	// reduces principal.
	Repayment LoanType = iota
	// InterestOnly is a loan whose payments only cover interest.
	InterestOnly
)

// String returns the form value of the loan type.
func (t LoanType) String() string {
	if t == InterestOnly {
		return constants.LoanTypeInterestOnly
	}
	return constants.LoanTypeRepayment
}

// ParseLoanType maps a selector value onto a LoanType. Anything that is not a
// recognized interest-only value, including an empty selection, is Repayment.
func ParseLoanType(value string) LoanType {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case constants.LoanTypeInterestOnly, "interest_only", "interestonly":
		return InterestOnly
	default:
		return Repayment
	}
}

// LoanInput holds the parameters of one calculation request.
type LoanInput struct {
	Principal         float64
	AnnualRatePercent float64
	TermYears         float64
	Type              LoanType
}

// Computable reports whether the input passes the validation gate. NaN fields
// always fail.
func (in LoanInput) Computable() bool {
	return in.Principal > 0 && in.TermYears > 0 && in.AnnualRatePercent >= 0
}

// LoanResult holds the computed payment figures, in the currency of the
// principal.
type LoanResult struct {
	MonthlyPayment float64
	TotalPayment   float64
}

// MonthlyRate converts an annual percentage rate into a monthly decimal rate.
func MonthlyRate(annualRatePercent float64) float64 {
	return mathutil.FromPercent(annualRatePercent) / constants.MonthsPerYear
}

// Periods converts a term in years into the number of monthly installments.
func Periods(termYears float64) float64 {
	return termYears * constants.MonthsPerYear
}

// ComputeRepayment calculates the monthly payment of an amortizing loan using
// the standard fixed-rate formula. The result is not rounded. termYears must be
// positive.
func ComputeRepayment(principal, annualRatePercent, termYears float64) float64 {
	r := MonthlyRate(annualRatePercent)
	n := Periods(termYears)
	if r == 0 {
		// For zero interest, simply divide the principal by the installments
		return principal / n
	}
	return principal * r / (1 - math.Pow(1+r, -n))
}

// ComputeInterestOnly calculates the monthly payment of an interest-only loan.
func ComputeInterestOnly(principal, annualRatePercent float64) float64 {
	return principal * MonthlyRate(annualRatePercent)
}

// TotalPayment derives the total figure shown next to the monthly payment.
// For InterestOnly this is the interest paid over the term; the principal is
// never repaid by these payments.
func TotalPayment(loanType LoanType, monthlyPayment, termYears float64) float64 {
	if loanType == InterestOnly {
		return monthlyPayment * constants.MonthsPerYear * termYears
	}
	return monthlyPayment * termYears * constants.MonthsPerYear
}

// Calculate runs the validation gate and, when it passes, computes the monthly
// and total payment for the input's loan type. It returns false when the input
// cannot be computed.
func Calculate(in LoanInput) (LoanResult, bool) {
	if !in.Computable() {
		return LoanResult{}, false
	}

	var monthly float64
	switch in.Type {
	case InterestOnly:
		monthly = ComputeInterestOnly(in.Principal, in.AnnualRatePercent)
	default:
		monthly = ComputeRepayment(in.Principal, in.AnnualRatePercent, in.TermYears)
	}

	return LoanResult{
		MonthlyPayment: monthly,
		TotalPayment:   TotalPayment(in.Type, monthly, in.TermYears),
	}, true
}
