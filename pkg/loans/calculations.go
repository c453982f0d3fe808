// Package loans provides common loan processing utilities.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/rent-vs-buy/pkg/constants"
)

// Term is the length of a fixed-rate mortgage in years.
type Term int

// Supported loan terms.
const (
	Fifteen Term = 15
	Thirty  Term = 30
)

// Valid reports whether the term is one of the offered mortgage terms.
func (t Term) Valid() bool {
	return t == Fifteen || t == Thirty
}

// Years returns the term as a float for use in formulas.
func (t Term) Years() float64 {
	return float64(t)
}

// Months returns the number of monthly payments over the term.
func (t Term) Months() int {
	return int(t) * constants.MonthsPerYear
}

func (t Term) String() string {
	return fmt.Sprintf("%d-year", int(t))
}

// CalculateMonthlyPayment calculates the monthly principal and interest
// payment for a loan using the standard amortization formula
//
//	M = P * r(1+r)^n / ((1+r)^n - 1)
//
// where r is the annual rate divided by 12 and n is the term in months. The
// annual rate is a decimal fraction (0.065 for 6.5%). Inputs are not
// validated; a zero term yields IEEE special values.
func CalculateMonthlyPayment(principal, annualInterestRate float64, term Term) float64 {
	if principal == 0 {
		return 0
	}
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return StraightLinePrincipal(principal, term)
	}

	periodicInterestRate := annualInterestRate / constants.MonthsPerYear
	power := math.Pow(1.00+periodicInterestRate, float64(term.Months()))
	return principal * periodicInterestRate * power / (power - 1.00)
}

// CalculateInterestPayment calculates the interest portion of a payment made
// against the remaining principal.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * annualInterestRate / constants.MonthsPerYear
}

// StraightLinePrincipal spreads the principal evenly over every month of the
// term. This is not the principal share of any particular amortized payment.
func StraightLinePrincipal(principal float64, term Term) float64 {
	return principal / term.Years() / constants.MonthsPerYear
}
