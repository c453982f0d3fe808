// Package finance provides the compound growth primitives shared by the
// projection models.
package finance

import (
	"math"

	"github.com/iwvelando/rent-vs-buy/pkg/constants"
)

// CompoundSingleSum returns the value of a one-time investment of principal
// after growing at the annual rate for the given number of years, compounded
// annually.
func CompoundSingleSum(annualRate, years, principal float64) float64 {
	return principal * math.Pow(1+annualRate, years)
}

// CompoundWithMonthlyContributions returns the future value of contributing
// monthlyAmount every month for the given number of years, compounding
// monthly at annualRate/12. A zero rate yields the plain sum of contributions.
func CompoundWithMonthlyContributions(annualRate, years, monthlyAmount float64) float64 {
	if annualRate == 0 {
		return monthlyAmount * constants.MonthsPerYear * years
	}
	periodicRate := annualRate / constants.MonthsPerYear
	growth := math.Pow(1+periodicRate, constants.MonthsPerYear*years)
	return monthlyAmount * (growth - 1) / periodicRate
}
