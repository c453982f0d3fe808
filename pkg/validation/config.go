// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/rent-vs-buy/pkg/loans"
)

// ScenarioInputs holds the resolved inputs of one scenario for validation.
type ScenarioInputs struct {
	Name                   string
	HomeValue              float64
	DownPayment            float64
	InterestRate           float64
	TermYears              int
	PropertyTaxRate        float64
	PMIRate                float64
	Rent                   float64
	CurrentAge             int
	RetirementAge          int
	AnnualReturnRate       float64
	AnnualHomeAppreciation float64
}

// ValidateScenarioInputs returns warnings for inputs the calculator accepts
// but that produce meaningless or non-finite results.
func ValidateScenarioInputs(in ScenarioInputs) []string {
	var warnings []string
	warn := func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' ", in.Name)+fmt.Sprintf(format, args...))
	}

	if in.HomeValue <= 0 {
		warn("home value %.2f is not positive; down payment percentage will be undefined", in.HomeValue)
	}
	if in.DownPayment > in.HomeValue {
		warn("down payment %.2f exceeds home value %.2f; payments will be negative", in.DownPayment, in.HomeValue)
	}
	if in.DownPayment < 0 {
		warn("down payment %.2f is negative", in.DownPayment)
	}

	term := loans.Term(in.TermYears)
	if in.TermYears <= 0 {
		warn("loan term of %d years will produce non-finite payments", in.TermYears)
	} else if !term.Valid() {
		warn("loan term of %d years is not a standard %d or %d year mortgage", in.TermYears, loans.Fifteen, loans.Thirty)
	}

	if in.RetirementAge < in.CurrentAge {
		warn("retirement age %d is before current age %d", in.RetirementAge, in.CurrentAge)
	}

	rates := []struct {
		name  string
		value float64
	}{
		{"interest rate", in.InterestRate},
		{"property tax rate", in.PropertyTaxRate},
		{"PMI rate", in.PMIRate},
		{"annual return rate", in.AnnualReturnRate},
	}
	for _, rate := range rates {
		if rate.value < 0 {
			warn("%s %.4f is negative", rate.name, rate.value)
		} else if rate.value >= 1 {
			warn("%s %.4f looks like a percentage; rates are decimal fractions", rate.name, rate.value)
		}
	}

	if in.Rent < 0 {
		warn("rent %.2f is negative", in.Rent)
	}

	return warnings
}
