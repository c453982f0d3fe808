// Package calculator ties the mortgage, rent, and retirement models of one
// scenario together and evaluates them into reports.
package calculator

import (
	"errors"
	"fmt"

	"github.com/iwvelando/rent-vs-buy/internal/config"
	"github.com/iwvelando/rent-vs-buy/internal/mortgage"
	"github.com/iwvelando/rent-vs-buy/internal/rent"
	"github.com/iwvelando/rent-vs-buy/internal/retirement"
	"github.com/iwvelando/rent-vs-buy/pkg/loans"
	"github.com/iwvelando/rent-vs-buy/pkg/optimization"
	"go.uber.org/zap"
)

// ErrNoActiveScenarios is returned by Calculate when every scenario is
// inactive.
var ErrNoActiveScenarios = errors.New("no active scenarios to calculate")

// Calculator is the model context for a single scenario. The retirement model
// reads the mortgage model directly, so changes to either are reflected in
// the next Report.
type Calculator struct {
	Name       string
	Mortgage   *mortgage.Model
	Rent       *rent.Model
	Retirement *retirement.Model

	logger *zap.Logger
}

// MortgageInputs echoes the mortgage inputs a report was computed from.
type MortgageInputs struct {
	HomeValue            float64 `json:"homeValue"`
	InterestRate         float64 `json:"interestRate"`
	TermYears            int     `json:"termYears"`
	DownPayment          float64 `json:"downPayment"`
	PropertyTaxRate      float64 `json:"propertyTaxRate"`
	PMIRate              float64 `json:"pmiRate"`
	MonthlyHomeInsurance float64 `json:"monthlyHomeInsurance"`
	MonthlyHOA           float64 `json:"monthlyHOA"`
}

// RetirementInputs echoes the retirement inputs a report was computed from.
type RetirementInputs struct {
	CurrentAge             int     `json:"currentAge"`
	RetirementAge          int     `json:"retirementAge"`
	MonthlyContribution    float64 `json:"monthlyContribution"`
	CurrentSavings         float64 `json:"currentSavings"`
	AnnualReturnRate       float64 `json:"annualReturnRate"`
	AnnualHomeAppreciation float64 `json:"annualHomeAppreciation"`
}

// Report is a snapshot of every input and derived value of one scenario.
type Report struct {
	Name           string                    `json:"name"`
	Mortgage       MortgageInputs            `json:"mortgage"`
	Payment        mortgage.PaymentBreakdown `json:"payment"`
	Rent           rent.Summary              `json:"rent"`
	Retirement     RetirementInputs          `json:"retirement"`
	OwnProjection  retirement.OwnProjection  `json:"ownProjection"`
	RentProjection retirement.RentProjection `json:"rentProjection"`
	Comparison     retirement.Comparison     `json:"comparison"`
	Breakeven      []optimization.Summary    `json:"breakeven,omitempty"`
}

// New creates a Calculator with every model at its defaults.
func New(logger *zap.Logger, name string) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := mortgage.New(logger)
	return &Calculator{
		Name:       name,
		Mortgage:   m,
		Rent:       rent.New(),
		Retirement: retirement.New(logger, m),
		logger:     logger,
	}
}

// FromScenario creates a Calculator and applies every input the scenario
// provides on top of the defaults.
func FromScenario(logger *zap.Logger, scenario config.Scenario) *Calculator {
	c := New(logger, scenario.Name)
	c.Apply(scenario)
	return c
}

// Apply sets every input the scenario provides. The home value is applied
// before the down payment so a percentage converts against the new value.
func (c *Calculator) Apply(scenario config.Scenario) {
	mc := scenario.Mortgage
	if mc.HomeValue != nil {
		c.Mortgage.SetHomeValue(*mc.HomeValue)
	}
	if mc.InterestRate != nil {
		c.Mortgage.SetInterestRate(*mc.InterestRate)
	}
	if mc.Term != nil {
		c.Mortgage.SetTerm(loans.Term(*mc.Term))
	}
	if mc.PropertyTaxRate != nil {
		c.Mortgage.SetPropertyTaxRate(*mc.PropertyTaxRate)
	}
	if mc.PMIRate != nil {
		c.Mortgage.SetPMIRate(*mc.PMIRate)
	}
	if mc.MonthlyHomeInsurance != nil {
		c.Mortgage.SetMonthlyHomeInsurance(*mc.MonthlyHomeInsurance)
	}
	if mc.MonthlyHOA != nil {
		c.Mortgage.SetMonthlyHOA(*mc.MonthlyHOA)
	}
	c.Mortgage.SetDownPayment(mortgage.DownPaymentInput{
		Amount:  mc.DownPayment,
		Percent: mc.DownPaymentPercent,
	})

	// Rent feeds both the rental summary and the retirement comparison.
	rc := scenario.Rent
	if rc.Rent != nil {
		c.Rent.SetRent(*rc.Rent)
		c.Retirement.SetRent(*rc.Rent)
	}
	if rc.SquareFootage != nil {
		c.Rent.SetSquareFootage(*rc.SquareFootage)
	}
	if rc.AnnualRentIncrease != nil {
		c.Rent.SetAnnualRentIncrease(*rc.AnnualRentIncrease)
		c.Retirement.SetAnnualRentIncrease(*rc.AnnualRentIncrease)
	}

	tc := scenario.Retirement
	if tc.CurrentAge != nil {
		c.Retirement.SetCurrentAge(*tc.CurrentAge)
	}
	if tc.RetirementAge != nil {
		c.Retirement.SetRetirementAge(*tc.RetirementAge)
	}
	if tc.MonthlyContribution != nil {
		c.Retirement.SetMonthlyContribution(*tc.MonthlyContribution)
	}
	if tc.CurrentSavings != nil {
		c.Retirement.SetCurrentSavings(*tc.CurrentSavings)
	}
	if tc.AnnualReturnRate != nil {
		c.Retirement.SetAnnualReturnRate(*tc.AnnualReturnRate)
	}
	if tc.AnnualHomeAppreciation != nil {
		c.Retirement.SetAnnualHomeAppreciation(*tc.AnnualHomeAppreciation)
	}
}

// Report evaluates every derived value against the current inputs. The rent
// summary covers the years until retirement.
func (c *Calculator) Report() Report {
	m := c.Mortgage
	r := c.Retirement

	report := Report{
		Name: c.Name,
		Mortgage: MortgageInputs{
			HomeValue:            m.HomeValue(),
			InterestRate:         m.InterestRate(),
			TermYears:            int(m.Term()),
			DownPayment:          m.DownPayment(),
			PropertyTaxRate:      m.PropertyTaxRate(),
			PMIRate:              m.PMIRate(),
			MonthlyHomeInsurance: m.MonthlyHomeInsurance(),
			MonthlyHOA:           m.MonthlyHOA(),
		},
		Payment: m.Breakdown(),
		Rent:    c.Rent.Summarize(r.YearsToRetirement()),
		Retirement: RetirementInputs{
			CurrentAge:             r.CurrentAge(),
			RetirementAge:          r.RetirementAge(),
			MonthlyContribution:    r.MonthlyContribution(),
			CurrentSavings:         r.CurrentSavings(),
			AnnualReturnRate:       r.AnnualReturnRate(),
			AnnualHomeAppreciation: r.AnnualHomeAppreciation(),
		},
		OwnProjection:  r.OwnProjection(),
		RentProjection: r.RentProjection(),
		Comparison:     r.Compare(),
	}

	c.logger.Debug(fmt.Sprintf("calculated scenario %s", c.Name),
		zap.String("op", "calculator.Report"),
		zap.Float64("monthlyPayment", report.Payment.MonthlyPayment),
		zap.Float64("ownAdvantage", report.Comparison.OwnAdvantage),
	)
	return report
}

// Calculate produces a Report for every active scenario, in file order.
func Calculate(logger *zap.Logger, conf config.Configuration) ([]Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var reports []Report
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "calculator.Calculate"),
			)
			continue
		}
		reports = append(reports, FromScenario(logger, scenario).Report())
	}

	if len(reports) == 0 {
		return nil, ErrNoActiveScenarios
	}
	return reports, nil
}
