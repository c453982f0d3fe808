package calculator

import (
	"testing"

	"github.com/iwvelando/rent-vs-buy/internal/config"
	"github.com/iwvelando/rent-vs-buy/pkg/loans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewUsesDefaults(t *testing.T) {
	c := New(nil, "defaults")
	report := c.Report()

	assert.Equal(t, "defaults", report.Name)
	assert.Equal(t, 200000.0, report.Mortgage.HomeValue)
	assert.Equal(t, 40000.0, report.Mortgage.DownPayment)
	assert.Equal(t, 15, report.Mortgage.TermYears)
	assert.InDelta(t, 1573.60, report.Payment.MonthlyPayment, 0.01)
	assert.InDelta(t, 3012929.02, report.OwnProjection.Total, 0.01)
	assert.InDelta(t, 3728242.10, report.RentProjection.Total, 0.01)
	assert.Equal(t, 41, report.Rent.HorizonYears)
}

func TestFromScenarioAppliesInputs(t *testing.T) {
	scenario := config.Scenario{
		Name:   "bigger house",
		Active: true,
		Mortgage: config.MortgageConfig{
			HomeValue:          config.Float(300000),
			InterestRate:       config.Float(0.065),
			Term:               config.Int(30),
			DownPaymentPercent: config.Float(0.10),
			MonthlyHOA:         config.Float(50),
		},
		Rent: config.RentConfig{
			Rent:          config.Float(1800),
			SquareFootage: config.Float(900),
		},
		Retirement: config.RetirementConfig{
			CurrentAge: config.Int(30),
		},
	}

	c := FromScenario(zap.NewNop(), scenario)

	assert.Equal(t, loans.Thirty, c.Mortgage.Term())
	assert.Equal(t, 30000.0, c.Mortgage.DownPayment())
	assert.Equal(t, 1800.0, c.Rent.Rent())
	assert.Equal(t, 1800.0, c.Retirement.Rent())
	assert.Equal(t, 30, c.Retirement.CurrentAge())
	assert.Equal(t, 65, c.Retirement.RetirementAge())

	report := c.Report()
	assert.InDelta(t, 1706.58, report.Payment.MonthlyPrincipalAndInterest, 0.01)
	assert.InDelta(t, 275.0, report.Payment.MonthlyPropertyTax, 1e-9)
	assert.InDelta(t, 225.0, report.Payment.MonthlyPMI, 1e-9)
	assert.InDelta(t, 2381.58, report.Payment.MonthlyPayment, 0.01)
	assert.Equal(t, 2.0, report.Rent.RentPerSquareFoot)
	assert.Equal(t, 35, report.Rent.HorizonYears)
	assert.True(t, report.Comparison.MortgageExceedsRentPayment)
	assert.InDelta(t, report.Payment.MonthlyPayment-1800, report.RentProjection.AdditionalContribution, 1e-9)
}

func TestApplyDownPaymentPercentUsesNewHomeValue(t *testing.T) {
	c := FromScenario(nil, config.Scenario{
		Mortgage: config.MortgageConfig{
			HomeValue:          config.Float(500000),
			DownPayment:        config.Float(1000),
			DownPaymentPercent: config.Float(0.20),
		},
	})

	assert.Equal(t, 100000.0, c.Mortgage.DownPayment())
	assert.Equal(t, 0.0, c.Mortgage.MonthlyPMI())
}

func TestApplyExplicitZeroDownPayment(t *testing.T) {
	c := FromScenario(nil, config.Scenario{
		Mortgage: config.MortgageConfig{DownPayment: config.Float(0)},
	})

	assert.Equal(t, 0.0, c.Mortgage.DownPayment())
	assert.Equal(t, 200000.0, c.Mortgage.Principal())
	assert.Greater(t, c.Mortgage.MonthlyPMI(), 0.0)
}

func TestFromScenarioMatchesDefaultScenario(t *testing.T) {
	fromDefaults := FromScenario(nil, config.DefaultScenario()).Report()
	fromEmpty := FromScenario(nil, config.Scenario{Name: "default"}).Report()

	assert.Equal(t, fromDefaults, fromEmpty)
}

func TestReportTracksModelChanges(t *testing.T) {
	c := New(nil, "mutable")
	before := c.Report()

	c.Mortgage.SetInterestRate(0.07)
	after := c.Report()

	assert.Greater(t, after.Payment.MonthlyPayment, before.Payment.MonthlyPayment)
	assert.NotEqual(t, before.RentProjection.Total, after.RentProjection.Total)
}

func TestCalculate(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	conf, err := config.LoadConfiguration("../../test/test_config.yaml")
	require.NoError(t, err)

	reports, err := Calculate(logger, *conf)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "starter home", reports[0].Name)
	assert.Equal(t, "bigger house, thirty years", reports[1].Name)

	assert.InDelta(t, 1573.60, reports[0].Payment.MonthlyPayment, 0.01)
	assert.Equal(t, 800.0, reports[0].Rent.SquareFootage)

	skipped := logs.FilterMessage("skipping scenario inactive scenario because it is inactive")
	assert.Equal(t, 1, skipped.Len())
}

func TestCalculateNoActiveScenarios(t *testing.T) {
	reports, err := Calculate(nil, config.Configuration{
		Scenarios: []config.Scenario{{Name: "off", Active: false}},
	})

	assert.ErrorIs(t, err, ErrNoActiveScenarios)
	assert.Nil(t, reports)
}
