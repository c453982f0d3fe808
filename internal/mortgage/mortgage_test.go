package mortgage

import (
	"math"
	"testing"

	"github.com/iwvelando/rent-vs-buy/pkg/loans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newModel(homeValue, downPayment, rate float64, term loans.Term) *Model {
	m := New(zap.NewNop())
	m.SetHomeValue(homeValue)
	m.SetDownPayment(Amount(downPayment))
	m.SetInterestRate(rate)
	m.SetTerm(term)
	return m
}

func ptr(v float64) *float64 {
	return &v
}

func TestNewDefaults(t *testing.T) {
	m := New(nil)

	assert.Equal(t, 200000.0, m.HomeValue())
	assert.Equal(t, 0.05, m.InterestRate())
	assert.Equal(t, loans.Fifteen, m.Term())
	assert.Equal(t, 40000.0, m.DownPayment())
	assert.Equal(t, 0.011, m.PropertyTaxRate())
	assert.Equal(t, 0.01, m.PMIRate())
	assert.Equal(t, 125.0, m.MonthlyHomeInsurance())
	assert.Equal(t, 0.0, m.MonthlyHOA())

	assert.InDelta(t, 1265.27, m.MonthlyPrincipalAndInterest(), 0.01)
	assert.InDelta(t, 183.33, m.MonthlyPropertyTax(), 0.01)
	assert.Equal(t, 0.0, m.MonthlyPMI())
	assert.InDelta(t, 1573.60, m.MonthlyPayment(), 0.01)
}

func TestPrincipalAndInterestExample(t *testing.T) {
	m := newModel(200000, 40000, 0.065, loans.Fifteen)

	assert.Equal(t, 160000.0, m.Principal())
	assert.InDelta(t, 1393.77, m.MonthlyPrincipalAndInterest(), 0.01)
}

func TestMonthlyPrincipalStraightLine(t *testing.T) {
	for _, term := range []loans.Term{loans.Fifteen, loans.Thirty} {
		for _, rate := range []float64{0, 0.03, 0.065} {
			for _, homeValue := range []float64{150000, 200000, 734500} {
				m := newModel(homeValue, homeValue*0.1, rate, term)
				assert.InDelta(t, m.Principal(), m.MonthlyPrincipal()*float64(term)*12, 1e-6)
				assert.InDelta(t, m.MonthlyPrincipalAndInterest(), m.MonthlyPrincipal()+m.MonthlyInterest(), 1e-9)
			}
		}
	}
}

func TestZeroRateIsStraightLine(t *testing.T) {
	m := newModel(250000, 50000, 0, loans.Thirty)

	assert.Equal(t, m.Principal()/30/12, m.MonthlyPrincipalAndInterest())
	assert.Equal(t, 0.0, m.MonthlyInterest())
}

func TestZeroPrincipal(t *testing.T) {
	m := newModel(200000, 200000, 0.07, loans.Thirty)

	assert.Equal(t, 0.0, m.Principal())
	assert.Equal(t, 0.0, m.MonthlyPrincipalAndInterest())
	assert.Equal(t, 0.0, m.MonthlyPMI())
}

func TestNegativePrincipalIsNotRejected(t *testing.T) {
	m := newModel(100000, 150000, 0.05, loans.Fifteen)

	assert.Equal(t, -50000.0, m.Principal())
	assert.Less(t, m.MonthlyPrincipalAndInterest(), 0.0)
	assert.Equal(t, 1.5, m.DownPaymentPct())
}

func TestSetDownPayment(t *testing.T) {
	tests := []struct {
		name     string
		initial  float64
		input    DownPaymentInput
		expected float64
	}{
		{
			name:     "Amount only",
			initial:  40000,
			input:    Amount(25000),
			expected: 25000,
		},
		{
			name:     "Percent only",
			initial:  10000,
			input:    Percent(0.2),
			expected: 40000,
		},
		{
			name:     "Percent wins over amount",
			initial:  10000,
			input:    DownPaymentInput{Amount: ptr(5000), Percent: ptr(0.1)},
			expected: 20000,
		},
		{
			name:     "Explicit zero amount",
			initial:  40000,
			input:    Amount(0),
			expected: 0,
		},
		{
			name:     "Neither provided is a no-op",
			initial:  12345,
			input:    DownPaymentInput{},
			expected: 12345,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(200000, tt.initial, 0.05, loans.Fifteen)
			m.SetDownPayment(tt.input)
			assert.Equal(t, tt.expected, m.DownPayment())
		})
	}
}

func TestSetDownPaymentPercent(t *testing.T) {
	m := newModel(200000, 1, 0.05, loans.Fifteen)
	m.SetDownPayment(Percent(0.2))

	assert.Equal(t, 40000.0, m.DownPayment())
	assert.Equal(t, 0.2, m.DownPaymentPct())
}

func TestSetDownPaymentPercentIsOneTimeConversion(t *testing.T) {
	m := newModel(200000, 1, 0.05, loans.Fifteen)
	m.SetDownPayment(Percent(0.2))
	m.SetHomeValue(400000)

	assert.Equal(t, 40000.0, m.DownPayment())
	assert.Equal(t, 0.1, m.DownPaymentPct())
	assert.Equal(t, 360000.0, m.Principal())
}

func TestSetDownPaymentLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	m := New(zap.New(core))

	m.SetDownPayment(DownPaymentInput{})
	m.SetDownPayment(Amount(1000))

	entries := logs.FilterField(zap.String("op", "mortgage.SetDownPayment")).All()
	require.Len(t, entries, 2)
	assert.Equal(t, "ignoring down payment update with no amount or percent", entries[0].Message)
	assert.Equal(t, "down payment updated", entries[1].Message)
}

func TestMonthlyPMI(t *testing.T) {
	tests := []struct {
		name        string
		downPayment float64
		expectPMI   bool
	}{
		{"No down payment", 0, true},
		{"Ten percent", 20000, true},
		{"Just under twenty percent", 39999, true},
		{"Exactly twenty percent", 40000, false},
		{"Thirty percent", 60000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(200000, tt.downPayment, 0.05, loans.Thirty)
			if tt.expectPMI {
				assert.Greater(t, m.MonthlyPMI(), 0.0)
				assert.InDelta(t, m.Principal()*0.01/12, m.MonthlyPMI(), 1e-9)
			} else {
				assert.Equal(t, 0.0, m.MonthlyPMI())
			}
		})
	}
}

func TestMonthlyPaymentComponents(t *testing.T) {
	m := newModel(300000, 30000, 0.06, loans.Thirty)
	m.SetPropertyTaxRate(0.012)
	m.SetPMIRate(0.005)
	m.SetMonthlyHomeInsurance(150)
	m.SetMonthlyHOA(75)

	expectedTax := 300000 * 0.012 / 12
	expectedPMI := 270000 * 0.005 / 12
	assert.InDelta(t, expectedTax, m.MonthlyPropertyTax(), 1e-9)
	assert.InDelta(t, expectedPMI, m.MonthlyPMI(), 1e-9)

	expectedPayment := m.MonthlyPrincipalAndInterest() + expectedTax + expectedPMI + 150 + 75
	assert.InDelta(t, expectedPayment, m.MonthlyPayment(), 1e-9)
	assert.InDelta(t, expectedPayment-m.MonthlyPrincipal(), m.MonthlyAssetLoss(), 1e-9)
}

func TestDerivedValuesTrackInputs(t *testing.T) {
	m := newModel(200000, 40000, 0.05, loans.Fifteen)
	before := m.MonthlyPayment()

	m.SetInterestRate(0.07)
	assert.Greater(t, m.MonthlyPayment(), before)

	m.SetTerm(loans.Thirty)
	assert.InDelta(t, 160000.0/360, m.MonthlyPrincipal(), 1e-9)
}

func TestDerivedValuesAreIdempotent(t *testing.T) {
	m := newModel(325000, 17000, 0.0675, loans.Thirty)
	m.SetMonthlyHOA(42)

	first := m.Breakdown()
	second := m.Breakdown()
	assert.Equal(t, first, second)
	assert.Equal(t, math.Float64bits(m.MonthlyPayment()), math.Float64bits(m.MonthlyPayment()))
}

func TestBreakdownMatchesAccessors(t *testing.T) {
	m := newModel(200000, 10000, 0.065, loans.Fifteen)
	b := m.Breakdown()

	assert.Equal(t, m.Principal(), b.Principal)
	assert.Equal(t, m.DownPayment(), b.DownPayment)
	assert.Equal(t, m.DownPaymentPct(), b.DownPaymentPct)
	assert.Equal(t, m.MonthlyPrincipalAndInterest(), b.MonthlyPrincipalAndInterest)
	assert.Equal(t, m.MonthlyPrincipal(), b.MonthlyPrincipal)
	assert.Equal(t, m.MonthlyInterest(), b.MonthlyInterest)
	assert.Equal(t, m.FirstMonthPrincipal(), b.FirstMonthPrincipal)
	assert.Equal(t, m.FirstMonthInterest(), b.FirstMonthInterest)
	assert.Equal(t, m.MonthlyPropertyTax(), b.MonthlyPropertyTax)
	assert.Equal(t, m.MonthlyPMI(), b.MonthlyPMI)
	assert.Equal(t, m.MonthlyPayment(), b.MonthlyPayment)
	assert.Equal(t, m.MonthlyAssetLoss(), b.MonthlyAssetLoss)
}

func TestFirstMonthAmortization(t *testing.T) {
	m := newModel(200000, 40000, 0.065, loans.Fifteen)

	// 160000 * 0.065 / 12
	assert.InDelta(t, 866.67, m.FirstMonthInterest(), 0.01)
	assert.InDelta(t, 1393.77-866.67, m.FirstMonthPrincipal(), 0.01)
	assert.InDelta(t, m.MonthlyPrincipalAndInterest(), m.FirstMonthPrincipal()+m.FirstMonthInterest(), 1e-9)

	// The straight-line figure overstates early equity.
	assert.Less(t, m.FirstMonthPrincipal(), m.MonthlyPrincipal())
	assert.Greater(t, m.FirstMonthInterest(), m.MonthlyInterest())

	m.SetInterestRate(0)
	assert.Equal(t, 0.0, m.FirstMonthInterest())
	assert.Equal(t, m.MonthlyPrincipal(), m.FirstMonthPrincipal())
}

func TestZeroHomeValuePropagatesSpecialValues(t *testing.T) {
	m := newModel(0, 0, 0.05, loans.Fifteen)

	assert.True(t, math.IsNaN(m.DownPaymentPct()))
	// NaN < 0.2 is false, so no PMI is charged.
	assert.Equal(t, 0.0, m.MonthlyPMI())
}
