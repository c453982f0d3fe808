// Package mortgage holds the mortgage inputs for a home purchase and derives
// the monthly payment breakdown from them.
package mortgage

import (
	"github.com/iwvelando/rent-vs-buy/pkg/constants"
	"github.com/iwvelando/rent-vs-buy/pkg/loans"
	"go.uber.org/zap"
)

// Model holds the mutable mortgage inputs. Every derived value is computed
// from the current inputs on each call, so a setter is visible to the next
// read without any invalidation step. A Model is not safe for concurrent
// mutation.
type Model struct {
	logger *zap.Logger

	homeValue            float64
	interestRate         float64
	term                 loans.Term
	downPayment          float64
	propertyTaxRate      float64
	pmiRate              float64
	monthlyHomeInsurance float64
	monthlyHOA           float64
}

// DownPaymentInput sets the down payment either as an absolute Amount or as
// a Percent (decimal fraction) of the current home value. A nil field was not
// provided.
type DownPaymentInput struct {
	Amount  *float64
	Percent *float64
}

// Amount builds a DownPaymentInput for an absolute down payment.
func Amount(v float64) DownPaymentInput {
	return DownPaymentInput{Amount: &v}
}

// Percent builds a DownPaymentInput for a down payment as a fraction of the
// home value.
func Percent(v float64) DownPaymentInput {
	return DownPaymentInput{Percent: &v}
}

// PaymentBreakdown is a snapshot of every derived mortgage value.
type PaymentBreakdown struct {
	Principal                   float64 `json:"principal"`
	DownPayment                 float64 `json:"downPayment"`
	DownPaymentPct              float64 `json:"downPaymentPct"`
	MonthlyPrincipalAndInterest float64 `json:"monthlyPrincipalAndInterest"`
	MonthlyPrincipal            float64 `json:"monthlyPrincipal"`
	MonthlyInterest             float64 `json:"monthlyInterest"`
	FirstMonthPrincipal         float64 `json:"firstMonthPrincipal"`
	FirstMonthInterest          float64 `json:"firstMonthInterest"`
	MonthlyPropertyTax          float64 `json:"monthlyPropertyTax"`
	MonthlyPMI                  float64 `json:"monthlyPMI"`
	MonthlyHomeInsurance        float64 `json:"monthlyHomeInsurance"`
	MonthlyHOA                  float64 `json:"monthlyHOA"`
	MonthlyPayment              float64 `json:"monthlyPayment"`
	MonthlyAssetLoss            float64 `json:"monthlyAssetLoss"`
}

// New creates a Model populated with the default inputs.
func New(logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Model{
		logger:               logger,
		homeValue:            constants.DefaultHomeValue,
		interestRate:         constants.DefaultInterestRate,
		term:                 loans.Term(constants.DefaultTermYears),
		downPayment:          constants.DefaultHomeValue * constants.DefaultDownPaymentPercent,
		propertyTaxRate:      constants.DefaultPropertyTaxRate,
		pmiRate:              constants.DefaultPMIRate,
		monthlyHomeInsurance: constants.DefaultMonthlyHomeInsurance,
		monthlyHOA:           constants.DefaultMonthlyHOA,
	}
}

func (m *Model) HomeValue() float64 {
	return m.homeValue
}

func (m *Model) SetHomeValue(v float64) {
	m.homeValue = v
}

func (m *Model) InterestRate() float64 {
	return m.interestRate
}

func (m *Model) SetInterestRate(v float64) {
	m.interestRate = v
}

func (m *Model) Term() loans.Term {
	return m.term
}

func (m *Model) SetTerm(t loans.Term) {
	m.term = t
}

func (m *Model) PropertyTaxRate() float64 {
	return m.propertyTaxRate
}

func (m *Model) SetPropertyTaxRate(v float64) {
	m.propertyTaxRate = v
}

func (m *Model) PMIRate() float64 {
	return m.pmiRate
}

func (m *Model) SetPMIRate(v float64) {
	m.pmiRate = v
}

func (m *Model) MonthlyHomeInsurance() float64 {
	return m.monthlyHomeInsurance
}

func (m *Model) SetMonthlyHomeInsurance(v float64) {
	m.monthlyHomeInsurance = v
}

func (m *Model) MonthlyHOA() float64 {
	return m.monthlyHOA
}

func (m *Model) SetMonthlyHOA(v float64) {
	m.monthlyHOA = v
}

// DownPayment returns the stored down payment amount.
func (m *Model) DownPayment() float64 {
	return m.downPayment
}

// SetDownPayment stores a new down payment. Percent takes precedence over
// Amount and is converted against the current home value once; later home
// value changes do not rescale it. A call with neither field set is ignored.
func (m *Model) SetDownPayment(in DownPaymentInput) {
	if in.Amount == nil && in.Percent == nil {
		m.logger.Debug("ignoring down payment update with no amount or percent",
			zap.String("op", "mortgage.SetDownPayment"),
		)
		return
	}
	if in.Percent != nil {
		m.downPayment = m.homeValue * *in.Percent
	} else {
		m.downPayment = *in.Amount
	}
	m.logger.Debug("down payment updated",
		zap.String("op", "mortgage.SetDownPayment"),
		zap.Float64("amount", m.downPayment),
		zap.Float64("homeValue", m.homeValue),
	)
}

// Principal is the financed amount. It is negative when the down payment
// exceeds the home value.
func (m *Model) Principal() float64 {
	return m.homeValue - m.downPayment
}

// DownPaymentPct is the down payment as a fraction of the home value.
func (m *Model) DownPaymentPct() float64 {
	return m.downPayment / m.homeValue
}

// MonthlyPrincipalAndInterest is the amortized monthly loan payment.
func (m *Model) MonthlyPrincipalAndInterest() float64 {
	return loans.CalculateMonthlyPayment(m.Principal(), m.interestRate, m.term)
}

// MonthlyPrincipal spreads the principal evenly across the term. It is a
// straight-line approximation and does not match the principal share of any
// given month in a true amortization table.
func (m *Model) MonthlyPrincipal() float64 {
	return loans.StraightLinePrincipal(m.Principal(), m.term)
}

// MonthlyInterest is the part of the principal and interest payment left after
// MonthlyPrincipal.
func (m *Model) MonthlyInterest() float64 {
	return m.MonthlyPrincipalAndInterest() - m.MonthlyPrincipal()
}

// FirstMonthInterest is the interest charged on the full principal in the
// first month of a true amortization table.
func (m *Model) FirstMonthInterest() float64 {
	return loans.CalculateInterestPayment(m.Principal(), m.interestRate)
}

// FirstMonthPrincipal is the equity built by the first amortized payment. It
// is smaller than MonthlyPrincipal whenever the rate is positive.
func (m *Model) FirstMonthPrincipal() float64 {
	return m.MonthlyPrincipalAndInterest() - m.FirstMonthInterest()
}

func (m *Model) MonthlyPropertyTax() float64 {
	return m.homeValue * m.propertyTaxRate / constants.MonthsPerYear
}

// MonthlyPMI is charged on the principal while the down payment is below
// 20% of the home value.
func (m *Model) MonthlyPMI() float64 {
	if m.DownPaymentPct() < constants.PMIEquityThreshold {
		return m.Principal() * m.pmiRate / constants.MonthsPerYear
	}
	return 0
}

// MonthlyPayment is the full monthly housing cost of owning.
func (m *Model) MonthlyPayment() float64 {
	return m.MonthlyPrincipalAndInterest() +
		m.MonthlyPropertyTax() +
		m.MonthlyPMI() +
		m.monthlyHomeInsurance +
		m.monthlyHOA
}

// MonthlyAssetLoss is the cash paid each month that does not build equity.
func (m *Model) MonthlyAssetLoss() float64 {
	return m.MonthlyPayment() - m.MonthlyPrincipal()
}

// Breakdown evaluates every derived value against the current inputs.
func (m *Model) Breakdown() PaymentBreakdown {
	return PaymentBreakdown{
		Principal:                   m.Principal(),
		DownPayment:                 m.downPayment,
		DownPaymentPct:              m.DownPaymentPct(),
		MonthlyPrincipalAndInterest: m.MonthlyPrincipalAndInterest(),
		MonthlyPrincipal:            m.MonthlyPrincipal(),
		MonthlyInterest:             m.MonthlyInterest(),
		FirstMonthPrincipal:         m.FirstMonthPrincipal(),
		FirstMonthInterest:          m.FirstMonthInterest(),
		MonthlyPropertyTax:          m.MonthlyPropertyTax(),
		MonthlyPMI:                  m.MonthlyPMI(),
		MonthlyHomeInsurance:        m.monthlyHomeInsurance,
		MonthlyHOA:                  m.monthlyHOA,
		MonthlyPayment:              m.MonthlyPayment(),
		MonthlyAssetLoss:            m.MonthlyAssetLoss(),
	}
}
