// Package retirement projects investable net worth at retirement under two
// housing choices: buying the home described by a mortgage.Model, or renting
// for the whole horizon and investing what the purchase would have cost.
//
// Neither projection includes the value of the home itself; see
// Model.ProjectedHomeValueAtRetirement for that figure.
package retirement

import (
	"math"

	"github.com/iwvelando/rent-vs-buy/internal/mortgage"
	"github.com/iwvelando/rent-vs-buy/pkg/constants"
	"github.com/iwvelando/rent-vs-buy/pkg/finance"
	"github.com/iwvelando/rent-vs-buy/pkg/mathutil"
	"go.uber.org/zap"
)

// Model holds the retirement inputs and reads the mortgage it compares
// against on every evaluation. Ages are in whole years; rates are annual
// decimal fractions.
type Model struct {
	logger   *zap.Logger
	mortgage *mortgage.Model

	currentAge             int
	retirementAge          int
	monthlyContribution    float64
	currentSavings         float64
	annualReturnRate       float64
	rent                   float64
	annualRentIncrease     float64
	annualHomeAppreciation float64
}

// OwnProjection breaks down the projected savings when buying the home.
type OwnProjection struct {
	// AdditionalContribution is the monthly amount by which rent would have
	// exceeded the mortgage payment, invested instead.
	AdditionalContribution   float64 `json:"additionalContribution"`
	TotalMonthlyContribution float64 `json:"totalMonthlyContribution"`
	FromInitial              float64 `json:"fromInitial"`
	// FromAfterMortgagePayments is the growth of investing the former
	// mortgage payment once the loan is paid off before retirement.
	FromAfterMortgagePayments float64 `json:"fromAfterMortgagePayments"`
	FromContributions         float64 `json:"fromContributions"`
	Total                     float64 `json:"total"`
}

// RentProjection breaks down the projected savings when renting.
type RentProjection struct {
	// AdditionalContribution is the monthly amount by which the mortgage
	// payment would have exceeded rent, invested instead.
	AdditionalContribution       float64 `json:"additionalContribution"`
	TotalMonthlyContribution     float64 `json:"totalMonthlyContribution"`
	FromRegularSavings           float64 `json:"fromRegularSavings"`
	FromWouldHaveBeenDownPayment float64 `json:"fromWouldHaveBeenDownPayment"`
	FromContributions            float64 `json:"fromContributions"`
	Total                        float64 `json:"total"`
}

// Comparison summarizes both projections side by side.
type Comparison struct {
	YearsToRetirement              int     `json:"yearsToRetirement"`
	OwnTotal                       float64 `json:"ownTotal"`
	RentTotal                      float64 `json:"rentTotal"`
	ProjectedHomeValueAtRetirement float64 `json:"projectedHomeValueAtRetirement"`
	// OwnAdvantage is the owner's savings plus home value minus the
	// renter's savings. Positive favors buying.
	OwnAdvantage                 float64 `json:"ownAdvantage"`
	PreferOwning                 bool    `json:"preferOwning"`
	RentExceedsMortgagePayment   bool    `json:"rentExceedsMortgagePayment"`
	MortgageExceedsRentPayment   bool    `json:"mortgageExceedsRentPayment"`
	MortgagePaidBeforeRetirement bool    `json:"mortgagePaidBeforeRetirement"`
}

// New creates a Model with the default inputs that compares against m.
func New(logger *zap.Logger, m *mortgage.Model) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Model{
		logger:                 logger,
		mortgage:               m,
		currentAge:             constants.DefaultCurrentAge,
		retirementAge:          constants.DefaultRetirementAge,
		monthlyContribution:    constants.DefaultMonthlyContribution,
		currentSavings:         constants.DefaultCurrentSavings,
		annualReturnRate:       constants.DefaultAnnualReturnRate,
		rent:                   constants.DefaultRent,
		annualRentIncrease:     constants.DefaultAnnualRentIncrease,
		annualHomeAppreciation: constants.DefaultAnnualHomeAppreciation,
	}
}

// Mortgage returns the mortgage this model compares against.
func (r *Model) Mortgage() *mortgage.Model {
	return r.mortgage
}

func (r *Model) CurrentAge() int {
	return r.currentAge
}

func (r *Model) SetCurrentAge(v int) {
	r.currentAge = v
}

func (r *Model) RetirementAge() int {
	return r.retirementAge
}

func (r *Model) SetRetirementAge(v int) {
	r.retirementAge = v
}

// MonthlyContribution is the baseline amount invested every month regardless
// of housing choice.
func (r *Model) MonthlyContribution() float64 {
	return r.monthlyContribution
}

func (r *Model) SetMonthlyContribution(v float64) {
	r.monthlyContribution = v
}

func (r *Model) CurrentSavings() float64 {
	return r.currentSavings
}

func (r *Model) SetCurrentSavings(v float64) {
	r.currentSavings = v
}

func (r *Model) AnnualReturnRate() float64 {
	return r.annualReturnRate
}

func (r *Model) SetAnnualReturnRate(v float64) {
	r.annualReturnRate = v
}

// Rent is the monthly rent paid in the renting scenario.
func (r *Model) Rent() float64 {
	return r.rent
}

func (r *Model) SetRent(v float64) {
	r.rent = v
}

// AnnualRentIncrease is carried with the inputs but the projections hold
// rent flat over the horizon.
func (r *Model) AnnualRentIncrease() float64 {
	return r.annualRentIncrease
}

func (r *Model) SetAnnualRentIncrease(v float64) {
	r.annualRentIncrease = v
}

func (r *Model) AnnualHomeAppreciation() float64 {
	return r.annualHomeAppreciation
}

func (r *Model) SetAnnualHomeAppreciation(v float64) {
	r.annualHomeAppreciation = v
}

// YearsToRetirement may be negative when the retirement age precedes the
// current age; such values flow through the projections unchecked.
func (r *Model) YearsToRetirement() int {
	return r.retirementAge - r.currentAge
}

func (r *Model) RentExceedsMortgagePayment() bool {
	return r.rent > r.mortgage.MonthlyPayment()
}

func (r *Model) MortgageExceedsRentPayment() bool {
	return r.mortgage.MonthlyPayment() > r.rent
}

// MortgagePaidBeforeRetirement reports whether the loan term ends strictly
// before retirement.
func (r *Model) MortgagePaidBeforeRetirement() bool {
	return int(r.mortgage.Term()) < r.YearsToRetirement()
}

// ProjectedHomeValueAtRetirement grows the current home value at the annual
// appreciation rate until retirement.
func (r *Model) ProjectedHomeValueAtRetirement() float64 {
	return finance.CompoundSingleSum(r.annualHomeAppreciation, float64(r.YearsToRetirement()), r.mortgage.HomeValue())
}

// OwnProjection projects savings at retirement when buying. Any amount by
// which rent would have exceeded the mortgage payment is invested monthly,
// and once the mortgage is paid off the former payment is invested for the
// remaining years.
func (r *Model) OwnProjection() OwnProjection {
	years := float64(r.YearsToRetirement())
	payment := r.mortgage.MonthlyPayment()
	term := r.mortgage.Term()

	additional := mathutil.Max(0, r.rent-payment)
	totalContribution := r.monthlyContribution + additional

	fromAfterMortgage := 0.0
	if r.YearsToRetirement() > int(term) {
		fromAfterMortgage = finance.CompoundWithMonthlyContributions(r.annualReturnRate, years-term.Years(), payment)
	}

	fromInitial := finance.CompoundSingleSum(r.annualReturnRate, years, r.currentSavings)
	fromContributions := finance.CompoundWithMonthlyContributions(r.annualReturnRate, years, totalContribution)

	projection := OwnProjection{
		AdditionalContribution:    additional,
		TotalMonthlyContribution:  totalContribution,
		FromInitial:               fromInitial,
		FromAfterMortgagePayments: fromAfterMortgage,
		FromContributions:         fromContributions,
		Total:                     fromInitial + fromAfterMortgage + fromContributions,
	}
	r.logProjection("retirement.OwnProjection", projection.Total)
	return projection
}

// RentProjection projects savings at retirement when renting. The would-be
// down payment is invested as a lump sum today, and any amount by which the
// mortgage payment would have exceeded rent is invested monthly.
func (r *Model) RentProjection() RentProjection {
	years := float64(r.YearsToRetirement())
	payment := r.mortgage.MonthlyPayment()

	additional := mathutil.Max(0, payment-r.rent)
	totalContribution := r.monthlyContribution + additional

	fromSavings := finance.CompoundSingleSum(r.annualReturnRate, years, r.currentSavings)
	fromDownPayment := finance.CompoundSingleSum(r.annualReturnRate, years, r.mortgage.DownPayment())
	fromContributions := finance.CompoundWithMonthlyContributions(r.annualReturnRate, years, totalContribution)

	projection := RentProjection{
		AdditionalContribution:       additional,
		TotalMonthlyContribution:     totalContribution,
		FromRegularSavings:           fromSavings,
		FromWouldHaveBeenDownPayment: fromDownPayment,
		FromContributions:            fromContributions,
		Total:                        fromSavings + fromDownPayment + fromContributions,
	}
	r.logProjection("retirement.RentProjection", projection.Total)
	return projection
}

// Compare evaluates both projections and the home value at retirement.
func (r *Model) Compare() Comparison {
	own := r.OwnProjection()
	rent := r.RentProjection()
	homeValue := r.ProjectedHomeValueAtRetirement()
	advantage := own.Total + homeValue - rent.Total

	return Comparison{
		YearsToRetirement:              r.YearsToRetirement(),
		OwnTotal:                       own.Total,
		RentTotal:                      rent.Total,
		ProjectedHomeValueAtRetirement: homeValue,
		OwnAdvantage:                   advantage,
		PreferOwning:                   advantage > 0,
		RentExceedsMortgagePayment:     r.RentExceedsMortgagePayment(),
		MortgageExceedsRentPayment:     r.MortgageExceedsRentPayment(),
		MortgagePaidBeforeRetirement:   r.MortgagePaidBeforeRetirement(),
	}
}

func (r *Model) logProjection(op string, total float64) {
	if ce := r.logger.Check(zap.DebugLevel, "projection evaluated"); ce != nil {
		ce.Write(
			zap.String("op", op),
			zap.Int("yearsToRetirement", r.YearsToRetirement()),
			zap.Float64("total", total),
			zap.Bool("finite", !math.IsNaN(total) && !math.IsInf(total, 0)),
		)
	}
}
