// Package rent holds the inputs describing a rental and the figures derived
// from them.
package rent

import (
	"math"

	"github.com/iwvelando/rent-vs-buy/pkg/constants"
)

// Model holds the current rental inputs.
type Model struct {
	rent               float64
	squareFootage      float64
	annualRentIncrease float64
}

// Summary is a snapshot of the rental inputs and derived figures.
type Summary struct {
	Rent               float64 `json:"rent"`
	SquareFootage      float64 `json:"squareFootage"`
	AnnualRentIncrease float64 `json:"annualRentIncrease"`
	RentPerSquareFoot  float64 `json:"rentPerSquareFoot"`
	RentAtHorizon      float64 `json:"rentAtHorizon"`
	TotalRentAtHorizon float64 `json:"totalRentAtHorizon"`
	HorizonYears       int     `json:"horizonYears"`
}

// New creates a Model populated with the default inputs.
func New() *Model {
	return &Model{
		rent:               constants.DefaultRent,
		squareFootage:      constants.DefaultSquareFootage,
		annualRentIncrease: constants.DefaultAnnualRentIncrease,
	}
}

// Rent is the current monthly rent.
func (m *Model) Rent() float64 {
	return m.rent
}

func (m *Model) SetRent(v float64) {
	m.rent = v
}

func (m *Model) SquareFootage() float64 {
	return m.squareFootage
}

func (m *Model) SetSquareFootage(v float64) {
	m.squareFootage = v
}

// AnnualRentIncrease is the yearly rent growth as a decimal fraction.
func (m *Model) AnnualRentIncrease() float64 {
	return m.annualRentIncrease
}

func (m *Model) SetAnnualRentIncrease(v float64) {
	m.annualRentIncrease = v
}

// RentPerSquareFoot is the monthly rent per square foot, or 0 when the
// square footage is unknown.
func (m *Model) RentPerSquareFoot() float64 {
	if m.squareFootage == 0 {
		return 0
	}
	return m.rent / m.squareFootage
}

// RentAfterYears is the monthly rent after the annual increase has applied
// for the given number of years.
func (m *Model) RentAfterYears(years int) float64 {
	return m.rent * math.Pow(1+m.annualRentIncrease, float64(years))
}

// TotalRentPaid sums twelve months of rent for each of the given years, with
// the increase applied at the start of every year after the first. The sum is
// evaluated in closed form so any horizon costs the same.
func (m *Model) TotalRentPaid(years int) float64 {
	if years <= 0 {
		return 0
	}
	annualRent := m.rent * constants.MonthsPerYear
	if m.annualRentIncrease == 0 {
		return annualRent * float64(years)
	}
	growth := math.Pow(1+m.annualRentIncrease, float64(years))
	return annualRent * (growth - 1) / m.annualRentIncrease
}

// Summarize evaluates the derived figures over the given horizon in years.
func (m *Model) Summarize(horizonYears int) Summary {
	return Summary{
		Rent:               m.rent,
		SquareFootage:      m.squareFootage,
		AnnualRentIncrease: m.annualRentIncrease,
		RentPerSquareFoot:  m.RentPerSquareFoot(),
		RentAtHorizon:      m.RentAfterYears(horizonYears),
		TotalRentAtHorizon: m.TotalRentPaid(horizonYears),
		HorizonYears:       horizonYears,
	}
}
