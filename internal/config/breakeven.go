package config

import (
	"fmt"
	"strings"
)

// Fields a breakeven search can vary.
const (
	BreakevenFieldRent                   = "rent"
	BreakevenFieldHomeValue              = "homeValue"
	BreakevenFieldInterestRate           = "interestRate"
	BreakevenFieldAnnualReturnRate       = "annualReturnRate"
	BreakevenFieldAnnualHomeAppreciation = "annualHomeAppreciation"

	defaultToleranceCurrency = 0.01
	defaultToleranceRate     = 1e-6
	defaultMaxIterations     = 100
)

// BreakevenConfig asks for the value of one input at which buying and renting
// end up equally well off at retirement.
type BreakevenConfig struct {
	Field         string   `yaml:"field,omitempty"`
	Min           *float64 `yaml:"min,omitempty"`
	Max           *float64 `yaml:"max,omitempty"`
	Tolerance     float64  `yaml:"tolerance,omitempty"`
	MaxIterations int      `yaml:"maxIterations,omitempty"`
}

// CanonicalBreakevenField returns the canonical identifier for a breakeven
// field. An empty value means rent.
func CanonicalBreakevenField(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return BreakevenFieldRent
	}
	switch strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(trimmed)) {
	case "rent":
		return BreakevenFieldRent
	case "homevalue":
		return BreakevenFieldHomeValue
	case "interestrate":
		return BreakevenFieldInterestRate
	case "annualreturnrate", "returnrate":
		return BreakevenFieldAnnualReturnRate
	case "annualhomeappreciation", "homeappreciation":
		return BreakevenFieldAnnualHomeAppreciation
	default:
		return trimmed
	}
}

// IsRateField reports whether the field is a decimal fraction rather than a
// currency amount.
func IsRateField(field string) bool {
	switch CanonicalBreakevenField(field) {
	case BreakevenFieldInterestRate, BreakevenFieldAnnualReturnRate, BreakevenFieldAnnualHomeAppreciation:
		return true
	}
	return false
}

// Normalize applies the canonical field name and default bounds, tolerance,
// and iteration limit.
func (b *BreakevenConfig) Normalize() {
	if b == nil {
		return
	}
	b.Field = CanonicalBreakevenField(b.Field)

	if b.Min == nil || b.Max == nil {
		min, max := defaultBreakevenBounds(b.Field)
		if b.Min == nil {
			b.Min = Float(min)
		}
		if b.Max == nil {
			b.Max = Float(max)
		}
	}

	if b.Tolerance <= 0 {
		if IsRateField(b.Field) {
			b.Tolerance = defaultToleranceRate
		} else {
			b.Tolerance = defaultToleranceCurrency
		}
	}
	if b.MaxIterations <= 0 {
		b.MaxIterations = defaultMaxIterations
	}
}

// Validate returns an error when the breakeven configuration is unsupported.
func (b *BreakevenConfig) Validate() error {
	if b == nil {
		return fmt.Errorf("breakeven configuration cannot be nil")
	}

	b.Normalize()

	switch b.Field {
	case BreakevenFieldRent, BreakevenFieldHomeValue, BreakevenFieldInterestRate,
		BreakevenFieldAnnualReturnRate, BreakevenFieldAnnualHomeAppreciation:
	default:
		return fmt.Errorf("breakeven field %q is not supported", b.Field)
	}

	if *b.Min >= *b.Max {
		return fmt.Errorf("breakeven minimum %g must be less than maximum %g", *b.Min, *b.Max)
	}
	return nil
}

func defaultBreakevenBounds(field string) (float64, float64) {
	switch field {
	case BreakevenFieldHomeValue:
		return 10000, 5000000
	case BreakevenFieldInterestRate, BreakevenFieldAnnualReturnRate:
		return 0, 0.25
	case BreakevenFieldAnnualHomeAppreciation:
		return -0.10, 0.25
	default:
		return 0, 20000
	}
}
