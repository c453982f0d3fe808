// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/rent-vs-buy/pkg/constants"
	"github.com/iwvelando/rent-vs-buy/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override configuration
// values, e.g. RENTVSBUY_LOGGING_LEVEL=debug.
const EnvPrefix = "RENTVSBUY"

// Configuration holds all configuration for rent-vs-buy.
type Configuration struct {
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
	Scenarios []Scenario    `yaml:"scenarios"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// Scenario holds the inputs for one buy-versus-rent comparison. Any input
// left unset falls back to the model default.
type Scenario struct {
	Name       string           `yaml:"name"`
	Active     bool             `yaml:"active"`
	Mortgage   MortgageConfig   `yaml:"mortgage,omitempty"`
	Rent       RentConfig       `yaml:"rent,omitempty"`
	Retirement RetirementConfig `yaml:"retirement,omitempty"`
	Breakeven  *BreakevenConfig `yaml:"breakeven,omitempty"`
}

// MortgageConfig holds the home purchase inputs. Rates are decimal fractions.
// DownPaymentPercent takes precedence over DownPayment when both are set.
type MortgageConfig struct {
	HomeValue            *float64 `yaml:"homeValue,omitempty"`
	InterestRate         *float64 `yaml:"interestRate,omitempty"`
	Term                 *int     `yaml:"term,omitempty"` // years
	DownPayment          *float64 `yaml:"downPayment,omitempty"`
	DownPaymentPercent   *float64 `yaml:"downPaymentPercent,omitempty"`
	PropertyTaxRate      *float64 `yaml:"propertyTaxRate,omitempty"`
	PMIRate              *float64 `yaml:"pmiRate,omitempty"`
	MonthlyHomeInsurance *float64 `yaml:"monthlyHomeInsurance,omitempty"`
	MonthlyHOA           *float64 `yaml:"monthlyHOA,omitempty"`
}

// RentConfig holds the rental inputs.
type RentConfig struct {
	Rent               *float64 `yaml:"rent,omitempty"`
	SquareFootage      *float64 `yaml:"squareFootage,omitempty"`
	AnnualRentIncrease *float64 `yaml:"annualRentIncrease,omitempty"`
}

// RetirementConfig holds the savings and projection inputs.
type RetirementConfig struct {
	CurrentAge             *int     `yaml:"currentAge,omitempty"`
	RetirementAge          *int     `yaml:"retirementAge,omitempty"`
	MonthlyContribution    *float64 `yaml:"monthlyContribution,omitempty"`
	CurrentSavings         *float64 `yaml:"currentSavings,omitempty"`
	AnnualReturnRate       *float64 `yaml:"annualReturnRate,omitempty"`
	AnnualHomeAppreciation *float64 `yaml:"annualHomeAppreciation,omitempty"`
}

// LoadEnvFile reads KEY=value pairs from a dotenv file into the process
// environment so they can override configuration values. Variables already
// set are left alone, and a missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind the top-level settings so env overrides apply even when the file
	// omits them.
	for _, key := range []string{"logging.level", "logging.format", "logging.outputFile", "output.format"} {
		_ = v.BindEnv(key)
	}
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ActiveScenarios returns the scenarios flagged as active, in file order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, scenario := range c.Scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Inputs the formulas accept are never rejected here.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.ActiveScenarios()) == 0 {
		warnings = append(warnings, "no active scenarios configured")
	}

	seen := make(map[string]bool)
	for _, scenario := range c.Scenarios {
		if !scenario.Active {
			continue
		}
		if seen[scenario.Name] {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' is defined more than once", scenario.Name))
		}
		seen[scenario.Name] = true
		warnings = append(warnings, validation.ValidateScenarioInputs(scenario.Inputs())...)
		if scenario.Breakeven != nil {
			if err := scenario.Breakeven.Validate(); err != nil {
				warnings = append(warnings, fmt.Sprintf("Scenario '%s' breakeven search will be skipped: %v", scenario.Name, err))
			}
		}
	}

	return warnings
}

// Inputs resolves the scenario against the model defaults.
func (s Scenario) Inputs() validation.ScenarioInputs {
	homeValue := floatOr(s.Mortgage.HomeValue, constants.DefaultHomeValue)
	downPayment := constants.DefaultHomeValue * constants.DefaultDownPaymentPercent
	if s.Mortgage.DownPaymentPercent != nil {
		downPayment = homeValue * *s.Mortgage.DownPaymentPercent
	} else if s.Mortgage.DownPayment != nil {
		downPayment = *s.Mortgage.DownPayment
	}

	return validation.ScenarioInputs{
		Name:                   s.Name,
		HomeValue:              homeValue,
		DownPayment:            downPayment,
		InterestRate:           floatOr(s.Mortgage.InterestRate, constants.DefaultInterestRate),
		TermYears:              intOr(s.Mortgage.Term, constants.DefaultTermYears),
		PropertyTaxRate:        floatOr(s.Mortgage.PropertyTaxRate, constants.DefaultPropertyTaxRate),
		PMIRate:                floatOr(s.Mortgage.PMIRate, constants.DefaultPMIRate),
		Rent:                   floatOr(s.Rent.Rent, constants.DefaultRent),
		CurrentAge:             intOr(s.Retirement.CurrentAge, constants.DefaultCurrentAge),
		RetirementAge:          intOr(s.Retirement.RetirementAge, constants.DefaultRetirementAge),
		AnnualReturnRate:       floatOr(s.Retirement.AnnualReturnRate, constants.DefaultAnnualReturnRate),
		AnnualHomeAppreciation: floatOr(s.Retirement.AnnualHomeAppreciation, constants.DefaultAnnualHomeAppreciation),
	}
}

// DefaultScenario returns an active scenario with every input set to its
// model default.
func DefaultScenario() Scenario {
	return Scenario{
		Name:   "default",
		Active: true,
		Mortgage: MortgageConfig{
			HomeValue:            Float(constants.DefaultHomeValue),
			InterestRate:         Float(constants.DefaultInterestRate),
			Term:                 Int(constants.DefaultTermYears),
			DownPayment:          Float(constants.DefaultHomeValue * constants.DefaultDownPaymentPercent),
			PropertyTaxRate:      Float(constants.DefaultPropertyTaxRate),
			PMIRate:              Float(constants.DefaultPMIRate),
			MonthlyHomeInsurance: Float(constants.DefaultMonthlyHomeInsurance),
			MonthlyHOA:           Float(constants.DefaultMonthlyHOA),
		},
		Rent: RentConfig{
			Rent:               Float(constants.DefaultRent),
			SquareFootage:      Float(constants.DefaultSquareFootage),
			AnnualRentIncrease: Float(constants.DefaultAnnualRentIncrease),
		},
		Retirement: RetirementConfig{
			CurrentAge:             Int(constants.DefaultCurrentAge),
			RetirementAge:          Int(constants.DefaultRetirementAge),
			MonthlyContribution:    Float(constants.DefaultMonthlyContribution),
			CurrentSavings:         Float(constants.DefaultCurrentSavings),
			AnnualReturnRate:       Float(constants.DefaultAnnualReturnRate),
			AnnualHomeAppreciation: Float(constants.DefaultAnnualHomeAppreciation),
		},
	}
}

// Float returns a pointer to v for populating optional inputs.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v for populating optional inputs.
func Int(v int) *int {
	return &v
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
