// Package constants provides shared constants for the rent-vs-buy application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPlaces is the number of places used for currency rounding
	DecimalPlaces = 2

	// PMIEquityThreshold is the down payment fraction at or above which PMI is
	// no longer charged
	PMIEquityThreshold = 0.20
)

// Mortgage defaults
const (
	DefaultHomeValue            = 200000.0
	DefaultInterestRate         = 0.05
	DefaultTermYears            = 15
	DefaultDownPaymentPercent   = 0.20
	DefaultPropertyTaxRate      = 0.011
	DefaultPMIRate              = 0.01
	DefaultMonthlyHomeInsurance = 125.0
	DefaultMonthlyHOA           = 0.0
)

// Rent defaults
const (
	DefaultRent               = 1200.0
	DefaultSquareFootage      = 0.0
	DefaultAnnualRentIncrease = 0.03
)

// Retirement defaults
const (
	DefaultCurrentAge             = 24
	DefaultRetirementAge          = 65
	DefaultMonthlyContribution    = 300.0
	DefaultCurrentSavings         = 10000.0
	DefaultAnnualReturnRate       = 0.08
	DefaultAnnualHomeAppreciation = 0.05
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultEnvFile is the optional dotenv file read before configuration
	DefaultEnvFile = ".env"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultRequestsPerMinute is the default API rate limit
	DefaultRequestsPerMinute = 120

	// DefaultRateLimitBurst is the default burst size for the API rate limit
	DefaultRateLimitBurst = 20
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
