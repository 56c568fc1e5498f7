// Package constants provides shared constants for the flip-forecast application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// MAOFactor is the conventional multiplier applied to after-repair value
	// when deriving the maximum allowable offer (the "70% rule")
	MAOFactor = 0.70

	// DefaultHoldMonths is the hold period assumed when a deal does not
	// specify one; it is never zero so monthly prorations stay defined
	DefaultHoldMonths = 6

	// MaxLoanTranches is the number of financing tranches a deal may carry
	MaxLoanTranches = 3
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the machine-readable JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default deal configuration file name
	DefaultConfigFile = "deal.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestBytes is the default maximum JSON request body size (256 KB)
	DefaultMaxRequestBytes int64 = 256 * 1024

	// DefaultDatabasePath is the default location of the saved-analysis store
	DefaultDatabasePath = "flip-forecast.db"
)
