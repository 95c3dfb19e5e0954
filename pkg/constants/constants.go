// Package constants provides shared constants for the loan-calculator application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Display constants
const (
	// DefaultCurrencySymbol is prefixed to every formatted amount
	DefaultCurrencySymbol = "£"

	// DefaultDecimalPlaces is the number of fraction digits shown for amounts
	DefaultDecimalPlaces = 2

	// MaxDecimalPlaces bounds the configurable fraction digits
	MaxDecimalPlaces = 6

	// DefaultLocale drives thousands grouping and the decimal mark
	DefaultLocale = "en"

	// Placeholder is shown in both output fields when the inputs cannot be computed
	Placeholder = "—"
)

// Loan type wire values, as submitted by the form selector.
const (
	LoanTypeRepayment    = "repayment"
	LoanTypeInterestOnly = "interest-only"
)

// Form field names shared by every hosting surface.
const (
	FieldAmount   = "amount"
	FieldTerm     = "term"
	FieldRate     = "rate"
	FieldLoanType = "type"
	FieldMonthly  = "monthly"
	FieldTotal    = "total"
)

// ActivationKey triggers a calculation when pressed in an input field.
const ActivationKey = "Enter"

// Run modes
const (
	// ModeServe serves the calculator form over HTTP
	ModeServe = "serve"

	// ModeTUI runs the calculator form as interactive terminal prompts
	ModeTUI = "tui"

	// ModeCalc calculates once from command line flags and prints the result
	ModeCalc = "calc"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix namespaces environment overrides of the configuration
	EnvPrefix = "LOANCALC"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultShutdownTimeoutSeconds bounds graceful server shutdown
	DefaultShutdownTimeoutSeconds = 10
)
