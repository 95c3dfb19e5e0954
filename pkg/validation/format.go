// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/loan-calculator/pkg/constants"
)

// ValidateMode checks if the run mode is one of the supported modes.
func ValidateMode(mode string) error {
	switch mode {
	case constants.ModeServe, constants.ModeTUI, constants.ModeCalc:
		return nil
	}
	return fmt.Errorf("expected mode of %s, %s or %s, got %s",
		constants.ModeServe, constants.ModeTUI, constants.ModeCalc, mode)
}

// ValidateOutputFormat checks if the output format is valid
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateLogLevel checks if the log level is one of the supported levels.
// An empty level is accepted and means the default.
func ValidateLogLevel(level string) error {
	switch level {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	}
	return fmt.Errorf("invalid log level: %s", level)
}

// ValidateLogFormat checks if the log format is json or console. An empty
// format is accepted and means the default.
func ValidateLogFormat(format string) error {
	switch format {
	case "", "json", "console":
		return nil
	}
	return fmt.Errorf("invalid log format: %s", format)
}
