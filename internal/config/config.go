// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/format"
	"github.com/iwvelando/loan-calculator/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for loan-calculator.
type Configuration struct {
	Mode    string        `yaml:"mode,omitempty"` // serve, tui, calc
	Display DisplayConfig `yaml:"display,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// OutputConfig controls how calc mode prints its result.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// DisplayConfig holds the options used to render amounts.
type DisplayConfig struct {
	CurrencySymbol string `yaml:"currencySymbol,omitempty"`
	Locale         string `yaml:"locale,omitempty"`
	DecimalPlaces  int    `yaml:"decimalPlaces,omitempty"`
	Placeholder    string `yaml:"placeholder,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// Default returns the configuration used when no file is present.
func Default() *Configuration {
	return &Configuration{
		Mode: constants.ModeServe,
		Display: DisplayConfig{
			CurrencySymbol: constants.DefaultCurrencySymbol,
			Locale:         constants.DefaultLocale,
			DecimalPlaces:  constants.DefaultDecimalPlaces,
			Placeholder:    constants.Placeholder,
		},
		Output: OutputConfig{Format: constants.OutputFormatPretty},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("mode", defaults.Mode)
	v.SetDefault("display.currencySymbol", defaults.Display.CurrencySymbol)
	v.SetDefault("display.locale", defaults.Display.Locale)
	v.SetDefault("display.decimalPlaces", defaults.Display.DecimalPlaces)
	v.SetDefault("display.placeholder", defaults.Display.Placeholder)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with LOANCALC_ override
// file values, e.g. LOANCALC_DISPLAY_CURRENCYSYMBOL.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}

	return decode(v)
}

// LoadDefaults returns the defaults with environment overrides applied.
func LoadDefaults() (*Configuration, error) {
	return decode(newViper())
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// ValidateConfiguration checks the configuration, returning warnings for
// questionable values and an error for unusable ones.
func (c *Configuration) ValidateConfiguration() ([]string, error) {
	if err := validation.ValidateMode(c.Mode); err != nil {
		return nil, err
	}
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return nil, err
	}
	if err := validation.ValidateLogLevel(c.Logging.Level); err != nil {
		return nil, err
	}
	if err := validation.ValidateLogFormat(c.Logging.Format); err != nil {
		return nil, err
	}
	return validation.ValidateDisplay(c.Display.CurrencySymbol, c.Display.DecimalPlaces, c.Display.Placeholder)
}

// Formatter builds the currency formatter described by the display options.
func (d DisplayConfig) Formatter() *format.Formatter {
	return format.NewFormatter(d.CurrencySymbol, d.Locale, d.DecimalPlaces)
}
