package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/iwvelando/loan-calculator/internal/calculator"
	"github.com/iwvelando/loan-calculator/internal/config"
	"github.com/iwvelando/loan-calculator/internal/server"
	"github.com/iwvelando/loan-calculator/internal/tui"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var config zap.Config
	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		config.OutputPaths = []string{loggingConfig.OutputFile}
		config.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return config.Build()
}

// loadConfiguration reads the config file. A missing file at the default
// location is not an error; the defaults are used instead.
func loadConfiguration(path string) (*config.Configuration, error) {
	if path == constants.DefaultConfigFile {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.LoadDefaults()
		}
	}
	return config.LoadConfiguration(path)
}

// loadEnvFile exports the variables in an optional dotenv file so they can
// override configuration values. Variables already set in the environment win.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// applyServerOverrides applies command line overrides to the server
// configuration. An empty maxBodySize leaves the configured limit in place.
func applyServerOverrides(cfg *server.Config, maxBodySize string) error {
	if strings.TrimSpace(maxBodySize) == "" {
		return nil
	}
	size, err := server.ParseSize(maxBodySize)
	if err != nil {
		return err
	}
	if size <= 0 {
		return fmt.Errorf("max body size must be positive, got %s", maxBodySize)
	}
	cfg.SetBodySizeBytes(size)
	return nil
}

func main() {
	// Process command line flags first to get config location
	envFile := flag.String("env-file", ".env", "optional dotenv file with LOANCALC_ overrides")
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to web server configuration file")
	modeFlag := flag.String("mode", "", "run mode override: serve, tui, calc")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	maxBodySize := flag.String("max-body-size", "", "request body limit override for serve mode, e.g. 64K or 1M")
	outputFormat := flag.String("output-format", "", "calc output format override: pretty, csv")
	amount := flag.String("amount", "", "loan amount (calc mode)")
	term := flag.String("term", "", "term in years (calc mode)")
	rate := flag.String("rate", "", "annual interest rate in percent (calc mode)")
	loanType := flag.String("type", constants.LoanTypeRepayment, "loan type: repayment, interest-only (calc mode)")
	flag.Parse()

	if err := loadEnvFile(*envFile); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load env file\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	conf, err := loadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Determine mode (CLI override takes precedence over config)
	if *modeFlag != "" {
		conf.Mode = *modeFlag
	}
	if *outputFormat != "" {
		conf.Output.Format = *outputFormat
	}

	var serverConf *server.Config
	loggingConf := conf.Logging
	if conf.Mode == constants.ModeServe {
		serverConf, err = server.LoadConfig(*serverConfigLocation)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *serverConfigLocation, err)
			os.Exit(1)
		}
		if err := applyServerOverrides(serverConf, *maxBodySize); err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"invalid max body size\", \"error\": \"%v\"}\n", err)
			os.Exit(1)
		}
		if serverConf.Logging != (config.LoggingConfig{}) {
			loggingConf = serverConf.Logging
		}
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(loggingConf, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := validation.ValidateMode(conf.Mode); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings, err := conf.ValidateConfiguration()
	if err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	values := calculator.FormValues{
		Amount:   *amount,
		Term:     *term,
		Rate:     *rate,
		LoanType: *loanType,
	}
	if err := runMode(ctx, conf, serverConf, values, logger); err != nil {
		logger.Fatal("loan calculator failed",
			zap.String("op", "main"),
			zap.String("mode", conf.Mode),
			zap.Error(err),
		)
	}
}

// runMode runs the configured surface until it finishes. values holds the
// inputs for calc mode.
func runMode(ctx context.Context, conf *config.Configuration, serverConf *server.Config, values calculator.FormValues, logger *zap.Logger) error {
	formatter := conf.Display.Formatter()

	switch conf.Mode {
	case constants.ModeServe:
		if serverConf == nil {
			serverConf = server.DefaultConfig()
		}
		handler := server.NewHandler(logger, formatter, conf.Display.Placeholder, serverConf.BodySizeBytes(), version)
		if err := server.Run(ctx, serverConf, handler, logger); err != nil {
			return fmt.Errorf("web server stopped: %w", err)
		}
	case constants.ModeTUI:
		session := tui.NewSession(tui.NewSurveyDriver(), formatter, conf.Display.Placeholder, logger)
		if err := session.Run(ctx); err != nil {
			return fmt.Errorf("terminal session failed: %w", err)
		}
	case constants.ModeCalc:
		if err := runCalc(os.Stdout, conf, values, logger); err != nil {
			return fmt.Errorf("failed to print calculation: %w", err)
		}
	default:
		return fmt.Errorf("unsupported mode: %s", conf.Mode)
	}
	return nil
}
