package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/flipforge/flip-forecast/internal/config"
	"github.com/flipforge/flip-forecast/internal/server"
	"github.com/flipforge/flip-forecast/internal/store"
	"github.com/flipforge/flip-forecast/pkg/constants"
	"github.com/flipforge/flip-forecast/pkg/output"
	"github.com/flipforge/flip-forecast/pkg/underwrite"
	"github.com/flipforge/flip-forecast/pkg/validation"
)

// version is set at build time via -ldflags.
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

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

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to deal configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "start the HTTP API server instead of a one-shot analysis")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flag.Parse()

	if *serve {
		runServer(*serverConfigLocation, *logLevel)
		return
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if err := validation.ValidateDealInput(conf.Deal); err != nil {
		logger.Fatal("invalid deal input",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	analysis := underwrite.EvaluateFlipDeal(conf.Deal)

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFlip(os.Stdout, conf.Deal.Address, analysis)
	case constants.OutputFormatCSV:
		output.CsvFlip(os.Stdout, analysis)
	case constants.OutputFormatJSON:
		if err := output.JSONFlip(os.Stdout, analysis); err != nil {
			logger.Fatal("failed to encode analysis",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	if conf.Loan == nil {
		return
	}

	// An optional loan section underwrites the deal's financing against the
	// product catalog in the same run.
	product, err := conf.FindProduct(conf.Loan.Product)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}
	if err := validation.ValidateLoanInput(conf.Loan.Input); err != nil {
		logger.Fatal("invalid loan input",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	underwriter := underwrite.NewUnderwriter(logger)
	result := underwriter.EvaluateLoan(conf.Loan.Input, product)

	switch outputFormat {
	case constants.OutputFormatJSON:
		if err := output.JSONLoan(os.Stdout, result); err != nil {
			logger.Fatal("failed to encode loan result",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	default:
		fmt.Println()
		output.PrettyLoan(os.Stdout, result)
	}

	if !conf.Loan.ShowSchedule {
		return
	}
	schedule := underwriter.AmortizationSchedule(conf.Loan.Input, product)
	if len(schedule) == 0 {
		logger.Warn("no amortization schedule for interest-only product",
			zap.String("op", "main"),
			zap.String("product", product.Name),
		)
		return
	}
	switch outputFormat {
	case constants.OutputFormatJSON:
		if err := output.JSONSchedule(os.Stdout, schedule); err != nil {
			logger.Fatal("failed to encode amortization schedule",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	default:
		fmt.Println()
		output.PrettySchedule(os.Stdout, schedule)
	}
}

func runServer(configLocation, logLevelOverride string) {
	cfg, err := server.LoadConfig(configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	logger, err := initializeLogger(cfg.Logging, logLevelOverride)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	analysisStore, err := store.Open(cfg.DatabasePath, logger)
	if err != nil {
		logger.Fatal("failed to open analysis store",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	defer func() {
		_ = analysisStore.Close()
	}()

	handler := server.NewHandler(server.Options{
		Logger:          logger,
		Store:           analysisStore,
		Products:        config.DefaultProducts(),
		MaxRequestBytes: cfg.RequestSizeBytes(),
		Version:         version,
	})

	logger.Info("starting flip-forecast API server",
		zap.String("op", "main"),
		zap.String("address", cfg.Address),
		zap.String("version", version),
	)
	if err := http.ListenAndServe(cfg.Address, handler); err != nil {
		logger.Fatal("server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
