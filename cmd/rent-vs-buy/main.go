package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/rent-vs-buy/internal/calculator"
	"github.com/iwvelando/rent-vs-buy/internal/config"
	"github.com/iwvelando/rent-vs-buy/internal/logging"
	"github.com/iwvelando/rent-vs-buy/internal/optimizer"
	"github.com/iwvelando/rent-vs-buy/pkg/constants"
	"github.com/iwvelando/rent-vs-buy/pkg/output"
	"github.com/iwvelando/rent-vs-buy/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	envFile := flag.String("env-file", constants.DefaultEnvFile, "optional dotenv file with RENTVSBUY_ overrides")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	breakeven := flag.Bool("breakeven", false, "run the breakeven searches configured on each scenario")
	flag.Parse()

	if err := config.LoadEnvFile(*envFile); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load env file at %s\", \"error\": \"%v\"}\n", *envFile, err)
		os.Exit(1)
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
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

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	reports, err := calculator.Calculate(logger, *conf)
	if err != nil {
		logger.Fatal("failed to calculate scenarios",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if *breakeven {
		runner, err := optimizer.NewRunner(logger, conf)
		if err != nil {
			logger.Fatal("failed to initialize breakeven search",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		result, err := runner.Run()
		if err != nil {
			logger.Fatal("failed to run breakeven search",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		if result.Empty() {
			logger.Info("no scenario configures a breakeven search",
				zap.String("op", "main"),
			)
		}
		result.Apply(reports)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, reports)
	case constants.OutputFormatCSV:
		output.CsvFormat(os.Stdout, reports)
	case constants.OutputFormatJSON:
		if err := output.JSONFormat(os.Stdout, reports); err != nil {
			logger.Fatal("failed to write JSON output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}
