package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/intake/internal/config"
	"github.com/harrison/intake/internal/logger"
	"github.com/harrison/intake/internal/parser"
	"github.com/harrison/intake/internal/survey"
)

// runtime is what every subcommand needs after flag and config resolution
type runtime struct {
	cfg    *config.Config
	schema *survey.Schema
	log    logger.Logger
	file   *logger.FileLogger
}

// Close flushes the run log, if one was opened
func (rt *runtime) Close() error {
	if rt.file == nil {
		return nil
	}
	return rt.file.Close()
}

// loadRuntime loads configuration, applies flag overrides, loads the question
// bank and opens the console and file loggers.
func loadRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	schema, err := parser.LoadSchema(cfg.QuestionBank)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg, schema: schema}
	console := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	noLogFile, _ := cmd.Flags().GetBool("no-log-file")
	if noLogFile || cfg.LogDir == "" {
		rt.log = console
	} else {
		fileLog, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to create file logger: %w", err)
		}
		rt.file = fileLog
		rt.log = logger.NewMultiLogger(console, fileLog)
	}

	rt.log.LogDebug(fmt.Sprintf("%s loaded with %d questions", bankName(cfg), schema.Len()))
	return rt, nil
}

// loadConfig reads the config file named by --config, or the default one,
// and merges explicitly set flags over it
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	configPath, _ := flags.GetString("config")
	if configPath == "" {
		var err error
		configPath, err = config.ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to locate config: %w", err)
		}
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	cfg.MergeWithFlags(
		changedString(cmd, "bank"),
		changedString(cmd, "log-level"),
		changedString(cmd, "log-dir"),
		changedString(cmd, "provider-id"),
	)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// changedString returns the flag value only when the user set it
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func bankName(cfg *config.Config) string {
	if cfg.QuestionBank == "" {
		return "built-in admission bank"
	}
	return cfg.QuestionBank
}
