package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for intake
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intake",
		Short: "Behavioral-health admission survey rule engine",
		Long: `Intake validates, imports, formats and exports behavioral-health
admission surveys.

Questions, their dependency rules and valid values come from a question bank
(the built-in admission bank unless --bank or question_bank is set). Answer
files are YAML or JSON objects keyed by question sequence number.

Configuration is loaded from .intake/config.yaml (or $INTAKE_HOME/config.yaml)
if present.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default: .intake/config.yaml)")
	flags.String("bank", "", "Question bank file (YAML or JSON); overrides config")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error")
	flags.String("log-dir", "", "Directory for run logs")
	flags.Bool("no-log-file", false, "Do not write a run log file")
	flags.String("provider-id", "", "Provider id stamped on records; overrides config")

	cmd.AddCommand(NewQuestionsCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewImportCommand())
	cmd.AddCommand(NewFormatCommand())
	cmd.AddCommand(NewIngestCommand())
	cmd.AddCommand(NewExportCommand())

	return cmd
}
