package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/intake/internal/filelock"
	"github.com/harrison/intake/internal/parser"
	"github.com/harrison/intake/internal/survey"
)

// NewFormatCommand creates and returns the format subcommand
func NewFormatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format <answers-file>",
		Short: "Resolve rules and format answers for export",
		Long: `Apply every question's rules the way the survey form does (defaults,
blanked and fixed values), then normalize the answers for export: dates as
MM/DD/YYYY and numbers zero padded to the width of their range.

The result is written as JSON to --out, or to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			answers, err := parser.ParseAnswersFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to load answers: %w", err)
			}

			resolved, _ := survey.ResolveAll(rt.schema, answers)
			data, err := parser.WriteAnswers(survey.Format(rt.schema, resolved))
			if err != nil {
				return err
			}

			outPath, _ := cmd.Flags().GetString("out")
			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := filelock.LockAndWrite(outPath, data); err != nil {
				return fmt.Errorf("failed to write formatted answers: %w", err)
			}
			rt.log.LogInfo(fmt.Sprintf("Formatted %s into %s", args[0], outPath))
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("out", "", "Write the formatted answers to this file instead of stdout")

	return cmd
}
