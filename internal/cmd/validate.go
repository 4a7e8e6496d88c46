package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/intake/internal/display"
	"github.com/harrison/intake/internal/fileutil"
	"github.com/harrison/intake/internal/logger"
	"github.com/harrison/intake/internal/parser"
	"github.com/harrison/intake/internal/survey"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <answers-file-or-directory>...",
		Short: "Validate one or more answer files",
		Long: `Run full survey validation over answer files, checking:
  - dependency rules (blanked, fixed and invalid selections)
  - dates in MM/DD/YYYY format
  - numeric answers within their question's range
  - primary, secondary and tertiary drug types are distinct

Supports multiple input modes:
  - Single file: intake validate answers.yaml
  - Directory: intake validate answers/ (every .yaml, .yml and .json file)
  - Multiple files: intake validate a.json b.yaml

Exit code: 0 if valid, 1 if errors found`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()
			return validateAnswerFiles(args, rt.schema, rt.log, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	return cmd
}

// validateAnswerFiles validates every answer file reachable from paths.
// Files that fail to parse count as one error each.
func validateAnswerFiles(paths []string, schema *survey.Schema, log logger.Logger, output io.Writer) error {
	files, err := fileutil.ExpandPaths(paths, fileutil.ScanOptions{
		Extensions: fileutil.AnswerExtensions,
		Recursive:  true,
	})
	if err != nil {
		return err
	}

	var progress *display.ProgressIndicator
	if len(files) == 1 {
		display.DisplaySingleFile(output, files[0])
	} else {
		progress = display.NewProgressIndicator(output, len(files), "answer files")
		progress.Start()
	}

	totalErrors := 0
	failedFiles := 0
	for _, file := range files {
		if progress != nil {
			progress.Step(file)
		}
		n, err := validateAnswerFile(file, schema, log, output)
		if err != nil {
			return err
		}
		if n > 0 {
			totalErrors += n
			failedFiles++
		}
	}

	if progress != nil {
		progress.Complete(failedFiles)
	}

	if totalErrors == 0 {
		fmt.Fprintf(output, "\n✓ Answers are valid!\n")
		return nil
	}
	fmt.Fprintf(output, "\nFound %d validation error(s)!\n", totalErrors)
	return fmt.Errorf("validation failed with %d error(s)", totalErrors)
}

// validateAnswerFile reports one file and returns its error count
func validateAnswerFile(file string, schema *survey.Schema, log logger.Logger, output io.Writer) (int, error) {
	answers, err := parser.ParseAnswersFile(file)
	if err != nil {
		fmt.Fprintf(output, "✗ Failed to parse %s\n", file)
		fmt.Fprintf(output, "  Error: %v\n", err)
		log.LogError(fmt.Sprintf("%s: %v", file, err))
		return 1, nil
	}

	errs := survey.ValidateAll(schema, answers)
	log.LogValidation(file, errs)
	if errs.IsEmpty() {
		fmt.Fprintf(output, "✓ %s: %d answer(s) accepted\n", file, len(answers))
		return 0, nil
	}

	fmt.Fprintf(output, "✗ Validation failed for %s\n", file)
	if err := display.WriteErrorTable(output, schema, errs); err != nil {
		return 0, fmt.Errorf("failed to write error table: %w", err)
	}
	return len(errs), nil
}
