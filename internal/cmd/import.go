package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/intake/internal/display"
	"github.com/harrison/intake/internal/filelock"
	"github.com/harrison/intake/internal/importer"
	"github.com/harrison/intake/internal/models"
	"github.com/harrison/intake/internal/parser"
)

// NewImportCommand creates and returns the import subcommand
func NewImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <text-file|->",
		Short: "Import a pasted JSON answer set keyed by question text",
		Long: `Read a JSON object whose keys are question labels, for example text
copied from a chat or a notes app, and merge the matched answers into an
answer set.

The JSON may sit inside a fenced code block, follow a "json" prefix or be
surrounded by prose. Labels match question texts exactly, ignoring case,
ignoring punctuation, or both. Unmatched labels are reported and skipped.

The merged answers are written as JSON to --out, or to stdout.`,
		Args:         cobra.ExactArgs(1),
		RunE:         runImport,
		SilenceUsage: true,
	}

	cmd.Flags().String("answers", "", "Existing answer file to merge into")
	cmd.Flags().String("out", "", "Write the merged answers to this file instead of stdout")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	answersPath, _ := cmd.Flags().GetString("answers")
	outPath, _ := cmd.Flags().GetString("out")

	raw, err := readSource(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	current := models.AnswerSet{}
	if answersPath != "" {
		current, err = parser.ParseAnswersFile(answersPath)
		if err != nil {
			return fmt.Errorf("failed to load answers: %w", err)
		}
	}

	result, err := importer.New(rt.schema).Import(string(raw), current)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	maxShown := rt.cfg.Import.MaxUnmatchedShown
	rt.log.LogImport(sourceName(args[0]), result.Summary(maxShown))

	errOut := cmd.ErrOrStderr()
	if len(result.Unmatched) > 0 {
		display.WarnUnmatchedLabels(result.Unmatched, maxShown).Display(errOut)
	}
	if len(result.Conflicts) > 0 {
		display.WarnConflicts(result.Conflicts).Display(errOut)
	}

	data, err := parser.WriteAnswers(result.Answers)
	if err != nil {
		return err
	}
	if outPath == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := filelock.LockAndWrite(outPath, data); err != nil {
		return fmt.Errorf("failed to write merged answers: %w", err)
	}
	rt.log.LogInfo(fmt.Sprintf("Wrote %d answer(s) to %s", len(result.Answers), outPath))
	return nil
}

// readSource reads a file, or stdin when path is "-"
func readSource(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func sourceName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}
