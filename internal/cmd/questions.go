package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/intake/internal/display"
	"github.com/harrison/intake/internal/survey"
)

// NewQuestionsCommand creates and returns the questions subcommand
func NewQuestionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions [sequence-number]...",
		Short: "List the questions of the question bank",
		Long: `Without arguments, list every question with its type and rule count.
With sequence numbers, show those questions in detail: valid values and
their descriptions, the default value and every dependency rule.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()
			return listQuestions(rt.schema, args, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	return cmd
}

// listQuestions writes the question table, or details for the given sequence numbers
func listQuestions(schema *survey.Schema, seqs []string, output io.Writer) error {
	if len(seqs) == 0 {
		return display.WriteQuestionTable(output, schema.Questions())
	}

	for i, seq := range seqs {
		q, err := schema.Lookup(seq)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(output)
		}
		display.WriteQuestionDetail(output, q)
	}
	return nil
}
