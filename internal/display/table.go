package display

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/harrison/intake/internal/models"
	"github.com/harrison/intake/internal/survey"
)

// maxTextWidth caps question text in tables
const maxTextWidth = 48

// WriteQuestionTable lists questions with their type, rule count and text
func WriteQuestionTable(w io.Writer, questions []models.Question) error {
	useColor := ColorEnabled(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := "SEQ\tTYPE\tRULES\tQUESTION"
	if useColor {
		header = paint(header, color.Bold)
	}
	fmt.Fprintln(tw, header)

	for _, q := range questions {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", q.SequenceNumber, q.FieldType, len(q.Rules), truncate(q.QuestionText, maxTextWidth))
	}
	return tw.Flush()
}

// WriteErrorTable lists every error of errs next to its question text.
// Questions missing from schema are shown without text.
func WriteErrorTable(w io.Writer, schema *survey.Schema, errs models.ErrorSet) error {
	useColor := ColorEnabled(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for _, seq := range errs.Keys() {
		text := ""
		if q, err := schema.Lookup(seq); err == nil {
			text = truncate(q.QuestionText, maxTextWidth)
		}
		msg := errs[seq]
		if useColor {
			// last column, so escape codes do not upset alignment
			msg = paint(msg, color.FgRed)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", seq, text, msg)
	}
	return tw.Flush()
}

func truncate(s string, width int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= width {
		return string(runes)
	}
	return string(runes[:width-3]) + "..."
}

// WriteQuestionDetail prints one question with its valid values and rules
func WriteQuestionDetail(w io.Writer, q models.Question) {
	fmt.Fprintf(w, "Question %s: %s\n", q.SequenceNumber, q.QuestionText)
	fmt.Fprintf(w, "  Type:    %s\n", fieldTypeName(q.FieldType))
	if q.DefaultValue != "" {
		fmt.Fprintf(w, "  Default: %s\n", q.DefaultValue)
	}

	switch {
	case q.FieldType == models.FieldNumeric:
		min, max := q.ValidValues.Bounds()
		fmt.Fprintf(w, "  Range:   %d-%d\n", min, max)
	case q.ValidValues != nil && len(q.ValidValues.Codes) > 0:
		fmt.Fprintln(w, "  Values:")
		for _, code := range q.ValidValues.Codes {
			shown := code
			if shown == "" {
				shown = `""`
			}
			fmt.Fprintf(w, "    %-4s %s\n", shown, q.Describe(code))
		}
	}

	if len(q.Rules) > 0 {
		fmt.Fprintln(w, "  Rules:")
		for i, rule := range q.Rules {
			fmt.Fprintf(w, "    %d. %s\n", i+1, DescribeRule(rule))
		}
	}
}

// DescribeRule renders a rule as "<condition>: <action>"
func DescribeRule(r models.Rule) string {
	deps := strings.Join(r.Dependencies, ", ")

	cond := "never"
	if r.Condition != nil && len(r.Dependencies) > 0 {
		switch r.Condition.Op {
		case models.OpAnyEquals:
			cond = fmt.Sprintf("when any of %s equals %q", deps, r.Condition.Value)
		case models.OpEquals:
			cond = fmt.Sprintf("when %s equals %q", deps, r.Condition.Value)
		case models.OpEmpty:
			cond = fmt.Sprintf("when %s is empty", deps)
		case models.OpCollides:
			cond = fmt.Sprintf("when the answer repeats %s", deps)
		}
	}

	var action string
	switch r.Action {
	case models.ActionSetToBlank:
		action = "blank and disable"
	case models.ActionSetFixedValue:
		action = fmt.Sprintf("set to %q", r.Value)
	case models.ActionMarkInvalid:
		action = "mark invalid"
		if r.Message != "" {
			action += " (" + r.Message + ")"
		}
	case models.ActionEnable:
		action = "enable"
	default:
		action = string(r.Action)
	}
	return cond + ": " + action
}

func fieldTypeName(f models.FieldType) string {
	if f == "" {
		return string(models.FieldText)
	}
	return string(f)
}
