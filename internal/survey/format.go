package survey

import (
	"strings"

	"github.com/harrison/intake/internal/models"
)

// Format normalizes answers into their export representation.
//   - date: canonical MM/DD/YYYY, unparseable dates become ""
//   - numeric: all-digit values left-padded with zeros to the digit width of the
//     declared max (3 when undeclared); other values pass through for validation to report
//   - anything else, and answers to unknown questions, pass through
//
// Format is idempotent on its own output.
func Format(schema *Schema, answers models.AnswerSet) models.AnswerSet {
	out := make(models.AnswerSet, len(answers))
	for seq, value := range answers {
		out[seq] = value
		if value == "" {
			continue
		}
		i, ok := schema.index[seq]
		if !ok {
			continue
		}
		q := schema.questions[i]
		switch q.FieldType {
		case models.FieldDate:
			out[seq] = FormatDate(value)
		case models.FieldNumeric:
			out[seq] = zeroPad(value, q.ValidValues.PadWidth())
		}
	}
	return out
}

func zeroPad(value string, width int) string {
	if _, ok := parseNumeric(value); !ok || len(value) >= width {
		return value
	}
	return strings.Repeat("0", width-len(value)) + value
}
