package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/intake/internal/models"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Items      []string // Affected labels, questions or files (optional)
	Noun       string   // Singular noun for Items, "item" when empty
	Suggestion string   // Action to take (optional)
}

// Display writes the warning, in yellow on a terminal
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Items) > 0 {
		noun := w.Noun
		if noun == "" {
			noun = "item"
		}
		if len(w.Items) == 1 {
			fmt.Fprintf(&b, "    Affected %s:\n", noun)
		} else {
			fmt.Fprintf(&b, "    Affected %ss:\n", noun)
		}
		for i, item := range w.Items {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, item)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	text := b.String()
	if ColorEnabled(out) {
		text = paint(text, color.FgYellow)
	}
	fmt.Fprint(out, text)
}

// WarnUnmatchedLabels builds the warning shown after an import left labels
// unmatched. At most maxShown labels are listed; a negative maxShown lists all.
func WarnUnmatchedLabels(labels []string, maxShown int) Warning {
	shown := labels
	if maxShown >= 0 && len(labels) > maxShown {
		shown = append([]string{}, labels[:maxShown]...)
		shown = append(shown, fmt.Sprintf("(+%d more)", len(labels)-maxShown))
	}
	return Warning{
		Title:      fmt.Sprintf("%d imported %s did not match any question", len(labels), pluralize(len(labels), "label", "labels")),
		Items:      shown,
		Noun:       "label",
		Suggestion: "Compare the labels with the sequence numbers and texts listed by 'intake questions'",
	}
}

// WarnConflicts builds the warning for drug type conflicts found after an import
func WarnConflicts(conflicts models.ErrorSet) Warning {
	items := make([]string, 0, len(conflicts))
	for _, seq := range conflicts.Keys() {
		items = append(items, fmt.Sprintf("question %s: %s", seq, conflicts[seq]))
	}
	return Warning{
		Title:      "Imported drug types conflict",
		Message:    "The answers were merged; correct them before submitting",
		Items:      items,
		Noun:       "question",
		Suggestion: "Choose different primary, secondary and tertiary drug codes",
	}
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
