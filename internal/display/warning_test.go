package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/harrison/intake/internal/models"
)

func TestDisplayWarning_TitleOnly(t *testing.T) {
	var buf bytes.Buffer
	Warning{Title: "Configuration Missing"}.Display(&buf)

	output := buf.String()
	if output != "⚠️  Warning: Configuration Missing\n" {
		t.Errorf("unexpected output %q", output)
	}
	// buffers are never terminals
	if strings.Contains(output, "\x1b[") {
		t.Error("expected no ANSI codes when writing to a buffer")
	}
}

func TestDisplayWarning_AllSections(t *testing.T) {
	var buf bytes.Buffer
	Warning{
		Title:      "Labels skipped",
		Message:    "Some answers were not imported",
		Items:      []string{"Favorite Color", "Shoe Size"},
		Noun:       "label",
		Suggestion: "Check the question bank",
	}.Display(&buf)

	want := strings.Join([]string{
		"⚠️  Warning: Labels skipped",
		"    Some answers were not imported",
		"    Affected labels:",
		"      1. Favorite Color",
		"      2. Shoe Size",
		"    Suggestion:",
		"    Check the question bank",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("Display() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestDisplayWarning_SingleItemDefaultNoun(t *testing.T) {
	var buf bytes.Buffer
	Warning{Title: "One", Items: []string{"x"}}.Display(&buf)

	if !strings.Contains(buf.String(), "Affected item:\n") {
		t.Errorf("expected singular default noun, got %q", buf.String())
	}
}

func TestWarnUnmatchedLabels(t *testing.T) {
	tests := []struct {
		name      string
		labels    []string
		maxShown  int
		wantTitle string
		wantItems []string
	}{
		{
			name:      "single label",
			labels:    []string{"Favorite Color"},
			maxShown:  3,
			wantTitle: "1 imported label did not match any question",
			wantItems: []string{"Favorite Color"},
		},
		{
			name:      "truncated",
			labels:    []string{"a", "b", "c", "d", "e"},
			maxShown:  3,
			wantTitle: "5 imported labels did not match any question",
			wantItems: []string{"a", "b", "c", "(+2 more)"},
		},
		{
			name:      "negative shows all",
			labels:    []string{"a", "b", "c", "d"},
			maxShown:  -1,
			wantTitle: "4 imported labels did not match any question",
			wantItems: []string{"a", "b", "c", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WarnUnmatchedLabels(tt.labels, tt.maxShown)
			if w.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", w.Title, tt.wantTitle)
			}
			if strings.Join(w.Items, "|") != strings.Join(tt.wantItems, "|") {
				t.Errorf("Items = %v, want %v", w.Items, tt.wantItems)
			}
		})
	}
}

func TestWarnUnmatchedLabels_DoesNotModifyInput(t *testing.T) {
	labels := []string{"a", "b", "c", "d"}
	WarnUnmatchedLabels(labels, 1)
	if strings.Join(labels, "") != "abcd" {
		t.Errorf("input labels modified: %v", labels)
	}
}

func TestWarnConflicts(t *testing.T) {
	w := WarnConflicts(models.ErrorSet{
		"75": "Tertiary drug cannot be the same as primary drug",
		"74": "Secondary drug cannot be the same as primary drug",
	})

	want := []string{
		"question 74: Secondary drug cannot be the same as primary drug",
		"question 75: Tertiary drug cannot be the same as primary drug",
	}
	if strings.Join(w.Items, "|") != strings.Join(want, "|") {
		t.Errorf("Items = %v, want %v", w.Items, want)
	}
	if w.Noun != "question" {
		t.Errorf("Noun = %q, want question", w.Noun)
	}
}
