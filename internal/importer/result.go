package importer

import (
	"fmt"
	"strings"

	"github.com/harrison/intake/internal/models"
)

// DefaultMaxUnmatchedShown is how many unmatched labels a summary lists
const DefaultMaxUnmatchedShown = 3

// Result is the outcome of a successful import
type Result struct {
	// Answers is current with the staged answers written over it
	Answers models.AnswerSet
	// Staged holds only the answers taken from the payload
	Staged models.AnswerSet
	// Imported counts distinct sequence numbers staged
	Imported int
	// Unmatched lists labels that matched no question, in input order
	Unmatched []string
	// Conflicts holds drug-type duplicates found in the merged answers
	Conflicts models.ErrorSet
}

// Summary renders a one-line report, listing at most maxShown unmatched
// labels. A non-positive maxShown uses DefaultMaxUnmatchedShown.
func (r *Result) Summary(maxShown int) string {
	if maxShown <= 0 {
		maxShown = DefaultMaxUnmatchedShown
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Imported %d answer(s)", r.Imported)

	if n := len(r.Unmatched); n > 0 {
		shown := r.Unmatched
		if n > maxShown {
			shown = shown[:maxShown]
		}
		fmt.Fprintf(&sb, "; %d unmatched label(s): %s", n, strings.Join(shown, ", "))
		if n > maxShown {
			fmt.Fprintf(&sb, " (+%d more)", n-maxShown)
		}
	}

	if len(r.Conflicts) > 0 {
		fmt.Fprintf(&sb, "; %d drug type conflict(s)", len(r.Conflicts))
	}
	return sb.String()
}
