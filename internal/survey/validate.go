package survey

import (
	"fmt"
	"strconv"

	"github.com/harrison/intake/internal/models"
)

// Validation messages
const (
	MsgInvalidDate   = "Please enter a valid date in MM/DD/YYYY format"
	MsgInvalidNumber = "Please enter a valid number"
)

// Drug-type questions compared by the cross-field check
const (
	PrimaryDrugSeq   = "73"
	SecondaryDrugSeq = "74"
	TertiaryDrugSeq  = "75"
)

// ValidateAll checks every question of the schema against answers and
// returns a freshly built ErrorSet. An empty set means the answers are accepted.
//
// Per question, in schema order:
//  1. every rule is evaluated independently against the stored answer; a
//     rule that fails validity records its error, later errors overwriting
//     earlier ones
//  2. the type check runs on the effective value, which is the stored answer
//     unless a matching rule rewrote it (blanked fields skip type checks)
//
// The drug-type cross-field check runs last and overwrites per-question errors.
func ValidateAll(schema *Schema, answers models.AnswerSet) models.ErrorSet {
	errs := make(models.ErrorSet)

	for _, q := range schema.questions {
		seq := q.SequenceNumber
		value := answers.Get(seq)
		effective := value

		for _, rule := range q.Rules {
			if !Evaluate(rule, value, answers) {
				continue
			}
			out := Apply(q, value, rule)
			if !out.Valid {
				errs[seq] = out.Error
			}
			if rewritesValue(rule.Action) {
				effective = out.Value
			}
		}

		if msg := checkType(q, effective); msg != "" {
			errs[seq] = msg
		}
	}

	CheckCrossField(answers, errs)
	return errs
}

// checkType returns the type-specific error for value, or "" when it passes
func checkType(q models.Question, value string) string {
	if value == "" {
		return ""
	}
	switch q.FieldType {
	case models.FieldDate:
		if !ValidDate(value) {
			return MsgInvalidDate
		}
	case models.FieldNumeric:
		min, max := q.ValidValues.Bounds()
		n, ok := parseNumeric(value)
		if !ok {
			return MsgInvalidNumber
		}
		if n < min || n > max {
			return fmt.Sprintf("Value must be between %d and %d", min, max)
		}
	}
	return ""
}

// parseNumeric accepts unsigned base-10 integers only
func parseNumeric(s string) (int, bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CheckCrossField compares the three drug-type answers pairwise and writes
// duplicate errors into errs. Equal non-empty codes conflict, including two
// "0" (None) codes.
func CheckCrossField(answers models.AnswerSet, errs models.ErrorSet) {
	primary := answers.Get(PrimaryDrugSeq)
	secondary := answers.Get(SecondaryDrugSeq)
	tertiary := answers.Get(TertiaryDrugSeq)

	if primary != "" && secondary != "" && primary == secondary {
		errs[SecondaryDrugSeq] = "Secondary drug cannot be the same as primary drug"
	}
	if secondary != "" && tertiary != "" && secondary == tertiary {
		errs[TertiaryDrugSeq] = "Tertiary drug cannot be the same as secondary drug"
	}
	if primary != "" && tertiary != "" && primary == tertiary {
		errs[TertiaryDrugSeq] = "Tertiary drug cannot be the same as primary drug"
	}
}
