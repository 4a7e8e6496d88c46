package survey

import (
	"github.com/harrison/intake/internal/models"
)

// InvalidSelectionMessage is reported by mark_invalid rules without their own message
const InvalidSelectionMessage = "Invalid value based on other selections"

// Evaluate decides whether rule's condition holds for candidate against answers.
// A rule without a condition or without dependencies never applies.
// Missing dependency answers read as the empty string.
func Evaluate(rule models.Rule, candidate string, answers models.AnswerSet) bool {
	if rule.Condition == nil || len(rule.Dependencies) == 0 {
		return false
	}

	cond := rule.Condition
	switch cond.Op {
	case models.OpAnyEquals:
		for _, dep := range rule.Dependencies {
			if answers.Get(dep) == cond.Value {
				return true
			}
		}
		return false

	case models.OpEquals:
		return answers.Get(rule.Dependencies[0]) == cond.Value

	case models.OpEmpty:
		return answers.Get(rule.Dependencies[0]) == ""

	case models.OpCollides:
		if candidate == "" {
			return false
		}
		for _, dep := range rule.Dependencies {
			if answers.Get(dep) == candidate {
				return true
			}
		}
		return false
	}

	return false
}

// Outcome is the result of applying a matched rule's action
type Outcome struct {
	Value string
	Valid bool
	Error string
	// Disables is set when the action makes the field inactive for this pass
	Disables bool
}

// Apply computes what a matched rule does to candidate.
func Apply(question models.Question, candidate string, rule models.Rule) Outcome {
	switch rule.Action {
	case models.ActionSetToBlank:
		return Outcome{Value: "", Valid: true, Disables: true}
	case models.ActionSetFixedValue:
		return Outcome{Value: rule.Value, Valid: true}
	case models.ActionMarkInvalid:
		msg := rule.Message
		if msg == "" {
			msg = InvalidSelectionMessage
		}
		return Outcome{Value: candidate, Valid: false, Error: msg}
	case models.ActionEnable:
		return Outcome{Value: candidate, Valid: true}
	}
	return Outcome{Value: candidate, Valid: true}
}

// rewritesValue reports whether the action replaces the answer
func rewritesValue(a models.Action) bool {
	return a == models.ActionSetToBlank || a == models.ActionSetFixedValue
}
