package survey

import (
	"github.com/harrison/intake/internal/models"
)

// FieldState is how a question presents for one rendering pass
type FieldState struct {
	SequenceNumber string
	Value          string
	Disabled       bool
	Error          string
}

// ResolveField runs a question's rules the way a form renders it.
// The starting value is the stored answer, or the question default when the
// question has never been answered. Rules run in order; the first matching
// set_to_blank rule disables the field and stops rule processing.
func ResolveField(q models.Question, answers models.AnswerSet) FieldState {
	value, answered := answers[q.SequenceNumber]
	if !answered {
		value = q.DefaultValue
	}

	state := FieldState{SequenceNumber: q.SequenceNumber, Value: value}
	for _, rule := range q.Rules {
		if !Evaluate(rule, state.Value, answers) {
			continue
		}
		out := Apply(q, state.Value, rule)
		state.Value = out.Value
		if !out.Valid {
			state.Error = out.Error
		}
		if out.Disables {
			state.Disabled = true
			break
		}
	}
	return state
}

// ResolveAll resolves every question in schema order and returns the
// resulting answer set alongside the per-field states. Each question sees the
// already resolved values of the questions before it, so blanking cascades
// down dependency chains.
// Answers for sequence numbers outside the schema are carried over untouched.
func ResolveAll(schema *Schema, answers models.AnswerSet) (models.AnswerSet, []FieldState) {
	resolved := answers.Clone()
	states := make([]FieldState, 0, schema.Len())
	for _, q := range schema.questions {
		state := ResolveField(q, resolved)
		resolved[q.SequenceNumber] = state.Value
		states = append(states, state)
	}
	return resolved, states
}
