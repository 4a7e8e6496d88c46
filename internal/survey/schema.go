// Package survey implements the admission-survey rule engine: the question
// schema, rule evaluation and application, full answer-set validation, and
// export formatting.
//
// Every operation is a pure function over an explicit models.AnswerSet and a
// Schema. The engine holds no answer state of its own; callers own the answer
// set of the survey they are working on.
package survey

import (
	"errors"
	"fmt"

	"github.com/harrison/intake/internal/models"
)

// ErrQuestionNotFound is returned when a sequence number is not in the schema
var ErrQuestionNotFound = errors.New("question not found")

// Schema is an ordered, immutable collection of questions
type Schema struct {
	questions []models.Question
	index     map[string]int
}

// NewSchema builds a schema from questions in display order.
// It checks integrity: unique sequence numbers, rules that only reference
// questions in the schema, and well-formed conditions and actions.
func NewSchema(questions []models.Question) (*Schema, error) {
	s := &Schema{
		questions: make([]models.Question, len(questions)),
		index:     make(map[string]int, len(questions)),
	}
	copy(s.questions, questions)

	for i, q := range s.questions {
		if q.SequenceNumber == "" {
			return nil, fmt.Errorf("question %d: sequence_number is required", i+1)
		}
		if _, dup := s.index[q.SequenceNumber]; dup {
			return nil, fmt.Errorf("duplicate sequence_number %q", q.SequenceNumber)
		}
		s.index[q.SequenceNumber] = i
	}

	if errs := s.integrityErrors(); len(errs) > 0 {
		return nil, &IntegrityError{Problems: errs}
	}
	return s, nil
}

// IntegrityError lists every problem found while checking a question bank
type IntegrityError struct {
	Problems []string
}

func (e *IntegrityError) Error() string {
	if len(e.Problems) == 1 {
		return "question bank integrity: " + e.Problems[0]
	}
	return fmt.Sprintf("question bank integrity: %d problems, first: %s", len(e.Problems), e.Problems[0])
}

func (s *Schema) integrityErrors() []string {
	var problems []string
	for _, q := range s.questions {
		if !q.FieldType.IsKnown() {
			problems = append(problems, fmt.Sprintf("question %s: unknown field_type %q", q.SequenceNumber, q.FieldType))
		}
		if q.FieldType == models.FieldNumeric && q.ValidValues != nil && q.ValidValues.Range != nil {
			if q.ValidValues.Range.Min > q.ValidValues.Range.Max {
				problems = append(problems, fmt.Sprintf("question %s: min %d exceeds max %d",
					q.SequenceNumber, q.ValidValues.Range.Min, q.ValidValues.Range.Max))
			}
		}
		for i, rule := range q.Rules {
			where := fmt.Sprintf("question %s rule %d", q.SequenceNumber, i+1)
			if !rule.Action.IsKnown() {
				problems = append(problems, fmt.Sprintf("%s: unknown action %q", where, rule.Action))
			}
			if rule.Action == models.ActionSetFixedValue && rule.Value == "" {
				problems = append(problems, fmt.Sprintf("%s: set_fixed_value requires a value", where))
			}
			for _, dep := range rule.Dependencies {
				if _, ok := s.index[dep]; !ok {
					problems = append(problems, fmt.Sprintf("%s: dependency %q is not in the question bank", where, dep))
				}
			}
			if rule.Condition == nil {
				continue
			}
			if !rule.Condition.Op.IsKnown() {
				problems = append(problems, fmt.Sprintf("%s: unknown condition op %q", where, rule.Condition.Op))
				continue
			}
			if rule.Condition.Op.SingleDependency() && len(rule.Dependencies) != 1 {
				problems = append(problems, fmt.Sprintf("%s: %s condition needs exactly one dependency, got %d",
					where, rule.Condition.Op, len(rule.Dependencies)))
			}
		}
	}
	return problems
}

// Lookup returns the question with the given sequence number
func (s *Schema) Lookup(seq string) (models.Question, error) {
	i, ok := s.index[seq]
	if !ok {
		return models.Question{}, fmt.Errorf("%w: %s", ErrQuestionNotFound, seq)
	}
	return s.questions[i], nil
}

// Has reports whether seq is a known question
func (s *Schema) Has(seq string) bool {
	_, ok := s.index[seq]
	return ok
}

// Questions returns the questions in display order.
// The slice is a copy; mutating it does not affect the schema.
func (s *Schema) Questions() []models.Question {
	out := make([]models.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Len returns the number of questions
func (s *Schema) Len() int {
	return len(s.questions)
}

// Order returns the sequence numbers in display order
func (s *Schema) Order() []string {
	out := make([]string, len(s.questions))
	for i, q := range s.questions {
		out[i] = q.SequenceNumber
	}
	return out
}
