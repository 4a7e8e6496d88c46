package models

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// FieldType is the input type of a survey question
type FieldType string

const (
	FieldDate    FieldType = "date"
	FieldNumeric FieldType = "numeric"
	FieldSelect  FieldType = "select"
	FieldBoolean FieldType = "boolean"
	FieldText    FieldType = "text"
)

// IsKnown reports whether the field type is one the engine understands.
// An empty type is treated as text.
func (f FieldType) IsKnown() bool {
	switch f {
	case FieldDate, FieldNumeric, FieldSelect, FieldBoolean, FieldText, "":
		return true
	}
	return false
}

// Default numeric range applied when a numeric question declares none
const (
	DefaultNumericMin = 0
	DefaultNumericMax = 999
)

// NumericRange is an inclusive [Min, Max] bound for numeric questions
type NumericRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// rawRange lets a bank omit either bound; missing bounds take the numeric defaults
type rawRange struct {
	Min *int `yaml:"min" json:"min"`
	Max *int `yaml:"max" json:"max"`
}

func (r rawRange) resolve() *NumericRange {
	out := &NumericRange{Min: DefaultNumericMin, Max: DefaultNumericMax}
	if r.Min != nil {
		out.Min = *r.Min
	}
	if r.Max != nil {
		out.Max = *r.Max
	}
	return out
}

// ValidValues holds either a numeric range, an ordered list of permitted codes, or nothing.
type ValidValues struct {
	Range *NumericRange
	Codes []string
}

// IsZero reports whether no valid values were declared
func (v *ValidValues) IsZero() bool {
	return v == nil || (v.Range == nil && v.Codes == nil)
}

// UnmarshalYAML accepts null, a {min,max} mapping, or a sequence of codes.
func (v *ValidValues) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		var r rawRange
		if err := node.Decode(&r); err != nil {
			return fmt.Errorf("valid_values range: %w", err)
		}
		v.Range = r.resolve()
	case yaml.SequenceNode:
		var codes []string
		if err := node.Decode(&codes); err != nil {
			return fmt.Errorf("valid_values codes: %w", err)
		}
		if codes == nil {
			codes = []string{}
		}
		v.Codes = codes
	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			return fmt.Errorf("valid_values must be a range, a list, or null (line %d)", node.Line)
		}
	default:
		return fmt.Errorf("valid_values must be a range, a list, or null (line %d)", node.Line)
	}
	return nil
}

// UnmarshalJSON mirrors UnmarshalYAML for JSON question banks.
func (v *ValidValues) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	switch trimmed[0] {
	case '{':
		var r rawRange
		if err := json.Unmarshal(trimmed, &r); err != nil {
			return fmt.Errorf("valid_values range: %w", err)
		}
		v.Range = r.resolve()
	case '[':
		codes := []string{}
		if err := json.Unmarshal(trimmed, &codes); err != nil {
			return fmt.Errorf("valid_values codes: %w", err)
		}
		v.Codes = codes
	default:
		return fmt.Errorf("valid_values must be a range, a list, or null")
	}
	return nil
}

// Bounds returns the numeric range of the question, falling back to 0-999.
func (v *ValidValues) Bounds() (int, int) {
	if v == nil || v.Range == nil {
		return DefaultNumericMin, DefaultNumericMax
	}
	return v.Range.Min, v.Range.Max
}

// PadWidth is the digit width of the declared maximum, used for zero padding on export
func (v *ValidValues) PadWidth() int {
	_, max := v.Bounds()
	return len(strconv.Itoa(max))
}

// Question is one entry of the admission question bank
type Question struct {
	SequenceNumber    string            `yaml:"sequence_number" json:"sequence_number"`
	QuestionText      string            `yaml:"question_text" json:"question_text"`
	FieldType         FieldType         `yaml:"field_type" json:"field_type"`
	DefaultValue      string            `yaml:"default_value" json:"default_value"`
	ValidValues       *ValidValues      `yaml:"valid_values" json:"valid_values"`
	ValueDescriptions map[string]string `yaml:"value_descriptions" json:"value_descriptions"`
	Rules             []Rule            `yaml:"rules" json:"rules"`
}

// Describe returns the human label of a code, or the code itself when undescribed.
// The empty code is shown as N/A.
func (q *Question) Describe(code string) string {
	if desc, ok := q.ValueDescriptions[code]; ok && desc != "" {
		return desc
	}
	if code == "" {
		return "N/A"
	}
	return code
}
