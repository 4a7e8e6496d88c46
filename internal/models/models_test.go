package models

import (
	"reflect"
	"testing"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

func TestAnswerSetGet(t *testing.T) {
	var nilSet AnswerSet
	if got := nilSet.Get("19"); got != "" {
		t.Errorf("nil set Get = %q, want empty", got)
	}

	a := AnswerSet{"19": "5", "24": ""}
	if got := a.Get("19"); got != "5" {
		t.Errorf("Get(19) = %q, want 5", got)
	}
	if got := a.Get("99"); got != "" {
		t.Errorf("missing key should read as empty, got %q", got)
	}
}

func TestAnswerSetMergeDoesNotMutate(t *testing.T) {
	base := AnswerSet{"19": "5", "23": "1"}
	merged := base.Merge(AnswerSet{"23": "2", "73": "4"})

	want := AnswerSet{"19": "5", "23": "2", "73": "4"}
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("Merge = %v, want %v", merged, want)
	}
	if base.Get("23") != "1" || len(base) != 2 {
		t.Errorf("base was modified: %v", base)
	}
}

func TestErrorSetKeys(t *testing.T) {
	errs := ErrorSet{"99": "a", "18": "b", "abc": "c", "100": "d", "7": "e"}
	want := []string{"7", "18", "99", "100", "abc"}
	if got := errs.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys = %v, want %v", got, want)
	}
	if errs.IsEmpty() {
		t.Error("IsEmpty should be false")
	}
	if !(ErrorSet{}).IsEmpty() {
		t.Error("empty set should report IsEmpty")
	}
}

func TestScalarString(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   string
		wantOK bool
	}{
		{"nil", nil, "", true},
		{"string", "03", "03", true},
		{"bool", true, "true", true},
		{"json number", json.Number("12"), "12", true},
		{"float", float64(2), "2", true},
		{"int", 7, "7", true},
		{"slice", []any{"1"}, "", false},
		{"map", map[string]any{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ScalarString(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ScalarString(%v) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestValidValuesYAML(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantRange *NumericRange
		wantCodes []string
		wantErr   bool
	}{
		{
			name:      "range",
			doc:       "valid_values: {min: 0, max: 30}",
			wantRange: &NumericRange{Min: 0, Max: 30},
		},
		{
			name:      "range with missing max",
			doc:       "valid_values: {min: 1}",
			wantRange: &NumericRange{Min: 1, Max: DefaultNumericMax},
		},
		{
			name:      "codes",
			doc:       `valid_values: ["", "1", "2"]`,
			wantCodes: []string{"", "1", "2"},
		},
		{
			name:    "scalar",
			doc:     "valid_values: 5",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Question
			err := yaml.Unmarshal([]byte(tt.doc), &q)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(q.ValidValues.Range, tt.wantRange) {
				t.Errorf("Range = %+v, want %+v", q.ValidValues.Range, tt.wantRange)
			}
			if !reflect.DeepEqual(q.ValidValues.Codes, tt.wantCodes) {
				t.Errorf("Codes = %v, want %v", q.ValidValues.Codes, tt.wantCodes)
			}
		})
	}
}

func TestValidValuesJSON(t *testing.T) {
	var q Question
	if err := json.Unmarshal([]byte(`{"valid_values": {"max": 96}}`), &q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	min, max := q.ValidValues.Bounds()
	if min != 0 || max != 96 {
		t.Errorf("Bounds = %d-%d, want 0-96", min, max)
	}
	if q.ValidValues.PadWidth() != 2 {
		t.Errorf("PadWidth = %d, want 2", q.ValidValues.PadWidth())
	}

	var none Question
	if err := json.Unmarshal([]byte(`{"valid_values": null}`), &none); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !none.ValidValues.IsZero() {
		t.Error("null valid_values should be zero")
	}
	if none.ValidValues.PadWidth() != 3 {
		t.Errorf("default PadWidth = %d, want 3", none.ValidValues.PadWidth())
	}
}

func TestQuestionDescribe(t *testing.T) {
	q := Question{ValueDescriptions: map[string]string{"1": "Male", "2": ""}}

	if got := q.Describe("1"); got != "Male" {
		t.Errorf("Describe(1) = %q", got)
	}
	if got := q.Describe("2"); got != "2" {
		t.Errorf("undescribed code should echo, got %q", got)
	}
	if got := q.Describe(""); got != "N/A" {
		t.Errorf("empty code = %q, want N/A", got)
	}
}

func TestConditionAndActionKnown(t *testing.T) {
	for _, op := range []ConditionOp{OpAnyEquals, OpEquals, OpEmpty, OpCollides} {
		if !op.IsKnown() {
			t.Errorf("%s should be known", op)
		}
	}
	if ConditionOp("greater").IsKnown() {
		t.Error("unknown op reported known")
	}
	if !OpEquals.SingleDependency() || OpAnyEquals.SingleDependency() {
		t.Error("SingleDependency mismatch")
	}
	if Action("delete").IsKnown() || !ActionEnable.IsKnown() {
		t.Error("Action.IsKnown mismatch")
	}
	if !FieldType("").IsKnown() || FieldType("slider").IsKnown() {
		t.Error("FieldType.IsKnown mismatch")
	}
}
