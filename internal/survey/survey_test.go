package survey_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/intake/internal/models"
	"github.com/harrison/intake/internal/parser"
	"github.com/harrison/intake/internal/survey"
)

func admissionSchema(t *testing.T) *survey.Schema {
	t.Helper()
	schema, err := parser.LoadSchema("")
	require.NoError(t, err)
	return schema
}

func TestValidateAll_NumericBounds(t *testing.T) {
	schema := admissionSchema(t)

	for _, q := range schema.Questions() {
		if q.FieldType != models.FieldNumeric {
			continue
		}
		// rule-free numerics only; gated ones are blanked without their drug slot
		if len(q.Rules) > 0 {
			continue
		}
		min, max := q.ValidValues.Bounds()
		seq := q.SequenceNumber

		t.Run(seq, func(t *testing.T) {
			for _, v := range []int{min, max, (min + max) / 2} {
				errs := survey.ValidateAll(schema, models.AnswerSet{seq: strconv.Itoa(v)})
				assert.NotContains(t, errs, seq, "value %d should be accepted", v)
			}
			for _, v := range []int{min - 1, max + 1} {
				errs := survey.ValidateAll(schema, models.AnswerSet{seq: strconv.Itoa(v)})
				assert.Contains(t, errs, seq, "value %d should be rejected", v)
			}
		})
	}
}

func TestValidateAll_NumericMessages(t *testing.T) {
	schema := admissionSchema(t)

	errs := survey.ValidateAll(schema, models.AnswerSet{"21": "999"})
	assert.Equal(t, "Value must be between 0 and 998", errs["21"])

	errs = survey.ValidateAll(schema, models.AnswerSet{"21": "abc"})
	assert.Equal(t, survey.MsgInvalidNumber, errs["21"])

	errs = survey.ValidateAll(schema, models.AnswerSet{"21": "-1"})
	assert.Equal(t, survey.MsgInvalidNumber, errs["21"])

	errs = survey.ValidateAll(schema, models.AnswerSet{"19": "007"})
	assert.NotContains(t, errs, "19")
}

func TestValidateAll_Dates(t *testing.T) {
	schema := admissionSchema(t)

	for _, v := range []string{"", "1/1/2020", "01/01/2020"} {
		errs := survey.ValidateAll(schema, models.AnswerSet{"99": v})
		assert.NotContains(t, errs, "99", "%q should be accepted", v)
	}
	for _, v := range []string{"13/01/2020", "01/32/2020", "2020-01-01"} {
		errs := survey.ValidateAll(schema, models.AnswerSet{"99": v})
		assert.Equal(t, survey.MsgInvalidDate, errs["99"], "%q should be rejected", v)
	}
}

func TestValidateAll_CrossField(t *testing.T) {
	schema := admissionSchema(t)

	t.Run("secondary duplicates primary", func(t *testing.T) {
		errs := survey.ValidateAll(schema, models.AnswerSet{"73": "1", "74": "1"})
		assert.Equal(t, "Secondary drug cannot be the same as primary drug", errs["74"])
	})

	t.Run("tertiary duplicates primary", func(t *testing.T) {
		errs := survey.ValidateAll(schema, models.AnswerSet{"73": "1", "74": "2", "75": "1"})
		assert.NotContains(t, errs, "74")
		assert.Equal(t, "Tertiary drug cannot be the same as primary drug", errs["75"])
	})

	t.Run("tertiary duplicates secondary", func(t *testing.T) {
		errs := survey.ValidateAll(schema, models.AnswerSet{"73": "1", "74": "2", "75": "2"})
		assert.Equal(t, "Tertiary drug cannot be the same as secondary drug", errs["75"])
	})

	t.Run("two none codes conflict", func(t *testing.T) {
		errs := survey.ValidateAll(schema, models.AnswerSet{"73": "0", "74": "0"})
		assert.Contains(t, errs, "74")
	})

	t.Run("distinct codes pass", func(t *testing.T) {
		errs := survey.ValidateAll(schema, models.AnswerSet{"73": "1", "74": "2", "75": "3"})
		assert.True(t, errs.IsEmpty(), "unexpected errors: %v", errs)
	})
}

func TestCheckCrossField_OverwritesEarlierErrors(t *testing.T) {
	errs := models.ErrorSet{"74": survey.InvalidSelectionMessage}
	survey.CheckCrossField(models.AnswerSet{"73": "4", "74": "4"}, errs)
	assert.Equal(t, "Secondary drug cannot be the same as primary drug", errs["74"])
}

func TestValidateAll_RebuildsErrors(t *testing.T) {
	schema := admissionSchema(t)
	answers := models.AnswerSet{"99": "2020-01-01"}

	first := survey.ValidateAll(schema, answers)
	require.Contains(t, first, "99")

	answers["99"] = "01/01/2020"
	second := survey.ValidateAll(schema, answers)
	assert.True(t, second.IsEmpty())
	assert.Contains(t, first, "99")
}

func TestValidateAll_EndToEnd(t *testing.T) {
	schema := admissionSchema(t)

	// 80 holds an out-of-range value but is blanked because 74 is empty
	answers := models.AnswerSet{"73": "1", "74": "", "79": "12", "80": "45"}
	errs := survey.ValidateAll(schema, answers)
	assert.True(t, errs.IsEmpty(), "unexpected errors: %v", errs)

	// once 74 is answered the range check on 80 applies again
	answers["74"] = "2"
	errs = survey.ValidateAll(schema, answers)
	assert.Equal(t, "Value must be between 0 and 30", errs["80"])

	answers["79"] = "31"
	errs = survey.ValidateAll(schema, answers)
	assert.Equal(t, "Value must be between 0 and 30", errs["79"])
}

func TestResolveField_AccommodationsBlanked(t *testing.T) {
	schema := admissionSchema(t)
	q, err := schema.Lookup("59")
	require.NoError(t, err)

	answers := models.AnswerSet{"43": "1"}
	require.NotEmpty(t, q.Rules)
	assert.True(t, survey.Evaluate(q.Rules[0], answers.Get("59"), answers))

	state := survey.ResolveField(q, answers)
	assert.True(t, state.Disabled)
	assert.Equal(t, "", state.Value)
}

func TestResolveAll_Cascades(t *testing.T) {
	schema := admissionSchema(t)

	answers := models.AnswerSet{
		"23": "1",
		"24": "1",
		"73": "",
		"74": "5",
		"75": "6",
		"82": "2",
		"43": "2",
		"46": "1",
		"49": "1",
	}
	resolved, states := survey.ResolveAll(schema, answers)

	assert.Len(t, states, schema.Len())
	// pregnancy question disabled for male clients
	assert.Equal(t, "", resolved["24"])
	// empty primary blanks secondary, which blanks tertiary and its follow-ups
	assert.Equal(t, "", resolved["74"])
	assert.Equal(t, "", resolved["75"])
	assert.Equal(t, "", resolved["82"])
	// a specific disability blanks the summary flag
	assert.Equal(t, "", resolved["49"])
	// defaults fill unanswered questions
	assert.Equal(t, "000", resolved["19"])
	// caller's answers untouched
	assert.Equal(t, "5", answers["74"])
}

func TestResolveAll_FixedValue(t *testing.T) {
	schema := admissionSchema(t)

	resolved, _ := survey.ResolveAll(schema, models.AnswerSet{"73": "0", "79": "15"})
	assert.Equal(t, "0", resolved["79"])
}

func TestFormat(t *testing.T) {
	schema := admissionSchema(t)

	answers := models.AnswerSet{
		"99":    "1/5/2024",
		"18":    "2024-01-05",
		"19":    "7",
		"79":    "3",
		"40":    "12",
		"23":    "2",
		"74":    "",
		"extra": "kept",
	}
	got := survey.Format(schema, answers)

	assert.Equal(t, models.AnswerSet{
		"99":    "01/05/2024",
		"18":    "",
		"19":    "007",
		"79":    "03",
		"40":    "12",
		"23":    "2",
		"74":    "",
		"extra": "kept",
	}, got)

	assert.Equal(t, got, survey.Format(schema, got), "format must be idempotent")
}

func TestFormat_PadsDigitsOnly(t *testing.T) {
	schema := admissionSchema(t)

	got := survey.Format(schema, models.AnswerSet{"19": "-5", "21": "ab", "22": "4"})
	assert.Equal(t, models.AnswerSet{"19": "-5", "21": "ab", "22": "004"}, got)
}
