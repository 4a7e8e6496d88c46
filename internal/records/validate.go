package records

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/harrison/intake/internal/models"
	"github.com/harrison/intake/internal/survey"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// report fields by their export column name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterValidation("mdy_date", validateMDYDate)
	validate.RegisterValidation("zip9", validateZip9)
	validate.RegisterValidation("gender", validateGender)
}

var tagMessages = map[string]string{
	"required": "is required",
	"mdy_date": "must be a date in MM/DD/YYYY format",
	"zip9":     "must be a 5 or 9 digit zip code",
	"gender":   "must be one of 1 (Male), 2 (Female), 3 (Other), 9 (Unknown)",
	"oneof":    "must be one of: %s",
	"max":      "must be at most %s characters",
}

// FieldErrors lists record validation failures as "Field message" strings
type FieldErrors []string

func (e FieldErrors) Error() string {
	return strings.Join(e, ", ")
}

// ValidateClient checks the required client fields and their formats
func ValidateClient(c models.Client) error {
	return validateStruct(c)
}

// ValidateAdmission checks an admission record
func ValidateAdmission(a models.Admission) error {
	return validateStruct(a)
}

// ValidateDischarge checks a discharge record
func ValidateDischarge(d models.Discharge) error {
	return validateStruct(d)
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate record: %w", err)
	}

	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		if strings.Contains(msg, "%s") {
			msg = fmt.Sprintf(msg, fe.Param())
		}
		out = append(out, fe.Field()+" "+msg)
	}
	return out
}

func validateMDYDate(fl validator.FieldLevel) bool {
	_, ok := survey.ParseDate(fl.Field().String())
	return ok
}

func validateZip9(fl validator.FieldLevel) bool {
	return NormalizeZip(fl.Field().String()) != ""
}

func validateGender(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case GenderMale, GenderFemale, GenderOther, GenderUnknown:
		return true
	}
	return false
}
