// Package records holds the client, admission and discharge rules that sit
// around the survey: zip and gender normalization, admission id generation,
// struct validation and spreadsheet ingestion.
package records

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/harrison/intake/internal/survey"
)

// MaxAdmissionIDLength is the longest admission id the export accepts
const MaxAdmissionIDLength = 15

// Gender codes used on client records
const (
	GenderMale    = "1"
	GenderFemale  = "2"
	GenderOther   = "3"
	GenderUnknown = "9"
)

// GenderOptions maps display labels to gender codes in display order
var GenderOptions = []struct {
	Label string
	Code  string
}{
	{"Male", GenderMale},
	{"Female", GenderFemale},
	{"Other", GenderOther},
	{"Unknown", GenderUnknown},
}

var nonDigits = regexp.MustCompile(`\D`)

// NormalizeZip strips everything but digits and returns a 9-digit zip code.
// Five-digit zips are extended with 0000; any other length yields "".
func NormalizeZip(zip string) string {
	clean := nonDigits.ReplaceAllString(zip, "")
	switch len(clean) {
	case 5:
		return clean + "0000"
	case 9:
		return clean
	default:
		return ""
	}
}

// NormalizeGender maps a code or label (case-insensitive, M/F shorthand
// included) to its gender code. Unrecognized input is returned trimmed.
func NormalizeGender(value string) string {
	v := strings.TrimSpace(value)
	switch strings.ToLower(v) {
	case "1", "m", "male":
		return GenderMale
	case "2", "f", "female":
		return GenderFemale
	case "3", "o", "other":
		return GenderOther
	case "9", "u", "unknown":
		return GenderUnknown
	}
	return v
}

// GenerateAdmissionID builds "ADM" + the last four characters of the client
// id + upper-case initials + the admission date as yymmdd. Initials are only
// used when both names are present; an empty or invalid admission date falls
// back to now. The result is truncated to MaxAdmissionIDLength.
func GenerateAdmissionID(clientID, firstName, lastName, admissionDate string, now time.Time) string {
	initials := ""
	if firstName != "" && lastName != "" {
		initials = strings.ToUpper(firstLetter(firstName) + firstLetter(lastName))
	}

	day := now
	if t, ok := survey.ParseDate(admissionDate); ok {
		day = t
	}

	clientPart := clientID
	if r := []rune(clientID); len(r) > 4 {
		clientPart = string(r[len(r)-4:])
	}

	id := fmt.Sprintf("ADM%s%s%s", clientPart, initials, day.Format("060102"))
	if r := []rune(id); len(r) > MaxAdmissionIDLength {
		id = string(r[:MaxAdmissionIDLength])
	}
	return id
}

func firstLetter(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
