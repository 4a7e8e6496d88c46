package survey

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// datePattern accepts M/D/YYYY through MM/DD/YYYY
var datePattern = regexp.MustCompile(`^(0?[1-9]|1[0-2])/(0?[1-9]|[12][0-9]|3[01])/(\d{4})$`)

// ParseDate parses a survey date, rejecting dates that do not exist on the calendar.
func ParseDate(s string) (time.Time, bool) {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, false
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (02/30 becomes 03/01)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

// ValidDate reports whether s is empty or a valid survey date
func ValidDate(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	_, ok := ParseDate(s)
	return ok
}

// FormatDate canonicalizes a date to MM/DD/YYYY. Unparseable input yields "".
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%04d", int(t.Month()), t.Day(), t.Year())
}
