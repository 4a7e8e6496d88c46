package models

import (
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

// AnswerSet maps a question sequence number to its answer.
// The empty string is a real answer meaning "no answer" / N/A.
type AnswerSet map[string]string

// Get returns the answer for seq, treating a missing key as the empty answer
func (a AnswerSet) Get(seq string) string {
	if a == nil {
		return ""
	}
	return a[seq]
}

// Clone returns an independent copy of the answer set
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Merge returns a copy of a with every entry of other written over it
func (a AnswerSet) Merge(other AnswerSet) AnswerSet {
	out := a.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// ErrorSet maps a question sequence number to a human readable validation error
type ErrorSet map[string]string

// IsEmpty reports whether the set holds no errors
func (e ErrorSet) IsEmpty() bool {
	return len(e) == 0
}

// Keys returns the sequence numbers with errors in a stable order.
// Numeric sequence numbers sort numerically ahead of any others.
func (e ErrorSet) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	SortSequenceNumbers(keys)
	return keys
}

// SortSequenceNumbers orders sequence numbers numerically where possible
func SortSequenceNumbers(seqs []string) {
	sort.SliceStable(seqs, func(i, j int) bool {
		a, aok := atoiDigits(seqs[i])
		b, bok := atoiDigits(seqs[j])
		switch {
		case aok && bok:
			if a != b {
				return a < b
			}
			return seqs[i] < seqs[j]
		case aok:
			return true
		case bok:
			return false
		}
		return seqs[i] < seqs[j]
	})
}

func atoiDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// ScalarString converts a decoded JSON or YAML scalar into answer text.
// Numbers keep their literal text, booleans become "true"/"false" and null
// becomes "". Arrays and objects are not scalars and report false.
func ScalarString(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", true
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case json.Number:
		return val.String(), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	}
	return "", false
}
