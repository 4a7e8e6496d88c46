// Package importer reconciles free-form JSON answer sets against the
// question schema. Keys are matched to questions by their label text,
// tolerant of case and punctuation, and matched answers are merged into the
// caller's answer set.
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/goccy/go-json"

	"github.com/harrison/intake/internal/models"
	"github.com/harrison/intake/internal/survey"
)

var (
	// ErrMalformedInput is returned when no JSON object can be read from the text
	ErrMalformedInput = errors.New("malformed input")
	// ErrInvalidShape is returned when the JSON is not a flat object of scalars
	ErrInvalidShape = errors.New("invalid shape")
)

// Importer matches question labels to sequence numbers for one schema
type Importer struct {
	schema *survey.Schema
	labels map[string]string
}

// New builds the label lookup for schema. Each question registers its text
// exact, lower-cased, punctuation-stripped and stripped lower-cased. When two
// questions produce the same variant the first one keeps it.
func New(schema *survey.Schema) *Importer {
	im := &Importer{
		schema: schema,
		labels: make(map[string]string, schema.Len()*4),
	}
	for _, q := range schema.Questions() {
		for _, variant := range labelVariants(q.QuestionText) {
			if variant == "" {
				continue
			}
			if _, taken := im.labels[variant]; !taken {
				im.labels[variant] = q.SequenceNumber
			}
		}
	}
	return im
}

// Match returns the sequence number a label resolves to
func (im *Importer) Match(label string) (string, bool) {
	for _, variant := range labelVariants(strings.TrimSpace(label)) {
		if seq, ok := im.labels[variant]; ok {
			return seq, true
		}
	}
	return "", false
}

// Import reads a JSON object out of raw, stages every matched answer and
// merges the staged answers over current. current is not modified.
//
// The merged set is checked for drug-type conflicts only; type and range
// checks wait for the next full validation. Errors abort the import with
// nothing merged.
func (im *Importer) Import(raw string, current models.AnswerSet) (*Result, error) {
	candidates, err := extractObject(raw)
	if err != nil {
		return nil, err
	}

	values, keys, err := decodeFirst(candidates)
	if err != nil {
		return nil, err
	}

	staged := make(models.AnswerSet)
	var unmatched []string
	for _, key := range keys {
		seq, ok := im.Match(key)
		if !ok {
			unmatched = append(unmatched, key)
			continue
		}
		staged[seq] = values[key]
	}

	merged := current.Merge(staged)
	conflicts := make(models.ErrorSet)
	survey.CheckCrossField(merged, conflicts)

	return &Result{
		Answers:   merged,
		Staged:    staged,
		Imported:  len(staged),
		Unmatched: unmatched,
		Conflicts: conflicts,
	}, nil
}

// Import is a convenience wrapper building a one-off Importer for schema
func Import(raw string, schema *survey.Schema, current models.AnswerSet) (*Result, error) {
	return New(schema).Import(raw, current)
}

// extractObject returns the candidate payloads of raw in the order they are
// tried: the text from the first '{' on, and the body of a fenced code block
// holding an object. The block goes first only when that first '{' lies
// inside it.
func extractObject(raw string) ([][]byte, error) {
	src := []byte(raw)
	start := bytes.IndexByte(src, '{')
	if start < 0 {
		return nil, fmt.Errorf("%w: no JSON object found", ErrMalformedInput)
	}
	fromBrace := src[start:]

	block, ok := fencedObject(src)
	if !ok {
		return [][]byte{fromBrace}, nil
	}
	payload := block.body[bytes.IndexByte(block.body, '{'):]
	if block.contains(start) {
		return [][]byte{payload, fromBrace}, nil
	}
	return [][]byte{fromBrace, payload}, nil
}

// decodeFirst decodes the first candidate that holds a valid flat object.
// When none does, the error of the first candidate is returned.
func decodeFirst(candidates [][]byte) (map[string]string, []string, error) {
	var firstErr error
	for _, payload := range candidates {
		values, keys, err := decodeFlat(payload)
		if err == nil {
			return values, keys, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, nil, firstErr
}

// decodeFlat decodes the leading JSON object of payload. Anything after the
// closing brace is ignored. It returns the answers by key and the keys in
// input order.
func decodeFlat(payload []byte) (map[string]string, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidShape)
	}

	values := make(map[string]string, len(obj))
	for key, v := range obj {
		s, ok := models.ScalarString(v)
		if !ok {
			return nil, nil, fmt.Errorf("%w: value for %q is not a scalar", ErrInvalidShape, key)
		}
		values[key] = s
	}

	keys, err := objectKeys(payload)
	if err != nil || len(keys) < len(values) {
		// order is best effort; fall back to sorted keys
		keys = make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}
	return values, keys, nil
}

// objectKeys lists the top-level keys of an already validated flat object
// in the order they appear. Duplicate keys are listed each time they occur.
func objectKeys(payload []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var keys []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			return keys, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		keys = append(keys, key)
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
	}
}

// labelVariants returns the lookup keys of a label in probe order
func labelVariants(label string) []string {
	stripped := stripPunctuation(label)
	return []string{
		label,
		strings.ToLower(label),
		stripped,
		strings.ToLower(stripped),
	}
}

// stripPunctuation keeps letters, digits, underscores and whitespace
func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}
