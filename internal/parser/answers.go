package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/harrison/intake/internal/models"
)

// ParseAnswersFile reads a stored answer set. The file is a flat mapping of
// sequence number to answer, in YAML or JSON by extension.
func ParseAnswersFile(path string) (models.AnswerSet, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%w: %s (supported: .yaml, .yml, .json)", ErrUnknownFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}

	answers, err := ParseAnswers(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return answers, nil
}

// ParseAnswers decodes an answer set in the given format
func ParseAnswers(data []byte, format Format) (models.AnswerSet, error) {
	switch format {
	case FormatYAML:
		return parseYAMLAnswers(data)
	case FormatJSON:
		return parseJSONAnswers(data)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
}

// parseYAMLAnswers walks the document node directly so that keys such as 73
// and values such as 000 keep their literal text.
func parseYAMLAnswers(data []byte) (models.AnswerSet, error) {
	answers := make(models.AnswerSet)

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return answers, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("answers must be a mapping of sequence number to value (line %d)", root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("answer %q must be a scalar (line %d)", key.Value, val.Line)
		}
		value := val.Value
		if val.Tag == "!!null" {
			value = ""
		}
		answers[strings.TrimSpace(key.Value)] = value
	}
	return answers, nil
}

func parseJSONAnswers(data []byte) (models.AnswerSet, error) {
	answers := make(models.AnswerSet)
	if len(bytes.TrimSpace(data)) == 0 {
		return answers, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return answers, nil
		}
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	for key, v := range raw {
		value, ok := models.ScalarString(v)
		if !ok {
			return nil, fmt.Errorf("answer %q must be a scalar", key)
		}
		answers[strings.TrimSpace(key)] = value
	}
	return answers, nil
}

// WriteAnswers encodes answers as indented JSON with keys in sequence order
func WriteAnswers(answers models.AnswerSet) ([]byte, error) {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	models.SortSequenceNumbers(keys)

	var buf bytes.Buffer
	buf.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			buf.WriteString(",")
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("failed to encode key %q: %w", k, err)
		}
		vb, err := json.Marshal(answers[k])
		if err != nil {
			return nil, fmt.Errorf("failed to encode answer %q: %w", k, err)
		}
		buf.WriteString("\n  ")
		buf.Write(kb)
		buf.WriteString(": ")
		buf.Write(vb)
	}
	if len(keys) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}
