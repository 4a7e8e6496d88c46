package parser

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/harrison/intake/internal/models"
)

// YAMLParser parses YAML question banks
type YAMLParser struct{}

// NewYAMLParser creates a new YAML parser instance
func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

// Parse decodes a question bank. Unknown keys are rejected so that typos in
// rule definitions surface at load time instead of silently disabling a rule.
func (p *YAMLParser) Parse(r io.Reader) (*models.QuestionBank, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var bank models.QuestionBank
	if err := dec.Decode(&bank); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty question bank")
		}
		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}
	if len(bank.Questions) == 0 {
		return nil, fmt.Errorf("question bank has no questions")
	}
	return &bank, nil
}
