package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/harrison/intake/internal/models"
)

// JSONParser parses JSON question banks
type JSONParser struct{}

// NewJSONParser creates a new JSON parser instance
func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

// Parse decodes a question bank with the same shape as the YAML form
func (p *JSONParser) Parse(r io.Reader) (*models.QuestionBank, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var bank models.QuestionBank
	if err := dec.Decode(&bank); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty question bank")
		}
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	if len(bank.Questions) == 0 {
		return nil, fmt.Errorf("question bank has no questions")
	}
	return &bank, nil
}
