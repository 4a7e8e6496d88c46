package parser

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/harrison/intake/internal/models"
	"github.com/harrison/intake/internal/survey"
)

//go:embed banks/admission.yaml
var admissionBank []byte

// DefaultBank returns the admission question bank compiled into the binary
func DefaultBank() (*models.QuestionBank, error) {
	bank, err := NewYAMLParser().Parse(bytes.NewReader(admissionBank))
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded admission bank: %w", err)
	}
	return bank, nil
}

// LoadBank loads the question bank at path, or the embedded admission bank
// when path is empty.
func LoadBank(path string) (*models.QuestionBank, error) {
	if path == "" {
		return DefaultBank()
	}
	return ParseFile(path)
}

// LoadSchema loads a question bank and builds its schema.
// Integrity problems in the bank abort the load.
func LoadSchema(path string) (*survey.Schema, error) {
	bank, err := LoadBank(path)
	if err != nil {
		return nil, err
	}
	schema, err := survey.NewSchema(bank.Questions)
	if err != nil {
		name := bank.Source
		if name == "" {
			name = "embedded " + bank.Name + " bank"
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return schema, nil
}
