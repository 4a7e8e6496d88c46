package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/intake/internal/models"
)

// ErrUnknownFormat is returned for files whose extension maps to no parser
var ErrUnknownFormat = errors.New("unknown file format")

// Format represents the format of a question bank or answers file
type Format int

const (
	// FormatUnknown represents an unknown or unsupported file format
	FormatUnknown Format = iota
	// FormatYAML represents a YAML (.yaml, .yml) file
	FormatYAML
	// FormatJSON represents a JSON (.json) file
	FormatJSON
)

// String returns the string representation of the Format
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Parser is the interface that all question bank parsers implement
type Parser interface {
	// Parse reads from an io.Reader and returns the decoded bank
	Parse(r io.Reader) (*models.QuestionBank, error)
}

// DetectFormat detects the file format based on file extension
// Supported extensions:
//   - .yaml, .yml -> FormatYAML
//   - .json -> FormatJSON
//   - all others -> FormatUnknown
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatUnknown
	}
}

// NewParser creates a new parser instance for the specified format
func NewParser(format Format) (Parser, error) {
	switch format {
	case FormatYAML:
		return NewYAMLParser(), nil
	case FormatJSON:
		return NewJSONParser(), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
}

// ParseFile detects the format of path, parses it, and records the absolute
// path of the file in bank.Source.
func ParseFile(path string) (*models.QuestionBank, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%w: %s (supported: .yaml, .yml, .json)", ErrUnknownFormat, path)
	}

	parser, err := NewParser(format)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	bank, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	bank.Source = absPath

	return bank, nil
}
