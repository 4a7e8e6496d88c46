package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ExportConfig controls the shape of exported records
type ExportConfig struct {
	// SurveyRecordType tags every survey export row
	SurveyRecordType string `yaml:"survey_record_type"`

	// QuestionGroup is the constant question group written on survey rows
	QuestionGroup string `yaml:"question_group"`

	// AdmissionRecordType tags every admission export row
	AdmissionRecordType string `yaml:"admission_record_type"`

	// DefaultServiceCode fills admissions without a service code
	DefaultServiceCode string `yaml:"default_service_code"`

	// DefaultPayerAccountID fills admissions without a payer account
	DefaultPayerAccountID string `yaml:"default_payer_account_id"`

	// DefaultPrimaryClinician fills admissions without a clinician name
	DefaultPrimaryClinician string `yaml:"default_primary_clinician"`
}

// ImportConfig controls JSON answer imports
type ImportConfig struct {
	// MaxUnmatchedShown is how many unmatched labels an import summary lists
	MaxUnmatchedShown int `yaml:"max_unmatched_shown"`
}

// Config represents intake configuration options
type Config struct {
	// ProviderID identifies the reporting provider on every record
	ProviderID string `yaml:"provider_id"`

	// ProviderLocationID identifies the provider location on admissions
	ProviderLocationID string `yaml:"provider_location_id"`

	// QuestionBank is a path to a YAML or JSON bank; empty uses the built-in admission bank
	QuestionBank string `yaml:"question_bank"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs are written
	LogDir string `yaml:"log_dir"`

	Export ExportConfig `yaml:"export"`
	Import ImportConfig `yaml:"import"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		ProviderID:         "ABC123",
		ProviderLocationID: "LOC001",
		QuestionBank:       "",
		LogLevel:           "info",
		LogDir:             ".intake/logs",
		Export: ExportConfig{
			SurveyRecordType:    "Survey",
			QuestionGroup:       "ADM",
			AdmissionRecordType: "Admission",
		},
		Import: ImportConfig{
			MaxUnmatchedShown: 3,
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	mergeString(&cfg.ProviderID, fileCfg.ProviderID)
	mergeString(&cfg.ProviderLocationID, fileCfg.ProviderLocationID)
	mergeString(&cfg.QuestionBank, fileCfg.QuestionBank)
	mergeString(&cfg.LogLevel, fileCfg.LogLevel)
	mergeString(&cfg.LogDir, fileCfg.LogDir)

	mergeString(&cfg.Export.SurveyRecordType, fileCfg.Export.SurveyRecordType)
	mergeString(&cfg.Export.QuestionGroup, fileCfg.Export.QuestionGroup)
	mergeString(&cfg.Export.AdmissionRecordType, fileCfg.Export.AdmissionRecordType)
	mergeString(&cfg.Export.DefaultServiceCode, fileCfg.Export.DefaultServiceCode)
	mergeString(&cfg.Export.DefaultPayerAccountID, fileCfg.Export.DefaultPayerAccountID)
	mergeString(&cfg.Export.DefaultPrimaryClinician, fileCfg.Export.DefaultPrimaryClinician)

	// max_unmatched_shown is explicitly set if present, even when zero
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if importSection, ok := rawMap["import"].(map[string]interface{}); ok {
			if _, exists := importSection["max_unmatched_shown"]; exists {
				cfg.Import.MaxUnmatchedShown = fileCfg.Import.MaxUnmatchedShown
			}
		}
	}

	// A relative bank path is resolved against the config file location
	if cfg.QuestionBank != "" && !filepath.IsAbs(cfg.QuestionBank) {
		cfg.QuestionBank = filepath.Join(filepath.Dir(path), cfg.QuestionBank)
	}

	return cfg, nil
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// LoadConfigFromDir loads configuration from .intake/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, HomeDirName, "config.yaml")
	return LoadConfig(configPath)
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(questionBank *string, logLevel *string, logDir *string, providerID *string) {
	if questionBank != nil {
		c.QuestionBank = *questionBank
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if providerID != nil {
		c.ProviderID = *providerID
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.ProviderID == "" {
		return fmt.Errorf("provider_id cannot be empty")
	}
	if c.ProviderLocationID == "" {
		return fmt.Errorf("provider_location_id cannot be empty")
	}
	if c.Export.SurveyRecordType == "" {
		return fmt.Errorf("export.survey_record_type cannot be empty")
	}
	if c.Export.QuestionGroup == "" {
		return fmt.Errorf("export.question_group cannot be empty")
	}
	if c.Import.MaxUnmatchedShown < 0 {
		return fmt.Errorf("import.max_unmatched_shown must be >= 0, got %d", c.Import.MaxUnmatchedShown)
	}

	return nil
}
