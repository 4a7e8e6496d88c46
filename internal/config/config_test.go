package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ProviderID != "ABC123" {
		t.Errorf("ProviderID = %q, want %q", cfg.ProviderID, "ABC123")
	}
	if cfg.ProviderLocationID != "LOC001" {
		t.Errorf("ProviderLocationID = %q, want %q", cfg.ProviderLocationID, "LOC001")
	}
	if cfg.QuestionBank != "" {
		t.Errorf("QuestionBank = %q, want empty", cfg.QuestionBank)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogDir != ".intake/logs" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, ".intake/logs")
	}
	if cfg.Export.QuestionGroup != "ADM" {
		t.Errorf("Export.QuestionGroup = %q, want %q", cfg.Export.QuestionGroup, "ADM")
	}
	if cfg.Export.SurveyRecordType != "Survey" {
		t.Errorf("Export.SurveyRecordType = %q, want %q", cfg.Export.SurveyRecordType, "Survey")
	}
	if cfg.Import.MaxUnmatchedShown != 3 {
		t.Errorf("Import.MaxUnmatchedShown = %d, want 3", cfg.Import.MaxUnmatchedShown)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

// TestLoadConfigValidFile tests loading a valid YAML config file
func TestLoadConfigValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `provider_id: PRV9
log_level: debug
log_dir: /tmp/logs
question_bank: banks/custom.yaml
export:
  question_group: DIS
  default_service_code: "51"
import:
  max_unmatched_shown: 0
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.ProviderID != "PRV9" {
		t.Errorf("ProviderID = %q, want %q", cfg.ProviderID, "PRV9")
	}
	if cfg.ProviderLocationID != "LOC001" {
		t.Errorf("ProviderLocationID = %q, want default %q", cfg.ProviderLocationID, "LOC001")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogDir != "/tmp/logs" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/tmp/logs")
	}
	wantBank := filepath.Join(tmpDir, "banks", "custom.yaml")
	if cfg.QuestionBank != wantBank {
		t.Errorf("QuestionBank = %q, want %q", cfg.QuestionBank, wantBank)
	}
	if cfg.Export.QuestionGroup != "DIS" {
		t.Errorf("Export.QuestionGroup = %q, want %q", cfg.Export.QuestionGroup, "DIS")
	}
	if cfg.Export.SurveyRecordType != "Survey" {
		t.Errorf("Export.SurveyRecordType = %q, want default %q", cfg.Export.SurveyRecordType, "Survey")
	}
	if cfg.Export.DefaultServiceCode != "51" {
		t.Errorf("Export.DefaultServiceCode = %q, want %q", cfg.Export.DefaultServiceCode, "51")
	}
	if cfg.Import.MaxUnmatchedShown != 0 {
		t.Errorf("Import.MaxUnmatchedShown = %d, want explicit 0", cfg.Import.MaxUnmatchedShown)
	}
}

// TestLoadConfigMissingFile tests that a missing file yields defaults
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ProviderID != "ABC123" {
		t.Errorf("ProviderID = %q, want default", cfg.ProviderID)
	}
}

// TestLoadConfigMalformed tests that invalid YAML is reported
func TestLoadConfigMalformed(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("provider_id: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Fatal("LoadConfig() expected error for malformed YAML")
	}
}

// TestLoadConfigFromDir tests loading .intake/config.yaml under a directory
func TestLoadConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, HomeDirName), 0755); err != nil {
		t.Fatal(err)
	}
	content := []byte("provider_location_id: LOC777\n")
	if err := os.WriteFile(filepath.Join(dir, HomeDirName, "config.yaml"), content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFromDir(dir)
	if err != nil {
		t.Fatalf("LoadConfigFromDir() error = %v", err)
	}
	if cfg.ProviderLocationID != "LOC777" {
		t.Errorf("ProviderLocationID = %q, want %q", cfg.ProviderLocationID, "LOC777")
	}
}

// TestMergeWithFlags tests that flags take precedence over config values
func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	bank := "/banks/other.json"
	level := "warn"

	cfg.MergeWithFlags(&bank, &level, nil, nil)

	if cfg.QuestionBank != bank {
		t.Errorf("QuestionBank = %q, want %q", cfg.QuestionBank, bank)
	}
	if cfg.LogLevel != level {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, level)
	}
	if cfg.LogDir != ".intake/logs" {
		t.Errorf("LogDir = %q, want unchanged default", cfg.LogDir)
	}
	if cfg.ProviderID != "ABC123" {
		t.Errorf("ProviderID = %q, want unchanged default", cfg.ProviderID)
	}
}

// TestValidate tests configuration validation
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "defaults", modify: func(c *Config) {}, wantErr: false},
		{name: "bad log level", modify: func(c *Config) { c.LogLevel = "verbose" }, wantErr: true},
		{name: "empty provider", modify: func(c *Config) { c.ProviderID = "" }, wantErr: true},
		{name: "empty location", modify: func(c *Config) { c.ProviderLocationID = "" }, wantErr: true},
		{name: "empty question group", modify: func(c *Config) { c.Export.QuestionGroup = "" }, wantErr: true},
		{name: "negative unmatched", modify: func(c *Config) { c.Import.MaxUnmatchedShown = -1 }, wantErr: true},
		{name: "zero unmatched", modify: func(c *Config) { c.Import.MaxUnmatchedShown = 0 }, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestGetIntakeHomeWithEnvVar tests INTAKE_HOME takes precedence
func TestGetIntakeHomeWithEnvVar(t *testing.T) {
	customHome := filepath.Join(t.TempDir(), "home")
	t.Setenv(HomeEnvVar, customHome)

	home, err := GetIntakeHome()
	if err != nil {
		t.Fatalf("GetIntakeHome() error = %v", err)
	}
	if home != customHome {
		t.Errorf("GetIntakeHome() = %q, want %q", home, customHome)
	}
	if info, err := os.Stat(customHome); err != nil || !info.IsDir() {
		t.Errorf("GetIntakeHome() did not create %q", customHome)
	}

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath() error = %v", err)
	}
	if want := filepath.Join(customHome, "config.yaml"); path != want {
		t.Errorf("ConfigPath() = %q, want %q", path, want)
	}
}

// TestGetIntakeHomeFallback tests the working directory fallback
func TestGetIntakeHomeFallback(t *testing.T) {
	t.Setenv(HomeEnvVar, "")
	dir := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	home, err := GetIntakeHome()
	if err != nil {
		t.Fatalf("GetIntakeHome() error = %v", err)
	}

	// macOS temp dirs resolve through /private
	want, _ := filepath.EvalSymlinks(filepath.Join(dir, HomeDirName))
	got, _ := filepath.EvalSymlinks(home)
	if got != want {
		t.Errorf("GetIntakeHome() = %q, want %q", got, want)
	}
}
