package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeDirName is the per-project directory holding config and logs
const HomeDirName = ".intake"

// HomeEnvVar overrides the intake home directory
const HomeEnvVar = "INTAKE_HOME"

// GetIntakeHome returns the intake home directory
// Priority order:
//  1. INTAKE_HOME environment variable (if set)
//  2. .intake under the current working directory
//
// The directory is created if it doesn't exist
func GetIntakeHome() (string, error) {
	if home := os.Getenv(HomeEnvVar); home != "" {
		if err := os.MkdirAll(home, 0755); err != nil {
			return "", fmt.Errorf("create intake home directory: %w", err)
		}
		return home, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	home := filepath.Join(cwd, HomeDirName)
	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("create intake home directory: %w", err)
	}
	return home, nil
}

// ConfigPath returns the config file location: config.yaml inside the intake home.
// Unlike GetIntakeHome it never creates directories.
func ConfigPath() (string, error) {
	if home := os.Getenv(HomeEnvVar); home != "" {
		return filepath.Join(home, "config.yaml"), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return filepath.Join(cwd, HomeDirName, "config.yaml"), nil
}
