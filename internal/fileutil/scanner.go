package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoInputs is returned when expansion finds nothing to process
var ErrNoInputs = errors.New("no input files found")

// Extension sets accepted by intake commands
var (
	AnswerExtensions = []string{".yaml", ".yml", ".json"}
	ClientExtensions = []string{".csv", ".tsv", ".txt"}
)

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Extensions lists the file extensions to include (e.g., ".json", "yaml")
	Extensions []string
	// Recursive enables descending into subdirectories
	Recursive bool
	// ExcludeDirs lists directory names to skip (e.g., "testdata")
	ExcludeDirs []string
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the absolute paths of all matched files
	Files []string
	// Errors contains non-fatal errors met while walking
	Errors []error
}

// ScanDirectory walks dir and collects files matching opts
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	exts := extensionSet(opts.Extensions)
	excluded := make(map[string]bool, len(opts.ExcludeDirs))
	for _, name := range opts.ExcludeDirs {
		excluded[name] = true
	}

	result := &ScanResult{Files: []string{}}
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil
		}
		if path == dir {
			return nil
		}

		if d.IsDir() {
			if !opts.Recursive || excluded[d.Name()] || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !matchesExtension(d.Name(), exts) {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to resolve path %s: %w", path, err))
			return nil
		}
		result.Files = append(result.Files, abs)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Strings(result.Files)
	return result, nil
}

// ExpandPaths turns a mix of file and directory arguments into absolute
// file paths. Files named explicitly are kept whatever their extension;
// directories contribute the files ScanDirectory finds. Order follows the
// arguments, and a file reached twice is listed once.
func ExpandPaths(paths []string, opts ScanOptions) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", p, err)
		}
		if !info.IsDir() {
			abs, err := filepath.Abs(p)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve path %s: %w", p, err)
			}
			add(abs)
			continue
		}

		result, err := ScanDirectory(p, opts)
		if err != nil {
			return nil, err
		}
		for _, f := range result.Files {
			add(f)
		}
	}

	if len(files) == 0 {
		return nil, ErrNoInputs
	}
	return files, nil
}

func extensionSet(extensions []string) map[string]bool {
	set := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[strings.ToLower(ext)] = true
	}
	return set
}

// matchesExtension reports whether name carries one of exts; an empty set matches everything
func matchesExtension(name string, exts map[string]bool) bool {
	if len(exts) == 0 {
		return true
	}
	return exts[strings.ToLower(filepath.Ext(name))]
}
