package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
}

func relative(t *testing.T, root string, files []string) []string {
	t.Helper()
	// macOS temp dirs sit behind a symlink
	resolvedRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatalf("failed to resolve root: %v", err)
	}
	out := make([]string, 0, len(files))
	for _, f := range files {
		resolved, err := filepath.EvalSymlinks(f)
		if err != nil {
			t.Fatalf("failed to resolve %s: %v", f, err)
		}
		rel, err := filepath.Rel(resolvedRoot, resolved)
		if err != nil {
			t.Fatalf("failed to relativize %s: %v", f, err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestScanDirectory(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"a.json",
		"b.YAML",
		"notes.txt",
		"nested/c.yml",
		"nested/deeper/d.json",
		".hidden/e.json",
		"skip/f.json",
	)

	tests := []struct {
		name string
		opts ScanOptions
		want []string
	}{
		{
			name: "top level only",
			opts: ScanOptions{Extensions: AnswerExtensions},
			want: []string{"a.json", "b.YAML"},
		},
		{
			name: "recursive skips hidden and excluded",
			opts: ScanOptions{Extensions: AnswerExtensions, Recursive: true, ExcludeDirs: []string{"skip"}},
			want: []string{"a.json", "b.YAML", "nested/c.yml", "nested/deeper/d.json"},
		},
		{
			name: "extension without dot",
			opts: ScanOptions{Extensions: []string{"txt"}},
			want: []string{"notes.txt"},
		},
		{
			name: "no extension filter",
			opts: ScanOptions{},
			want: []string{"a.json", "b.YAML", "notes.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanDirectory(root, tt.opts)
			if err != nil {
				t.Fatalf("ScanDirectory() error = %v", err)
			}
			got := relative(t, root, result.Files)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ScanDirectory() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanDirectory_Errors(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "file.json")

	if _, err := ScanDirectory(filepath.Join(root, "missing"), ScanOptions{}); err == nil {
		t.Error("expected error for missing directory")
	}
	if _, err := ScanDirectory(filepath.Join(root, "file.json"), ScanOptions{}); err == nil {
		t.Error("expected error when path is a file")
	}
}

func TestExpandPaths(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "answers/one.json", "answers/two.yaml", "answers/readme.md", "single.txt")
	opts := ScanOptions{Extensions: AnswerExtensions}

	files, err := ExpandPaths([]string{
		filepath.Join(root, "single.txt"),
		filepath.Join(root, "answers"),
		filepath.Join(root, "answers", "one.json"),
	}, opts)
	if err != nil {
		t.Fatalf("ExpandPaths() error = %v", err)
	}

	want := []string{"single.txt", "answers/one.json", "answers/two.yaml"}
	if got := relative(t, root, files); !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandPaths() = %v, want %v", got, want)
	}
}

func TestExpandPaths_Errors(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "empty/readme.md")

	_, err := ExpandPaths([]string{filepath.Join(root, "empty")}, ScanOptions{Extensions: AnswerExtensions})
	if !errors.Is(err, ErrNoInputs) {
		t.Errorf("expected ErrNoInputs, got %v", err)
	}

	if _, err := ExpandPaths([]string{filepath.Join(root, "nope.json")}, ScanOptions{}); err == nil {
		t.Error("expected error for missing path")
	}
}
