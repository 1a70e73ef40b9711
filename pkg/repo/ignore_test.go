package repo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIgnoreChecker(t *testing.T) {
	dir := t.TempDir()
	rules := "# comment\n\n*.log\n!keep.log\nbuild/\n/root.txt\nlogs/**/debug.txt\n"
	if err := os.WriteFile(filepath.Join(dir, IgnoreFileName), []byte(rules), 0o644); err != nil {
		t.Fatalf("write ignore file: %v", err)
	}
	ic := NewIgnoreChecker(dir)

	dirs := []struct {
		path string
		want bool
	}{
		{MetaDirName, true},
		{"build", true},
		{"src/build", true},
		{"logs", false},
	}
	for _, tt := range dirs {
		if got := ic.IsIgnoredDir(tt.path); got != tt.want {
			t.Errorf("IsIgnoredDir(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}

	tests := []struct {
		path string
		want bool
	}{
		{MetaDirName + "/objects/ab/cd", true},
		{".git/HEAD", true},
		{"app.log", true},
		{"docs/app.log", true},
		{"keep.log", false},
		{"build", false},
		{"build/out/x.bin", true},
		{"src/build.go", false},
		{"root.txt", true},
		{"sub/root.txt", false},
		{"logs/a/b/debug.txt", true},
		{"logs/debug.txt", true},
		{"logs/info.txt", false},
		{"a.txt", false},
	}
	for _, tt := range tests {
		if got := ic.IsIgnored(tt.path); got != tt.want {
			t.Errorf("IsIgnored(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIgnoreChecker_NoFile(t *testing.T) {
	ic := NewIgnoreChecker(t.TempDir())
	if ic.IsIgnored("a.txt") {
		t.Error("a.txt ignored without an ignore file")
	}
	if !ic.IsIgnored(MetaDirName + "/index") {
		t.Error("metadata directory not ignored")
	}
}
