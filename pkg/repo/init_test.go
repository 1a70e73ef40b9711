package repo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_CreatesLayout(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	for _, rel := range []string{"objects", "refs/heads", "logs/refs/heads"} {
		info, err := os.Stat(filepath.Join(r.MetaDir, filepath.FromSlash(rel)))
		if err != nil || !info.IsDir() {
			t.Errorf("%s missing: %v", rel, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(r.MetaDir, "HEAD"))
	if err != nil {
		t.Fatalf("read HEAD: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "ref: refs/heads/main" {
		t.Errorf("HEAD = %q, want %q", got, "ref: refs/heads/main")
	}
	if _, err := os.Stat(filepath.Join(r.MetaDir, "config.toml")); err != nil {
		t.Errorf("config.toml missing: %v", err)
	}
}

func TestInit_AlreadyExists(t *testing.T) {
	dir := t.TempDir()
	if _, err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := Init(dir); err == nil {
		t.Fatal("second Init should fail")
	}
}

func TestOpen_FromSubdirectory(t *testing.T) {
	r := initTestRepo(t)
	sub := filepath.Join(r.RootDir, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	opened, err := Open(sub)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if opened.RootDir != r.RootDir {
		t.Errorf("RootDir = %q, want %q", opened.RootDir, r.RootDir)
	}
}

func TestOpen_NotARepository(t *testing.T) {
	_, err := Open(t.TempDir())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Open outside repository: got %v, want ErrNotFound", err)
	}
}

func TestResolveHead_Unborn(t *testing.T) {
	r := initTestRepo(t)
	if _, err := r.ResolveHead(); !errors.Is(err, ErrNoCommits) {
		t.Fatalf("ResolveHead on empty repo: got %v, want ErrNoCommits", err)
	}
}
