package repo

import (
	"os"
	"path/filepath"
	"testing"
)

var testAuthor = Signature{Name: "Gérard Test", Email: "gerard.test@example.com"}

func initTestRepo(t *testing.T) *Repo {
	t.Helper()
	r, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return r
}

func writeWorktreeFile(t *testing.T, r *Repo, rel, content string) {
	t.Helper()
	abs := filepath.Join(r.RootDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func removeWorktreeFile(t *testing.T, r *Repo, rel string) {
	t.Helper()
	if err := os.Remove(filepath.Join(r.RootDir, filepath.FromSlash(rel))); err != nil {
		t.Fatalf("remove %s: %v", rel, err)
	}
}

func mustCommit(t *testing.T, r *Repo, message string) *CommitRecord {
	t.Helper()
	rec, err := r.Commit(testAuthor, message)
	if err != nil {
		t.Fatalf("Commit(%q): %v", message, err)
	}
	return rec
}
