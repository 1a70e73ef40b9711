package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func statusString(entries []StatusEntry) string {
	s := ""
	for _, e := range entries {
		s += fmt.Sprintf("%s:%s ", e.State, e.Path)
	}
	return s
}

func TestStatus_Classes(t *testing.T) {
	r := initTestRepo(t)
	writeWorktreeFile(t, r, "keep.txt", "same")
	writeWorktreeFile(t, r, "edit.txt", "hello")
	writeWorktreeFile(t, r, "gone.txt", "bye")
	mustCommit(t, r, "base")

	entries, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("Status after commit = %q, want clean", statusString(entries))
	}

	// Same size, different content: only the checksum can tell.
	writeWorktreeFile(t, r, "edit.txt", "jello")
	removeWorktreeFile(t, r, "gone.txt")
	writeWorktreeFile(t, r, "dir/new.txt", "new")

	entries, err = r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	want := "added:dir/new.txt modified:edit.txt deleted:gone.txt "
	if got := statusString(entries); got != want {
		t.Errorf("Status = %q, want %q", got, want)
	}
}

func TestStatus_ModeChange(t *testing.T) {
	r := initTestRepo(t)
	writeWorktreeFile(t, r, "run.sh", "#!/bin/sh\n")
	mustCommit(t, r, "base")

	if err := os.Chmod(filepath.Join(r.RootDir, "run.sh"), 0o755); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	entries, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if got := statusString(entries); got != "modified:run.sh " {
		t.Errorf("Status = %q, want %q", got, "modified:run.sh ")
	}
}

func TestStatus_NoSideEffects(t *testing.T) {
	r := initTestRepo(t)
	writeWorktreeFile(t, r, "a.txt", "hello")

	if _, err := r.Status(); err != nil {
		t.Fatalf("Status: %v", err)
	}
	if _, err := os.Stat(r.indexPath()); !os.IsNotExist(err) {
		t.Errorf("Status wrote the index: stat err=%v", err)
	}
	if _, err := r.ResolveHead(); !errors.Is(err, ErrNoCommits) {
		t.Errorf("Status moved HEAD: %v", err)
	}
}

func TestStatus_SkipsMetaDirAndIgnored(t *testing.T) {
	r := initTestRepo(t)
	writeWorktreeFile(t, r, IgnoreFileName, "*.log\nbuild/\n!keep.log\n")
	writeWorktreeFile(t, r, "app.log", "x")
	writeWorktreeFile(t, r, "keep.log", "x")
	writeWorktreeFile(t, r, "build/out.txt", "x")
	writeWorktreeFile(t, r, "src/main.txt", "x")

	entries, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	want := "added:" + IgnoreFileName + " added:keep.log added:src/main.txt "
	if got := statusString(entries); got != want {
		t.Errorf("Status = %q, want %q", got, want)
	}
}

func TestStatus_NegatedIgnoreKeepsMetaDirOut(t *testing.T) {
	r := initTestRepo(t)
	writeWorktreeFile(t, r, IgnoreFileName, "*\n!*/\n!*.txt\n")
	writeWorktreeFile(t, r, "a.txt", "hello")
	writeWorktreeFile(t, r, "sub/"+MetaDirName+"/x.txt", "nested")

	entries, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if got, want := statusString(entries), "added:a.txt "; got != want {
		t.Errorf("Status = %q, want %q", got, want)
	}

	rec := mustCommit(t, r, "whitelist")
	files, err := r.FlattenTree(rec.Commit.TreeHash)
	if err != nil {
		t.Fatalf("FlattenTree: %v", err)
	}
	if len(files) != 1 || files[0].Path != "a.txt" {
		t.Errorf("tree = %+v, want exactly a.txt", files)
	}
}

func TestStatus_UnreadableRoot(t *testing.T) {
	r := initTestRepo(t)
	r.RootDir = filepath.Join(r.RootDir, "does-not-exist")

	_, err := r.Status()
	if !errors.Is(err, ErrIO) {
		t.Fatalf("Status on missing root: got %v, want ErrIO", err)
	}
}
