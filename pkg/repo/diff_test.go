package repo

import (
	"errors"
	"strings"
	"testing"
)

func TestDiff_TwoCommits(t *testing.T) {
	r := initTestRepo(t)
	writeWorktreeFile(t, r, "a.txt", "hello")
	c1 := mustCommit(t, r, "c1")
	writeWorktreeFile(t, r, "a.txt", "world")
	c2 := mustCommit(t, r, "c2")

	patch, err := r.Diff(string(c1.Hash), string(c2.Hash))
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	for _, want := range []string{"diff --git a/a.txt b/a.txt\n", "-hello\n", "+world\n"} {
		if !strings.Contains(patch, want) {
			t.Errorf("patch missing %q:\n%s", want, patch)
		}
	}

	records, err := r.History(HistoryOptions{Path: "a.txt"})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("History(a.txt) = %d commits, want 2", len(records))
	}
}

func TestDiff_ShortIDsAndAddedFile(t *testing.T) {
	r := initTestRepo(t)
	writeWorktreeFile(t, r, "a.txt", "hello")
	c1 := mustCommit(t, r, "c1")
	writeWorktreeFile(t, r, "test_é_1.txt", "hèhè")
	c2 := mustCommit(t, r, "c2")

	patch, err := r.Diff(c1.Hash.Short(12), c2.Hash.Short(12))
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	want := "diff --git a/test_é_1.txt b/test_é_1.txt\nnew file mode 100644\n"
	if !strings.HasPrefix(patch, want) {
		t.Errorf("patch = %q, want prefix %q", patch, want)
	}
	if strings.Contains(patch, "a/a.txt") {
		t.Errorf("unchanged file in patch:\n%s", patch)
	}
}

func TestDiff_SameCommitIsEmpty(t *testing.T) {
	r := initTestRepo(t)
	writeWorktreeFile(t, r, "a.txt", "hello")
	c1 := mustCommit(t, r, "c1")

	patch, err := r.DiffCommits(c1.Hash, c1.Hash)
	if err != nil {
		t.Fatalf("DiffCommits: %v", err)
	}
	if patch != "" {
		t.Errorf("patch = %q, want empty", patch)
	}
}

func TestDiff_BadIdentifiers(t *testing.T) {
	r := initTestRepo(t)
	writeWorktreeFile(t, r, "a.txt", "hello")
	c1 := mustCommit(t, r, "c1")

	tests := []struct {
		id   string
		want error
	}{
		{"", ErrInvalidArgument},
		{"abc", ErrInvalidArgument},
		{"not-hex!", ErrInvalidArgument},
		{strings.Repeat("0", 64), ErrNotFound},
	}
	for _, tt := range tests {
		if _, err := r.Diff(tt.id, string(c1.Hash)); !errors.Is(err, tt.want) {
			t.Errorf("Diff(%q, c1): got %v, want %v", tt.id, err, tt.want)
		}
	}

	// Hashes and prefixes of trees and blobs name no commit.
	files, err := r.FlattenTree(c1.Commit.TreeHash)
	if err != nil {
		t.Fatalf("FlattenTree: %v", err)
	}
	for _, id := range []string{
		string(c1.Commit.TreeHash),
		string(files[0].BlobHash),
		files[0].BlobHash.Short(12),
	} {
		_, err := r.Diff(id, string(c1.Hash))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Diff(%q, c1): got %v, want ErrNotFound", id, err)
		}
		if errors.Is(err, ErrIO) {
			t.Errorf("Diff(%q, c1) reported ErrIO: %v", id, err)
		}
	}
}
