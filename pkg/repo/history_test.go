package repo

import (
	"errors"
	"testing"

	"github.com/odvcencio/gitstorage/pkg/object"
)

func hashes(records []*CommitRecord) []object.Hash {
	out := make([]object.Hash, len(records))
	for i, rec := range records {
		out[i] = rec.Hash
	}
	return out
}

func equalHashes(a, b []object.Hash) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestHistory_EmptyRepository(t *testing.T) {
	r := initTestRepo(t)
	records, err := r.History(HistoryOptions{})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("History on empty repo = %d commits, want 0", len(records))
	}
}

func TestHistory_OrderFilterAndLimit(t *testing.T) {
	r := initTestRepo(t)
	writeWorktreeFile(t, r, "a.txt", "hello")
	c1 := mustCommit(t, r, "c1")
	writeWorktreeFile(t, r, "b.txt", "b")
	c2 := mustCommit(t, r, "c2")
	writeWorktreeFile(t, r, "a.txt", "world")
	c3 := mustCommit(t, r, "c3")
	removeWorktreeFile(t, r, "b.txt")
	c4 := mustCommit(t, r, "c4")

	tests := []struct {
		name string
		opts HistoryOptions
		want []object.Hash
	}{
		{"all", HistoryOptions{}, []object.Hash{c4.Hash, c3.Hash, c2.Hash, c1.Hash}},
		{"negative limit", HistoryOptions{Limit: -1}, []object.Hash{c4.Hash, c3.Hash, c2.Hash, c1.Hash}},
		{"limit", HistoryOptions{Limit: 2}, []object.Hash{c4.Hash, c3.Hash}},
		{"path a", HistoryOptions{Path: "a.txt"}, []object.Hash{c4.Hash, c3.Hash, c2.Hash, c1.Hash}},
		{"path b", HistoryOptions{Path: "b.txt"}, []object.Hash{c3.Hash, c2.Hash}},
		{"path b limit counts matches", HistoryOptions{Path: "b.txt", Limit: 1}, []object.Hash{c3.Hash}},
		{"missing path", HistoryOptions{Path: "nope.txt"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := r.History(tt.opts)
			if err != nil {
				t.Fatalf("History: %v", err)
			}
			if got := hashes(records); !equalHashes(got, tt.want) {
				t.Errorf("History = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHistory_InvalidPath(t *testing.T) {
	r := initTestRepo(t)
	_, err := r.History(HistoryOptions{Path: "../outside"})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("History(../outside): got %v, want ErrInvalidArgument", err)
	}
}

func TestChangelog(t *testing.T) {
	r := initTestRepo(t)
	writeWorktreeFile(t, r, "a.txt", "hello")
	c1 := mustCommit(t, r, "test commit é")
	writeWorktreeFile(t, r, "a.txt", "world")
	c2 := mustCommit(t, r, "second")

	entries, err := r.Changelog(0)
	if err != nil {
		t.Fatalf("Changelog: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Changelog = %d entries, want 2", len(entries))
	}
	if entries[0].Hash != c2.Hash || entries[0].ParentHash != c1.Hash {
		t.Errorf("entries[0] = %s (parent %s), want %s (parent %s)", entries[0].Hash, entries[0].ParentHash, c2.Hash, c1.Hash)
	}
	if entries[1].ParentHash != "" {
		t.Errorf("root ParentHash = %q, want empty", entries[1].ParentHash)
	}
	if entries[1].Author != "Gérard Test" {
		t.Errorf("Author = %q, want %q", entries[1].Author, "Gérard Test")
	}
	if entries[1].AuthorEmail != "gerard.test@example.com" {
		t.Errorf("AuthorEmail = %q, want %q", entries[1].AuthorEmail, "gerard.test@example.com")
	}
	if entries[1].Message != "test commit é" {
		t.Errorf("Message = %q", entries[1].Message)
	}
	if entries[1].Date.Unix() != c1.Commit.Timestamp {
		t.Errorf("Date = %v, want unix %d", entries[1].Date, c1.Commit.Timestamp)
	}
}
