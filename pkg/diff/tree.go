package diff

import (
	"sort"

	"github.com/odvcencio/gitstorage/pkg/object"
)

// ChangeType classifies what happened to a path between two trees.
type ChangeType int

const (
	Added    ChangeType = iota // Path exists only in the after tree.
	Deleted                    // Path exists only in the before tree.
	Modified                   // Path exists in both with different content or mode.
)

func (c ChangeType) String() string {
	switch c {
	case Added:
		return "added"
	case Deleted:
		return "deleted"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}

// FileEntry is one file of a flattened tree.
type FileEntry struct {
	Path     string
	BlobHash object.Hash
	Mode     string
}

// FileChange records a single path-level change between two trees. Old is
// zero for Added, New is zero for Deleted.
type FileChange struct {
	Type ChangeType
	Path string
	Old  FileEntry
	New  FileEntry
}

// Trees compares two flattened trees and returns the changed paths sorted by
// path. Entries with identical blob hash and mode are unchanged.
func Trees(before, after []FileEntry) []FileChange {
	beforeMap := make(map[string]FileEntry, len(before))
	for _, e := range before {
		beforeMap[e.Path] = e
	}
	afterMap := make(map[string]FileEntry, len(after))
	for _, e := range after {
		afterMap[e.Path] = e
	}

	var changes []FileChange
	for p, old := range beforeMap {
		cur, ok := afterMap[p]
		if !ok {
			changes = append(changes, FileChange{Type: Deleted, Path: p, Old: old})
			continue
		}
		if old.BlobHash != cur.BlobHash || normalizeMode(old.Mode) != normalizeMode(cur.Mode) {
			changes = append(changes, FileChange{Type: Modified, Path: p, Old: old, New: cur})
		}
	}
	for p, cur := range afterMap {
		if _, ok := beforeMap[p]; !ok {
			changes = append(changes, FileChange{Type: Added, Path: p, New: cur})
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Path < changes[j].Path
	})
	return changes
}

func normalizeMode(mode string) string {
	if mode == "" {
		return object.TreeModeFile
	}
	return mode
}
