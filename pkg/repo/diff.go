package repo

import (
	"fmt"

	"github.com/odvcencio/gitstorage/pkg/diff"
	"github.com/odvcencio/gitstorage/pkg/object"
)

// Diff renders a git-style patch from commit from to commit to. Both ids
// may be full hashes or unique prefixes of at least four hex characters.
func (r *Repo) Diff(from, to string) (string, error) {
	a, err := r.ResolveCommit(from)
	if err != nil {
		return "", fmt.Errorf("diff: %w", err)
	}
	b, err := r.ResolveCommit(to)
	if err != nil {
		return "", fmt.Errorf("diff: %w", err)
	}
	return r.DiffCommits(a, b)
}

// DiffCommits renders the patch between two full commit hashes. Paths are
// sorted; identical commits produce an empty patch.
func (r *Repo) DiffCommits(a, b object.Hash) (string, error) {
	changes, err := r.TreeChanges(a, b)
	if err != nil {
		return "", fmt.Errorf("diff: %w", err)
	}
	patch, err := diff.FormatPatch(changes, r.Store)
	if err != nil {
		return "", fmt.Errorf("diff: %w", Classify(err))
	}
	return patch, nil
}

// TreeChanges returns the path-level changes between two commits.
func (r *Repo) TreeChanges(a, b object.Hash) ([]diff.FileChange, error) {
	before, err := r.commitFiles(a)
	if err != nil {
		return nil, err
	}
	after, err := r.commitFiles(b)
	if err != nil {
		return nil, err
	}
	return diff.Trees(before, after), nil
}

func (r *Repo) commitFiles(h object.Hash) ([]diff.FileEntry, error) {
	c, err := r.Store.ReadCommit(h)
	if err != nil {
		return nil, fmt.Errorf("read commit %s: %w", h, Classify(err))
	}
	return r.FlattenTree(c.TreeHash)
}
