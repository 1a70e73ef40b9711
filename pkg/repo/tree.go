package repo

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/odvcencio/gitstorage/pkg/diff"
	"github.com/odvcencio/gitstorage/pkg/object"
)

// BuildTree converts the flat staging entries into nested tree objects,
// writing every TreeObj to the store and returning the root hash. An empty
// index yields the empty tree.
func (r *Repo) BuildTree(s *Staging) (object.Hash, error) {
	return r.buildTreeDir(s.Entries, "")
}

// buildTreeDir writes the tree for the directory prefix. entries holds only
// paths under prefix.
func (r *Repo) buildTreeDir(entries []*StagingEntry, prefix string) (object.Hash, error) {
	files := make(map[string]*StagingEntry)
	subdirs := make(map[string][]*StagingEntry)

	for _, entry := range entries {
		rel := entry.Path
		if prefix != "" {
			rel = strings.TrimPrefix(rel, prefix+"/")
		}
		if name, _, nested := strings.Cut(rel, "/"); nested {
			subdirs[name] = append(subdirs[name], entry)
		} else {
			files[rel] = entry
		}
	}

	names := make([]string, 0, len(files)+len(subdirs))
	for name := range files {
		names = append(names, name)
	}
	for name := range subdirs {
		if _, isFile := files[name]; isFile {
			return "", fmt.Errorf("build tree: %q is both a file and a directory", path.Join(prefix, name))
		}
		names = append(names, name)
	}
	sort.Strings(names)

	treeEntries := make([]object.TreeEntry, 0, len(names))
	for _, name := range names {
		if entry, isFile := files[name]; isFile {
			treeEntries = append(treeEntries, object.TreeEntry{
				Name:     name,
				Mode:     normalizeFileMode(entry.Mode),
				BlobHash: entry.BlobHash,
			})
			continue
		}
		childPrefix := path.Join(prefix, name)
		subHash, err := r.buildTreeDir(subdirs[name], childPrefix)
		if err != nil {
			return "", err
		}
		treeEntries = append(treeEntries, object.TreeEntry{
			Name:        name,
			IsDir:       true,
			Mode:        object.TreeModeDir,
			SubtreeHash: subHash,
		})
	}

	h, err := r.Store.WriteTree(&object.TreeObj{Entries: treeEntries})
	if err != nil {
		return "", fmt.Errorf("write tree (prefix=%q): %w", prefix, ioError(err))
	}
	return h, nil
}

// FlattenTree walks a tree object recursively, returning every file with its
// full slash-separated path.
func (r *Repo) FlattenTree(h object.Hash) ([]diff.FileEntry, error) {
	var result []diff.FileEntry
	if err := r.flattenTreeRec(h, "", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Repo) flattenTreeRec(h object.Hash, prefix string, out *[]diff.FileEntry) error {
	treeObj, err := r.Store.ReadTree(h)
	if err != nil {
		return fmt.Errorf("flatten tree: read %s: %w", h, Classify(err))
	}
	for _, entry := range treeObj.Entries {
		fullPath := path.Join(prefix, entry.Name)
		if entry.IsDir {
			if err := r.flattenTreeRec(entry.SubtreeHash, fullPath, out); err != nil {
				return err
			}
			continue
		}
		*out = append(*out, diff.FileEntry{
			Path:     fullPath,
			BlobHash: entry.BlobHash,
			Mode:     normalizeFileMode(entry.Mode),
		})
	}
	return nil
}

// fileInTree resolves relPath inside the tree treeHash. found is false when
// any segment is missing or the final segment names a directory.
func (r *Repo) fileInTree(treeHash object.Hash, relPath string) (object.TreeEntry, bool, error) {
	dirs, base := path.Split(relPath)
	current := treeHash

	for _, part := range strings.Split(strings.TrimSuffix(dirs, "/"), "/") {
		if part == "" {
			continue
		}
		entry, ok, err := r.lookupTreeEntry(current, part)
		if err != nil || !ok || !entry.IsDir {
			return object.TreeEntry{}, false, err
		}
		current = entry.SubtreeHash
	}

	entry, ok, err := r.lookupTreeEntry(current, base)
	if err != nil || !ok || entry.IsDir {
		return object.TreeEntry{}, false, err
	}
	return entry, true, nil
}

func (r *Repo) lookupTreeEntry(treeHash object.Hash, name string) (object.TreeEntry, bool, error) {
	treeObj, err := r.Store.ReadTree(treeHash)
	if err != nil {
		return object.TreeEntry{}, false, fmt.Errorf("read tree %s: %w", treeHash, Classify(err))
	}
	for _, te := range treeObj.Entries {
		if te.Name == name {
			return te, true, nil
		}
	}
	return object.TreeEntry{}, false, nil
}
