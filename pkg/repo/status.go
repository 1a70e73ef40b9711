package repo

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/odvcencio/gitstorage/pkg/object"
)

// FileState classifies a path after reconciling the working tree against the
// staging index.
type FileState int

const (
	StateUnchanged FileState = iota // on disk and in the index with equal content
	StateAdded                      // on disk, not in the index
	StateModified                   // in both, content or mode differs
	StateDeleted                    // in the index, not on disk
)

func (s FileState) String() string {
	switch s {
	case StateUnchanged:
		return "unchanged"
	case StateAdded:
		return "added"
	case StateModified:
		return "modified"
	case StateDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// StatusEntry records the state of a single changed path.
type StatusEntry struct {
	Path  string // repo-relative, slash separated
	State FileState
}

// Status reconciles the working tree against the staging index and returns
// the changed paths sorted by path. Unchanged paths are omitted, the
// metadata directory and ignored paths are never reported, and nothing is
// written.
//
// For a path present in both places the size and mode are compared first;
// when they agree the content checksum decides.
func (r *Repo) Status() ([]StatusEntry, error) {
	stg, err := r.ReadStaging()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	entries, err := r.reconcile(stg)
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	return entries, nil
}

func (r *Repo) reconcile(stg *Staging) ([]StatusEntry, error) {
	workFiles, err := r.walkWorktree()
	if err != nil {
		return nil, err
	}

	var result []StatusEntry
	for rel, info := range workFiles {
		se, ok := stg.Get(rel)
		if !ok {
			result = append(result, StatusEntry{Path: rel, State: StateAdded})
			continue
		}
		changed, err := r.worktreeDiffers(se, rel, info)
		if err != nil {
			return nil, err
		}
		if changed {
			result = append(result, StatusEntry{Path: rel, State: StateModified})
		}
	}
	for _, se := range stg.Entries {
		if _, ok := workFiles[se.Path]; !ok {
			result = append(result, StatusEntry{Path: se.Path, State: StateDeleted})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})
	return result, nil
}

// walkWorktree collects every regular, non-ignored file under the root.
// Directories named MetaDirName are skipped before ignore rules apply.
func (r *Repo) walkWorktree() (map[string]fs.FileInfo, error) {
	ic := NewIgnoreChecker(r.RootDir)
	files := make(map[string]fs.FileInfo)

	err := filepath.WalkDir(r.RootDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(r.RootDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			// Metadata directories are never reconciled, whatever the ignore
			// file says.
			if d.Name() == MetaDirName || ic.IsIgnoredDir(rel) {
				return fs.SkipDir
			}
			return nil
		}
		if ic.IsIgnored(rel) {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files[rel] = info
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", r.RootDir, ioError(err))
	}
	return files, nil
}

func (r *Repo) worktreeDiffers(se *StagingEntry, rel string, info fs.FileInfo) (bool, error) {
	if info.Size() != se.Size || modeFromFileInfo(info) != normalizeFileMode(se.Mode) {
		return true, nil
	}
	data, err := readWorktreeFile(r.AbsPath(rel))
	if err != nil {
		return false, fmt.Errorf("read %q: %w", rel, ioError(err))
	}
	if se.Checksum != "" {
		return contentChecksum(data) != se.Checksum, nil
	}
	return object.HashObject(object.TypeBlob, data) != se.BlobHash, nil
}
