// Package storage exposes a versioned repository as a plain file store:
// names map to files in the working tree, and Commit captures the current
// state of every stored file as a new point in history.
package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/odvcencio/gitstorage/pkg/repo"
)

var (
	ErrNotFound        = repo.ErrNotFound
	ErrIO              = repo.ErrIO
	ErrInvalidArgument = repo.ErrInvalidArgument
)

// Storage is a file store backed by a repository. A file "exists" once it
// has been committed; saved but uncommitted files are only visible through
// Open, Listdir and Status.
type Storage struct {
	repo *repo.Repo
}

// New wraps an opened repository.
func New(r *repo.Repo) *Storage {
	return &Storage{repo: r}
}

// Create initializes a repository at dir and returns a Storage on it.
func Create(dir string, opts repo.Options) (*Storage, error) {
	r, err := repo.InitWithOptions(dir, opts)
	if err != nil {
		return nil, err
	}
	return New(r), nil
}

// Open opens the repository containing dir.
func Open(dir string, opts repo.Options) (*Storage, error) {
	r, err := repo.OpenWithOptions(dir, opts)
	if err != nil {
		return nil, err
	}
	return New(r), nil
}

// Repo returns the underlying repository.
func (s *Storage) Repo() *repo.Repo {
	return s.repo
}

// Exists reports whether name is in the staging index.
func (s *Storage) Exists(name string) (bool, error) {
	rel, err := repo.CleanPath(name)
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	stg, err := s.repo.ReadStaging()
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	_, ok := stg.Get(rel)
	return ok, nil
}

// indexed returns the clean name of an indexed file or ErrNotFound.
func (s *Storage) indexed(op, name string) (string, error) {
	rel, err := repo.CleanPath(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	stg, err := s.repo.ReadStaging()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if _, ok := stg.Get(rel); !ok {
		return "", fmt.Errorf("%s: %w: %q is not in the repository", op, ErrNotFound, rel)
	}
	return rel, nil
}

// Path returns the absolute filesystem path of an indexed file.
func (s *Storage) Path(name string) (string, error) {
	rel, err := s.indexed("path", name)
	if err != nil {
		return "", err
	}
	return s.repo.AbsPath(rel), nil
}

func (s *Storage) stat(op, name string) (os.FileInfo, error) {
	abs, err := s.Path(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, repo.Classify(err))
	}
	return info, nil
}

// Size returns the on-disk size of an indexed file in bytes.
func (s *Storage) Size(name string) (int64, error) {
	info, err := s.stat("size", name)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// ModifiedTime returns the last modification time of an indexed file.
func (s *Storage) ModifiedTime(name string) (time.Time, error) {
	info, err := s.stat("modified time", name)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// CreatedTime returns the inode change time of an indexed file, or its
// modification time where the platform does not report one.
func (s *Storage) CreatedTime(name string) (time.Time, error) {
	info, err := s.stat("created time", name)
	if err != nil {
		return time.Time{}, err
	}
	if t, ok := changeTime(info); ok {
		return t, nil
	}
	return info.ModTime(), nil
}

// AccessedTime returns the last access time of an indexed file, or its
// modification time where the platform does not report one.
func (s *Storage) AccessedTime(name string) (time.Time, error) {
	info, err := s.stat("accessed time", name)
	if err != nil {
		return time.Time{}, err
	}
	if t, ok := accessTime(info); ok {
		return t, nil
	}
	return info.ModTime(), nil
}

// Listdir returns the directories and files directly under dir ("" for the
// root), each sorted. The metadata directory is never listed.
func (s *Storage) Listdir(dir string) (dirs, files []string, err error) {
	abs := s.repo.RootDir
	if dir != "" && dir != "." {
		rel, err := repo.CleanPath(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("listdir: %w", err)
		}
		abs = s.repo.AbsPath(rel)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, nil, fmt.Errorf("listdir: %w", repo.Classify(err))
	}
	dirs, files = []string{}, []string{}
	for _, e := range entries {
		if abs == s.repo.RootDir && e.Name() == repo.MetaDirName {
			continue
		}
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		} else {
			files = append(files, e.Name())
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)
	return dirs, files, nil
}

// Open opens a working tree file for reading.
func (s *Storage) Open(name string) (*os.File, error) {
	rel, err := repo.CleanPath(name)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	f, err := os.Open(s.repo.AbsPath(rel))
	if err != nil {
		return nil, fmt.Errorf("open: %w", repo.Classify(err))
	}
	return f, nil
}

// Save writes content to name in the working tree, creating parent
// directories and replacing any existing file. It returns the stored name.
// The change becomes part of history on the next Commit.
func (s *Storage) Save(name string, content io.Reader) (string, error) {
	rel, err := repo.CleanPath(name)
	if err != nil {
		return "", fmt.Errorf("save: %w", err)
	}
	abs := s.repo.AbsPath(rel)
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("save: mkdir: %w", repo.Classify(err))
	}

	tmp, err := os.CreateTemp(dir, ".save-tmp-*")
	if err != nil {
		return "", fmt.Errorf("save: tmpfile: %w", repo.Classify(err))
	}
	tmpName := tmp.Name()
	n, err := io.Copy(tmp, content)
	if err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("save: write: %w", repo.Classify(err))
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("save: chmod: %w", repo.Classify(err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("save: close: %w", repo.Classify(err))
	}
	if err := os.Rename(tmpName, abs); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("save: rename: %w", repo.Classify(err))
	}

	s.repo.Logger().Debug("saved file", "name", rel, "bytes", n)
	return rel, nil
}

// SaveAvailable is Save under AvailableName(name).
func (s *Storage) SaveAvailable(name string, content io.Reader) (string, error) {
	available, err := s.AvailableName(name)
	if err != nil {
		return "", err
	}
	return s.Save(available, content)
}

// AvailableName returns name, or the first "stem_N.ext" variant (N = 1, 2,
// ...) that Exists does not report. Only the staging index is consulted, so
// an uncommitted file under the returned name is overwritten by Save.
func (s *Storage) AvailableName(name string) (string, error) {
	rel, err := repo.CleanPath(name)
	if err != nil {
		return "", fmt.Errorf("available name: %w", err)
	}
	stg, err := s.repo.ReadStaging()
	if err != nil {
		return "", fmt.Errorf("available name: %w", err)
	}

	dir, base := path.Split(rel)
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	candidate := rel
	for i := 1; ; i++ {
		if _, taken := stg.Get(candidate); !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%s_%d%s", dir, stem, i, ext)
	}
}

// Delete removes an indexed file from the working tree. The deletion becomes
// part of history on the next Commit.
func (s *Storage) Delete(name string) error {
	rel, err := s.indexed("delete", name)
	if err != nil {
		return err
	}
	if err := os.Remove(s.repo.AbsPath(rel)); err != nil {
		return fmt.Errorf("delete: %w", repo.Classify(err))
	}
	s.repo.Logger().Debug("deleted file", "name", rel)
	return nil
}

// Status reports uncommitted changes.
func (s *Storage) Status() ([]repo.StatusEntry, error) {
	return s.repo.Status()
}

// Commit records every saved and deleted file as a new commit.
func (s *Storage) Commit(author repo.Signature, message string) (*repo.CommitRecord, error) {
	return s.repo.Commit(author, message)
}

// History lists commits newest first; see repo.Repo.History.
func (s *Storage) History(opts repo.HistoryOptions) ([]*repo.CommitRecord, error) {
	return s.repo.History(opts)
}

// Diff renders the patch between two commits.
func (s *Storage) Diff(from, to string) (string, error) {
	return s.repo.Diff(from, to)
}

// Search finds committed lines containing pattern.
func (s *Storage) Search(pattern string, opts repo.SearchOptions) ([]repo.SearchResult, error) {
	return s.repo.Search(pattern, opts)
}

// Changelog lists commits for display, newest first.
func (s *Storage) Changelog(limit int) ([]repo.ChangelogEntry, error) {
	return s.repo.Changelog(limit)
}
