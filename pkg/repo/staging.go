package repo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/gitstorage/pkg/object"
)

// StagingEntry records the committed state of a single file.
type StagingEntry struct {
	Path     string      `json:"path"`
	BlobHash object.Hash `json:"blob_hash"`
	Mode     string      `json:"mode,omitempty"`
	Size     int64       `json:"size"`
	ModTime  int64       `json:"mod_time"`
	Checksum string      `json:"checksum,omitempty"`
}

// Staging is the staging index. Entries keep insertion order; replacing an
// existing path keeps its position.
type Staging struct {
	Entries []*StagingEntry

	byPath map[string]int
}

// NewStaging returns an empty index.
func NewStaging() *Staging {
	return &Staging{byPath: make(map[string]int)}
}

// Len returns the number of entries.
func (s *Staging) Len() int {
	return len(s.Entries)
}

// Get returns the entry for path.
func (s *Staging) Get(path string) (*StagingEntry, bool) {
	i, ok := s.byPath[path]
	if !ok {
		return nil, false
	}
	return s.Entries[i], true
}

// Set inserts or replaces the entry for e.Path.
func (s *Staging) Set(e *StagingEntry) {
	if i, ok := s.byPath[e.Path]; ok {
		s.Entries[i] = e
		return
	}
	s.byPath[e.Path] = len(s.Entries)
	s.Entries = append(s.Entries, e)
}

// Remove deletes the entry for path and reports whether it existed.
func (s *Staging) Remove(path string) bool {
	i, ok := s.byPath[path]
	if !ok {
		return false
	}
	s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
	s.reindex()
	return true
}

// Paths returns the indexed paths in insertion order.
func (s *Staging) Paths() []string {
	paths := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		paths[i] = e.Path
	}
	return paths
}

func (s *Staging) reindex() {
	s.byPath = make(map[string]int, len(s.Entries))
	for i, e := range s.Entries {
		s.byPath[e.Path] = i
	}
}

// indexPath returns the filesystem path to the staging index file.
func (r *Repo) indexPath() string {
	return filepath.Join(r.MetaDir, "index")
}

// ReadStaging loads the staging index from .gitstorage/index. If the file
// does not exist, an empty Staging is returned (no error).
func (r *Repo) ReadStaging() (*Staging, error) {
	data, err := os.ReadFile(r.indexPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewStaging(), nil
		}
		return nil, fmt.Errorf("read staging: %w", ioError(err))
	}

	stg := NewStaging()
	var entries []*StagingEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("read staging: unmarshal: %w", ioError(err))
	}
	for _, e := range entries {
		if e == nil || e.Path == "" {
			continue
		}
		stg.Set(e)
	}
	return stg, nil
}

// WriteStaging atomically writes the staging index to .gitstorage/index.
func (r *Repo) WriteStaging(s *Staging) error {
	entries := s.Entries
	if entries == nil {
		entries = []*StagingEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("write staging: marshal: %w", err)
	}
	if err := writeFileAtomic(r.MetaDir, r.indexPath(), ".index-tmp-*", data); err != nil {
		return fmt.Errorf("write staging: %w", err)
	}
	return nil
}
