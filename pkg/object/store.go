package object

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ErrAmbiguousPrefix is returned by ResolvePrefix when more than one object
// matches.
var ErrAmbiguousPrefix = errors.New("ambiguous object prefix")

// ErrTypeMismatch is returned by the typed readers when the stored object has
// a different type.
var ErrTypeMismatch = errors.New("object type mismatch")

// Store is a content-addressed object store with a 2-character fan-out
// directory layout: objects/ab/cdef0123...
//
// With compression enabled the "type len\0content" envelope is stored as a
// zstd frame. Reads accept both forms, so toggling compression never
// invalidates existing objects.
type Store struct {
	root     string
	compress bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCompression enables or disables zstd compression of newly written
// objects. Compression is on by default.
func WithCompression(enabled bool) StoreOption {
	return func(s *Store) {
		s.compress = enabled
	}
}

// NewStore creates a Store rooted at the given directory. The objects/
// subdirectory is created lazily on first write.
func NewStore(root string, opts ...StoreOption) *Store {
	s := &Store{root: root, compress: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(h Hash) string {
	return filepath.Join(s.root, "objects", string(h[:2]), string(h[2:]))
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	if len(h) < 3 {
		return false
	}
	_, err := os.Stat(s.objectPath(h))
	return err == nil
}

// Write stores an object and returns its content hash. The hash always
// covers the uncompressed envelope. Writes are atomic: data is written to a
// temp file and then renamed into place.
func (s *Store) Write(objType ObjectType, data []byte) (Hash, error) {
	envelope := fmt.Sprintf("%s %d\x00", objType, len(data))
	raw := append([]byte(envelope), data...)

	h := HashObject(objType, data)

	// Fast path: already exists.
	if s.Has(h) {
		return h, nil
	}

	if s.compress {
		compressed, err := compressZstd(raw)
		if err != nil {
			return "", fmt.Errorf("object write compress: %w", err)
		}
		raw = compressed
	}

	dir := filepath.Join(s.root, "objects", string(h[:2]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("object write mkdir: %w", err)
	}

	// Atomic write via temp + rename.
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("object write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write close: %w", err)
	}

	dest := s.objectPath(h)
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write rename: %w", err)
	}

	return h, nil
}

// Read retrieves an object by hash, returning its type and raw content.
// A missing object yields an error wrapping os.ErrNotExist.
func (s *Store) Read(h Hash) (ObjectType, []byte, error) {
	if len(h) < 3 {
		return "", nil, fmt.Errorf("object read %q: %w", h, os.ErrNotExist)
	}
	raw, err := os.ReadFile(s.objectPath(h))
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}

	if isZstdFrame(raw) {
		raw, err = decompressZstd(raw)
		if err != nil {
			return "", nil, fmt.Errorf("object read %s: decompress: %w", h, err)
		}
	}

	// Parse envelope: "type len\0content"
	nulIdx := bytes.IndexByte(raw, 0)
	if nulIdx < 0 {
		return "", nil, fmt.Errorf("object read %s: invalid format (no NUL)", h)
	}
	header := string(raw[:nulIdx])
	content := raw[nulIdx+1:]

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("object read %s: invalid header %q", h, header)
	}
	objType := ObjectType(parts[0])
	length, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: invalid length %q: %w", h, parts[1], err)
	}
	if len(content) != length {
		return "", nil, fmt.Errorf("object read %s: length mismatch (header=%d, actual=%d)", h, length, len(content))
	}

	return objType, content, nil
}

// ResolvePrefix returns the single object hash starting with prefix. The
// prefix must be at least 4 lowercase hex characters. When types are given,
// only objects of those types are candidates. It returns an error wrapping
// os.ErrNotExist when nothing matches and ErrAmbiguousPrefix when several
// objects do.
func (s *Store) ResolvePrefix(prefix string, types ...ObjectType) (Hash, error) {
	matches, err := s.matchPrefix(prefix)
	if err != nil {
		return "", err
	}
	if len(types) > 0 {
		matches, err = s.filterByType(matches, types)
		if err != nil {
			return "", fmt.Errorf("resolve prefix %q: %w", prefix, err)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("resolve prefix %q: %w", prefix, os.ErrNotExist)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("resolve prefix %q: %w (%d candidates)", prefix, ErrAmbiguousPrefix, len(matches))
	}
}

func (s *Store) filterByType(hashes []Hash, types []ObjectType) ([]Hash, error) {
	var kept []Hash
	for _, h := range hashes {
		objType, _, err := s.Read(h)
		if err != nil {
			return nil, err
		}
		for _, t := range types {
			if objType == t {
				kept = append(kept, h)
				break
			}
		}
	}
	return kept, nil
}

func (s *Store) matchPrefix(prefix string) ([]Hash, error) {
	if len(prefix) < 4 || !IsHex(prefix) {
		return nil, fmt.Errorf("resolve prefix %q: must be at least 4 hex characters", prefix)
	}
	dir := filepath.Join(s.root, "objects", prefix[:2])
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve prefix %q: %w", prefix, err)
	}

	var matches []Hash
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if strings.HasPrefix(name, prefix[2:]) {
			matches = append(matches, Hash(prefix[:2]+name))
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i] < matches[j] })
	return matches, nil
}

// IsHex reports whether s is non-empty and consists only of lowercase hex
// digits.
func IsHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// WriteBlob serializes and stores a Blob.
func (s *Store) WriteBlob(b *Blob) (Hash, error) {
	return s.Write(TypeBlob, MarshalBlob(b))
}

// ReadBlob reads and deserializes a Blob.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	objType, data, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeBlob {
		return nil, fmt.Errorf("object %s: %w: got %q, want %q", h, ErrTypeMismatch, objType, TypeBlob)
	}
	return UnmarshalBlob(data)
}

// WriteTree serializes and stores a TreeObj.
func (s *Store) WriteTree(tr *TreeObj) (Hash, error) {
	return s.Write(TypeTree, MarshalTree(tr))
}

// ReadTree reads and deserializes a TreeObj.
func (s *Store) ReadTree(h Hash) (*TreeObj, error) {
	objType, data, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeTree {
		return nil, fmt.Errorf("object %s: %w: got %q, want %q", h, ErrTypeMismatch, objType, TypeTree)
	}
	return UnmarshalTree(data)
}

// WriteCommit serializes and stores a CommitObj.
func (s *Store) WriteCommit(c *CommitObj) (Hash, error) {
	return s.Write(TypeCommit, MarshalCommit(c))
}

// ReadCommit reads and deserializes a CommitObj.
func (s *Store) ReadCommit(h Hash) (*CommitObj, error) {
	objType, data, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeCommit {
		return nil, fmt.Errorf("object %s: %w: got %q, want %q", h, ErrTypeMismatch, objType, TypeCommit)
	}
	return UnmarshalCommit(data)
}
