package repo

import (
	"fmt"
	"os"
	"path/filepath"
)

// Init creates a new repository at path. It creates the .gitstorage/
// directory structure: HEAD, config.toml, objects/, refs/heads/ and
// logs/refs/heads/. Returns an error if the metadata directory already
// exists.
func Init(path string) (*Repo, error) {
	return InitWithOptions(path, Options{})
}

// InitWithOptions is Init with an explicit store, logger or signer.
func InitWithOptions(path string, opts Options) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("init: abs path: %w", ioError(err))
	}
	metaDir := filepath.Join(abs, MetaDirName)

	if _, err := os.Stat(metaDir); err == nil {
		return nil, fmt.Errorf("init: repository already exists at %s", metaDir)
	}

	dirs := []string{
		filepath.Join(metaDir, "objects"),
		filepath.Join(metaDir, "refs", "heads"),
		filepath.Join(metaDir, "logs", "refs", "heads"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, ioError(err))
		}
	}

	headPath := filepath.Join(metaDir, "HEAD")
	if err := os.WriteFile(headPath, []byte("ref: "+defaultBranchRef+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("init: write HEAD: %w", ioError(err))
	}

	r, err := newRepo(abs, metaDir, opts)
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if err := r.WriteConfig(DefaultConfig()); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	r.logger.Info("initialized repository", "root", abs)
	return r, nil
}

// Open searches upward from path for a .gitstorage/ directory and opens the
// repository.
func Open(path string) (*Repo, error) {
	return OpenWithOptions(path, Options{})
}

// OpenWithOptions is Open with an explicit store, logger or signer.
func OpenWithOptions(path string, opts Options) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", ioError(err))
	}

	cur := abs
	for {
		metaDir := filepath.Join(cur, MetaDirName)
		info, err := os.Stat(metaDir)
		if err == nil && info.IsDir() {
			r, err := newRepo(cur, metaDir, opts)
			if err != nil {
				return nil, fmt.Errorf("open: %w", err)
			}
			return r, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("open: %w: not a gitstorage repository (or any parent up to /)", ErrNotFound)
		}
		cur = parent
	}
}
