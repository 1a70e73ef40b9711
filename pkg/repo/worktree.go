package repo

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/odvcencio/gitstorage/pkg/object"
	"github.com/zeebo/xxh3"
	"golang.org/x/exp/mmap"
)

// CleanPath validates a caller-supplied file name and returns its canonical
// repository-relative form (slash separated, no "." or ".." segments).
// Empty, absolute and escaping names, and names inside the metadata
// directory, are rejected with ErrInvalidArgument.
func CleanPath(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", invalidArgument("empty path")
	}
	slashed := filepath.ToSlash(name)
	if filepath.IsAbs(name) || strings.HasPrefix(slashed, "/") {
		return "", invalidArgument("absolute path %q", name)
	}
	clean := path.Clean(slashed)
	if clean == "." {
		return "", invalidArgument("path %q names the repository root", name)
	}
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", invalidArgument("path %q escapes the repository", name)
	}
	if clean == MetaDirName || strings.HasPrefix(clean, MetaDirName+"/") {
		return "", invalidArgument("path %q is inside %s", name, MetaDirName)
	}
	return clean, nil
}

// AbsPath returns the working tree location of a repository-relative path.
func (r *Repo) AbsPath(rel string) string {
	return filepath.Join(r.RootDir, filepath.FromSlash(rel))
}

// readWorktreeFile reads a working tree file through a read-only mapping.
func readWorktreeFile(absPath string) ([]byte, error) {
	reader, err := mmap.Open(absPath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data := make([]byte, reader.Len())
	if len(data) == 0 {
		return data, nil
	}
	if _, err := reader.ReadAt(data, 0); err != nil {
		return nil, fmt.Errorf("read mmap %q: %w", absPath, err)
	}
	return data, nil
}

// lstatRegular stats p without following links and rejects anything but a
// regular file.
func lstatRegular(p string) (fs.FileInfo, error) {
	info, err := os.Lstat(p)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%q is not a regular file", p)
	}
	return info, nil
}

// contentChecksum is the xxh3-128 digest stored in StagingEntry.Checksum.
func contentChecksum(data []byte) string {
	return fmt.Sprintf("%x", xxh3.Hash128(data).Bytes())
}

func modeFromFileInfo(info fs.FileInfo) string {
	if info.Mode()&0o111 != 0 {
		return object.TreeModeExecutable
	}
	return object.TreeModeFile
}

func normalizeFileMode(mode string) string {
	if mode == object.TreeModeExecutable {
		return object.TreeModeExecutable
	}
	return object.TreeModeFile
}
