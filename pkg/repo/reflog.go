package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/odvcencio/gitstorage/pkg/object"
)

const zeroHash = "0000000000000000000000000000000000000000000000000000000000000000"

// ReflogEntry is one recorded movement of a ref. OldHash is empty for the
// entry that created the ref.
type ReflogEntry struct {
	Ref     string
	OldHash object.Hash
	NewHash object.Hash
	Time    time.Time
	Reason  string
}

func (r *Repo) appendReflog(ref string, oldHash, newHash object.Hash, reason string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	reason = strings.Join(strings.Fields(reason), " ")
	if reason == "" {
		reason = "update"
	}

	logPath := filepath.Join(r.MetaDir, "logs", filepath.FromSlash(ref))
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("reflog mkdir: %w", err)
	}

	old := string(oldHash)
	if old == "" {
		old = zeroHash
	}
	newVal := string(newHash)
	if newVal == "" {
		newVal = zeroHash
	}
	line := fmt.Sprintf("%s %s %d %s\n", old, newVal, time.Now().Unix(), reason)

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("reflog open: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("reflog write: %w", err)
	}
	return nil
}

// ReadReflog returns the movements of ref, newest first, stopping after
// limit entries when limit is positive. An empty ref or "HEAD" reads the
// branch HEAD points at. A ref that never moved has an empty reflog.
// Malformed lines are skipped.
func (r *Repo) ReadReflog(ref string, limit int) ([]ReflogEntry, error) {
	refName := strings.TrimSpace(ref)
	if refName == "" || refName == "HEAD" {
		head, err := r.Head()
		if err != nil {
			return nil, fmt.Errorf("read reflog: %w", err)
		}
		refName = head
	}

	data, err := os.ReadFile(filepath.Join(r.MetaDir, "logs", filepath.FromSlash(refName)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read reflog: %w", ioError(err))
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	var entries []ReflogEntry
	for i := len(lines) - 1; i >= 0; i-- {
		entry, ok := parseReflogLine(refName, lines[i])
		if !ok {
			continue
		}
		entries = append(entries, entry)
		if limit > 0 && len(entries) == limit {
			break
		}
	}
	return entries, nil
}

// parseReflogLine decodes "<old> <new> <unix seconds> <reason>".
func parseReflogLine(ref, line string) (ReflogEntry, bool) {
	fields := strings.SplitN(strings.TrimSpace(line), " ", 4)
	if len(fields) != 4 {
		return ReflogEntry{}, false
	}
	sec, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return ReflogEntry{}, false
	}
	entry := ReflogEntry{
		Ref:     ref,
		OldHash: object.Hash(fields[0]),
		NewHash: object.Hash(fields[1]),
		Time:    time.Unix(sec, 0),
		Reason:  fields[3],
	}
	if entry.OldHash == zeroHash {
		entry.OldHash = ""
	}
	if entry.NewHash == zeroHash {
		entry.NewHash = ""
	}
	return entry, true
}
