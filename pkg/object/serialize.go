package object

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a Blob to raw bytes (identity).
func MarshalBlob(b *Blob) []byte {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out
}

// UnmarshalBlob deserializes raw bytes into a Blob.
func UnmarshalBlob(data []byte) (*Blob, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return &Blob{Data: out}, nil
}

// ---------------------------------------------------------------------------
// TreeObj
// ---------------------------------------------------------------------------

// MarshalTree serializes a TreeObj. Entries are sorted by Name for
// deterministic output. Each entry is one line:
//
//	mode hash name
//
// where mode is a Git-compatible mode string (40000, 100644, 100755) and hash
// is the blob hash for files or the subtree hash for directories. The name
// comes last so it may contain spaces.
func MarshalTree(tr *TreeObj) []byte {
	sorted := make([]TreeEntry, len(tr.Entries))
	copy(sorted, tr.Entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	var buf bytes.Buffer
	for _, e := range sorted {
		h := e.BlobHash
		if e.IsDir {
			h = e.SubtreeHash
		}
		fmt.Fprintf(&buf, "%s %s %s\n", treeModeOrDefault(e), string(h), e.Name)
	}
	return buf.Bytes()
}

// UnmarshalTree parses a TreeObj from its serialized form.
func UnmarshalTree(data []byte) (*TreeObj, error) {
	tr := &TreeObj{}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return tr, nil
	}
	for _, line := range strings.Split(text, "\n") {
		parts := strings.SplitN(line, " ", 3)
		if len(parts) != 3 || parts[2] == "" {
			return nil, fmt.Errorf("unmarshal tree: malformed entry %q", line)
		}
		isDir, mode, err := parseTreeMode(parts[0])
		if err != nil {
			return nil, fmt.Errorf("unmarshal tree: %w", err)
		}
		entry := TreeEntry{
			Name:  parts[2],
			IsDir: isDir,
			Mode:  mode,
		}
		if isDir {
			entry.SubtreeHash = Hash(parts[1])
		} else {
			entry.BlobHash = Hash(parts[1])
		}
		tr.Entries = append(tr.Entries, entry)
	}
	return tr, nil
}

func treeModeOrDefault(e TreeEntry) string {
	if e.IsDir {
		return TreeModeDir
	}
	if strings.TrimSpace(e.Mode) == "" {
		return TreeModeFile
	}
	return e.Mode
}

func parseTreeMode(mode string) (bool, string, error) {
	switch mode {
	case TreeModeDir:
		return true, TreeModeDir, nil
	case TreeModeFile:
		return false, TreeModeFile, nil
	case TreeModeExecutable:
		return false, TreeModeExecutable, nil
	default:
		return false, "", fmt.Errorf("unknown mode %q", mode)
	}
}

// ---------------------------------------------------------------------------
// CommitObj
// ---------------------------------------------------------------------------

// MarshalCommit serializes a CommitObj:
//
//	tree H
//	parent H                 (zero or more)
//	author Name <email> T Z
//	committer Name <email> T Z
//	signature S              (optional)
//
//	message
func MarshalCommit(c *CommitObj) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", string(c.TreeHash))
	for _, p := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", string(p))
	}
	fmt.Fprintf(&buf, "author %s %d %s\n", c.Author, c.Timestamp, timezoneOrUTC(c.AuthorTimezone))
	committer := c.Committer
	committerTS := c.CommitterTimestamp
	committerTZ := c.CommitterTimezone
	if committer == (Identity{}) {
		committer, committerTS, committerTZ = c.Author, c.Timestamp, c.AuthorTimezone
	}
	fmt.Fprintf(&buf, "committer %s %d %s\n", committer, committerTS, timezoneOrUTC(committerTZ))
	if strings.TrimSpace(c.Signature) != "" {
		fmt.Fprintf(&buf, "signature %s\n", c.Signature)
	}
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

// UnmarshalCommit parses a CommitObj from its serialized form.
func UnmarshalCommit(data []byte) (*CommitObj, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("unmarshal commit: missing header/message separator")
	}
	header := string(data[:idx])
	message := string(data[idx+2:])

	c := &CommitObj{Message: message}
	for _, line := range strings.Split(header, "\n") {
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("unmarshal commit: malformed header line %q", line)
		}
		switch key {
		case "tree":
			c.TreeHash = Hash(val)
		case "parent":
			c.Parents = append(c.Parents, Hash(val))
		case "author":
			id, ts, tz, err := parseSignatureLine(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: author: %w", err)
			}
			c.Author, c.Timestamp, c.AuthorTimezone = id, ts, tz
		case "committer":
			id, ts, tz, err := parseSignatureLine(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: committer: %w", err)
			}
			c.Committer, c.CommitterTimestamp, c.CommitterTimezone = id, ts, tz
		case "signature":
			c.Signature = val
		default:
			return nil, fmt.Errorf("unmarshal commit: unknown header key %q", key)
		}
	}
	return c, nil
}

// String renders the identity as "Name <email>".
func (id Identity) String() string {
	return fmt.Sprintf("%s <%s>", id.Name, id.Email)
}

// ParseIdentity parses "Name <email>".
func ParseIdentity(s string) (Identity, error) {
	s = strings.TrimSpace(s)
	open := strings.LastIndexByte(s, '<')
	if open < 0 || !strings.HasSuffix(s, ">") {
		return Identity{}, fmt.Errorf("malformed identity %q", s)
	}
	return Identity{
		Name:  strings.TrimSpace(s[:open]),
		Email: s[open+1 : len(s)-1],
	}, nil
}

// parseSignatureLine parses "Name <email> 1700000000 +0100".
func parseSignatureLine(val string) (Identity, int64, string, error) {
	tzIdx := strings.LastIndexByte(val, ' ')
	if tzIdx < 0 {
		return Identity{}, 0, "", fmt.Errorf("malformed signature %q", val)
	}
	tz := val[tzIdx+1:]
	rest := val[:tzIdx]

	tsIdx := strings.LastIndexByte(rest, ' ')
	if tsIdx < 0 {
		return Identity{}, 0, "", fmt.Errorf("malformed signature %q", val)
	}
	ts, err := strconv.ParseInt(rest[tsIdx+1:], 10, 64)
	if err != nil {
		return Identity{}, 0, "", fmt.Errorf("bad timestamp %q: %w", rest[tsIdx+1:], err)
	}

	id, err := ParseIdentity(rest[:tsIdx])
	if err != nil {
		return Identity{}, 0, "", err
	}
	return id, ts, tz, nil
}

func timezoneOrUTC(tz string) string {
	if strings.TrimSpace(tz) == "" {
		return "+0000"
	}
	return tz
}

// CommitSigningPayload returns the canonical bytes that are signed for a
// commit. The payload excludes the signature field itself.
func CommitSigningPayload(c *CommitObj) []byte {
	if c == nil {
		return nil
	}
	copyCommit := *c
	copyCommit.Signature = ""
	return MarshalCommit(&copyCommit)
}
