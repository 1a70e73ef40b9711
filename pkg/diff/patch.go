package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/odvcencio/gitstorage/pkg/object"
)

const (
	abbrevLen   = 7
	devNull     = "/dev/null"
	zeroAbbrev  = "0000000"
	binarySniff = 8000
	noNewlineAt = "\\ No newline at end of file\n"
)

// BlobReader loads blob content by hash. *object.Store satisfies it.
type BlobReader interface {
	ReadBlob(h object.Hash) (*object.Blob, error)
}

// FilePatch is the rendered-ready diff of one changed path.
type FilePatch struct {
	Change FileChange
	Binary bool
	Hunks  []Hunk
}

// Compute loads the blobs referenced by changes and builds the line hunks
// for each path.
func Compute(changes []FileChange, blobs BlobReader) ([]FilePatch, error) {
	patches := make([]FilePatch, 0, len(changes))
	for _, c := range changes {
		oldData, err := readSide(blobs, c.Old.BlobHash)
		if err != nil {
			return nil, fmt.Errorf("diff %s: old: %w", c.Path, err)
		}
		newData, err := readSide(blobs, c.New.BlobHash)
		if err != nil {
			return nil, fmt.Errorf("diff %s: new: %w", c.Path, err)
		}

		fp := FilePatch{Change: c}
		if isBinary(oldData) || isBinary(newData) {
			fp.Binary = !bytes.Equal(oldData, newData)
		} else {
			fp.Hunks = Hunks(SplitLines(oldData), SplitLines(newData), DefaultContext)
		}
		patches = append(patches, fp)
	}
	return patches, nil
}

// FormatPatch renders changes as a git-style patch.
func FormatPatch(changes []FileChange, blobs BlobReader) (string, error) {
	patches, err := Compute(changes, blobs)
	if err != nil {
		return "", err
	}
	return Render(patches), nil
}

// Render produces the textual patch for the given file patches.
//
// Output format per path:
//
//	diff --git a/path b/path
//	new file mode 100644
//	index 0000000..ffe3c60
//	--- /dev/null
//	+++ b/path
//	@@ -0,0 +1 @@
//	+content
//	\ No newline at end of file
func Render(patches []FilePatch) string {
	var b strings.Builder
	for _, fp := range patches {
		renderFile(&b, fp)
	}
	return b.String()
}

func renderFile(b *strings.Builder, fp FilePatch) {
	c := fp.Change
	fmt.Fprintf(b, "diff --git a/%s b/%s\n", c.Path, c.Path)

	oldName, newName := "a/"+c.Path, "b/"+c.Path
	switch c.Type {
	case Added:
		oldName = devNull
		fmt.Fprintf(b, "new file mode %s\n", normalizeMode(c.New.Mode))
		fmt.Fprintf(b, "index %s..%s\n", zeroAbbrev, c.New.BlobHash.Short(abbrevLen))
	case Deleted:
		newName = devNull
		fmt.Fprintf(b, "deleted file mode %s\n", normalizeMode(c.Old.Mode))
		fmt.Fprintf(b, "index %s..%s\n", c.Old.BlobHash.Short(abbrevLen), zeroAbbrev)
	case Modified:
		oldMode, newMode := normalizeMode(c.Old.Mode), normalizeMode(c.New.Mode)
		if oldMode != newMode {
			fmt.Fprintf(b, "old mode %s\n", oldMode)
			fmt.Fprintf(b, "new mode %s\n", newMode)
		}
		if c.Old.BlobHash != c.New.BlobHash {
			if oldMode == newMode {
				fmt.Fprintf(b, "index %s..%s %s\n", c.Old.BlobHash.Short(abbrevLen), c.New.BlobHash.Short(abbrevLen), newMode)
			} else {
				fmt.Fprintf(b, "index %s..%s\n", c.Old.BlobHash.Short(abbrevLen), c.New.BlobHash.Short(abbrevLen))
			}
		}
	}

	if fp.Binary {
		fmt.Fprintf(b, "Binary files %s and %s differ\n", oldName, newName)
		return
	}
	if len(fp.Hunks) == 0 {
		return
	}

	fmt.Fprintf(b, "--- %s\n", oldName)
	fmt.Fprintf(b, "+++ %s\n", newName)
	for _, h := range fp.Hunks {
		fmt.Fprintf(b, "@@ -%s +%s @@\n", formatRange(h.OldStart, h.OldLines), formatRange(h.NewStart, h.NewLines))
		for _, e := range h.Edits {
			switch e.Kind {
			case Equal:
				b.WriteByte(' ')
			case Insert:
				b.WriteByte('+')
			case Delete:
				b.WriteByte('-')
			}
			b.WriteString(e.Line)
			if !strings.HasSuffix(e.Line, "\n") {
				b.WriteByte('\n')
				b.WriteString(noNewlineAt)
			}
		}
	}
}

func formatRange(start, count int) string {
	if count == 1 {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}

func readSide(blobs BlobReader, h object.Hash) ([]byte, error) {
	if h == "" {
		return nil, nil
	}
	blob, err := blobs.ReadBlob(h)
	if err != nil {
		return nil, err
	}
	return blob.Data, nil
}

func isBinary(data []byte) bool {
	if len(data) > binarySniff {
		data = data[:binarySniff]
	}
	return bytes.IndexByte(data, 0) >= 0
}
