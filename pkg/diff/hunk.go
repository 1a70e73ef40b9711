package diff

import "strings"

// DefaultContext is the number of unchanged lines shown around each change.
const DefaultContext = 3

// Hunk is one "@@ -a,b +c,d @@" section of a unified diff. Lines keep their
// trailing newline, so a final line without one is detectable.
type Hunk struct {
	OldStart, OldLines int
	NewStart, NewLines int
	Edits              []Edit
}

// SplitLines splits data after every '\n'. Each returned line keeps its
// terminator; only the last one may lack it.
func SplitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	s := string(data)
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Hunks computes the unified diff hunks between a and b with the given
// number of context lines. Identical inputs produce no hunks.
func Hunks(a, b []string, context int) []Hunk {
	if context < 0 {
		context = 0
	}
	edits := Myers(a, b)

	type span struct{ start, end int }
	var spans []span
	for i, e := range edits {
		if e.Kind == Equal {
			continue
		}
		start := i - context
		if start < 0 {
			start = 0
		}
		end := i + context + 1
		if end > len(edits) {
			end = len(edits)
		}
		if len(spans) == 0 || start > spans[len(spans)-1].end {
			spans = append(spans, span{start: start, end: end})
			continue
		}
		if end > spans[len(spans)-1].end {
			spans[len(spans)-1].end = end
		}
	}

	hunks := make([]Hunk, 0, len(spans))
	oldLine, newLine := 1, 1
	pos := 0
	for _, sp := range spans {
		for ; pos < sp.start; pos++ {
			oldLine, newLine = advance(edits[pos].Kind, oldLine, newLine)
		}

		h := Hunk{OldStart: oldLine, NewStart: newLine, Edits: edits[sp.start:sp.end]}
		for ; pos < sp.end; pos++ {
			switch edits[pos].Kind {
			case Equal:
				h.OldLines++
				h.NewLines++
			case Delete:
				h.OldLines++
			case Insert:
				h.NewLines++
			}
			oldLine, newLine = advance(edits[pos].Kind, oldLine, newLine)
		}

		// An empty side is anchored at the line before the change.
		if h.OldLines == 0 {
			h.OldStart--
		}
		if h.NewLines == 0 {
			h.NewStart--
		}
		hunks = append(hunks, h)
	}
	return hunks
}

func advance(kind EditKind, oldLine, newLine int) (int, int) {
	switch kind {
	case Equal:
		return oldLine + 1, newLine + 1
	case Delete:
		return oldLine + 1, newLine
	default:
		return oldLine, newLine + 1
	}
}
