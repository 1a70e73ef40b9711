package repo

import (
	"fmt"
	"regexp"
	"strings"
)

// SearchOptions restricts Search.
type SearchOptions struct {
	// Exclude skips paths matched by this regular expression.
	Exclude string
}

// SearchResult lists the matching lines of one file, in file order and
// without line terminators.
type SearchResult struct {
	Path  string
	Lines []string
}

// Search scans the committed content of every indexed file, in index order,
// for lines containing pattern (case-sensitive literal). Files without a
// match are omitted.
func (r *Repo) Search(pattern string, opts SearchOptions) ([]SearchResult, error) {
	var exclude *regexp.Regexp
	if opts.Exclude != "" {
		re, err := regexp.Compile(opts.Exclude)
		if err != nil {
			return nil, fmt.Errorf("search: %w", invalidArgument("exclude pattern %q: %v", opts.Exclude, err))
		}
		exclude = re
	}

	stg, err := r.ReadStaging()
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	var results []SearchResult
	for _, entry := range stg.Entries {
		if exclude != nil && exclude.MatchString(entry.Path) {
			continue
		}
		blob, err := r.Store.ReadBlob(entry.BlobHash)
		if err != nil {
			return nil, fmt.Errorf("search: read %q: %w", entry.Path, ioError(err))
		}

		var matched []string
		for _, line := range splitUniversal(string(blob.Data)) {
			if strings.Contains(line, pattern) {
				matched = append(matched, line)
			}
		}
		if len(matched) > 0 {
			results = append(results, SearchResult{Path: entry.Path, Lines: matched})
		}
	}
	return results, nil
}

// splitUniversal splits on "\r\n", "\r" and "\n". A trailing terminator does
// not produce an empty final line.
func splitUniversal(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
