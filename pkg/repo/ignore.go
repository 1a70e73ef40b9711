package repo

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// IgnoreFileName is the per-repository ignore file read from the working
// tree root.
const IgnoreFileName = ".gitstorageignore"

// IgnoreChecker determines if a working tree path is skipped by the
// reconciler.
type IgnoreChecker struct {
	patterns []ignorePattern
}

type ignorePattern struct {
	pattern  string
	negated  bool
	dirOnly  bool
	hasSlash bool // match against the full path instead of the base name
	regex    *regexp.Regexp
}

// NewIgnoreChecker creates an IgnoreChecker for the given working tree root.
// The metadata directory and .git/ are always ignored. Patterns from
// .gitstorageignore are applied after them; the last match wins.
func NewIgnoreChecker(root string) *IgnoreChecker {
	ic := &IgnoreChecker{
		patterns: []ignorePattern{
			{pattern: MetaDirName, dirOnly: true},
			{pattern: ".git", dirOnly: true},
		},
	}

	f, err := os.Open(filepath.Join(root, IgnoreFileName))
	if err != nil {
		return ic
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if p, ok := parseIgnoreLine(scanner.Text()); ok {
			ic.patterns = append(ic.patterns, p)
		}
	}
	return ic
}

func parseIgnoreLine(line string) (ignorePattern, bool) {
	line = strings.TrimRight(line, " \t\r")
	if line == "" || strings.HasPrefix(line, "#") {
		return ignorePattern{}, false
	}

	var p ignorePattern
	if strings.HasPrefix(line, "!") {
		p.negated = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimRight(line, "/")
	}
	anchored := strings.HasPrefix(line, "/")
	line = strings.TrimPrefix(line, "/")
	if line == "" {
		return ignorePattern{}, false
	}
	p.hasSlash = anchored || strings.Contains(line, "/")
	p.pattern = line
	if strings.Contains(line, "**") {
		if re, err := regexp.Compile(globToRegex(line)); err == nil {
			p.regex = re
		}
	}
	return p, true
}

// IsIgnored checks whether a slash-separated repository-relative file path
// is ignored, either directly or because one of its parent directories is.
func (ic *IgnoreChecker) IsIgnored(path string) bool {
	return ic.ignored(path, false)
}

// IsIgnoredDir is IsIgnored for a directory path, which trailing-slash
// patterns may also match.
func (ic *IgnoreChecker) IsIgnoredDir(path string) bool {
	return ic.ignored(path, true)
}

func (ic *IgnoreChecker) ignored(path string, isDir bool) bool {
	path = filepath.ToSlash(path)
	ignored := false
	for _, p := range ic.patterns {
		if p.matches(path, isDir) {
			ignored = !p.negated
		}
	}
	return ignored
}

func (p *ignorePattern) matches(path string, isDir bool) bool {
	// A pattern matching a parent directory covers everything below it.
	segments := strings.Split(path, "/")
	for i := range segments {
		last := i == len(segments)-1
		if p.dirOnly && last && !isDir {
			break
		}
		if p.matchSegment(strings.Join(segments[:i+1], "/"), segments[i]) {
			return true
		}
	}
	return false
}

func (p *ignorePattern) matchSegment(fullPrefix, base string) bool {
	target := base
	if p.hasSlash {
		target = fullPrefix
	}
	if p.regex != nil {
		return p.regex.MatchString(target)
	}
	matched, _ := filepath.Match(p.pattern, target)
	return matched
}

func globToRegex(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]
		if ch == '*' {
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				if i+2 < len(pattern) && pattern[i+2] == '/' {
					b.WriteString("(?:.*/)?")
					i += 2
				} else {
					b.WriteString(".*")
					i++
				}
				continue
			}
			b.WriteString("[^/]*")
			continue
		}
		if ch == '?' {
			b.WriteString("[^/]")
			continue
		}
		if strings.ContainsRune(`.+()|[]{}^$\\`, rune(ch)) {
			b.WriteByte('\\')
		}
		b.WriteByte(ch)
	}
	b.WriteString("$")
	return b.String()
}
