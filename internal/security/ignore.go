package security

import (
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// ignorePattern is one .aishignore line in its two readings. As an
// expression, "*" becomes ".*" and the result may match anywhere in the
// path string. As a glob it follows gitignore rules, so "**" and "dir/"
// work as expected. A leading "!" has no special meaning in either reading.
type ignorePattern struct {
	raw   string
	regex *regexp.Regexp
	glob  gitignore.Pattern
}

// ignoreMatcher rejects a path when any pattern matches it in either
// reading. No line can re-admit a path another line rejects.
type ignoreMatcher struct {
	patterns []ignorePattern
}

func newIgnoreMatcher(lines []string, logger *slog.Logger) *ignoreMatcher {
	m := &ignoreMatcher{}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		p := ignorePattern{raw: trimmed}
		re, err := regexp.Compile(strings.ReplaceAll(trimmed, "*", ".*"))
		if err != nil {
			logger.Warn("ignore pattern is not a valid expression, matching as glob only", "pattern", trimmed, "error", err)
		} else {
			p.regex = re
		}
		// Escaped so the parser does not read "!" as a negation.
		globText := trimmed
		if strings.HasPrefix(globText, "!") {
			globText = `\` + globText
		}
		p.glob = gitignore.ParsePattern(globText, nil)
		m.patterns = append(m.patterns, p)
	}
	return m
}

// match returns the first pattern that rejects path, if any.
func (m *ignoreMatcher) match(path string) (string, bool) {
	segments := splitPath(path)
	for _, p := range m.patterns {
		if p.regex != nil && p.regex.MatchString(path) {
			return p.raw, true
		}
		if len(segments) == 0 {
			continue
		}
		// Tested as a file and as a directory so "build/" also covers "build".
		if p.glob.Match(segments, false) == gitignore.Exclude || p.glob.Match(segments, true) == gitignore.Exclude {
			return p.raw, true
		}
	}
	return "", false
}

// splitPath splits a path into segments for gitignore matching.
// It normalizes path separators and filters out empty and "." segments.
func splitPath(path string) []string {
	normalized := filepath.ToSlash(path)
	var segments []string
	for _, part := range strings.Split(normalized, "/") {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}
