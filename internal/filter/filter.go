// Package filter builds a synccore.Filter predicate from a list of
// operator-authored glob exclude patterns.
package filter

import (
	"path/filepath"

	"github.com/gobwas/glob"
)

// Set is an immutable, compiled collection of exclude patterns. A Set is
// safe for concurrent use by multiple worker goroutines once built, matching
// the "thread-safe, static-lifetime" contract synccore.Filter requires.
type Set struct {
	patterns []glob.Glob
}

// New compiles patterns (glob syntax, '/' as the path separator regardless
// of host OS so a jobs.yaml file is portable across platforms) into a Set.
// A malformed pattern is reported immediately rather than silently ignored,
// so a typo in an exclude list fails at config-load time instead of quietly
// matching nothing.
func New(patterns []string) (*Set, error) {
	s := &Set{patterns: make([]glob.Glob, 0, len(patterns))}
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, err
		}
		s.patterns = append(s.patterns, g)
	}
	return s, nil
}

// Match implements synccore.Filter: it returns true (participate in the
// sync) unless path matches one of the compiled exclude patterns. Paths are
// converted to forward slashes before matching so a pattern like
// "*/.git/**" behaves the same on Windows and POSIX source trees.
func (s *Set) Match(path string) bool {
	slashPath := filepath.ToSlash(path)
	for _, g := range s.patterns {
		if g.Match(slashPath) {
			return false
		}
	}
	return true
}
