package backup

import "strings"

// defaultExcludes are never copied into a snapshot. node_modules and .git
// can be re-enabled through Options; the rest are always skipped.
var defaultExcludes = []string{
	DirName,
	"dist",
	"build",
	".cache",
	".tmp",
	".temp",
	"*.log",
}

// matchKind is the compiled form of an exclusion pattern. Patterns support
// at most one '*' wildcard; everything else is a literal name.
type matchKind int

const (
	matchExact matchKind = iota
	matchPrefix
	matchSuffix
	matchInner // single '*' in the middle: prefix and suffix must both hold
)

// pattern is one compiled exclusion rule applied to base names.
type pattern struct {
	kind   matchKind
	prefix string
	suffix string
}

// compilePattern turns a pattern string into its matcher. Compilation
// happens once per store, not per file.
func compilePattern(raw string) pattern {
	star := strings.IndexByte(raw, '*')
	switch {
	case star < 0:
		return pattern{kind: matchExact, prefix: raw}
	case star == 0:
		return pattern{kind: matchSuffix, suffix: raw[1:]}
	case star == len(raw)-1:
		return pattern{kind: matchPrefix, prefix: raw[:star]}
	default:
		return pattern{kind: matchInner, prefix: raw[:star], suffix: raw[star+1:]}
	}
}

func (p pattern) matches(name string) bool {
	switch p.kind {
	case matchExact:
		return name == p.prefix
	case matchPrefix:
		return strings.HasPrefix(name, p.prefix)
	case matchSuffix:
		return strings.HasSuffix(name, p.suffix)
	case matchInner:
		return len(name) >= len(p.prefix)+len(p.suffix) &&
			strings.HasPrefix(name, p.prefix) &&
			strings.HasSuffix(name, p.suffix)
	}
	return false
}

// excluder holds the compiled exclusion set for one backup run.
type excluder struct {
	patterns []pattern
}

// newExcluder compiles the default exclusion set, honoring the
// node_modules/.git opt-ins.
func newExcluder(opts Options) *excluder {
	raw := make([]string, 0, len(defaultExcludes)+2)
	if !opts.IncludeNodeModules {
		raw = append(raw, "node_modules")
	}
	if !opts.IncludeGit {
		raw = append(raw, ".git")
	}
	raw = append(raw, defaultExcludes...)

	compiled := make([]pattern, len(raw))
	for i, r := range raw {
		compiled[i] = compilePattern(r)
	}
	return &excluder{patterns: compiled}
}

// excluded reports whether a base name matches any exclusion pattern.
func (e *excluder) excluded(name string) bool {
	for _, p := range e.patterns {
		if p.matches(name) {
			return true
		}
	}
	return false
}

var defaultExcluder = newExcluder(Options{})

// Excluded reports whether a base name falls under the default exclusion
// set. Snapshot comparison uses this so both sides of a diff skip the
// same entries.
func Excluded(name string) bool {
	return defaultExcluder.excluded(name)
}
