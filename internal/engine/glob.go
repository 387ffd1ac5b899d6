package engine

import (
	"regexp"
	"strings"
)

// globPlaceholder temporarily stands in for "**" while single "*" is
// rewritten. NUL cannot appear in a file path or a sane pattern.
const globPlaceholder = "\x00"

// MatchGlob reports whether path matches a simple file-glob pattern.
// Matching is case-insensitive and anchored: the whole path must match, not
// a substring. Supported syntax: "**" matches any characters including path
// separators, "*" matches any characters except "/", "?" matches a single
// character. A malformed pattern never raises an error; it degenerates to a
// case-insensitive literal comparison.
func MatchGlob(path, pattern string) bool {
	re, err := compileGlob(pattern)
	if err != nil {
		return strings.EqualFold(path, pattern)
	}
	return re.MatchString(path)
}

// compileGlob translates a glob pattern into an anchored case-insensitive
// regular expression via ordered text substitutions.
func compileGlob(pattern string) (*regexp.Regexp, error) {
	expr := strings.ReplaceAll(pattern, ".", `\.`)
	expr = strings.ReplaceAll(expr, "**", globPlaceholder)
	expr = strings.ReplaceAll(expr, "*", `[^/]*`)
	expr = strings.ReplaceAll(expr, globPlaceholder, `.*`)
	expr = strings.ReplaceAll(expr, "?", ".")
	return regexp.Compile(`(?i)^` + expr + `$`)
}

// matchesAnyFile reports whether the pattern matches at least one of the
// project's files. The pattern is compiled once and tested against every
// path.
func matchesAnyFile(pattern string, files []string) bool {
	re, err := compileGlob(pattern)
	if err != nil {
		for _, f := range files {
			if strings.EqualFold(f, pattern) {
				return true
			}
		}
		return false
	}
	for _, f := range files {
		if re.MatchString(f) {
			return true
		}
	}
	return false
}
