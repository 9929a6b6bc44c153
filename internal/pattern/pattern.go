// Package pattern compiles a TransformSpec into a Matcher that rewrites file
// names. A spec is compiled once per batch and the Matcher applied to every
// base name in it.
package pattern

import (
	"regexp"
	"strings"

	"renamer/internal/errors"
	"renamer/pkg/types"
)

// Matcher rewrites a base name. Substitution is global: every
// non-overlapping match is replaced.
type Matcher interface {
	Apply(name string) string
	Spec() types.TransformSpec
}

// Compile validates spec and returns its Matcher.
// An empty pattern always compiles to a matcher that changes nothing.
// Invalid regular expressions return a *errors.PatternError.
func Compile(spec types.TransformSpec) (Matcher, error) {
	if spec.IsNoop() {
		return noopMatcher{spec: spec}, nil
	}

	if !spec.IsRegex {
		if !spec.CaseInsensitive {
			return literalMatcher{spec: spec}, nil
		}
		// QuoteMeta output always compiles
		re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(spec.Pattern))
		return foldedLiteralMatcher{spec: spec, re: re}, nil
	}

	expr := spec.Pattern
	if spec.CaseInsensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.NewPatternError(spec.Pattern, err)
	}
	return regexMatcher{spec: spec, re: re}, nil
}

// MustCompile is like Compile but panics on an invalid pattern.
// Intended for tests and constant specs.
func MustCompile(spec types.TransformSpec) Matcher {
	m, err := Compile(spec)
	if err != nil {
		panic(err)
	}
	return m
}

// Validate reports whether spec compiles
func Validate(spec types.TransformSpec) error {
	_, err := Compile(spec)
	return err
}

type noopMatcher struct {
	spec types.TransformSpec
}

func (m noopMatcher) Apply(name string) string  { return name }
func (m noopMatcher) Spec() types.TransformSpec { return m.spec }

// literalMatcher replaces the exact substring
type literalMatcher struct {
	spec types.TransformSpec
}

func (m literalMatcher) Apply(name string) string {
	return strings.ReplaceAll(name, m.spec.Pattern, m.spec.Replacement)
}

func (m literalMatcher) Spec() types.TransformSpec { return m.spec }

// foldedLiteralMatcher replaces the substring ignoring case. The replacement
// is inserted verbatim, "$1" stays "$1".
type foldedLiteralMatcher struct {
	spec types.TransformSpec
	re   *regexp.Regexp
}

func (m foldedLiteralMatcher) Apply(name string) string {
	return m.re.ReplaceAllLiteralString(name, m.spec.Replacement)
}

func (m foldedLiteralMatcher) Spec() types.TransformSpec { return m.spec }

// regexMatcher expands $1 and ${name} in the replacement
type regexMatcher struct {
	spec types.TransformSpec
	re   *regexp.Regexp
}

func (m regexMatcher) Apply(name string) string {
	return m.re.ReplaceAllString(name, m.spec.Replacement)
}

func (m regexMatcher) Spec() types.TransformSpec { return m.spec }
