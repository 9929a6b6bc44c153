// Package selection turns raw path arguments into the ordered, absolute,
// duplicate-free list the engine accepts, optionally filtered by glob.
package selection

import (
	"path/filepath"

	"renamer/internal/errors"

	"github.com/gobwas/glob"
)

// Normalize makes every path absolute (relative to cwd) and clean, and drops
// repeats. The first occurrence wins and order is otherwise preserved.
func Normalize(paths []string, cwd string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(cwd, p)
		}
		p = filepath.Clean(p)
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Filter keeps paths whose base name matches any Include pattern (all paths
// when Include is empty) and no Exclude pattern
type Filter struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewFilter compiles the include and exclude globs
func NewFilter(include, exclude []string) (*Filter, error) {
	f := &Filter{}
	var err error
	if f.include, err = compileAll(include); err != nil {
		return nil, err
	}
	if f.exclude, err = compileAll(exclude); err != nil {
		return nil, err
	}
	return f, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.NewPatternError(p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// Match reports whether path passes the filter
func (f *Filter) Match(path string) bool {
	if f == nil {
		return true
	}
	name := filepath.Base(path)
	if len(f.include) > 0 && !matchAny(f.include, name) {
		return false
	}
	return !matchAny(f.exclude, name)
}

// Apply returns the paths that pass, in order
func (f *Filter) Apply(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
