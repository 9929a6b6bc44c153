// Package preview computes the proposed names for a selection without
// touching the filesystem.
package preview

import (
	"context"
	"path/filepath"

	"renamer/internal/pattern"
	"renamer/pkg/types"
)

// Set is the preview of one spec over one selection, in selection order
type Set struct {
	Spec    types.TransformSpec
	Entries []types.PreviewEntry
}

// Len returns the number of entries
func (s Set) Len() int {
	return len(s.Entries)
}

// ChangedCount returns how many entries would be renamed
func (s Set) ChangedCount() int {
	n := 0
	for _, e := range s.Entries {
		if e.HasChanged {
			n++
		}
	}
	return n
}

// Changed returns only the entries that would be renamed
func (s Set) Changed() []types.PreviewEntry {
	var out []types.PreviewEntry
	for _, e := range s.Entries {
		if e.HasChanged {
			out = append(out, e)
		}
	}
	return out
}

// Clone returns a copy that shares no entries with s
func (s Set) Clone() *Set {
	c := s
	c.Entries = append([]types.PreviewEntry(nil), s.Entries...)
	return &c
}

// Paths returns the original paths in order
func (s Set) Paths() []string {
	paths := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		paths[i] = e.OriginalPath
	}
	return paths
}

// Generate compiles spec once and applies it to every entry's base name.
// When the pattern does not compile the returned set marks every entry as
// unchanged and the error is the *errors.PatternError from the compiler.
// Generate only fails otherwise when ctx is cancelled.
func Generate(ctx context.Context, entries []types.FileEntry, spec types.TransformSpec) (Set, error) {
	m, err := pattern.Compile(spec)
	if err != nil {
		return Unchanged(entries, spec), err
	}
	return Apply(ctx, entries, m)
}

// Apply runs an already compiled matcher over entries
func Apply(ctx context.Context, entries []types.FileEntry, m pattern.Matcher) (Set, error) {
	set := Set{Spec: m.Spec(), Entries: make([]types.PreviewEntry, len(entries))}
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return Set{}, err
		}
		name := filepath.Base(entry.Path())
		newName := m.Apply(name)
		set.Entries[i] = types.PreviewEntry{
			OriginalPath: entry.Path(),
			OriginalName: name,
			NewName:      newName,
			HasChanged:   newName != name,
		}
	}
	return set, nil
}

// Unchanged builds a set where every entry keeps its name
func Unchanged(entries []types.FileEntry, spec types.TransformSpec) Set {
	set := Set{Spec: spec, Entries: make([]types.PreviewEntry, len(entries))}
	for i, entry := range entries {
		name := filepath.Base(entry.Path())
		set.Entries[i] = types.PreviewEntry{
			OriginalPath: entry.Path(),
			OriginalName: name,
			NewName:      name,
		}
	}
	return set
}
