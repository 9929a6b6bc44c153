package types

import "path/filepath"

// FileEntry is an absolute path to a file selected for renaming.
// Identity is the path string.
type FileEntry string

// Path returns the entry as a plain path
func (f FileEntry) Path() string {
	return string(f)
}

// Name returns the base name of the file
func (f FileEntry) Name() string {
	return filepath.Base(string(f))
}

// Dir returns the directory containing the file
func (f FileEntry) Dir() string {
	return filepath.Dir(string(f))
}

// EntriesFromPaths converts a path list to entries, preserving order
func EntriesFromPaths(paths []string) []FileEntry {
	entries := make([]FileEntry, len(paths))
	for i, p := range paths {
		entries[i] = FileEntry(p)
	}
	return entries
}
