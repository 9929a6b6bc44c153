package types

import "path/filepath"

// PreviewEntry is the proposed rename of one selected file. It is derived
// from a TransformSpec and never persisted.
type PreviewEntry struct {
	OriginalPath string `json:"originalPath"`
	OriginalName string `json:"originalName"`
	NewName      string `json:"newName"`
	HasChanged   bool   `json:"hasChanged"`
}

// NewPath returns the destination path: the original directory joined with NewName
func (p PreviewEntry) NewPath() string {
	return filepath.Join(filepath.Dir(p.OriginalPath), p.NewName)
}
