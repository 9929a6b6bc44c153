package tui

import (
	"renamer/internal/engine"
	"renamer/internal/rename"
	"renamer/pkg/types"
)

// previewMsg carries a finished background preview
type previewMsg struct {
	spec   types.TransformSpec
	result engine.PreviewResult
}

// executeMsg carries the outcome of a rename batch
type executeMsg struct {
	outcome rename.Outcome
	err     error
}

// selectionMsg reports a selection forwarded by another instance
type selectionMsg struct {
	paths []string
}

// historyClearedMsg reports the result of clearing history
type historyClearedMsg struct {
	err error
}
