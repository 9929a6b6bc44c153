package types

import "time"

// MaxHistoryEntries is the default history capacity
const MaxHistoryEntries = 100

// HistoryEntry is a previously executed transformation
type HistoryEntry struct {
	TransformSpec `yaml:",inline"`
	Timestamp     time.Time `json:"timestamp" yaml:"timestamp"`
}

// Spec returns the transformation without its timestamp
func (h HistoryEntry) Spec() TransformSpec {
	return h.TransformSpec
}
