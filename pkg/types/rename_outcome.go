package types

// RenameOutcome summarises one batch execution.
// NewFilePaths is aligned with the selection the batch ran on: renamed entries
// carry their destination, unchanged and failed entries their original path.
type RenameOutcome struct {
	SuccessCount int      `json:"successCount"`
	FailureCount int      `json:"failureCount"`
	Errors       []string `json:"errors"`
	NewFilePaths []string `json:"newFilePaths"`
}

// HasFailures reports whether any changed entry could not be renamed
func (o RenameOutcome) HasFailures() bool {
	return o.FailureCount > 0
}
