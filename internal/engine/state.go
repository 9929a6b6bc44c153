package engine

// State is where the engine is in the select, preview, execute cycle
type State int

const (
	// Idle means nothing is selected
	Idle State = iota
	// Selected means files are selected but there is no current preview
	Selected
	// Previewed means a preview of the current selection is ready to execute
	Previewed
	// Executed means a batch ran; the selection now holds the resulting paths
	Executed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selected:
		return "selected"
	case Previewed:
		return "previewed"
	case Executed:
		return "executed"
	default:
		return "unknown"
	}
}
