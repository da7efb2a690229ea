package trace

import "time"

// Scope indicates the granularity level of an event.
// Lower numeric values represent higher-level/coarser events.
type Scope uint8

const (
	// ScopePhase represents pipeline boundaries: train, classify, save, load.
	ScopePhase Scope = iota + 1
	// ScopeFile represents per-training-file processing.
	ScopeFile
	// ScopeSentence represents per-sentence scoring (most detailed).
	ScopeSentence
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopePhase:
		return "phase"
	case ScopeFile:
		return "file"
	case ScopeSentence:
		return "sentence"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time   time.Time // wall-clock timestamp
	Scope  Scope     // granularity level
	Name   string    // e.g., "train", "file:corpus/a/01.txt"
	Detail string    // optional detail message
}
