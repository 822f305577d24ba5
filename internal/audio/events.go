package audio

import "time"

// EventKind enumerates media notifications.
type EventKind int

const (
	EventPosition EventKind = iota
	EventDuration
	EventReady
	EventEnded
	EventFailed
	EventMetadata
	EventLevels
)

func (k EventKind) String() string {
	switch k {
	case EventPosition:
		return "position"
	case EventDuration:
		return "duration"
	case EventReady:
		return "ready"
	case EventEnded:
		return "ended"
	case EventFailed:
		return "failed"
	case EventMetadata:
		return "metadata"
	case EventLevels:
		return "levels"
	default:
		return "unknown"
	}
}

// Event is a notification about the load identified by Token. Value holds
// seconds for position and duration events.
type Event struct {
	Kind     EventKind
	Token    uint64
	Value    float64
	Err      error
	Metadata *Metadata
	Levels   []float64
}

const (
	positionInterval = 250 * time.Millisecond
	levelsInterval   = 100 * time.Millisecond
	eventBuffer      = 64
)

// lossy events may be dropped when the consumer lags.
func (k EventKind) lossy() bool {
	return k == EventPosition || k == EventLevels
}
