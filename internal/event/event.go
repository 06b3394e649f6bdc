package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	Resumed Type = iota + 1
	ChunkCommitted
	Completed
	Failed
)

var typeNames = [...]string{
	Resumed:        "Resumed",
	ChunkCommitted: "ChunkCommitted",
	Completed:      "Completed",
	Failed:         "Failed",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress report from the copy engine. Events
// are cosmetic: they feed presenters and never affect control flow.
type Event struct {
	Type      Type
	Timestamp time.Time
	Index     int64 // chunk index (ChunkCommitted only)
	Bytes     int64 // payload length of this chunk
	Committed int64 // total bytes durably copied and checkpointed
	Percent   int   // floor(100 * Committed / source size)
	Err       error
}
