package engine

import "fmt"

// MinChunkSize is the smallest permitted chunk size in bytes.
const MinChunkSize = 1024

const (
	// DefaultChunkSize is used when the job does not set one.
	DefaultChunkSize = 10 * 1024 * 1024

	// DefaultMaxBuffered bounds queue depth between pipeline stages.
	// Peak memory is roughly MaxBuffered * ChunkSize.
	DefaultMaxBuffered = 4
)

// Job describes a single resumable copy operation. It is built once per
// invocation and read-only afterwards.
type Job struct {
	Source string
	Dest   string

	// CheckpointPath is the side file holding the committed byte offset
	// as decimal text. Defaults to Dest + ".offset".
	CheckpointPath string

	// ChunkSize is the fixed chunk length in bytes. Must be at least
	// MinChunkSize.
	ChunkSize int64

	// MaxBuffered caps in-flight chunks per inter-stage queue.
	MaxBuffered int
}

func (j Job) withDefaults() Job {
	if j.CheckpointPath == "" {
		j.CheckpointPath = j.Dest + ".offset"
	}
	if j.ChunkSize == 0 {
		j.ChunkSize = DefaultChunkSize
	}
	if j.MaxBuffered <= 0 {
		j.MaxBuffered = DefaultMaxBuffered
	}
	return j
}

func (j Job) validate() error {
	if j.Source == "" {
		return fmt.Errorf("%w: source path is required", ErrValidation)
	}
	if j.Dest == "" {
		return fmt.Errorf("%w: destination path is required", ErrValidation)
	}
	if j.ChunkSize < MinChunkSize {
		return fmt.Errorf("%w: chunk size %d is below the %d byte minimum",
			ErrValidation, j.ChunkSize, MinChunkSize)
	}
	return nil
}
