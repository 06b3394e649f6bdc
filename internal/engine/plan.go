package engine

import (
	"context"
	"fmt"
)

// chunkPlan computes how many fixed-size chunks remain between the resume
// offset and the end of the source. A zero return means the job is already
// complete and the pipeline is skipped entirely.
func chunkPlan(size, offset, chunkSize int64) (int64, error) {
	switch {
	case size == offset:
		return 0, nil
	case size < offset:
		return 0, fmt.Errorf("%w: checkpoint offset %d exceeds source size %d (stale or mismatched checkpoint)",
			ErrResumeState, offset, size)
	}

	left := (size - offset + chunkSize - 1) / chunkSize
	if left < 1 {
		// Unreachable after the checks above; a non-positive count here
		// means the arithmetic itself is broken.
		return 0, fmt.Errorf("%w: computed %d chunks for %d remaining bytes",
			ErrInvariant, left, size-offset)
	}
	return left, nil
}

// feedIndices emits 0..chunksLeft-1 in ascending order into out, honoring
// cancellation at every send. Closes out so the reader stage sees
// end-of-input.
func feedIndices(ctx context.Context, chunksLeft int64, out chan<- int64) error {
	defer close(out)
	for i := int64(0); i < chunksLeft; i++ {
		select {
		case out <- i:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
