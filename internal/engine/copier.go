package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"rcopy/internal/event"
	"rcopy/internal/platform"
	"rcopy/internal/stats"
)

// State is the terminal outcome of a copy run.
type State int

const (
	StateCompleted State = iota + 1
	StateAlreadyComplete
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCompleted:
		return "completed"
	case StateAlreadyComplete:
		return "already complete"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of a copy run. Cancellation is a recognized
// successful exit, not a failure: State is StateCancelled and Err is nil.
type Result struct {
	State          State
	Resumed        int64 // offset the run started from
	BytesCommitted int64 // bytes written and checkpointed by this run
	Elapsed        time.Duration
	Err            error
}

// Options carries the run's optional collaborators.
type Options struct {
	Stats  *stats.Collector
	Events chan<- event.Event
}

// Copier owns the file handles and drives the three-stage pipeline:
// index feed, reader, writer, connected by bounded order-preserving queues.
type Copier struct {
	job    Job
	stats  *stats.Collector
	events chan<- event.Event

	// Per-run state, set by run before the pipeline starts.
	offset     int64
	size       int64
	checkpoint *Checkpoint
}

// NewCopier validates the job configuration. No file I/O happens here;
// a bad configuration fails with ErrValidation before anything is opened.
func NewCopier(job Job, opts Options) (*Copier, error) {
	job = job.withDefaults()
	if err := job.validate(); err != nil {
		return nil, err
	}

	st := opts.Stats
	if st == nil {
		st = stats.NewCollector()
	}
	return &Copier{job: job, stats: st, events: opts.Events}, nil
}

// Run executes the copy, blocking until completion, cancellation, or an
// unrecoverable error. All handles are released on every exit path.
func (c *Copier) Run(ctx context.Context) Result {
	start := time.Now()
	res := c.run(ctx)
	res.Elapsed = time.Since(start)
	return res
}

func (c *Copier) run(ctx context.Context) Result {
	cp, err := OpenCheckpoint(c.job.CheckpointPath)
	if err != nil {
		return Result{State: StateFailed, Err: err}
	}
	defer cp.Close()
	c.checkpoint = cp

	offset, err := cp.Load()
	if err != nil {
		return Result{State: StateFailed, Err: err}
	}
	c.offset = offset

	info, err := os.Stat(c.job.Source)
	if err != nil {
		return Result{State: StateFailed, Err: fmt.Errorf("source: %w", err)}
	}
	c.size = info.Size()
	c.stats.SetTotals(c.size, offset)

	chunksLeft, err := chunkPlan(c.size, offset, c.job.ChunkSize)
	if err != nil {
		return Result{State: StateFailed, Resumed: offset, Err: err}
	}
	if chunksLeft == 0 {
		slog.Debug("checkpoint already at source size, nothing to do",
			"offset", offset,
		)
		return Result{State: StateAlreadyComplete, Resumed: offset}
	}

	src, err := os.Open(c.job.Source)
	if err != nil {
		return Result{State: StateFailed, Resumed: offset, Err: fmt.Errorf("open source: %w", err)}
	}
	defer src.Close()
	if _, err := src.Seek(offset, io.SeekStart); err != nil {
		return Result{State: StateFailed, Resumed: offset, Err: fmt.Errorf("seek source: %w", err)}
	}

	dst, err := os.OpenFile(c.job.Dest, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return Result{State: StateFailed, Resumed: offset, Err: fmt.Errorf("open destination: %w", err)}
	}
	defer dst.Close()
	if offset == 0 {
		platform.Preallocate(dst, c.size)
	}
	if _, err := dst.Seek(offset, io.SeekStart); err != nil {
		return Result{State: StateFailed, Resumed: offset, Err: fmt.Errorf("seek destination: %w", err)}
	}

	if offset > 0 {
		c.emit(event.Event{
			Type:      event.Resumed,
			Committed: offset,
			Percent:   int(100 * offset / c.size),
		})
	}

	slog.Debug("starting pipeline",
		"chunks", chunksLeft,
		"chunk_size", c.job.ChunkSize,
		"buffer", c.job.MaxBuffered,
		"resume_offset", offset,
	)

	indices := make(chan int64, c.job.MaxBuffered)
	chunks := make(chan chunk, c.job.MaxBuffered)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return feedIndices(gctx, chunksLeft, indices) })
	g.Go(func() error { return c.readChunks(gctx, src, indices, chunks) })
	g.Go(func() error { return c.writeChunks(gctx, dst, chunks) })

	err = g.Wait()
	committed := c.stats.BytesCommitted()

	switch {
	case err == nil:
		c.emit(event.Event{Type: event.Completed, Committed: c.size, Percent: 100})
		return Result{State: StateCompleted, Resumed: offset, BytesCommitted: committed}
	case errors.Is(err, context.Canceled):
		return Result{State: StateCancelled, Resumed: offset, BytesCommitted: committed}
	default:
		c.emit(event.Event{Type: event.Failed, Err: err})
		return Result{State: StateFailed, Resumed: offset, BytesCommitted: committed, Err: err}
	}
}

// emit sends a progress event without ever blocking the pipeline; a slow
// presenter drops updates rather than stalling the copy.
func (c *Copier) emit(ev event.Event) {
	if c.events == nil {
		return
	}
	ev.Timestamp = time.Now()
	select {
	case c.events <- ev:
	default:
	}
}
