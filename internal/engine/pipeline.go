package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"rcopy/internal/event"
	"rcopy/internal/platform"
)

// chunk pairs a chunk index with the bytes read for it. The final chunk of
// a file may be shorter than the configured chunk size.
type chunk struct {
	index int64
	data  []byte
}

// readChunks is the reader stage: a single sequential worker consuming
// chunk indices in ascending order and emitting payloads in the same order.
// Closes out so the writer stage sees end-of-input.
func (c *Copier) readChunks(ctx context.Context, src *os.File, indices <-chan int64, out chan<- chunk) error {
	defer close(out)
	for {
		var i int64
		var ok bool
		select {
		case i, ok = <-indices:
			if !ok {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}

		pos, err := src.Seek(0, io.SeekCurrent)
		if err != nil {
			return fmt.Errorf("query source position: %w", err)
		}
		if want := c.offset + i*c.job.ChunkSize; pos != want {
			return fmt.Errorf("%w: source cursor at %d before chunk %d, want %d",
				ErrInvariant, pos, i, want)
		}

		// Full chunk unless end-of-file truncates it; ReadFull loops over
		// partial reads for us.
		buf := make([]byte, c.job.ChunkSize)
		n, err := io.ReadFull(src, buf)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read chunk %d: %w", i, err)
		}

		c.stats.Pulse()

		select {
		case out <- chunk{index: i, data: buf[:n]}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// writeChunks is the writer stage: a single sequential worker that writes
// each payload at the current cursor, forces it durable, then advances the
// checkpoint before accepting the next item. That ordering is the
// crash-consistency contract: the checkpoint never runs ahead of data that
// is not yet on disk.
func (c *Copier) writeChunks(ctx context.Context, dst *os.File, in <-chan chunk) error {
	var next int64
	for {
		var ch chunk
		var ok bool
		select {
		case ch, ok = <-in:
			if !ok {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}

		if ch.index != next {
			return fmt.Errorf("%w: writer received chunk %d, want %d",
				ErrInvariant, ch.index, next)
		}
		pos, err := dst.Seek(0, io.SeekCurrent)
		if err != nil {
			return fmt.Errorf("query destination position: %w", err)
		}
		if want := c.offset + ch.index*c.job.ChunkSize; pos != want {
			return fmt.Errorf("%w: destination cursor at %d before chunk %d, want %d",
				ErrInvariant, pos, ch.index, want)
		}

		if _, err := dst.Write(ch.data); err != nil {
			return fmt.Errorf("write chunk %d: %w", ch.index, err)
		}
		if err := platform.SyncFile(dst); err != nil {
			return fmt.Errorf("sync destination: %w", err)
		}

		committed := c.offset + ch.index*c.job.ChunkSize + int64(len(ch.data))
		if err := c.checkpoint.Persist(committed); err != nil {
			return err
		}

		c.stats.AddBytesCommitted(int64(len(ch.data)))
		c.stats.AddChunksCommitted(1)
		c.stats.Pulse()
		c.emit(event.Event{
			Type:      event.ChunkCommitted,
			Index:     ch.index,
			Bytes:     int64(len(ch.data)),
			Committed: committed,
			Percent:   int(100 * committed / c.size),
		})

		next++
	}
}
