package engine

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"rcopy/internal/platform"
)

// Checkpoint is the file-backed committed-offset store. The file holds a
// single base-10 integer as plain text and is fully truncated and rewritten
// on every update. The store owns the file handle for the job's duration.
type Checkpoint struct {
	f    *os.File
	path string
}

// OpenCheckpoint opens (or creates) the checkpoint file at path.
func OpenCheckpoint(path string) (*Checkpoint, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint %s: %w", path, err)
	}
	return &Checkpoint{f: f, path: path}, nil
}

// Load returns the committed offset recorded in the file. A newly created
// or empty file is initialized to 0 first. Content that does not parse as a
// non-negative integer is an ErrResumeState failure.
func (c *Checkpoint) Load() (int64, error) {
	if _, err := c.f.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("rewind checkpoint %s: %w", c.path, err)
	}
	data, err := io.ReadAll(c.f)
	if err != nil {
		return 0, fmt.Errorf("read checkpoint %s: %w", c.path, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		if err := c.Persist(0); err != nil {
			return 0, err
		}
		return 0, nil
	}

	off, err := strconv.ParseInt(text, 10, 64)
	if err != nil || off < 0 {
		return 0, fmt.Errorf("%w: checkpoint %s holds %q, want a non-negative integer",
			ErrResumeState, c.path, text)
	}
	return off, nil
}

// Persist truncates the file and rewrites off as decimal text, forcing the
// write durable before returning. The truncate-then-write window is not
// crash-atomic: a crash inside it loses the checkpoint, and the next run
// restarts from offset 0 (wasted work, no data loss).
func (c *Checkpoint) Persist(off int64) error {
	if err := c.f.Truncate(0); err != nil {
		return fmt.Errorf("truncate checkpoint %s: %w", c.path, err)
	}
	if _, err := c.f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind checkpoint %s: %w", c.path, err)
	}
	if _, err := c.f.WriteString(strconv.FormatInt(off, 10)); err != nil {
		return fmt.Errorf("write checkpoint %s: %w", c.path, err)
	}
	if err := platform.SyncFile(c.f); err != nil {
		return fmt.Errorf("sync checkpoint %s: %w", c.path, err)
	}
	return nil
}

// Close releases the checkpoint file handle.
func (c *Checkpoint) Close() error {
	return c.f.Close()
}

// Path returns the checkpoint file location.
func (c *Checkpoint) Path() string {
	return c.path
}
