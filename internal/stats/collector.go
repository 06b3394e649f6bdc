package stats

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const ringSize = 30

// Collector tracks copy progress using lock-free atomic counters. The
// pipeline stages write to it concurrently; presenters only read.
type Collector struct {
	bytesCommitted  atomic.Int64
	chunksCommitted atomic.Int64
	bytesTotal      atomic.Int64
	bytesResumed    atomic.Int64
	pulse           atomic.Int64
	startTime       time.Time

	// Throughput ring — written only by the presenter's Tick(), not the
	// pipeline stages.
	mu         sync.Mutex
	throughput [ringSize]int64 // bytes delta per second
	ringIdx    int
	ringCount  int
	lastBytes  int64
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// SetTotals records the source size and the offset the run resumed from.
// Called once by the copier before the pipeline starts.
func (c *Collector) SetTotals(total, resumed int64) {
	c.bytesTotal.Store(total)
	c.bytesResumed.Store(resumed)
}

func (c *Collector) AddBytesCommitted(n int64)  { c.bytesCommitted.Add(n) }
func (c *Collector) AddChunksCommitted(n int64) { c.chunksCommitted.Add(n) }

// BytesCommitted returns the bytes written and checkpointed by this run.
func (c *Collector) BytesCommitted() int64 { return c.bytesCommitted.Load() }

// Pulse bumps the shared spinner counter. Both the reader and writer stage
// call this concurrently; the increment must not race even though the
// rendered spinner is cosmetic.
func (c *Collector) Pulse() { c.pulse.Add(1) }

// Pulses returns the current pulse count.
func (c *Collector) Pulses() int64 { return c.pulse.Load() }

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	BytesCommitted  int64
	ChunksCommitted int64
	BytesTotal      int64
	BytesResumed    int64
	Elapsed         time.Duration
}

// Committed is the total bytes durably copied, including the resumed prefix.
func (s Snapshot) Committed() int64 {
	return s.BytesResumed + s.BytesCommitted
}

// Percent returns floor(100 * committed / total), or 0 for an empty source.
func (s Snapshot) Percent() int {
	if s.BytesTotal <= 0 {
		return 0
	}
	return int(100 * s.Committed() / s.BytesTotal)
}

// Snapshot returns a consistent point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		BytesCommitted:  c.bytesCommitted.Load(),
		ChunksCommitted: c.chunksCommitted.Load(),
		BytesTotal:      c.bytesTotal.Load(),
		BytesResumed:    c.bytesResumed.Load(),
		Elapsed:         c.Elapsed(),
	}
}

// Tick snapshots the byte delta into the ring buffer. Called 1/sec by the
// presenter.
func (c *Collector) Tick() {
	current := c.bytesCommitted.Load()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.throughput[c.ringIdx] = current - c.lastBytes
	c.lastBytes = current
	c.ringIdx = (c.ringIdx + 1) % ringSize
	if c.ringCount < ringSize {
		c.ringCount++
	}
}

// RollingSpeed returns average bytes/sec over the last n seconds of samples.
func (c *Collector) RollingSpeed(seconds int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := seconds
	if count > c.ringCount {
		count = c.ringCount
	}
	if count == 0 {
		return 0
	}
	var sum int64
	for i := 0; i < count; i++ {
		idx := (c.ringIdx - 1 - i + ringSize) % ringSize
		sum += c.throughput[idx]
	}
	return float64(sum) / float64(count)
}

// ETA estimates remaining time based on rolling speed and remaining bytes.
func (c *Collector) ETA() time.Duration {
	speed := c.RollingSpeed(10)
	if speed <= 0 {
		return 0
	}
	snap := c.Snapshot()
	remaining := snap.BytesTotal - snap.Committed()
	if remaining <= 0 {
		return 0
	}
	return time.Duration(float64(remaining)/speed) * time.Second
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

func (s Snapshot) String() string {
	return fmt.Sprintf("committed=%d chunks=%d resumed=%d total=%d",
		s.BytesCommitted, s.ChunksCommitted, s.BytesResumed, s.BytesTotal)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
