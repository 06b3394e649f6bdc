package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rcopy/internal/event"
	"rcopy/internal/stats"
)

func runPlain(t *testing.T, collector *stats.Collector, evs []event.Event) string {
	t.Helper()

	var out bytes.Buffer
	p := &plainPresenter{w: &out, errW: &bytes.Buffer{}, stats: collector}

	events := make(chan event.Event, len(evs))
	for _, ev := range evs {
		events <- ev
	}
	close(events)

	require.NoError(t, p.Run(events))
	return out.String()
}

func TestPlainPresenter_ChunkLines(t *testing.T) {
	collector := stats.NewCollector()
	collector.SetTotals(10000, 0)

	out := runPlain(t, collector, []event.Event{
		{Type: event.ChunkCommitted, Index: 0, Bytes: 4096, Committed: 4096, Percent: 40},
		{Type: event.ChunkCommitted, Index: 1, Bytes: 4096, Committed: 8192, Percent: 81},
		{Type: event.Completed, Committed: 10000, Percent: 100},
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "chunk 0")
	assert.Contains(t, lines[0], "40%")
	assert.Contains(t, lines[1], "chunk 1")
	assert.Contains(t, lines[1], "81%")
}

func TestPlainPresenter_ResumeLine(t *testing.T) {
	collector := stats.NewCollector()
	collector.SetTotals(25165824, 10485760)

	out := runPlain(t, collector, []event.Event{
		{Type: event.Resumed, Committed: 10485760, Percent: 41},
	})

	assert.Contains(t, out, "resuming at 10.0 MiB")
	assert.Contains(t, out, "41%")
}

func TestPlainPresenter_Summary(t *testing.T) {
	collector := stats.NewCollector()
	collector.SetTotals(10000, 4096)
	collector.AddBytesCommitted(5904)
	collector.AddChunksCommitted(2)

	p := &plainPresenter{w: &bytes.Buffer{}, errW: &bytes.Buffer{}, stats: collector}
	summary := p.Summary()
	assert.Contains(t, summary, "2 chunks")
	assert.Contains(t, summary, "resumed from")
}

func TestQuietPresenter_Silent(t *testing.T) {
	p := &quietPresenter{}

	events := make(chan event.Event, 1)
	events <- event.Event{Type: event.ChunkCommitted}
	close(events)

	require.NoError(t, p.Run(events))
	assert.Empty(t, p.Summary())
}

func TestNewPresenter_Selection(t *testing.T) {
	collector := stats.NewCollector()

	p := NewPresenter(Config{Quiet: true, Stats: collector})
	assert.IsType(t, &quietPresenter{}, p)

	p = NewPresenter(Config{IsTTY: false, Stats: collector})
	assert.IsType(t, &plainPresenter{}, p)

	p = NewPresenter(Config{IsTTY: true, NoSpinner: true, Stats: collector})
	assert.IsType(t, &plainPresenter{}, p)

	p = NewPresenter(Config{IsTTY: true, Stats: collector})
	assert.IsType(t, &spinnerPresenter{}, p)
}
