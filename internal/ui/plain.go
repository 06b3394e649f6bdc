package ui

import (
	"fmt"
	"io"
	"time"

	"rcopy/internal/event"
	"rcopy/internal/stats"
)

// plainPresenter outputs one line per committed chunk to stdout, and
// periodic progress to stderr when not a TTY.
type plainPresenter struct {
	w     io.Writer
	errW  io.Writer
	stats *stats.Collector
}

func (p *plainPresenter) Run(events <-chan event.Event) error {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.handleEvent(ev)
		case <-ticker.C:
			p.stats.Tick()
			p.printProgress()
		}
	}
}

func (p *plainPresenter) handleEvent(ev event.Event) {
	switch ev.Type {
	case event.Resumed:
		fmt.Fprintf(p.w, "resuming at %s (%d%%)\n", stats.FormatBytes(ev.Committed), ev.Percent)
	case event.ChunkCommitted:
		fmt.Fprintf(p.w, "chunk %d  %s  %d%%\n", ev.Index, stats.FormatBytes(ev.Bytes), ev.Percent)
	case event.Failed:
		if ev.Err != nil {
			fmt.Fprintf(p.w, "failed: %v\n", ev.Err)
		}
	case event.Completed:
		// summary covers it
	}
}

func (p *plainPresenter) printProgress() {
	snap := p.stats.Snapshot()
	if snap.BytesTotal == 0 {
		return
	}
	fmt.Fprintf(p.errW, "progress: %d%% %s/%s %s eta %s\n",
		snap.Percent(),
		stats.FormatBytes(snap.Committed()), stats.FormatBytes(snap.BytesTotal),
		FormatRate(p.stats.RollingSpeed(10)),
		FormatETA(p.stats.ETA()),
	)
}

func (p *plainPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot())
}
