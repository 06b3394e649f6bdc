package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"

	"rcopy/internal/event"
	"rcopy/internal/stats"
)

// spinnerPresenter renders a single-line spinner with percent and rate on
// the TTY (stderr). Purely cosmetic: it reads the collector and the shared
// pulse counter, and never feeds anything back into the pipeline.
type spinnerPresenter struct {
	stats *stats.Collector
	dest  string
	errW  io.Writer

	sp        *pterm.SpinnerPrinter
	lastPulse int64
}

func newSpinnerPresenter(cfg Config) *spinnerPresenter {
	return &spinnerPresenter{stats: cfg.Stats, dest: cfg.Dest, errW: cfg.ErrWriter}
}

func (p *spinnerPresenter) Run(events <-chan event.Event) error {
	// Spinner renders to stderr (the TTY), keeping stdout clean.
	sp, err := pterm.DefaultSpinner.
		WithWriter(p.errW).
		WithRemoveWhenDone(true).
		Start("copying to " + p.dest)
	if err != nil {
		return err
	}
	p.sp = sp
	defer func() { _ = sp.Stop() }()

	ticker := time.NewTicker(time.Second)
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
			p.update()
		}
	}
}

func (p *spinnerPresenter) handleEvent(ev event.Event) {
	switch ev.Type {
	case event.Resumed:
		p.sp.UpdateText(fmt.Sprintf("resuming %s at %s (%d%%)",
			p.dest, stats.FormatBytes(ev.Committed), ev.Percent))
	case event.ChunkCommitted:
		p.update()
	case event.Completed, event.Failed:
		// final line comes from Summary / the error path
	}
}

func (p *spinnerPresenter) update() {
	snap := p.stats.Snapshot()

	text := fmt.Sprintf("%s  %d%%  %s/%s  %s",
		p.dest,
		snap.Percent(),
		stats.FormatBytes(snap.Committed()),
		stats.FormatBytes(snap.BytesTotal),
		FormatRate(p.stats.RollingSpeed(10)),
	)

	// The pulse counter is bumped by both pipeline stages; if it stops
	// moving while the copy is incomplete, the pipeline is blocked on I/O.
	pulses := p.stats.Pulses()
	if pulses == p.lastPulse && snap.Percent() < 100 {
		text += "  (stalled)"
	}
	p.lastPulse = pulses

	p.sp.UpdateText(text)
}

func (p *spinnerPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot())
}
