package ui

import (
	"fmt"

	"rcopy/internal/stats"
)

// CompletionSummary builds a final summary line from a snapshot.
// Format: done ✓  copied 14.0 MiB in 2 chunks  total 24.0 MiB  avg 641 MB/s  time 3s
func CompletionSummary(snap stats.Snapshot) string {
	avgSpeed := 0.0
	if snap.Elapsed.Seconds() > 0 {
		avgSpeed = float64(snap.BytesCommitted) / snap.Elapsed.Seconds()
	}

	base := fmt.Sprintf("done ✓  copied %s in %d chunks",
		stats.FormatBytes(snap.BytesCommitted),
		snap.ChunksCommitted,
	)

	if snap.BytesResumed > 0 {
		base += fmt.Sprintf("  resumed from %s", stats.FormatBytes(snap.BytesResumed))
	}

	return base + fmt.Sprintf("  total %s  avg %s  time %s",
		stats.FormatBytes(snap.BytesTotal),
		FormatRate(avgSpeed),
		FormatDuration(snap.Elapsed),
	)
}
