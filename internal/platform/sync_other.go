//go:build !linux

package platform

import "os"

// SyncFile forces file data durable via fsync.
func SyncFile(f *os.File) error {
	return f.Sync()
}

// Preallocate is a no-op on non-Linux platforms (fallocate is Linux-only).
func Preallocate(_ *os.File, _ int64) {}
