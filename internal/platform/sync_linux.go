//go:build linux

package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

// SyncFile forces file data durable. Uses fdatasync to skip the redundant
// metadata flush where the kernel supports it.
//
//nolint:gosec // G115: fd values are small non-negative integers
func SyncFile(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}

// Preallocate attempts to pre-allocate disk space for the destination.
// Errors are ignored as fallocate is not supported on all filesystems.
//
//nolint:gosec // G115: fd values are small non-negative integers
func Preallocate(f *os.File, size int64) {
	//nolint:errcheck // fallocate is advisory; not supported on all filesystems
	unix.Fallocate(int(f.Fd()), 0, 0, size)
}
