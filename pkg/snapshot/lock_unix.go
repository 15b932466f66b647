//go:build !windows

// pkg/snapshot/lock_unix.go
package snapshot

import (
	"os"

	"golang.org/x/sys/unix"
)

// lockFile acquires an exclusive lock on the given file.
// Returns ErrSnapshotLocked if the file is already locked.
func lockFile(f *os.File) error {
	err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err != nil {
		if err == unix.EWOULDBLOCK {
			return ErrSnapshotLocked
		}
		return err
	}
	return nil
}

// unlockFile releases the lock on the given file.
func unlockFile(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
