// pkg/snapshot/file.go
package snapshot

import (
	"errors"
	"fmt"
	"os"

	"minirel/pkg/table"
)

// ErrSnapshotLocked is returned when another process holds the lock on
// a snapshot file.
var ErrSnapshotLocked = errors.New("snapshot file is locked")

// SaveFile writes the table to path under an exclusive advisory lock.
// The lock and the file are released on every path.
func SaveFile(t *table.Table, path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer f.Close()

	if err := lockFile(f); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer unlockFile(f)

	if err := Write(t, f); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// LoadFile reads a table back from path under the same lock discipline.
func LoadFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	defer f.Close()

	if err := lockFile(f); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	defer unlockFile(f)

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}
