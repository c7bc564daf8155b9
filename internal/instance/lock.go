// pattern: Imperative Shell
package instance

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = "dbgpanel.lock"

// Lock acquires an exclusive file lock on the data dir, which also holds the
// capture FIFOs. Two sessions sharing that namespace would race on channel
// teardown, so only one panel session may run per data dir.
// Returns the flock handle (caller must defer Unlock) or an error if another
// session already holds the lock.
func Lock(dataDir string) (*flock.Flock, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	lockPath := filepath.Join(dataDir, lockFileName)
	fl := flock.New(lockPath)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another dbgpanel session is already running")
	}
	return fl, nil
}

// Unlock releases the file lock.
func Unlock(fl *flock.Flock) {
	if fl != nil {
		_ = fl.Unlock()
	}
}
