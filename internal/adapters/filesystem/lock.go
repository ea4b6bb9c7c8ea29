package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"powerpages/internal/application"
)

// Lock is an exclusive process lock held for the duration of a sync run.
type Lock struct {
	flock *flock.Flock
}

// AcquireLock takes the lock at path without waiting. It fails with
// application.ErrSyncInProgress when another process holds it.
func AcquireLock(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w (lock file %s)", application.ErrSyncInProgress, path)
	}
	return &Lock{flock: fl}, nil
}

// Release gives up the lock.
func (l *Lock) Release() error {
	return l.flock.Unlock()
}
