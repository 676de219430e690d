package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = ".foxcap.lock"

// ErrOutputLocked reports that another foxcap run holds the output directory.
var ErrOutputLocked = errors.New("output directory is locked by another foxcap run")

// OutputLock is an advisory lock on an output directory.
type OutputLock struct {
	path string
	lock *flock.Flock
}

// LockOutput creates dir if needed and takes its lock without blocking.
func LockOutput(dir string) (*OutputLock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	lockPath := filepath.Join(dir, lockFileName)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrOutputLocked, lockPath)
	}
	return &OutputLock{path: lockPath, lock: lock}, nil
}

// Path returns the lock file location.
func (l *OutputLock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release drops the lock.
func (l *OutputLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
