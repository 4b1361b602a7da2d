package nmjsync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// lockFileName is the run-lock marker in the scan root. Other jukebox tools
// poll for this exact name, so it stays part of the on-disk contract.
const lockFileName = "pynmj.lock"

const lockPollInterval = 500 * time.Millisecond

// runLock serializes whole runs against each other across processes. The
// marker file doubles as an advisory flock, so holders that crash without
// cleanup do not leave the root locked forever.
type runLock struct {
	path string
	lock *flock.Flock
}

// acquireRunLock blocks until the run lock is free, polling, then takes it.
func acquireRunLock(ctx context.Context, root string) (*runLock, error) {
	path := filepath.Join(root, lockFileName)
	lock := flock.New(path)
	for {
		locked, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire run lock %s: %w", path, err)
		}
		if locked {
			return &runLock{path: path, lock: lock}, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockPollInterval):
		}
	}
}

// release drops the lock and removes the marker file, unconditionally.
func (l *runLock) release() {
	if l == nil {
		return
	}
	l.lock.Unlock()
	os.Remove(l.path)
}
