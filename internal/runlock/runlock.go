// Package runlock enforces single-run access to a source directory. The
// organizer assumes nothing else is reshuffling the directory while it runs;
// a flock-backed lock file keyed on the source path turns that assumption
// into a startup check.
package runlock

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"pigeonhole/internal/fserr"
)

// Lock holds the exclusive run lock for one source directory.
type Lock struct {
	fl   *flock.Flock
	path string
}

// Acquire takes the run lock for sourceDir, storing the lock file under
// stateDir. A second concurrent run against the same directory fails with
// fserr.ErrLocked before any scanning happens.
func Acquire(stateDir, sourceDir string) (*Lock, error) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fserr.Wrap(fserr.Classify(err), "startup", "ensure state dir",
			fmt.Sprintf("cannot create %s", stateDir), err)
	}

	fl := flock.New(lockPath(stateDir, sourceDir))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fserr.Wrap(fserr.ErrLocked, "startup", "acquire run lock",
			fmt.Sprintf("cannot lock %s", fl.Path()), err)
	}
	if !locked {
		return nil, fserr.Wrap(fserr.ErrLocked, "startup", "acquire run lock",
			fmt.Sprintf("another run is already organizing %s", sourceDir), nil)
	}
	return &Lock{fl: fl, path: fl.Path()}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock. Safe to call once per acquired lock.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}

// lockPath derives a stable per-directory lock filename. Hashing keeps the
// name filesystem-safe regardless of the source path's characters or length.
func lockPath(stateDir, sourceDir string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(sourceDir)))
	return filepath.Join(stateDir, fmt.Sprintf("organize-%x.lock", sum[:8]))
}
