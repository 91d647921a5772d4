package corpus

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFile is created in the output directory while a build holds it.
const LockFile = ".ttsprep.lock"

// LockOutput takes an exclusive, non-blocking lock on dir so two builds do
// not write artifacts into the same directory. The returned function
// releases it.
func LockOutput(dir string) (func() error, error) {
	lock := flock.New(filepath.Join(dir, LockFile))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock output directory: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOutputLocked, dir)
	}
	return lock.Unlock, nil
}
