//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package disk

import "github.com/simplefs/simplefs/backend"

// locker releases an exclusive advisory lock taken on a disk's backing file.
type locker interface {
	unlock() error
}

// lockStorage is a no-op on platforms without flock; the single-writer
// assumption in the concurrency model is then enforced by convention only,
// same as on an unsupported backend.Storage.
func lockStorage(_ backend.Storage) (locker, error) {
	return nil, nil
}
