//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris
// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

package disk

import (
	"errors"
	"fmt"

	"github.com/simplefs/simplefs/backend"
	"golang.org/x/sys/unix"
)

// locker releases an exclusive advisory lock taken on a disk's backing file.
type locker interface {
	unlock() error
}

type flockLocker struct {
	fd int
}

func (l *flockLocker) unlock() error {
	return unix.Flock(l.fd, unix.LOCK_UN)
}

// lockStorage takes an exclusive, non-blocking advisory lock on storage's
// underlying file descriptor, enforcing in code the single-writer
// assumption the concurrency model only documents: the backing host file is
// exclusive by assumption, multi-process access is undefined.
//
// If storage's Sys reports backend.ErrNotSuitable (it has no OS file
// descriptor), locking is a no-op; any other Sys error is returned.
func lockStorage(storage backend.Storage) (locker, error) {
	osFile, err := storage.Sys()
	if err != nil {
		if errors.Is(err, backend.ErrNotSuitable) {
			return nil, nil
		}
		return nil, err
	}
	fd := int(osFile.Fd())
	if err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, &AlreadyLockedError{Path: osFile.Name()}
		}
		return nil, fmt.Errorf("locking disk image: %w", err)
	}
	return &flockLocker{fd: fd}, nil
}
