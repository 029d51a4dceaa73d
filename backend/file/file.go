// Package file provides a backend.Storage backed by a regular host file,
// the only kind of backing store a SimpleFS disk image uses.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/simplefs/simplefs/backend"
)

type rawBackend struct {
	f *os.File
}

// Open opens an existing disk image file read-write. The file must already
// exist and be exactly the size the caller expects; Open does no
// provisioning of its own.
func Open(pathName string) (backend.Storage, error) {
	if pathName == "" {
		return nil, errors.New("must pass a path to the disk image")
	}
	f, err := os.OpenFile(pathName, os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening disk image %s: %w", pathName, err)
	}
	return rawBackend{f: f}, nil
}

// Create creates (or truncates) a disk image file at pathName and
// size-provisions it to exactly size bytes, the way raw disk formats always
// have: everything is pass-through, the file's length simply is the image's
// capacity.
func Create(pathName string, size int64) (backend.Storage, error) {
	if pathName == "" {
		return nil, errors.New("must pass a path to the disk image")
	}
	if size <= 0 {
		return nil, errors.New("must pass a positive disk image size")
	}
	f, err := os.OpenFile(pathName, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("creating disk image %s: %w", pathName, err)
	}
	if err := f.Truncate(size); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("provisioning disk image %s to %d bytes: %w", pathName, size, err)
	}
	return rawBackend{f: f}, nil
}

// backend.Storage interface guard
var _ backend.Storage = rawBackend{}

func (r rawBackend) Sys() (*os.File, error) {
	return r.f, nil
}

func (r rawBackend) Stat() (fs.FileInfo, error) {
	return r.f.Stat()
}

func (r rawBackend) Read(b []byte) (int, error) {
	return r.f.Read(b)
}

func (r rawBackend) Close() error {
	return r.f.Close()
}

func (r rawBackend) ReadAt(p []byte, off int64) (int, error) {
	return r.f.ReadAt(p, off)
}

func (r rawBackend) WriteAt(p []byte, off int64) (int, error) {
	return r.f.WriteAt(p, off)
}
