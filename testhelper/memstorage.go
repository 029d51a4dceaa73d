// Package testhelper provides fakes used to exercise the disk and filesystem
// packages without touching the real filesystem.
package testhelper

import (
	"errors"
	"io/fs"
	"os"
	"time"
)

// MemStorage implements backend.Storage (structurally; it does not import
// the backend package) over a plain in-memory byte slice, sized at
// construction like a real disk image.
type MemStorage struct {
	Buf    []byte
	closed bool
}

// NewMemStorage returns a MemStorage pre-sized to size bytes, all zero.
func NewMemStorage(size int64) *MemStorage {
	return &MemStorage{Buf: make([]byte, size)}
}

func (m *MemStorage) Stat() (fs.FileInfo, error) {
	return memFileInfo{size: int64(len(m.Buf))}, nil
}

func (m *MemStorage) Read(b []byte) (int, error) {
	return copy(b, m.Buf), nil
}

func (m *MemStorage) Close() error {
	m.closed = true
	return nil
}

func (m *MemStorage) ReadAt(p []byte, off int64) (int, error) {
	if m.closed {
		return 0, errors.New("read from closed storage")
	}
	if off < 0 || off > int64(len(m.Buf)) {
		return 0, errors.New("read offset out of range")
	}
	n := copy(p, m.Buf[off:])
	if n < len(p) {
		return n, errors.New("short read")
	}
	return n, nil
}

func (m *MemStorage) WriteAt(p []byte, off int64) (int, error) {
	if m.closed {
		return 0, errors.New("write to closed storage")
	}
	if off < 0 || off+int64(len(p)) > int64(len(m.Buf)) {
		return 0, errors.New("write offset out of range")
	}
	return copy(m.Buf[off:], p), nil
}

// Sys reports that there is no OS file backing this storage. The error is
// its own, not backend.ErrNotSuitable.
func (m *MemStorage) Sys() (*os.File, error) {
	return nil, errNotSuitable
}

var errNotSuitable = errors.New("memory storage has no OS file handle")

type memFileInfo struct {
	size int64
}

func (i memFileInfo) Name() string       { return "memstorage" }
func (i memFileInfo) Size() int64        { return i.size }
func (i memFileInfo) Mode() fs.FileMode  { return 0o600 }
func (i memFileInfo) ModTime() time.Time { return time.Time{} }
func (i memFileInfo) IsDir() bool        { return false }
func (i memFileInfo) Sys() any           { return nil }
