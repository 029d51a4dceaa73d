// Package disk implements the block-addressed store SimpleFS is built on:
// a backing host file, opened or size-provisioned to exactly
// blocks*BlockSize bytes, exposing sanity-checked whole-block read and
// write.
package disk

import (
	"fmt"
	"sync/atomic"

	"github.com/simplefs/simplefs/backend"
	"github.com/simplefs/simplefs/backend/file"
	"github.com/sirupsen/logrus"
)

// BlockSize is the fixed size, in bytes, of every block on a SimpleFS disk.
// It is part of the on-disk format: changing it invalidates every existing
// image.
const BlockSize = 4096

// DiskFailure is the sentinel returned by ReadBlock/WriteBlock in place of
// BlockSize on failure, mirroring the classic C-style disk API this format
// descends from.
const DiskFailure = -1

// Disk is a reference to a single SimpleFS disk image, opened with Create or
// Open. It owns the backing Storage, tracks the block count, and counts
// reads and writes for diagnostics. ReadBlock/WriteBlock may be called
// concurrently (Mount scans the inode table from multiple goroutines), so
// the counters are atomic.
type Disk struct {
	Backend backend.Storage
	Blocks  int64

	Reads  atomic.Uint64
	Writes atomic.Uint64

	path   string
	locker locker
	log    *logrus.Entry
}

// Create makes a new disk image at path, sized to exactly
// blocks*BlockSize bytes, and returns it ready for Format. An existing file
// at path is not inspected: it is resized to the requested size, and any
// prior contents within that size are left in place.
func Create(path string, blocks int64) (*Disk, error) {
	if blocks <= 0 {
		return nil, fmt.Errorf("disk must have at least one block, got %d", blocks)
	}
	storage, err := file.Create(path, blocks*BlockSize)
	if err != nil {
		return nil, err
	}
	return open(path, blocks, storage)
}

// Open opens an existing disk image at path. The file's size must already
// be blocks*BlockSize; Open does not resize it.
func Open(path string, blocks int64) (*Disk, error) {
	if blocks <= 0 {
		return nil, fmt.Errorf("disk must have at least one block, got %d", blocks)
	}
	storage, err := file.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := storage.Stat()
	if err != nil {
		_ = storage.Close()
		return nil, fmt.Errorf("stat disk image %s: %w", path, err)
	}
	if want := blocks * BlockSize; info.Size() != want {
		_ = storage.Close()
		return nil, fmt.Errorf("disk image %s is %d bytes, expected %d for %d blocks", path, info.Size(), want, blocks)
	}
	return open(path, blocks, storage)
}

// New wraps an already-open backend.Storage as a Disk without touching the
// filesystem or taking a lock. It exists for tests (and for embedding
// SimpleFS images inside another storage medium) that already have a
// Storage in hand; Create and Open are the entry points for real disk image
// files.
func New(storage backend.Storage, blocks int64) *Disk {
	return &Disk{
		Backend: storage,
		Blocks:  blocks,
		log:     logrus.WithField("disk", "memory"),
	}
}

func open(path string, blocks int64, storage backend.Storage) (*Disk, error) {
	l, err := lockStorage(storage)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}
	return &Disk{
		Backend: storage,
		Blocks:  blocks,
		path:    path,
		locker:  l,
		log:     logrus.WithField("disk", path),
	}, nil
}

// Close releases the backing file and its exclusive lock. Read/write
// counters are not persisted; they die with the Disk value.
func (d *Disk) Close() error {
	if d == nil {
		return nil
	}
	if d.locker != nil {
		_ = d.locker.unlock()
	}
	if d.Backend == nil {
		return nil
	}
	return d.Backend.Close()
}

func (d *Disk) sane(block int64, buf []byte) error {
	if d == nil || d.Backend == nil {
		return fmt.Errorf("disk is not open")
	}
	if block < 0 || block >= d.Blocks {
		return NewBadBlockError(block, d.Blocks)
	}
	if buf == nil {
		return fmt.Errorf("buffer must not be nil")
	}
	if len(buf) != BlockSize {
		return &BadBufferError{Len: len(buf)}
	}
	return nil
}

// ReadBlock reads exactly one BlockSize-byte block into buf, returning
// BlockSize on success or DiskFailure on any sanity-check or I/O failure. A
// short read (fewer than BlockSize bytes, including at end of file) is a
// failure.
func (d *Disk) ReadBlock(block int64, buf []byte) int {
	if err := d.sane(block, buf); err != nil {
		d.log.WithError(err).Debug("read rejected by sanity check")
		return DiskFailure
	}
	n, err := d.Backend.ReadAt(buf, block*BlockSize)
	if err != nil || n != BlockSize {
		if err == nil {
			err = fmt.Errorf("short read: got %d of %d bytes", n, BlockSize)
		}
		d.log.WithError(err).WithField("block", block).Warn("read failed")
		return DiskFailure
	}
	d.Reads.Add(1)
	return BlockSize
}

// WriteBlock writes exactly one BlockSize-byte block from buf, returning
// BlockSize on success or DiskFailure on any sanity-check or I/O failure.
func (d *Disk) WriteBlock(block int64, buf []byte) int {
	if err := d.sane(block, buf); err != nil {
		d.log.WithError(err).Debug("write rejected by sanity check")
		return DiskFailure
	}
	n, err := d.Backend.WriteAt(buf, block*BlockSize)
	if err != nil || n != BlockSize {
		if err == nil {
			err = fmt.Errorf("short write: wrote %d of %d bytes", n, BlockSize)
		}
		d.log.WithError(err).WithField("block", block).Warn("write failed")
		return DiskFailure
	}
	d.Writes.Add(1)
	return BlockSize
}

// Path returns the host path this disk image was opened from.
func (d *Disk) Path() string {
	return d.path
}
