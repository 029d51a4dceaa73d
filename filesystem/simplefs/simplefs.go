// Package simplefs implements the SimpleFS on-disk layout and in-memory
// metadata engine: the superblock/inode/indirect-block binary format, the
// mount-time reconstruction of the free-block bitmap, inode
// allocation/removal, and the direct+indirect block traversal that read and
// write use to map a file offset to a block address.
//
// The filesystem is flat: files are addressed only by inode number, there
// are no directories or path names, and there is no notion of permissions
// or ownership. Everything here operates on a single mounted disk.Disk.
package simplefs

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/simplefs/simplefs/disk"
	"github.com/sirupsen/logrus"
)

// On-disk format constants. These are fixed by the SimpleFS wire format;
// changing any of them invalidates every existing image.
const (
	MagicNumber      uint32 = 0xF0F03410
	InodesPerBlock          = 128
	PointersPerInode        = 5
	PointersPerBlock        = 1024
	InodeSize               = 32 // bytes: 2 uint32 header fields (valid, size) + 5 direct + 1 indirect
)

// BlockSize re-exports disk.BlockSize: the data model and the disk share one
// block geometry.
const BlockSize = disk.BlockSize

// DiskFailure re-exports disk.DiskFailure, the sentinel a caller sees when
// the underlying disk I/O fails.
const DiskFailure = disk.DiskFailure

// FileSystem is a single mounted SimpleFS instance: the owning disk.Disk,
// the cached superblock, and the in-memory free-block bitmap. A zero
// FileSystem is unmounted; Mount must succeed before any inode-level
// operation is valid.
type FileSystem struct {
	d     *disk.Disk
	super SuperBlock
	free  *freeMap

	sessionID uuid.UUID
	log       *logrus.Entry
}

// New returns an unmounted FileSystem bound to d. Format, Mount, Debug and
// HexDump work without a mount; every other operation requires a successful
// Mount.
func New(d *disk.Disk) *FileSystem {
	return &FileSystem{
		d:   d,
		log: logrus.WithField("component", "simplefs"),
	}
}

// Mounted reports whether fs is currently mounted.
func (fs *FileSystem) Mounted() bool {
	return fs.free != nil
}

func (fs *FileSystem) requireMounted() error {
	if !fs.Mounted() {
		return fmt.Errorf("filesystem is not mounted")
	}
	return nil
}

// SessionID returns the random identifier assigned at the most recent
// successful Mount, used only to correlate log lines for a given mount
// session. It is never written to disk.
func (fs *FileSystem) SessionID() uuid.UUID {
	return fs.sessionID
}
