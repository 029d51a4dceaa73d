package simplefs

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Mount reads and validates the superblock, then reconstructs the
// free-block bitmap by scanning every inode-table block. It refuses to run
// against a FileSystem that is already mounted; on any validation or I/O
// failure it leaves the FileSystem exactly as unmounted as it found it.
func (fs *FileSystem) Mount() error {
	if fs.Mounted() {
		return &AlreadyMountedError{}
	}

	buf := make([]byte, BlockSize)
	if fs.d.ReadBlock(0, buf) == DiskFailure {
		return &IOError{Op: "read", Block: 0}
	}
	sb := decodeSuperBlock(buf)
	if sb.Magic != MagicNumber {
		return &BadGeometryError{Reason: "magic number mismatch"}
	}
	if int64(sb.Blocks) != fs.d.Blocks {
		return &BadGeometryError{Reason: fmt.Sprintf("superblock has %d blocks, disk has %d", sb.Blocks, fs.d.Blocks)}
	}
	wantInodeBlocks, wantInodes := geometry(sb.Blocks)
	if sb.InodeBlocks != wantInodeBlocks || sb.Inodes != wantInodes {
		return &BadGeometryError{Reason: "inode_blocks/inodes disagree with the geometry rule"}
	}

	free := newFreeMap(sb.Blocks)
	free.markUsed(0)
	for b := uint32(1); b <= sb.InodeBlocks; b++ {
		free.markUsed(b)
	}

	if err := fs.scanInodeTable(sb, free); err != nil {
		return err
	}

	fs.super = sb
	fs.free = free
	fs.sessionID = uuid.New()
	fs.log = fs.log.WithField("session", fs.sessionID)
	fs.log.WithField("blocks", sb.Blocks).Info("mounted")
	return nil
}

// scanInodeTable walks every inode-table block concurrently, marking
// referenced blocks non-free in free. Each goroutine reads its own block (and
// any indirect blocks it references) independently; results are merged
// under mu so the final bitmap is deterministic regardless of goroutine
// completion order.
func (fs *FileSystem) scanInodeTable(sb SuperBlock, free *freeMap) error {
	var mu sync.Mutex
	var g errgroup.Group

	for block := uint32(1); block <= sb.InodeBlocks; block++ {
		block := block
		g.Go(func() error {
			buf := make([]byte, BlockSize)
			if fs.d.ReadBlock(int64(block), buf) == DiskFailure {
				return &IOError{Op: "read", Block: int64(block)}
			}

			var used []uint32
			var indirects []uint32
			for slot := 0; slot < InodesPerBlock; slot++ {
				in := decodeInode(buf, slot*InodeSize)
				if !in.isValid() {
					continue
				}
				for _, d := range in.Direct {
					if d != 0 {
						used = append(used, d)
					}
				}
				if in.Indirect != 0 {
					indirects = append(indirects, in.Indirect)
				}
			}

			for _, ind := range indirects {
				ptrs, err := fs.readIndirectPointers(int64(ind))
				if err != nil {
					return err
				}
				used = append(used, ind)
				for _, p := range ptrs {
					if p != 0 {
						used = append(used, p)
					}
				}
			}

			mu.Lock()
			for _, b := range used {
				free.markUsed(b)
			}
			mu.Unlock()
			return nil
		})
	}

	return g.Wait()
}

// readIndirectPointers reads the PointersPerBlock 32-bit block numbers
// stored in the indirect block at the given block number.
func (fs *FileSystem) readIndirectPointers(block int64) ([]uint32, error) {
	buf := make([]byte, BlockSize)
	if fs.d.ReadBlock(block, buf) == DiskFailure {
		return nil, &IOError{Op: "read", Block: block}
	}
	return decodePointerBlock(buf), nil
}

// Unmount clears the mounted state. It is idempotent and never touches the
// disk.
func (fs *FileSystem) Unmount() {
	fs.free = nil
	fs.super = SuperBlock{}
	fs.sessionID = uuid.Nil
}

// Close unmounts fs (if mounted) and closes the underlying disk, releasing
// its host file lock.
func (fs *FileSystem) Close() error {
	fs.Unmount()
	return fs.d.Close()
}
