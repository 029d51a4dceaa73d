package simplefs

import "encoding/binary"

// rawInode is the decoded 32-byte on-disk inode record: a validity flag,
// byte size, five direct data-block numbers, and one indirect pointer-block
// number. A zero direct/indirect entry means "unused".
type rawInode struct {
	Valid    uint32
	Size     uint32
	Direct   [PointersPerInode]uint32
	Indirect uint32
}

func (in rawInode) isValid() bool {
	return in.Valid != 0
}

// decodeInode reads one InodeSize-byte record at the given byte offset
// within an inode-table block buffer.
func decodeInode(b []byte, off int) rawInode {
	var in rawInode
	in.Valid = binary.LittleEndian.Uint32(b[off : off+4])
	in.Size = binary.LittleEndian.Uint32(b[off+4 : off+8])
	for k := 0; k < PointersPerInode; k++ {
		start := off + 8 + k*4
		in.Direct[k] = binary.LittleEndian.Uint32(b[start : start+4])
	}
	indirectOff := off + 8 + PointersPerInode*4
	in.Indirect = binary.LittleEndian.Uint32(b[indirectOff : indirectOff+4])
	return in
}

// encodeInode writes in as a InodeSize-byte record at the given byte offset
// within an inode-table block buffer.
func encodeInode(b []byte, off int, in rawInode) {
	binary.LittleEndian.PutUint32(b[off:off+4], in.Valid)
	binary.LittleEndian.PutUint32(b[off+4:off+8], in.Size)
	for k := 0; k < PointersPerInode; k++ {
		start := off + 8 + k*4
		binary.LittleEndian.PutUint32(b[start:start+4], in.Direct[k])
	}
	indirectOff := off + 8 + PointersPerInode*4
	binary.LittleEndian.PutUint32(b[indirectOff:indirectOff+4], in.Indirect)
}

// inodeLocation translates a global inode number into the inode-table block
// that holds it and the byte offset of its record within that block.
func inodeLocation(inodeNumber int64) (block int64, byteOffset int) {
	block = 1 + inodeNumber/InodesPerBlock
	slot := int(inodeNumber % InodesPerBlock)
	return block, slot * InodeSize
}

// loadInode reads inode number n from disk. It fails only on an I/O error
// or an out-of-range number; an invalid (unallocated) slot is returned
// without error, and callers check its validity themselves.
func (fs *FileSystem) loadInode(n int64) (rawInode, error) {
	if n < 0 || n >= int64(fs.super.Inodes) {
		return rawInode{}, &BadInodeError{Inode: n}
	}
	block, off := inodeLocation(n)
	buf := make([]byte, BlockSize)
	if fs.d.ReadBlock(block, buf) == DiskFailure {
		return rawInode{}, &IOError{Op: "read", Block: block}
	}
	return decodeInode(buf, off), nil
}

// saveInode writes in back to its slot in inode number n's enclosing
// inode-table block. The block is read, patched, and written back as a
// whole, matching the disk's whole-block I/O contract.
func (fs *FileSystem) saveInode(n int64, in rawInode) error {
	block, off := inodeLocation(n)
	buf := make([]byte, BlockSize)
	if fs.d.ReadBlock(block, buf) == DiskFailure {
		return &IOError{Op: "read", Block: block}
	}
	encodeInode(buf, off, in)
	if fs.d.WriteBlock(block, buf) == DiskFailure {
		return &IOError{Op: "write", Block: block}
	}
	return nil
}
