package simplefs

import "encoding/binary"

// SuperBlock is the decoded contents of block 0: four little-endian uint32
// fields, in order, followed by unused zeroed padding out to BlockSize.
type SuperBlock struct {
	Magic       uint32
	Blocks      uint32
	InodeBlocks uint32
	Inodes      uint32
}

// Valid reports whether sb's magic number and internally-consistent fields
// match the geometry rule for sb.Blocks.
func (sb SuperBlock) Valid() bool {
	if sb.Magic != MagicNumber {
		return false
	}
	wantInodeBlocks, wantInodes := geometry(sb.Blocks)
	return sb.InodeBlocks == wantInodeBlocks && sb.Inodes == wantInodes
}

// geometry computes inode_blocks and inodes from a block count, per the
// fixed rule inode_blocks = ceil(blocks/10), inodes = inode_blocks*128.
func geometry(blocks uint32) (inodeBlocks, inodes uint32) {
	inodeBlocks = blocks / 10
	if blocks%10 != 0 {
		inodeBlocks++
	}
	inodes = inodeBlocks * InodesPerBlock
	return inodeBlocks, inodes
}

// decodeSuperBlock reads a SuperBlock from the first 16 bytes of a
// BlockSize-byte buffer.
func decodeSuperBlock(b []byte) SuperBlock {
	return SuperBlock{
		Magic:       binary.LittleEndian.Uint32(b[0:4]),
		Blocks:      binary.LittleEndian.Uint32(b[4:8]),
		InodeBlocks: binary.LittleEndian.Uint32(b[8:12]),
		Inodes:      binary.LittleEndian.Uint32(b[12:16]),
	}
}

// encodeSuperBlock writes sb into the first 16 bytes of a zeroed
// BlockSize-byte buffer; the remainder is left zero.
func encodeSuperBlock(sb SuperBlock) []byte {
	b := make([]byte, BlockSize)
	binary.LittleEndian.PutUint32(b[0:4], sb.Magic)
	binary.LittleEndian.PutUint32(b[4:8], sb.Blocks)
	binary.LittleEndian.PutUint32(b[8:12], sb.InodeBlocks)
	binary.LittleEndian.PutUint32(b[12:16], sb.Inodes)
	return b
}
