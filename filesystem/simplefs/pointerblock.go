package simplefs

import "encoding/binary"

// decodePointerBlock reads the PointersPerBlock 32-bit little-endian block
// numbers packed into a BlockSize-byte indirect block.
func decodePointerBlock(b []byte) []uint32 {
	ptrs := make([]uint32, PointersPerBlock)
	for i := range ptrs {
		ptrs[i] = binary.LittleEndian.Uint32(b[i*4 : i*4+4])
	}
	return ptrs
}

// encodePointerBlock packs ptrs (len must be PointersPerBlock) into a
// BlockSize-byte buffer.
func encodePointerBlock(ptrs []uint32) []byte {
	b := make([]byte, BlockSize)
	for i, p := range ptrs {
		binary.LittleEndian.PutUint32(b[i*4:i*4+4], p)
	}
	return b
}
