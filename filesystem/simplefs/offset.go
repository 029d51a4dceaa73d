package simplefs

// blockIndex splits a byte offset into the file-relative block index q and
// the intra-block offset r.
func blockIndex(offset int64) (q int64, r int64) {
	return offset / BlockSize, offset % BlockSize
}

// resolveBlock maps file-relative block index q to a data-block number,
// without allocating. It returns ok=false when q is beyond what indirect can
// reach; a reachable-but-unallocated slot returns block 0, ok=true (read
// treats that as end-of-file).
func (fs *FileSystem) resolveBlock(in rawInode, q int64) (block uint32, ok bool, err error) {
	if q < PointersPerInode {
		return in.Direct[q], true, nil
	}
	if q < PointersPerInode+PointersPerBlock {
		if in.Indirect == 0 {
			return 0, true, nil
		}
		ptrs, err := fs.readIndirectPointers(int64(in.Indirect))
		if err != nil {
			return 0, false, err
		}
		return ptrs[q-PointersPerInode], true, nil
	}
	return 0, false, nil
}

// allocateBlock resolves file-relative block index q to a data-block
// number, allocating a fresh data block (and, if needed, the indirect
// block) when the slot is currently unused. in is updated in place; the
// caller is responsible for persisting it.
func (fs *FileSystem) allocateBlock(in *rawInode, q int64) (block uint32, err error) {
	if q < PointersPerInode {
		if in.Direct[q] == 0 {
			b, ok := fs.free.allocate(1)
			if !ok {
				return 0, &NoSpaceError{}
			}
			in.Direct[q] = b
		}
		return in.Direct[q], nil
	}
	if q >= PointersPerInode+PointersPerBlock {
		return 0, &BadInodeError{}
	}

	if in.Indirect == 0 {
		ib, ok := fs.free.allocate(1)
		if !ok {
			return 0, &NoSpaceError{}
		}
		if fs.d.WriteBlock(int64(ib), make([]byte, BlockSize)) == DiskFailure {
			return 0, &IOError{Op: "write", Block: int64(ib)}
		}
		in.Indirect = ib
	}

	ptrs, err := fs.readIndirectPointers(int64(in.Indirect))
	if err != nil {
		return 0, err
	}
	idx := q - PointersPerInode
	if ptrs[idx] == 0 {
		b, ok := fs.free.allocate(1)
		if !ok {
			return 0, &NoSpaceError{}
		}
		ptrs[idx] = b
		if fs.d.WriteBlock(int64(in.Indirect), encodePointerBlock(ptrs)) == DiskFailure {
			return 0, &IOError{Op: "write", Block: int64(in.Indirect)}
		}
	}
	return ptrs[idx], nil
}
