package simplefs

// Write copies length bytes from buf into inode n's data starting at
// offset, allocating data blocks (and an indirect block, if needed) on
// demand. It returns the number of bytes actually stored: running out of
// free blocks stops the write early and is reported as a successful partial
// write, not an error. It returns -1 when the inode cannot be loaded or is
// not valid, or when the written data cannot be committed to the inode's
// metadata — in the latter case the data blocks may already hold the new
// bytes, but size/pointers were not persisted, so the write did not happen
// as far as a subsequent stat can tell.
func (fs *FileSystem) Write(n int64, buf []byte, length int, offset int64) int {
	if err := fs.requireMounted(); err != nil {
		return -1
	}
	in, err := fs.loadInode(n)
	if err != nil || !in.isValid() {
		return -1
	}

	remaining := int64(length)
	var written int64
	cur := offset

	for remaining > 0 {
		q, r := blockIndex(cur)
		block, err := fs.allocateBlock(&in, q)
		if err != nil {
			break
		}

		data := make([]byte, BlockSize)
		if fs.d.ReadBlock(int64(block), data) == DiskFailure {
			break
		}

		chunk := int64(BlockSize) - r
		if chunk > remaining {
			chunk = remaining
		}
		copy(data[r:r+chunk], buf[written:written+chunk])
		if fs.d.WriteBlock(int64(block), data) == DiskFailure {
			break
		}

		written += chunk
		cur += chunk
		remaining -= chunk
	}

	if offset+written > int64(in.Size) {
		in.Size = uint32(offset + written)
	}
	if err := fs.saveInode(n, in); err != nil {
		fs.log.WithError(err).WithField("inode", n).Warn("write: failed to save inode metadata")
		return -1
	}
	return int(written)
}
