package simplefs

// Read copies up to length bytes of inode n's data, starting at offset,
// into buf (which must be at least length bytes), and returns the number of
// bytes actually copied. It returns -1 only when the inode cannot be
// loaded or is not valid; an offset at or past size returns 0.
func (fs *FileSystem) Read(n int64, buf []byte, length int, offset int64) int {
	if err := fs.requireMounted(); err != nil {
		return -1
	}
	in, err := fs.loadInode(n)
	if err != nil || !in.isValid() {
		return -1
	}
	if offset >= int64(in.Size) {
		return 0
	}

	remaining := int64(length)
	if offset+remaining > int64(in.Size) {
		remaining = int64(in.Size) - offset
	}

	var copied int
	cur := offset
	for remaining > 0 {
		q, r := blockIndex(cur)
		block, ok, err := fs.resolveBlock(in, q)
		if err != nil || !ok || block == 0 {
			break
		}

		data := make([]byte, BlockSize)
		if fs.d.ReadBlock(int64(block), data) == DiskFailure {
			break
		}

		chunk := BlockSize - r
		if chunk > remaining {
			chunk = remaining
		}
		copy(buf[copied:int64(copied)+chunk], data[r:int64(r)+chunk])

		copied += int(chunk)
		cur += chunk
		remaining -= chunk
	}
	return copied
}
