package simplefs

// Create scans the inode table in order for the first unallocated slot,
// claims it by setting valid=1 and writing the enclosing block back
// immediately, and returns the global inode number. It returns -1 when the
// table is full. It reads each inode-table block once regardless of how
// many slots it has to check, rather than once per inode number.
func (fs *FileSystem) Create() int64 {
	if err := fs.requireMounted(); err != nil {
		return -1
	}

	buf := make([]byte, BlockSize)
	for block := int64(1); block <= int64(fs.super.InodeBlocks); block++ {
		if fs.d.ReadBlock(block, buf) == DiskFailure {
			return -1
		}
		for slot := 0; slot < InodesPerBlock; slot++ {
			off := slot * InodeSize
			if decodeInode(buf, off).isValid() {
				continue
			}
			n := (block-1)*InodesPerBlock + int64(slot)
			if n >= int64(fs.super.Inodes) {
				return -1
			}
			encodeInode(buf, off, rawInode{Valid: 1})
			if fs.d.WriteBlock(block, buf) == DiskFailure {
				return -1
			}
			fs.log.WithField("inode", n).Debug("created")
			return n
		}
	}
	return -1
}

// Remove invalidates inode n and returns every block it referenced to the
// free map. It fails (returns false) when n is out of range or already
// invalid, and changes nothing in that case.
func (fs *FileSystem) Remove(n int64) bool {
	if err := fs.requireMounted(); err != nil {
		return false
	}
	in, err := fs.loadInode(n)
	if err != nil || !in.isValid() {
		return false
	}

	for k, d := range in.Direct {
		if d != 0 {
			fs.free.markFree(d)
			in.Direct[k] = 0
		}
	}
	if in.Indirect != 0 {
		ptrs, err := fs.readIndirectPointers(int64(in.Indirect))
		if err == nil {
			for _, p := range ptrs {
				if p != 0 {
					fs.free.markFree(p)
				}
			}
		}
		fs.free.markFree(in.Indirect)
		in.Indirect = 0
	}

	in.Valid = 0
	in.Size = 0
	if err := fs.saveInode(n, in); err != nil {
		return false
	}
	fs.log.WithField("inode", n).Debug("removed")
	return true
}
