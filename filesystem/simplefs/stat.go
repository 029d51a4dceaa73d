package simplefs

// Stat returns inode n's byte size, or -1 if n is out of range or not
// valid.
func (fs *FileSystem) Stat(n int64) int64 {
	if err := fs.requireMounted(); err != nil {
		return -1
	}
	in, err := fs.loadInode(n)
	if err != nil || !in.isValid() {
		return -1
	}
	return int64(in.Size)
}
