package simplefs

import "github.com/simplefs/simplefs/util/bitmap"

// freeMap is the in-memory, never-persisted free-block bitmap. It wraps
// util/bitmap.Bitmap, whose set bit conventionally means "in use"; freeMap's
// methods translate that into the filesystem's free/used vocabulary so
// callers never have to remember which polarity the underlying bits use.
type freeMap struct {
	bm *bitmap.Bitmap
}

func newFreeMap(blocks uint32) *freeMap {
	bm := bitmap.NewBits(int(blocks))
	// NewBits rounds up to whole bytes; the padding bits past the last block
	// are marked used so they are never handed out or reported as free.
	for b := int(blocks); b < (int(blocks)+7)/8*8; b++ {
		_ = bm.Set(b)
	}
	return &freeMap{bm: bm}
}

// markUsed marks block as allocated (non-free).
func (f *freeMap) markUsed(block uint32) {
	_ = f.bm.Set(int(block))
}

// markFree marks block as available for allocation.
func (f *freeMap) markFree(block uint32) {
	_ = f.bm.Clear(int(block))
}

// isFree reports whether block is currently unallocated.
func (f *freeMap) isFree(block uint32) bool {
	set, err := f.bm.IsSet(int(block))
	return err == nil && !set
}

// allocate claims and returns the first free block at or after start,
// marking it used. It returns ok=false when no free block remains.
func (f *freeMap) allocate(start uint32) (block uint32, ok bool) {
	loc := f.bm.FirstFree(int(start))
	if loc < 0 {
		return 0, false
	}
	f.markUsed(uint32(loc))
	return uint32(loc), true
}

// counts returns the number of used and free blocks across [0, blocks).
func (f *freeMap) counts(blocks uint32) (used, free int) {
	return f.bm.Count(int(blocks))
}
