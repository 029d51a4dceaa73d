// Package simplefs is the root convenience entry point: CreateAndFormat and
// OpenAndMount build a disk.Disk and an unmounted or mounted
// filesystem.simplefs.FileSystem
// around it in one call, the way most callers want to use the library. The
// on-disk format and metadata engine live in filesystem/simplefs; the
// block-addressed storage primitive lives in disk.
package simplefs

import (
	"github.com/simplefs/simplefs/disk"
	fsys "github.com/simplefs/simplefs/filesystem/simplefs"
)

// CreateAndFormat creates a new disk image at path sized to blocks blocks,
// formats it, and returns an unmounted FileSystem ready for Mount.
func CreateAndFormat(path string, blocks int64) (*fsys.FileSystem, error) {
	d, err := disk.Create(path, blocks)
	if err != nil {
		return nil, err
	}
	fs := fsys.New(d)
	if err := fs.Format(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return fs, nil
}

// OpenAndMount opens an existing disk image at path and mounts it.
func OpenAndMount(path string, blocks int64) (*fsys.FileSystem, error) {
	d, err := disk.Open(path, blocks)
	if err != nil {
		return nil, err
	}
	fs := fsys.New(d)
	if err := fs.Mount(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return fs, nil
}
