// Package snapshot implements whole-image backup and restore for a SimpleFS
// disk image: a compressed byte-for-byte copy of the raw file, independent
// of the inode/bitmap layout above it. It exists alongside the core
// metadata engine the way the teacher's own sync package sits alongside the
// filesystem packages it moves bytes between.
package snapshot

import (
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
)

// Format selects the compression container a snapshot is written with.
type Format int

const (
	// XZ gives the best ratio; it is the default for long-term archival.
	XZ Format = iota
	// LZ4 trades ratio for speed; useful for frequent local snapshots.
	LZ4
)

// Export reads every byte of the disk image at srcPath and writes a
// compressed snapshot to dstPath using the requested format.
func Export(srcPath, dstPath string, format Format) (int64, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return 0, fmt.Errorf("open source image: %w", err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(dstPath)
	if err != nil {
		return 0, fmt.Errorf("create snapshot: %w", err)
	}
	defer func() { _ = dst.Close() }()

	w, err := newCompressWriter(dst, format)
	if err != nil {
		return 0, fmt.Errorf("set up %s writer: %w", formatName(format), err)
	}

	n, err := io.Copy(w, src)
	if err != nil {
		return n, fmt.Errorf("copy image into snapshot: %w", err)
	}
	if closer, ok := w.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return n, fmt.Errorf("finalize %s stream: %w", formatName(format), err)
		}
	}
	return n, nil
}

// Import decompresses the snapshot at srcPath and writes the raw image back
// to dstPath, truncating or creating it as needed.
func Import(srcPath, dstPath string, format Format) (int64, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return 0, fmt.Errorf("open snapshot: %w", err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(dstPath, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create destination image: %w", err)
	}
	defer func() { _ = dst.Close() }()

	r, err := newDecompressReader(src, format)
	if err != nil {
		return 0, fmt.Errorf("set up %s reader: %w", formatName(format), err)
	}

	n, err := io.Copy(dst, r)
	if err != nil {
		return n, fmt.Errorf("copy snapshot into image: %w", err)
	}
	return n, nil
}

func newCompressWriter(w io.Writer, format Format) (io.Writer, error) {
	switch format {
	case XZ:
		return xz.NewWriter(w)
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown snapshot format %d", format)
	}
}

func newDecompressReader(r io.Reader, format Format) (io.Reader, error) {
	switch format {
	case XZ:
		return xz.NewReader(r)
	case LZ4:
		return lz4.NewReader(r), nil
	default:
		return nil, fmt.Errorf("unknown snapshot format %d", format)
	}
}

func formatName(format Format) string {
	switch format {
	case XZ:
		return "xz"
	case LZ4:
		return "lz4"
	default:
		return "unknown"
	}
}
