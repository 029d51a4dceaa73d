package simplefs_test

import (
	"bytes"
	"strings"
	"testing"
)

func TestHexDumpShowsSuperblockBytes(t *testing.T) {
	fs := newFormattedFS(t, 5)

	var buf bytes.Buffer
	if err := fs.HexDump(&buf, 0); err != nil {
		t.Fatalf("HexDump: %v", err)
	}
	// The magic number 0xF0F03410 is stored little-endian, so its low byte
	// (0x10) is the very first byte of block 0.
	if !strings.Contains(buf.String(), "10 34") {
		t.Errorf("expected the magic number's bytes in the hex dump, got:\n%s", buf.String())
	}
}

func TestFragmentationReflectsAllocations(t *testing.T) {
	fs := newMountedFS(t, 5)
	n := fs.Create()
	fs.Write(n, []byte("x"), 1, 0)

	var buf bytes.Buffer
	if err := fs.Fragmentation(&buf); err != nil {
		t.Fatalf("Fragmentation: %v", err)
	}
	if !strings.Contains(buf.String(), "blocks:") {
		t.Errorf("expected a blocks summary line, got:\n%s", buf.String())
	}
}
