package snapshot_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/simplefs/simplefs/snapshot"
)

func TestExportImportRoundTripXZ(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "image")
	want := bytes.Repeat([]byte{0x42}, 4096*5)
	if err := os.WriteFile(src, want, 0o644); err != nil {
		t.Fatalf("write fixture image: %v", err)
	}

	snap := filepath.Join(dir, "image.xz")
	if _, err := snapshot.Export(src, snap, snapshot.XZ); err != nil {
		t.Fatalf("Export: %v", err)
	}

	restored := filepath.Join(dir, "restored")
	if _, err := snapshot.Import(snap, restored, snapshot.XZ); err != nil {
		t.Fatalf("Import: %v", err)
	}

	got, err := os.ReadFile(restored)
	if err != nil {
		t.Fatalf("read restored image: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("round trip mismatch: got %d bytes, want %d", len(got), len(want))
	}
}

func TestExportImportRoundTripLZ4(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "image")
	want := bytes.Repeat([]byte{0x99, 0x01}, 4096*5)
	if err := os.WriteFile(src, want, 0o644); err != nil {
		t.Fatalf("write fixture image: %v", err)
	}

	snap := filepath.Join(dir, "image.lz4")
	if _, err := snapshot.Export(src, snap, snapshot.LZ4); err != nil {
		t.Fatalf("Export: %v", err)
	}

	restored := filepath.Join(dir, "restored")
	if _, err := snapshot.Import(snap, restored, snapshot.LZ4); err != nil {
		t.Fatalf("Import: %v", err)
	}

	got, err := os.ReadFile(restored)
	if err != nil {
		t.Fatalf("read restored image: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("round trip mismatch: got %d bytes, want %d", len(got), len(want))
	}
}
