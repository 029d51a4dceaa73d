package simplefs_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/simplefs/simplefs/disk"
	"github.com/simplefs/simplefs/filesystem/simplefs"
	"github.com/simplefs/simplefs/testhelper"
)

// fragmentationSnapshot is a cmp-friendly summary of Fragmentation's report,
// used to compare the reconstructed bitmap across repeated mounts.
type fragmentationSnapshot struct {
	Used int
	Free int
}

func snapshotFragmentation(t *testing.T, fs *simplefs.FileSystem) fragmentationSnapshot {
	t.Helper()
	var buf bytes.Buffer
	if err := fs.Fragmentation(&buf); err != nil {
		t.Fatalf("Fragmentation: %v", err)
	}
	var snap fragmentationSnapshot
	if _, err := fmt.Sscanf(buf.String(), "blocks: %d used, %d free", &snap.Used, &snap.Free); err != nil {
		t.Fatalf("parse fragmentation report %q: %v", buf.String(), err)
	}
	return snap
}

func TestMountReconstructsSameBitmapEveryTime(t *testing.T) {
	mem := testhelper.NewMemStorage(20 * simplefs.BlockSize)
	d := disk.New(mem, 20)
	fs := simplefs.New(d)
	if err := fs.Format(); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if err := fs.Mount(); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	n := fs.Create()
	payload := make([]byte, 3*simplefs.BlockSize)
	fs.Write(n, payload, len(payload), 0)

	first := snapshotFragmentation(t, fs)
	fs.Unmount()

	if err := fs.Mount(); err != nil {
		t.Fatalf("remount: %v", err)
	}
	second := snapshotFragmentation(t, fs)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("bitmap reconstruction differs across mounts (-first +second):\n%s", diff)
	}
}
