package simplefs_test

import (
	"path/filepath"
	"testing"

	"github.com/simplefs/simplefs"
)

func TestCreateAndFormatThenOpenAndMount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image")

	fs, err := simplefs.CreateAndFormat(path, 5)
	if err != nil {
		t.Fatalf("CreateAndFormat: %v", err)
	}
	if err := fs.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	mounted, err := simplefs.OpenAndMount(path, 5)
	if err != nil {
		t.Fatalf("OpenAndMount: %v", err)
	}
	defer mounted.Close()

	if !mounted.Mounted() {
		t.Error("expected OpenAndMount to return a mounted FileSystem")
	}
	if n := mounted.Create(); n != 0 {
		t.Errorf("Create on freshly formatted image = %d, want 0", n)
	}
}
