package image

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4"

	"github.com/PsychoPunkSage/FsCheck/pkg/types"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestOpenMmap(t *testing.T) {
	want := make([]byte, 4*types.BSIZE)
	for i := range want {
		want[i] = byte(i * 7)
	}
	img, err := Open(writeTemp(t, "raw.img", want))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer img.Close()

	if img.Size() != len(want) {
		t.Fatalf("Size = %d, want %d", img.Size(), len(want))
	}
	got, err := img.Region().Bytes(0, int64(len(want)))
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatal("mapped bytes differ from file contents")
	}
}

func TestOpenLz4(t *testing.T) {
	want := make([]byte, 4*types.BSIZE)
	for i := range want {
		want[i] = byte(i)
	}

	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(want); err != nil {
		t.Fatalf("lz4 write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("lz4 close: %v", err)
	}

	img, err := Open(writeTemp(t, "raw.img.lz4", buf.Bytes()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer img.Close()

	got, err := img.Region().Bytes(0, int64(img.Size()))
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatal("decompressed bytes differ from original image")
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.img")); err == nil {
		t.Fatal("opening a missing image succeeded")
	}
}

func TestOpenEmpty(t *testing.T) {
	if _, err := Open(writeTemp(t, "empty.img", nil)); err == nil {
		t.Fatal("opening an empty image succeeded")
	}
}

func TestClose(t *testing.T) {
	img, err := Open(writeTemp(t, "raw.img", make([]byte, types.BSIZE)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := img.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if img.Size() != 0 {
		t.Fatal("image still holds data after Close")
	}
}

func TestRegionBounds(t *testing.T) {
	r := NewRegion(make([]byte, 2*types.BSIZE))

	for _, tc := range []struct {
		name        string
		off, length int64
	}{
		{"negative offset", -1, 10},
		{"negative length", 0, -1},
		{"past end", 2 * types.BSIZE, 1},
		{"straddles end", types.BSIZE, types.BSIZE + 1},
	} {
		if _, err := r.Bytes(tc.off, tc.length); err == nil {
			t.Errorf("%s: read [%d, %d) succeeded", tc.name, tc.off, tc.off+tc.length)
		}
	}

	if _, err := r.Bytes(0, 2*types.BSIZE); err != nil {
		t.Errorf("full-extent read failed: %v", err)
	}
	if _, err := r.Block(1); err != nil {
		t.Errorf("Block(1) failed: %v", err)
	}
	if _, err := r.Block(2); err == nil {
		t.Error("Block(2) succeeded past the end")
	}
}
