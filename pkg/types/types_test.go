package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSuperBlockRoundTrip(t *testing.T) {
	want := &SuperBlock{Size: 1024, NBlocks: 995, NInodes: 200}

	raw := make([]byte, BSIZE)
	want.ToDisk(raw)
	got, err := SuperBlockFromDisk(raw)
	if err != nil {
		t.Fatalf("SuperBlockFromDisk: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("superblock mismatch (-want +got):\n%s", diff)
	}
}

func TestSuperBlockShortBuffer(t *testing.T) {
	if _, err := SuperBlockFromDisk(make([]byte, SUPERBLOCK_SIZE-1)); err == nil {
		t.Fatal("short superblock accepted")
	}
}

func TestInodeRoundTrip(t *testing.T) {
	want := &DiskInode{
		Type:  T_FILE,
		NLink: 3,
		Size:  6700,
	}
	for i := range want.Addrs {
		want.Addrs[i] = uint32(100 + i)
	}

	raw := make([]byte, DINODE_SIZE)
	want.ToDisk(raw)
	got, err := InodeFromDisk(raw)
	if err != nil {
		t.Fatalf("InodeFromDisk: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("inode mismatch (-want +got):\n%s", diff)
	}
}

func TestInodePredicates(t *testing.T) {
	for _, tc := range []struct {
		typ   int16
		inUse bool
		valid bool
	}{
		{T_FREE, false, false},
		{T_DIR, true, true},
		{T_FILE, true, true},
		{T_DEV, true, true},
		{7, true, false},
		{-1, true, false},
	} {
		di := &DiskInode{Type: tc.typ}
		if di.InUse() != tc.inUse {
			t.Errorf("type %d: InUse = %v, want %v", tc.typ, di.InUse(), tc.inUse)
		}
		if di.ValidType() != tc.valid {
			t.Errorf("type %d: ValidType = %v, want %v", tc.typ, di.ValidType(), tc.valid)
		}
	}
}

func TestDirentName(t *testing.T) {
	var de Dirent

	de.SetName(".")
	if got := de.NameString(); got != "." {
		t.Errorf("NameString = %q, want %q", got, ".")
	}

	// A name filling every byte has no NUL terminator.
	de.SetName("fourteen-bytes")
	if got := de.NameString(); got != "fourteen-bytes" {
		t.Errorf("NameString = %q, want %q", got, "fourteen-bytes")
	}

	// SetName clears leftover bytes from longer previous names.
	de.SetName("a")
	if got := de.NameString(); got != "a" {
		t.Errorf("NameString = %q, want %q", got, "a")
	}
}

func TestIndirectBlockFromDisk(t *testing.T) {
	raw := make([]byte, BSIZE)
	raw[0] = 42 // entry 0 = 42, little-endian
	raw[BSIZE-4] = 9

	addrs, err := IndirectBlockFromDisk(raw)
	if err != nil {
		t.Fatalf("IndirectBlockFromDisk: %v", err)
	}
	if len(addrs) != NINDIRECT {
		t.Fatalf("decoded %d entries, want %d", len(addrs), NINDIRECT)
	}
	if addrs[0] != 42 || addrs[NINDIRECT-1] != 9 {
		t.Fatalf("entries [%d ... %d], want [42 ... 9]", addrs[0], addrs[NINDIRECT-1])
	}

	if _, err := IndirectBlockFromDisk(raw[:BSIZE-1]); err == nil {
		t.Fatal("short indirect block accepted")
	}
}
