package image

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4"
	"golang.org/x/sys/unix"

	"github.com/PsychoPunkSage/FsCheck/pkg/types"
)

// lz4 frame magic as it appears on disk.
var lz4Magic = []byte{0x04, 0x22, 0x4d, 0x18}

// Image is a filesystem image held as one read-only byte region for the
// lifetime of the process.
type Image struct {
	data   []byte
	mapped bool // data came from mmap and needs munmap
}

// Open opens the image at path read-only. Raw images are memory-mapped;
// images compressed as an lz4 frame are decompressed into memory instead.
func Open(path string) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var magic [4]byte
	if n, _ := file.ReadAt(magic[:], 0); n == len(magic) && bytes.Equal(magic[:], lz4Magic) {
		return openLz4(file, info.Size())
	}

	if info.Size() == 0 {
		return nil, fmt.Errorf("%s: empty image", path)
	}
	data, err := unix.Mmap(int(file.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	types.Debug(types.FS_DBG, "mapped %s read-only (%d bytes)", path, len(data))
	if len(data) >= types.SUPERBLOCK*types.BSIZE+types.SUPERBLOCK_SIZE {
		sb := data[types.SUPERBLOCK*types.BSIZE : types.SUPERBLOCK*types.BSIZE+types.SUPERBLOCK_SIZE]
		types.DumpHex(sb, "superblock")
	}
	return &Image{data: data, mapped: true}, nil
}

// openLz4 inflates a whole-image lz4 frame into memory.
func openLz4(file *os.File, compressedSize int64) (*Image, error) {
	types.Fs_debug("decompressing lz4 image (%d bytes compressed)", compressedSize)
	data, err := io.ReadAll(lz4.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", file.Name(), err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: empty image", file.Name())
	}
	return &Image{data: data}, nil
}

// Size returns the logical image size in bytes.
func (img *Image) Size() int {
	return len(img.data)
}

// Region returns the image bytes as a bounds-checked accessor. The Region
// must not be used after Close.
func (img *Image) Region() *Region {
	return NewRegion(img.data)
}

// Close releases the mapping, if any.
func (img *Image) Close() error {
	if !img.mapped {
		img.data = nil
		return nil
	}
	data := img.data
	img.data = nil
	img.mapped = false
	return unix.Munmap(data)
}
