package image

import (
	"fmt"

	"github.com/PsychoPunkSage/FsCheck/pkg/types"
)

// Region is a bounds-checked window over raw image bytes. Every read
// validates its extent first, so a corrupt offset surfaces as an error
// instead of a fault.
type Region struct {
	data []byte
}

// NewRegion wraps data in a Region. The Region reads the slice in place and
// never copies or mutates it.
func NewRegion(data []byte) *Region {
	return &Region{data: data}
}

// Len returns the logical image size in bytes.
func (r *Region) Len() int {
	return len(r.data)
}

// Bytes returns the length bytes starting at off.
func (r *Region) Bytes(off, length int64) ([]byte, error) {
	if off < 0 || length < 0 || off > int64(len(r.data))-length {
		return nil, fmt.Errorf("read [%d, %d) outside image of %d bytes", off, off+length, len(r.data))
	}
	return r.data[off : off+length], nil
}

// Block returns the contents of block bn.
func (r *Region) Block(bn uint32) ([]byte, error) {
	return r.Bytes(int64(bn)*types.BSIZE, types.BSIZE)
}
