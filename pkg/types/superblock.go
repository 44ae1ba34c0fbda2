package types

import (
	"encoding/binary"
	"fmt"
)

// SUPERBLOCK_SIZE is the number of meaningful bytes at the start of block 1.
// The rest of the block is unused padding.
const SUPERBLOCK_SIZE = 12

// SuperBlock is the decoded contents of block 1. Size counts every block in
// the image (boot block and metadata included); NBlocks counts only the data
// region.
type SuperBlock struct {
	Size    uint32 // total image size in blocks
	NBlocks uint32 // number of data blocks
	NInodes uint32 // number of inode slots
}

// SuperBlockFromDisk decodes the on-disk superblock, little-endian.
func SuperBlockFromDisk(raw []byte) (*SuperBlock, error) {
	if len(raw) < SUPERBLOCK_SIZE {
		return nil, fmt.Errorf("superblock needs %d bytes, have %d", SUPERBLOCK_SIZE, len(raw))
	}
	sb := &SuperBlock{
		Size:    binary.LittleEndian.Uint32(raw[0:4]),
		NBlocks: binary.LittleEndian.Uint32(raw[4:8]),
		NInodes: binary.LittleEndian.Uint32(raw[8:12]),
	}
	return sb, nil
}

// ToDisk encodes the superblock into raw, which must hold at least
// SUPERBLOCK_SIZE bytes.
func (sb *SuperBlock) ToDisk(raw []byte) {
	binary.LittleEndian.PutUint32(raw[0:4], sb.Size)
	binary.LittleEndian.PutUint32(raw[4:8], sb.NBlocks)
	binary.LittleEndian.PutUint32(raw[8:12], sb.NInodes)
}
