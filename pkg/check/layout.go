package check

import (
	"fmt"

	"github.com/PsychoPunkSage/FsCheck/pkg/image"
	"github.com/PsychoPunkSage/FsCheck/pkg/types"
)

// Layout is the region geometry derived once from the superblock. Blocks 0
// and 1 are the boot block and superblock; the inode table, allocation
// bitmap, and data region follow in that order.
//
// The block counts use the formatter's arithmetic (floor division plus one),
// not a true ceiling. Images laid out by the standard formatter place the
// bitmap one block later than a ceiling would whenever the division is
// exact, so the checker must agree.
type Layout struct {
	SB *types.SuperBlock

	NInodeBlocks   uint32 // blocks occupied by the inode table
	NBitmapBlocks  uint32 // blocks occupied by the allocation bitmap
	InodeStart     uint32 // first block of the inode table
	BitmapStart    uint32 // first block of the bitmap
	FirstDataBlock uint32 // first block available for file data
}

// DecodeLayout reads the superblock from block 1 and derives the region
// geometry, verifying that the image is large enough to contain every
// region it implies: the metadata regions and the data region the
// superblock's block count claims. The validators size their marker arrays
// from that block count, so it is validated here, before anything
// allocates from it.
func DecodeLayout(r *image.Region) (*Layout, error) {
	raw, err := r.Bytes(types.SUPERBLOCK*types.BSIZE, types.BSIZE)
	if err != nil {
		return nil, fmt.Errorf("superblock: %w", err)
	}
	sb, err := types.SuperBlockFromDisk(raw)
	if err != nil {
		return nil, err
	}

	l := &Layout{
		SB:            sb,
		NInodeBlocks:  sb.NInodes/types.IPB + 1,
		NBitmapBlocks: sb.Size/types.BPB + 1,
	}
	l.InodeStart = 2
	l.BitmapStart = l.InodeStart + l.NInodeBlocks
	l.FirstDataBlock = l.BitmapStart + l.NBitmapBlocks

	if need := int64(l.FirstDataBlock) * types.BSIZE; need > int64(r.Len()) {
		return nil, fmt.Errorf("image of %d bytes cannot hold %d metadata blocks",
			r.Len(), l.FirstDataBlock)
	}
	if need := int64(sb.Size) * types.BSIZE; need > int64(r.Len()) {
		return nil, fmt.Errorf("image of %d bytes cannot hold the %d blocks the superblock claims",
			r.Len(), sb.Size)
	}
	return l, nil
}

// BlockOffset converts a block number to its byte offset in the image.
func (l *Layout) BlockOffset(bn uint32) int64 {
	return int64(bn) * types.BSIZE
}

// Inode decodes the inode record for inum out of the inode table.
func (l *Layout) Inode(r *image.Region, inum uint32) (*types.DiskInode, error) {
	off := l.BlockOffset(l.InodeStart) + int64(inum)*types.DINODE_SIZE
	raw, err := r.Bytes(off, types.DINODE_SIZE)
	if err != nil {
		return nil, fmt.Errorf("inode %d: %w", inum, err)
	}
	return types.InodeFromDisk(raw)
}

// BitSet reports whether block bn is marked allocated in the bitmap.
func (l *Layout) BitSet(r *image.Region, bn uint32) (bool, error) {
	off := l.BlockOffset(l.BitmapStart) + int64(bn/8)
	raw, err := r.Bytes(off, 1)
	if err != nil {
		return false, fmt.Errorf("bitmap bit %d: %w", bn, err)
	}
	return raw[0]&(1<<(bn%8)) != 0, nil
}
