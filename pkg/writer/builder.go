// Package writer assembles xv6 filesystem images in memory. It lays out
// regions the same way the standard formatter does, so the images it
// produces satisfy every consistency rule the checker enforces.
package writer

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/PsychoPunkSage/FsCheck/pkg/types"
)

// Builder assembles an xv6 filesystem image. NewBuilder allocates the whole
// image up front and creates the root directory; files, directories, and
// device nodes are then attached under it.
type Builder struct {
	SB types.SuperBlock

	NInodeBlocks   uint32
	NBitmapBlocks  uint32
	FirstDataBlock uint32

	data      []byte
	nextInum  uint32
	nextBlock uint32
}

// NewBuilder creates a builder for an image of size total blocks and
// ninodes inode slots, with the root directory already in place.
func NewBuilder(size, ninodes uint32) (*Builder, error) {
	b := &Builder{
		NInodeBlocks:  ninodes/types.IPB + 1,
		NBitmapBlocks: size/types.BPB + 1,
	}
	b.FirstDataBlock = 2 + b.NInodeBlocks + b.NBitmapBlocks
	if b.FirstDataBlock >= size {
		return nil, fmt.Errorf("%d blocks cannot hold %d metadata blocks plus data", size, b.FirstDataBlock)
	}

	b.SB = types.SuperBlock{
		Size:    size,
		NBlocks: size - b.FirstDataBlock,
		NInodes: ninodes,
	}
	b.data = make([]byte, int64(size)*types.BSIZE)
	b.SB.ToDisk(b.data[types.SUPERBLOCK*types.BSIZE:])

	// Boot block, superblock, inode table and bitmap count as allocated.
	for bn := uint32(0); bn < b.FirstDataBlock; bn++ {
		b.setBit(bn)
	}
	b.nextBlock = b.FirstDataBlock

	// Inode 0 is reserved and stays free; the root is inode 1.
	b.nextInum = types.ROOTINO
	root, err := b.allocInode(types.T_DIR)
	if err != nil {
		return nil, err
	}
	if err := b.AddDirent(root, ".", root); err != nil {
		return nil, err
	}
	if err := b.AddDirent(root, "..", root); err != nil {
		return nil, err
	}
	return b, nil
}

// Root returns the root directory's inode number.
func (b *Builder) Root() uint32 {
	return types.ROOTINO
}

// Bytes returns the assembled image. The slice is the builder's backing
// store, not a copy.
func (b *Builder) Bytes() []byte {
	return b.data
}

// WriteFile writes the assembled image to path.
func (b *Builder) WriteFile(path string) error {
	if err := os.WriteFile(path, b.data, 0644); err != nil {
		return fmt.Errorf("write image %s: %w", path, err)
	}
	types.Fs_info("wrote %s: %d blocks, %d inodes", path, b.SB.Size, b.SB.NInodes)
	return nil
}

// AddDir creates an empty directory under parent and returns its inode
// number.
func (b *Builder) AddDir(parent uint32, name string) (uint32, error) {
	inum, err := b.allocInode(types.T_DIR)
	if err != nil {
		return 0, err
	}
	if err := b.AddDirent(inum, ".", inum); err != nil {
		return 0, err
	}
	if err := b.AddDirent(inum, "..", parent); err != nil {
		return 0, err
	}
	if err := b.AddDirent(parent, name, inum); err != nil {
		return 0, err
	}
	return inum, nil
}

// AddFile creates a regular file under parent holding contents and returns
// its inode number. Files larger than NDIRECT blocks spill into an
// indirect block.
func (b *Builder) AddFile(parent uint32, name string, contents []byte) (uint32, error) {
	inum, err := b.allocInode(types.T_FILE)
	if err != nil {
		return 0, err
	}

	ino := b.inode(inum)
	ino.NLink = 1
	ino.Size = uint32(len(contents))

	nblocks := (len(contents) + types.BSIZE - 1) / types.BSIZE
	if nblocks > types.MAXFILE {
		return 0, fmt.Errorf("file %q needs %d blocks, format allows %d", name, nblocks, types.MAXFILE)
	}

	var indirect []uint32
	for i := 0; i < nblocks; i++ {
		bn, err := b.allocBlock()
		if err != nil {
			return 0, err
		}
		end := (i + 1) * types.BSIZE
		if end > len(contents) {
			end = len(contents)
		}
		copy(b.data[int64(bn)*types.BSIZE:], contents[i*types.BSIZE:end])

		if i < types.NDIRECT {
			ino.Addrs[i] = bn
		} else {
			indirect = append(indirect, bn)
		}
	}

	if len(indirect) > 0 {
		bn, err := b.allocBlock()
		if err != nil {
			return 0, err
		}
		ino.Addrs[types.NDIRECT] = bn
		raw := b.data[int64(bn)*types.BSIZE:]
		for i, addr := range indirect {
			binary.LittleEndian.PutUint32(raw[4*i:4*i+4], addr)
		}
	}

	b.putInode(inum, ino)
	return inum, b.AddDirent(parent, name, inum)
}

// AddDevice creates a device node under parent and returns its inode
// number.
func (b *Builder) AddDevice(parent uint32, name string, major, minor int16) (uint32, error) {
	inum, err := b.allocInode(types.T_DEV)
	if err != nil {
		return 0, err
	}
	ino := b.inode(inum)
	ino.Major = major
	ino.Minor = minor
	ino.NLink = 1
	b.putInode(inum, ino)
	return inum, b.AddDirent(parent, name, inum)
}

// AddDirent appends a (target, name) entry to the directory dir, extending
// the directory with a fresh data block when every slot of its current
// blocks is taken.
func (b *Builder) AddDirent(dir uint32, name string, target uint32) error {
	if len(name) > types.DIRSIZ {
		return fmt.Errorf("name %q exceeds %d bytes", name, types.DIRSIZ)
	}
	ino := b.inode(dir)
	if ino.Type != types.T_DIR {
		return fmt.Errorf("inode %d is not a directory", dir)
	}

	de := types.Dirent{Inum: uint16(target)}
	de.SetName(name)

	for i := 0; i < types.NDIRECT; i++ {
		bn := ino.Addrs[i]
		if bn == 0 {
			alloc, err := b.allocBlock()
			if err != nil {
				return err
			}
			ino.Addrs[i] = alloc
			bn = alloc
		}
		raw := b.data[int64(bn)*types.BSIZE : int64(bn+1)*types.BSIZE]
		for j := 0; j < types.DPB; j++ {
			slot := raw[j*types.DIRENT_SIZE:]
			existing, err := types.DirentFromDisk(slot)
			if err != nil {
				return err
			}
			if existing.Inum != 0 || existing.NameString() != "" {
				continue
			}
			de.ToDisk(slot)
			used := uint32(i*types.BSIZE + (j+1)*types.DIRENT_SIZE)
			if used > ino.Size {
				ino.Size = used
			}
			b.putInode(dir, ino)
			return nil
		}
	}
	return fmt.Errorf("directory %d is full", dir)
}

// SetNLink overwrites the link count of inum.
func (b *Builder) SetNLink(inum uint32, nlink int16) {
	ino := b.inode(inum)
	ino.NLink = nlink
	b.putInode(inum, ino)
}

func (b *Builder) allocInode(typ int16) (uint32, error) {
	if b.nextInum >= b.SB.NInodes {
		return 0, fmt.Errorf("inode table full (%d slots)", b.SB.NInodes)
	}
	inum := b.nextInum
	b.nextInum++
	ino := &types.DiskInode{Type: typ, NLink: 1}
	b.putInode(inum, ino)
	return inum, nil
}

func (b *Builder) allocBlock() (uint32, error) {
	if b.nextBlock >= b.SB.Size {
		return 0, fmt.Errorf("image full (%d blocks)", b.SB.Size)
	}
	bn := b.nextBlock
	b.nextBlock++
	b.setBit(bn)
	return bn, nil
}

func (b *Builder) inode(inum uint32) *types.DiskInode {
	off := int64(2)*types.BSIZE + int64(inum)*types.DINODE_SIZE
	ino, err := types.InodeFromDisk(b.data[off : off+types.DINODE_SIZE])
	if err != nil {
		// The builder sized its own buffer; a short read cannot happen.
		panic(err)
	}
	return ino
}

func (b *Builder) putInode(inum uint32, ino *types.DiskInode) {
	off := int64(2)*types.BSIZE + int64(inum)*types.DINODE_SIZE
	ino.ToDisk(b.data[off : off+types.DINODE_SIZE])
}

func (b *Builder) setBit(bn uint32) {
	off := int64(2+b.NInodeBlocks)*types.BSIZE + int64(bn/8)
	b.data[off] |= 1 << (bn % 8)
}
