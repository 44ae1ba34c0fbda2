package check

import (
	"github.com/PsychoPunkSage/FsCheck/pkg/types"
)

// checkInodes walks every inode slot and applies rules 1-5 to the in-use
// ones: type validity, direct and indirect address bounds, the root and
// dot-entry contracts, and bitmap agreement.
func (c *Checker) checkInodes() error {
	for inum := uint32(0); inum < c.layout.SB.NInodes; inum++ {
		ino, err := c.layout.Inode(c.region, inum)
		if err != nil {
			return err
		}
		if !ino.InUse() {
			continue
		}

		// rule 1
		if !ino.ValidType() {
			return &Violation{Kind: BadInode, Inum: inum}
		}

		// rule 2
		if err := c.checkDirectAddrs(ino, inum); err != nil {
			return err
		}
		if err := c.checkIndirectAddrs(ino, inum); err != nil {
			return err
		}

		// rules 3 and 4
		if inum == types.ROOTINO && ino.Type != types.T_DIR {
			return &Violation{Kind: RootDirectoryMissing, Inum: inum}
		}
		if ino.Type == types.T_DIR {
			if err := c.checkDotEntries(ino, inum); err != nil {
				return err
			}
		}

		// rule 5
		if err := c.checkBitmapAgreement(ino, inum); err != nil {
			return err
		}
	}
	return nil
}

// checkDirectAddrs verifies every nonzero direct address lies within the
// filesystem.
func (c *Checker) checkDirectAddrs(ino *types.DiskInode, inum uint32) error {
	for i := 0; i < types.NDIRECT; i++ {
		addr := ino.Addrs[i]
		if addr == 0 {
			continue
		}
		if addr >= c.layout.SB.Size {
			return &Violation{Kind: BadDirectAddress, Inum: inum, Block: addr}
		}
	}
	return nil
}

// checkIndirectAddrs verifies the indirect slot and, when it is in use,
// every address stored inside the indirect block.
func (c *Checker) checkIndirectAddrs(ino *types.DiskInode, inum uint32) error {
	addr := ino.Indirect()
	if addr == 0 {
		return nil
	}
	if addr >= c.layout.SB.Size {
		return &Violation{Kind: BadIndirectAddress, Inum: inum, Block: addr}
	}

	raw, err := c.region.Block(addr)
	if err != nil {
		return err
	}
	entries, err := types.IndirectBlockFromDisk(raw)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry == 0 {
			continue
		}
		if entry >= c.layout.SB.Size {
			return &Violation{Kind: BadIndirectAddress, Inum: inum, Block: entry}
		}
	}
	return nil
}

// checkDotEntries scans a directory's direct blocks for its "." and ".."
// entries. "." must reference the directory itself. For the root, ".." must
// also reference the root; for any other directory, ".." must not reference
// itself. The scan stops at the first occurrence of each name, so duplicate
// entries are not rejected. Missing either entry is a defect.
func (c *Checker) checkDotEntries(ino *types.DiskInode, inum uint32) error {
	var selfFound, parentFound bool

	for i := 0; i < types.NDIRECT && !(selfFound && parentFound); i++ {
		addr := ino.Addrs[i]
		if addr == 0 {
			continue
		}
		raw, err := c.region.Block(addr)
		if err != nil {
			return err
		}
		for j := 0; j < types.DPB; j++ {
			de, err := types.DirentFromDisk(raw[j*types.DIRENT_SIZE:])
			if err != nil {
				return err
			}
			name := de.NameString()

			if !selfFound && name == "." {
				selfFound = true
				if uint32(de.Inum) != inum {
					return &Violation{Kind: DirectoryNotFormatted, Inum: inum}
				}
			}

			if !parentFound && name == ".." {
				parentFound = true
				rootSelf := inum == types.ROOTINO && uint32(de.Inum) != inum
				otherSelf := inum != types.ROOTINO && uint32(de.Inum) == inum
				if rootSelf || otherSelf {
					return &Violation{Kind: RootDirectoryMissing, Inum: inum}
				}
			}

			if selfFound && parentFound {
				break
			}
		}
	}

	if !selfFound || !parentFound {
		return &Violation{Kind: DirectoryNotFormatted, Inum: inum}
	}
	return nil
}

// checkBitmapAgreement verifies every address the inode uses, directly or
// through its indirect block, is marked allocated in the bitmap.
func (c *Checker) checkBitmapAgreement(ino *types.DiskInode, inum uint32) error {
	return c.inodeAddrs(ino, func(bn uint32, _ bool) error {
		set, err := c.layout.BitSet(c.region, bn)
		if err != nil {
			return err
		}
		if !set {
			return &Violation{Kind: AddressFreeInBitmap, Inum: inum, Block: bn}
		}
		return nil
	})
}
