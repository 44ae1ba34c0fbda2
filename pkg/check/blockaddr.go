package check

import (
	"github.com/PsychoPunkSage/FsCheck/pkg/types"
)

// checkBlockAddrs verifies rules 7 and 8: no data block is claimed as a
// direct address by more than one use, and likewise for addresses stored in
// indirect blocks. The two categories are counted independently; the
// indirect block's own address belongs to neither count, and a block used
// once directly and once indirectly is not flagged here.
func (c *Checker) checkBlockAddrs() error {
	sb := c.layout.SB
	directUses := make([]uint32, sb.Size)
	indirectUses := make([]uint32, sb.Size)

	for inum := uint32(0); inum < sb.NInodes; inum++ {
		ino, err := c.layout.Inode(c.region, inum)
		if err != nil {
			return err
		}
		if !ino.InUse() {
			continue
		}

		for i := 0; i < types.NDIRECT; i++ {
			if addr := ino.Addrs[i]; addr != 0 && addr < sb.Size {
				directUses[addr]++
			}
		}

		indirect := ino.Indirect()
		if indirect == 0 || indirect >= sb.Size {
			continue
		}
		raw, err := c.region.Block(indirect)
		if err != nil {
			return err
		}
		entries, err := types.IndirectBlockFromDisk(raw)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if entry != 0 && entry < sb.Size {
				indirectUses[entry]++
			}
		}
	}

	for bn := c.layout.FirstDataBlock; bn < sb.Size; bn++ {
		// rule 7
		if directUses[bn] > 1 {
			return &Violation{Kind: DirectAddressReused, Block: bn}
		}
		// rule 8
		if indirectUses[bn] > 1 {
			return &Violation{Kind: IndirectAddressReused, Block: bn}
		}
	}
	return nil
}
