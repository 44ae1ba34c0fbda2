package check

// checkBitmap verifies rule 6, the inverse of rule 5: every block the
// bitmap marks allocated must actually be used by some in-use inode. Usage
// is gathered with the same address enumeration the inode checks use, then
// every data block number is scanned against the bitmap.
func (c *Checker) checkBitmap() error {
	sb := c.layout.SB
	used := make([]bool, sb.Size)

	for inum := uint32(0); inum < sb.NInodes; inum++ {
		ino, err := c.layout.Inode(c.region, inum)
		if err != nil {
			return err
		}
		if !ino.InUse() {
			continue
		}
		err = c.inodeAddrs(ino, func(bn uint32, _ bool) error {
			if bn < sb.Size {
				used[bn] = true
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	for bn := c.layout.FirstDataBlock; bn < sb.Size; bn++ {
		set, err := c.layout.BitSet(c.region, bn)
		if err != nil {
			return err
		}
		if set && !used[bn] {
			return &Violation{Kind: BitmapMarksUnused, Block: bn}
		}
	}
	return nil
}
