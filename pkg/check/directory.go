package check

import (
	"fmt"

	"github.com/PsychoPunkSage/FsCheck/pkg/types"
)

// checkDirectories verifies rules 9-12. It walks the directory tree from
// the root, tallying how many directory entries reference each inode
// number, then checks every non-reserved inode slot against its tally:
// in-use inodes must be referenced, referenced inodes must be in use, file
// link counts must match their tallies, and directories must be referenced
// exactly once.
//
// The walk is iterative, a work-stack plus a visited set keyed by inode
// number, so a cyclic or multiply-linked image cannot recurse without
// bound. "." and ".." entries are excluded from the walk and the tallies;
// the reserved inodes 0 and 1 are pre-seeded with one reference each, the
// root counting as referenced by itself.
func (c *Checker) checkDirectories() error {
	sb := c.layout.SB
	refs := make([]int64, sb.NInodes)
	if sb.NInodes > 0 {
		refs[0] = 1
	}
	if sb.NInodes > types.ROOTINO {
		refs[types.ROOTINO] = 1
	}

	if err := c.walkDirectoryTree(refs); err != nil {
		return err
	}

	for inum := uint32(2); inum < sb.NInodes; inum++ {
		ino, err := c.layout.Inode(c.region, inum)
		if err != nil {
			return err
		}

		// rule 9
		if ino.InUse() && refs[inum] == 0 {
			return &Violation{Kind: InodeNotInDirectory, Inum: inum}
		}
		// rule 10
		if refs[inum] > 0 && !ino.InUse() {
			return &Violation{Kind: InodeReferredButFree, Inum: inum}
		}
		// rule 11
		if ino.Type == types.T_FILE && int64(ino.NLink) != refs[inum] {
			return &Violation{Kind: BadFileRefCount, Inum: inum}
		}
		// rule 12
		if ino.Type == types.T_DIR && refs[inum] > 1 {
			return &Violation{Kind: DirectoryMultiplyLinked, Inum: inum}
		}
	}
	return nil
}

// walkDirectoryTree performs the depth-first traversal from the root,
// incrementing refs once per qualifying directory entry.
func (c *Checker) walkDirectoryTree(refs []int64) error {
	if c.layout.SB.NInodes <= types.ROOTINO {
		return nil
	}

	visited := make([]bool, c.layout.SB.NInodes)
	visited[types.ROOTINO] = true
	stack := []uint32{types.ROOTINO}

	for len(stack) > 0 {
		inum := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		ino, err := c.layout.Inode(c.region, inum)
		if err != nil {
			return err
		}
		if ino.Type != types.T_DIR {
			continue
		}

		err = c.inodeDataBlocks(ino, func(bn uint32) error {
			raw, err := c.region.Block(bn)
			if err != nil {
				return err
			}
			for j := 0; j < types.DPB; j++ {
				de, err := types.DirentFromDisk(raw[j*types.DIRENT_SIZE:])
				if err != nil {
					return err
				}
				if de.Inum == 0 {
					continue
				}
				name := de.NameString()
				if name == "." || name == ".." {
					continue
				}
				target := uint32(de.Inum)
				if target >= c.layout.SB.NInodes {
					return fmt.Errorf("directory entry %q references inode %d beyond table of %d",
						name, target, c.layout.SB.NInodes)
				}
				refs[target]++
				if !visited[target] {
					visited[target] = true
					stack = append(stack, target)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// inodeDataBlocks invokes visit for every nonzero data block of the inode,
// direct blocks first and then the contents of the indirect block. The
// indirect block itself holds addresses, not data, and is not visited.
func (c *Checker) inodeDataBlocks(ino *types.DiskInode, visit func(bn uint32) error) error {
	for i := 0; i < types.NDIRECT; i++ {
		if addr := ino.Addrs[i]; addr != 0 {
			if err := visit(addr); err != nil {
				return err
			}
		}
	}

	indirect := ino.Indirect()
	if indirect == 0 {
		return nil
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
		if entry != 0 {
			if err := visit(entry); err != nil {
				return err
			}
		}
	}
	return nil
}
