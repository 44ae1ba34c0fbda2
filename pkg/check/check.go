// Package check decodes an xv6 filesystem image and verifies its twelve
// consistency rules: inode validity, address-range safety, bitmap
// agreement, block-address uniqueness, and directory-tree reference
// correctness.
//
// Checking is fail-fast. The validator groups run in a fixed order over the
// shared decoded layout, and the first defect found is returned as a
// *Violation; later defects in the same image are never reported. A nil
// result from Run means the image satisfies every rule.
package check

import (
	"github.com/PsychoPunkSage/FsCheck/pkg/image"
	"github.com/PsychoPunkSage/FsCheck/pkg/types"
)

// Checker runs the validator groups over one decoded image. It holds only
// the read-only image bytes and the layout derived from the superblock.
type Checker struct {
	region *image.Region
	layout *Layout
}

// New decodes the image's layout and returns a Checker over it.
func New(r *image.Region) (*Checker, error) {
	l, err := DecodeLayout(r)
	if err != nil {
		return nil, err
	}
	return &Checker{region: r, layout: l}, nil
}

// Layout exposes the decoded geometry.
func (c *Checker) Layout() *Layout {
	return c.layout
}

// Run executes the validator groups in their fixed order and returns the
// first defect found: inode checks (rules 1-5), then bitmap (rule 6), then
// block-address uniqueness (rules 7-8), then directory references
// (rules 9-12). A *Violation identifies a consistency rule failure; any
// other error means the image could not be decoded at all.
func (c *Checker) Run() error {
	if err := c.checkInodes(); err != nil {
		return err
	}
	if err := c.checkBitmap(); err != nil {
		return err
	}
	if err := c.checkBlockAddrs(); err != nil {
		return err
	}
	return c.checkDirectories()
}

// inodeAddrs invokes visit for every nonzero block address the inode uses:
// the direct slots, the indirect slot itself, and every entry of the
// indirect block. This is the shared address enumeration behind rules 5, 6,
// 7 and 8.
func (c *Checker) inodeAddrs(ino *types.DiskInode, visit func(bn uint32, indirect bool) error) error {
	for i := 0; i <= types.NDIRECT; i++ {
		addr := ino.Addrs[i]
		if addr == 0 {
			continue
		}
		if err := visit(addr, false); err != nil {
			return err
		}
		if i != types.NDIRECT {
			continue
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
			if err := visit(entry, true); err != nil {
				return err
			}
		}
	}
	return nil
}
