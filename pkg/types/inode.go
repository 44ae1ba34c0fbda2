package types

import (
	"encoding/binary"
	"fmt"
)

// DiskInode mirrors the 64-byte on-disk inode record. Addrs holds NDIRECT
// direct block numbers followed by one indirect block number; 0 in any slot
// means the slot is unused.
type DiskInode struct {
	Type  int16 // one of T_FREE, T_DIR, T_FILE, T_DEV
	Major int16 // device major number (T_DEV only)
	Minor int16 // device minor number (T_DEV only)
	NLink int16 // number of directory entries referring to this inode
	Size  uint32
	Addrs [NDIRECT + 1]uint32
}

// InodeFromDisk decodes one on-disk inode record, little-endian.
func InodeFromDisk(raw []byte) (*DiskInode, error) {
	if len(raw) < DINODE_SIZE {
		return nil, fmt.Errorf("inode record needs %d bytes, have %d", DINODE_SIZE, len(raw))
	}
	di := &DiskInode{
		Type:  int16(binary.LittleEndian.Uint16(raw[0:2])),
		Major: int16(binary.LittleEndian.Uint16(raw[2:4])),
		Minor: int16(binary.LittleEndian.Uint16(raw[4:6])),
		NLink: int16(binary.LittleEndian.Uint16(raw[6:8])),
		Size:  binary.LittleEndian.Uint32(raw[8:12]),
	}
	for i := range di.Addrs {
		di.Addrs[i] = binary.LittleEndian.Uint32(raw[12+4*i : 16+4*i])
	}
	return di, nil
}

// ToDisk encodes the inode into raw, which must hold at least DINODE_SIZE
// bytes.
func (di *DiskInode) ToDisk(raw []byte) {
	binary.LittleEndian.PutUint16(raw[0:2], uint16(di.Type))
	binary.LittleEndian.PutUint16(raw[2:4], uint16(di.Major))
	binary.LittleEndian.PutUint16(raw[4:6], uint16(di.Minor))
	binary.LittleEndian.PutUint16(raw[6:8], uint16(di.NLink))
	binary.LittleEndian.PutUint32(raw[8:12], di.Size)
	for i, addr := range di.Addrs {
		binary.LittleEndian.PutUint32(raw[12+4*i:16+4*i], addr)
	}
}

// InUse reports whether the inode slot is allocated.
func (di *DiskInode) InUse() bool {
	return di.Type != T_FREE
}

// ValidType reports whether the type tag is one of the three allocated kinds.
func (di *DiskInode) ValidType() bool {
	return di.Type == T_DIR || di.Type == T_FILE || di.Type == T_DEV
}

// Indirect returns the indirect block number, 0 if unused.
func (di *DiskInode) Indirect() uint32 {
	return di.Addrs[NDIRECT]
}

// IndirectBlockFromDisk decodes an indirect block into its NINDIRECT
// little-endian block numbers.
func IndirectBlockFromDisk(raw []byte) ([]uint32, error) {
	if len(raw) < BSIZE {
		return nil, fmt.Errorf("indirect block needs %d bytes, have %d", BSIZE, len(raw))
	}
	addrs := make([]uint32, NINDIRECT)
	for i := range addrs {
		addrs[i] = binary.LittleEndian.Uint32(raw[4*i : 4*i+4])
	}
	return addrs, nil
}
