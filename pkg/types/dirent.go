package types

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Dirent is one fixed-size directory entry: an inode number plus a
// NUL-padded name. Inum 0 marks an empty slot.
type Dirent struct {
	Inum uint16
	Name [DIRSIZ]byte
}

// DirentFromDisk decodes one on-disk directory entry.
func DirentFromDisk(raw []byte) (Dirent, error) {
	var de Dirent
	if len(raw) < DIRENT_SIZE {
		return de, fmt.Errorf("dirent needs %d bytes, have %d", DIRENT_SIZE, len(raw))
	}
	de.Inum = binary.LittleEndian.Uint16(raw[0:2])
	copy(de.Name[:], raw[2:DIRENT_SIZE])
	return de, nil
}

// ToDisk encodes the dirent into raw, which must hold at least DIRENT_SIZE
// bytes.
func (de *Dirent) ToDisk(raw []byte) {
	binary.LittleEndian.PutUint16(raw[0:2], de.Inum)
	copy(raw[2:DIRENT_SIZE], de.Name[:])
}

// NameString returns the entry name up to the first NUL byte.
func (de *Dirent) NameString() string {
	if i := bytes.IndexByte(de.Name[:], 0); i >= 0 {
		return string(de.Name[:i])
	}
	return string(de.Name[:])
}

// SetName stores name into the fixed-length field, truncating at DIRSIZ
// bytes and zero-padding the rest.
func (de *Dirent) SetName(name string) {
	for i := range de.Name {
		de.Name[i] = 0
	}
	copy(de.Name[:], name)
}
