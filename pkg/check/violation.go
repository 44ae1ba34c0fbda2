package check

// ViolationKind identifies one of the twelve consistency rules. The direct
// and indirect address-range checks report under separate kinds, matching
// the tool's two distinct diagnostics for rule 2.
type ViolationKind int

const (
	BadInode ViolationKind = iota
	BadDirectAddress
	BadIndirectAddress
	RootDirectoryMissing
	DirectoryNotFormatted
	AddressFreeInBitmap
	BitmapMarksUnused
	DirectAddressReused
	IndirectAddressReused
	InodeNotInDirectory
	InodeReferredButFree
	BadFileRefCount
	DirectoryMultiplyLinked
)

// violationText maps each kind to its fixed one-line diagnostic. These
// strings are part of the tool's output contract and must not change.
var violationText = map[ViolationKind]string{
	BadInode:                "ERROR: bad inode.",
	BadDirectAddress:        "ERROR: bad direct address in inode.",
	BadIndirectAddress:      "ERROR: bad indirect address in inode.",
	RootDirectoryMissing:    "ERROR: root directory does not exist.",
	DirectoryNotFormatted:   "ERROR: directory not properly formatted.",
	AddressFreeInBitmap:     "ERROR: address used by inode but marked free in bitmap.",
	BitmapMarksUnused:       "ERROR: bitmap marks block in use but it is not in use.",
	DirectAddressReused:     "ERROR: direct address used more than once.",
	IndirectAddressReused:   "ERROR: indirect address used more than once.",
	InodeNotInDirectory:     "ERROR: inode marked use but not found in a directory.",
	InodeReferredButFree:    "ERROR: inode referred to in directory but marked free.",
	BadFileRefCount:         "ERROR: bad reference count for file.",
	DirectoryMultiplyLinked: "ERROR: directory appears more than once in file system.",
}

// Violation is a single consistency defect. Inum and Block carry the inode
// and block involved where that is meaningful; Error returns exactly the
// diagnostic line the tool prints.
type Violation struct {
	Kind  ViolationKind
	Inum  uint32
	Block uint32
}

func (v *Violation) Error() string {
	return violationText[v.Kind]
}

// Is matches violations by kind, so errors.Is(err, &Violation{Kind: k})
// works without regard to Inum or Block.
func (v *Violation) Is(target error) bool {
	t, ok := target.(*Violation)
	return ok && t.Kind == v.Kind
}
