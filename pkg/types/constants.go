package types

// On-disk layout constants for the xv6 v1 filesystem. These are fixed
// properties of the format, not tunables: every tool that reads or writes
// an image must agree on them bit-for-bit.
const (
	BSIZE = 512 // block size in bytes

	NDIRECT   = 12        // direct addresses per inode
	NINDIRECT = BSIZE / 4 // addresses per indirect block
	MAXFILE   = NDIRECT + NINDIRECT

	DINODE_SIZE = 64                  // on-disk inode record size
	IPB         = BSIZE / DINODE_SIZE // inodes per block

	BPB = BSIZE * 8 // bitmap bits per block

	DIRSIZ      = 14                  // name bytes per directory entry
	DIRENT_SIZE = 2 + DIRSIZ          // on-disk dirent size
	DPB         = BSIZE / DIRENT_SIZE // dirents per block

	ROOTINO = 1 // inode number of the root directory

	BOOTBLOCK  = 0 // reserved boot block
	SUPERBLOCK = 1 // block holding the superblock
)

// Inode type tags. Zero marks a free inode slot.
const (
	T_FREE int16 = 0
	T_DIR  int16 = 1
	T_FILE int16 = 2
	T_DEV  int16 = 3
)
