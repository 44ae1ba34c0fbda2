package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/PsychoPunkSage/FsCheck/pkg/check"
	"github.com/PsychoPunkSage/FsCheck/pkg/image"
	"github.com/PsychoPunkSage/FsCheck/pkg/types"
)

// Info implements subcommands.Command for the "info" command.
type Info struct {
	debugLevel int
}

// Name implements subcommands.Command.
func (*Info) Name() string {
	return "info"
}

// Synopsis implements subcommands.Command.
func (*Info) Synopsis() string {
	return "prints the superblock and derived layout of an image"
}

// Usage implements subcommands.Command.
func (*Info) Usage() string {
	return `info [flags] <image>
`
}

// SetFlags implements subcommands.Command.
func (i *Info) SetFlags(f *flag.FlagSet) {
	f.IntVar(&i.debugLevel, "d", int(types.FS_WARN), "debug level (0-7)")
}

// Execute implements subcommands.Command.Execute.
func (i *Info) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	types.SetDebugLevel(uint8(i.debugLevel))

	img, err := image.Open(f.Arg(0))
	if err != nil {
		types.Fs_err("%v", err)
		return subcommands.ExitFailure
	}
	defer img.Close()

	l, err := check.DecodeLayout(img.Region())
	if err != nil {
		types.Fs_err("fstool: %v", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Image:            %s\n", f.Arg(0))
	fmt.Printf("Image size:       %d bytes\n", img.Size())
	fmt.Printf("Total blocks:     %d\n", l.SB.Size)
	fmt.Printf("Data blocks:      %d\n", l.SB.NBlocks)
	fmt.Printf("Inodes:           %d\n", l.SB.NInodes)
	fmt.Printf("Inode table:      blocks %d..%d (%d blocks)\n",
		l.InodeStart, l.BitmapStart-1, l.NInodeBlocks)
	fmt.Printf("Bitmap:           blocks %d..%d (%d blocks)\n",
		l.BitmapStart, l.FirstDataBlock-1, l.NBitmapBlocks)
	fmt.Printf("First data block: %d\n", l.FirstDataBlock)

	expected := int64(l.SB.Size) * types.BSIZE
	if int64(img.Size()) != expected {
		types.Fs_warn("superblock says %d bytes, image holds %d", expected, img.Size())
	}
	return subcommands.ExitSuccess
}
