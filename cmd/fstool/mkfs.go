package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/PsychoPunkSage/FsCheck/pkg/types"
	"github.com/PsychoPunkSage/FsCheck/pkg/writer"
)

// Mkfs implements subcommands.Command for the "mkfs" command. It formats a
// minimal image holding only an empty root directory.
type Mkfs struct {
	size       uint
	ninodes    uint
	debugLevel int
}

// Name implements subcommands.Command.
func (*Mkfs) Name() string {
	return "mkfs"
}

// Synopsis implements subcommands.Command.
func (*Mkfs) Synopsis() string {
	return "formats a minimal filesystem image"
}

// Usage implements subcommands.Command.
func (*Mkfs) Usage() string {
	return `mkfs [flags] <image>
`
}

// SetFlags implements subcommands.Command.
func (m *Mkfs) SetFlags(f *flag.FlagSet) {
	f.UintVar(&m.size, "size", 1024, "image size in blocks")
	f.UintVar(&m.ninodes, "ninodes", 200, "number of inode slots")
	f.IntVar(&m.debugLevel, "d", int(types.FS_WARN), "debug level (0-7)")
}

// Execute implements subcommands.Command.Execute.
func (m *Mkfs) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	types.SetDebugLevel(uint8(m.debugLevel))

	b, err := writer.NewBuilder(uint32(m.size), uint32(m.ninodes))
	if err != nil {
		types.Fs_err("fstool: %v", err)
		return subcommands.ExitFailure
	}
	if err := b.WriteFile(f.Arg(0)); err != nil {
		types.Fs_err("fstool: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
