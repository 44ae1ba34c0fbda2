// fstool bundles the auxiliary xv6 image tools: "info" dumps a decoded
// superblock and layout, "mkfs" formats a minimal conforming image.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(new(Info), "")
	subcommands.Register(new(Mkfs), "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
