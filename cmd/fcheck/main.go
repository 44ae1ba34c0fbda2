package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/PsychoPunkSage/FsCheck/pkg/check"
	"github.com/PsychoPunkSage/FsCheck/pkg/image"
	"github.com/PsychoPunkSage/FsCheck/pkg/types"
)

func main() {
	debugLevel := flag.Int("d", int(types.FS_WARN), "Debug level (0-7)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}
	types.SetDebugLevel(uint8(*debugLevel))

	img, err := image.Open(flag.Arg(0))
	if err != nil {
		types.Fs_err("%v", err)
		os.Exit(1)
	}
	defer img.Close()

	c, err := check.New(img.Region())
	if err != nil {
		types.Fs_err("fcheck: %v", err)
		os.Exit(1)
	}

	if err := c.Run(); err != nil {
		var v *check.Violation
		if errors.As(err, &v) {
			// The diagnostic line is the tool's output contract: one
			// fixed line on stdout per violated rule.
			fmt.Println(v.Error())
		} else {
			types.Fs_err("fcheck: %v", err)
		}
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: fcheck <file_system_image>")
}
