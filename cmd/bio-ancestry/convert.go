package main

import (
	"fmt"

	"github.com/grailbio/ancestry/tract"
	"github.com/grailbio/base/cmdutil"
	"v.io/x/lib/cmdline"
)

func newCmdConvert() *cmdline.Command {
	cmd := &cmdline.Command{
		Name: "convert",
		Short: `Convert between tract TSV and rio.
The output format is guessed from the destination extension. Input is
squashed on the way through, so the destination always holds canonical
segments`,
		ArgsName: "srcpath destpath",
	}
	formatFlag := cmd.Flags.String("format", "", `Output format, "tsv" or "rio". Guessed from destpath if empty`)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("convert takes srcpath destpath, but got %v", argv)
		}
		return convert(argv[0], argv[1], *formatFlag)
	})
	return cmd
}

func convert(srcPath, destPath, format string) error {
	recs, err := readInput(srcPath)
	if err != nil {
		return err
	}
	segs, err := tract.Squash(recs)
	if err != nil {
		return err
	}
	return writeOutput(destPath, format, segs, int64(len(recs)))
}
