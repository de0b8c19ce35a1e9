package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/grailbio/ancestry/encoding/tracttsv"
	"github.com/grailbio/ancestry/tract"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"v.io/x/lib/cmdline"
)

func newCmdView() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "view",
		Short:    "Print a tract archive as TSV",
		ArgsName: "path",
	}
	trailerFlag := cmd.Flags.Bool("trailer", false, "Print only the archive metadata, as JSON")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("view takes one pathname argument, but got %v", argv)
		}
		return view(argv[0], *trailerFlag)
	})
	return cmd
}

func view(path string, trailerOnly bool) error {
	if !isRioPath(path) {
		return fmt.Errorf("view takes a .rio archive, but got %q", path)
	}
	ctx := vcontext.Background()
	r, err := newTractReader(ctx, path)
	if err != nil {
		return err
	}
	if trailerOnly {
		js, err := json.MarshalIndent(r.Trailer(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(js))
		return r.Close(ctx)
	}
	var segs []tract.Segment
	for r.Scan() {
		segs = append(segs, r.Get())
	}
	if err := r.Close(ctx); err != nil {
		return err
	}
	return tracttsv.WriteSegments(os.Stdout, segs)
}
