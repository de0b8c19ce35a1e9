package main

import (
	"fmt"
	"strings"

	"github.com/grailbio/ancestry/tract"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"v.io/x/lib/cmdline"
)

type squashOpts struct {
	out         string
	format      string
	span        string
	pops        string
	parallelism int
}

func newCmdSquash() *cmdline.Command {
	cmd := &cmdline.Command{
		Name: "squash",
		Short: `Canonicalize raw ancestry records.
Groups records by sample, rejects overlapping or empty intervals, and merges
runs of back-to-back records assigned to the same population`,
		ArgsName: "path",
	}
	opts := squashOpts{}
	cmd.Flags.StringVar(&opts.out, "o", "", "Output path. TSV on stdout if empty")
	cmd.Flags.StringVar(&opts.format, "format", "", `Output format, "tsv" or "rio". Guessed from -o if empty`)
	cmd.Flags.StringVar(&opts.span, "span", "", "Keep only segments intersecting this left-right window, e.g. 2.5e6-3e6")
	cmd.Flags.StringVar(&opts.pops, "pops", "", "Comma-separated population labels to keep. Empty keeps all")
	cmd.Flags.IntVar(&opts.parallelism, "parallelism", 0, "Maximum number of concurrent per-sample squash jobs; 0 = runtime.NumCPU()")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("squash takes one input path, but got %v", argv)
		}
		return runSquash(argv[0], opts)
	})
	return cmd
}

func runSquash(path string, opts squashOpts) error {
	recs, err := readInput(path)
	if err != nil {
		return err
	}
	segs, err := tract.SquashParallel(recs, opts.parallelism)
	if err != nil {
		return err
	}
	log.Printf("squashed %d records into %d segments", len(recs), len(segs))
	if opts.span != "" {
		span, err := tract.ParseSpan(opts.span)
		if err != nil {
			return err
		}
		segs = tract.Filter(segs, span)
	}
	if opts.pops != "" {
		pops, err := knownPops(segs, strings.Split(opts.pops, ","))
		if err != nil {
			return err
		}
		segs = tract.FilterPops(segs, pops)
	}
	return writeOutput(opts.out, opts.format, segs, int64(len(recs)))
}
