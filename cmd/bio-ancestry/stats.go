package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/grailbio/ancestry/tract"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/tsv"
	"v.io/x/lib/cmdline"
)

type statsOpts struct {
	windows int
	seqLen  float64
}

func newCmdStats() *cmdline.Command {
	cmd := &cmdline.Command{
		Name: "stats",
		Short: `Summarize ancestry composition.
Prints covered length per (sample, population) and the per-population share
of the total covered length. Input is squashed first, so raw and squashed
files give the same numbers`,
		ArgsName: "path",
	}
	opts := statsOpts{}
	cmd.Flags.IntVar(&opts.windows, "windows", 0, "Also print per-population covered length in this many equal windows along the sequence; 0 disables")
	cmd.Flags.Float64Var(&opts.seqLen, "seq-length", 0, "Sequence length for -windows; 0 = largest right endpoint in the input")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("stats takes one input path, but got %v", argv)
		}
		return stats(argv[0], opts)
	})
	return cmd
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func stats(path string, opts statsOpts) error {
	recs, err := readInput(path)
	if err != nil {
		return err
	}
	segs, err := tract.Squash(recs)
	if err != nil {
		return err
	}

	w := tsv.NewWriter(os.Stdout)
	w.WriteString("#SAMPLE\tPOP\tNSEGMENTS\tSPAN")
	if err := w.EndLine(); err != nil {
		return err
	}
	for _, ps := range tract.PopSpans(segs) {
		w.WriteString(strconv.Itoa(int(ps.Sample)))
		w.WriteString(string(ps.Pop))
		w.WriteString(strconv.Itoa(ps.NSegments))
		w.WriteString(formatFloat(float64(ps.Span)))
		if err := w.EndLine(); err != nil {
			return err
		}
	}

	w.WriteString("#POP\tSPAN\tFRACTION")
	if err := w.EndLine(); err != nil {
		return err
	}
	props := tract.Proportions(segs)
	for _, p := range props {
		w.WriteString(string(p.Pop))
		w.WriteString(formatFloat(float64(p.Span)))
		w.WriteString(formatFloat(p.Fraction))
		if err := w.EndLine(); err != nil {
			return err
		}
	}

	if opts.windows > 0 {
		seqLen := tract.Pos(opts.seqLen)
		if seqLen <= 0 {
			for _, seg := range segs {
				if seg.Right > seqLen {
					seqLen = seg.Right
				}
			}
		}
		header := "#LEFT\tRIGHT"
		for _, p := range props {
			header += "\t" + string(p.Pop)
		}
		w.WriteString(header)
		if err := w.EndLine(); err != nil {
			return err
		}
		for _, win := range tract.Windows(segs, seqLen, opts.windows) {
			w.WriteString(formatFloat(float64(win.Left)))
			w.WriteString(formatFloat(float64(win.Right)))
			for _, p := range props {
				w.WriteString(formatFloat(float64(win.Span[p.Pop])))
			}
			if err := w.EndLine(); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}
