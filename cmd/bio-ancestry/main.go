package main

//
// bio-ancestry manipulates local-ancestry tract files.
//
// A tract file lists raw ancestry claims, one per line: sample ID, left
// coordinate, right coordinate, population label. Such files come out of
// ancestry tracing pipelines fragmented at recombination breakpoints and
// in arbitrary record order. The squash subcommand canonicalizes them into
// maximal per-sample segments; stats, view, checksum and convert operate
// on the canonical form.
//
// Supported file formats, chosen by extension: .tsv (optionally .tsv.gz)
// and .rio (recordio archive of squashed segments).
//

import (
	"log"

	"v.io/x/lib/cmdline"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-ancestry",
			Short:    "Tools for working with local-ancestry tract files",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdSquash(),
				newCmdStats(),
				newCmdView(),
				newCmdChecksum(),
				newCmdConvert(),
			},
		})
}
