package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/ancestry/encoding/tracttsv"
	"github.com/grailbio/ancestry/tract"
	"github.com/grailbio/base/vcontext"
)

func isRioPath(path string) bool { return strings.HasSuffix(path, ".rio") }

// readInput loads raw ancestry records from a tract TSV (optionally
// gzipped) or a .rio archive.
func readInput(path string) ([]tract.Record, error) {
	if !isRioPath(path) {
		return tracttsv.ReadRecordsFromPath(path)
	}
	ctx := vcontext.Background()
	r, err := newTractReader(ctx, path)
	if err != nil {
		return nil, err
	}
	var segs []tract.Segment
	for r.Scan() {
		segs = append(segs, r.Get())
	}
	if err := r.Close(ctx); err != nil {
		return nil, err
	}
	return tract.Records(segs), nil
}

// writeOutput writes squashed segments to path. format may be "tsv",
// "rio", or empty to guess from the path; an empty path means TSV on
// stdout. nRecords is the raw record count recorded in rio trailers.
func writeOutput(path, format string, segs []tract.Segment, nRecords int64) error {
	if format == "" {
		if isRioPath(path) {
			format = "rio"
		} else {
			format = "tsv"
		}
	}
	switch format {
	case "rio":
		if path == "" {
			return fmt.Errorf("rio output requires -o")
		}
		return writeRio(path, segs, nRecords)
	case "tsv":
		if path == "" {
			return tracttsv.WriteSegments(os.Stdout, segs)
		}
		return tracttsv.WriteSegmentsToPath(path, segs)
	}
	return fmt.Errorf("unknown output format %q (want tsv or rio)", format)
}
