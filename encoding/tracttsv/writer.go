package tracttsv

import (
	"io"
	"strconv"

	"github.com/grailbio/ancestry/tract"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
)

// Header is the comment line written before the records.
const Header = "#SAMPLE\tLEFT\tRIGHT\tPOP"

func formatPos(p tract.Pos) string {
	return strconv.FormatFloat(float64(p), 'g', -1, 64)
}

func writeRow(w *tsv.Writer, sample tract.SampleID, left, right tract.Pos, pop tract.Population) error {
	w.WriteString(strconv.Itoa(int(sample)))
	w.WriteString(formatPos(left))
	w.WriteString(formatPos(right))
	w.WriteString(string(pop))
	return w.EndLine()
}

// WriteSegments writes squashed segments as TSV, one per line, preceded by
// the Header line.
func WriteSegments(w io.Writer, segs []tract.Segment) error {
	out := tsv.NewWriter(w)
	out.WriteString(Header)
	if err := out.EndLine(); err != nil {
		return err
	}
	for _, seg := range segs {
		if err := writeRow(out, seg.Sample, seg.Left, seg.Right, seg.Pop); err != nil {
			return err
		}
	}
	return out.Flush()
}

// WriteRecords writes raw records in the same format as WriteSegments.
func WriteRecords(w io.Writer, recs []tract.Record) error {
	out := tsv.NewWriter(w)
	out.WriteString(Header)
	if err := out.EndLine(); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := writeRow(out, rec.Sample, rec.Left, rec.Right, rec.Pop); err != nil {
			return err
		}
	}
	return out.Flush()
}

// WriteSegmentsToPath writes segs to a local or remote path, compressing
// with gzip when the path ends in .gz.
func WriteSegmentsToPath(path string, segs []tract.Segment) (err error) {
	ctx := vcontext.Background()
	var out file.File
	if out, err = file.Create(ctx, path); err != nil {
		return
	}
	defer func() {
		if cerr := out.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	w := io.Writer(out.Writer(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		gz := gzip.NewWriter(w)
		defer func() {
			if cerr := gz.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = gz
	}
	err = WriteSegments(w, segs)
	return
}
