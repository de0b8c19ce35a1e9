// Package tracttsv reads and writes local-ancestry tract files as TSV.
//
// A tract file has one record per line with four columns: sample ID, left
// coordinate, right coordinate, population label. Columns are separated by
// tabs on output; any run of whitespace is accepted on input. Lines
// beginning with '#' are headers or comments and are skipped. Files whose
// names end in .gz are transparently (de)compressed by the path-based
// functions.
//
// The package performs no squashing or overlap validation; pass the records
// it returns to tract.Squash.
package tracttsv

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/grailbio/ancestry/tract"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
)

// getTokens identifies up to the first len(tokens) tokens from curLine,
// returning the number of tokens saved. Any (group of) characters <= ' '
// is treated as a delimiter.
func getTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// ReadRecords parses raw ancestry records from r. Records need not be
// sorted; columns past the fourth are ignored. Syntactic problems (short
// lines, unparseable numbers, negative sample IDs) are errors; interval
// semantics are left to tract.Squash.
func ReadRecords(r io.Reader) ([]tract.Record, error) {
	scanner := bufio.NewScanner(r)
	var tokens [4][]byte
	var recs []tract.Record
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		curLine := scanner.Bytes()
		if len(curLine) > 0 && curLine[0] == '#' {
			continue
		}
		nToken := getTokens(tokens[:], curLine)
		if nToken == 0 {
			continue
		}
		if nToken != 4 {
			return nil, fmt.Errorf("tracttsv: line %d has %d fields; want 4 (sample, left, right, pop)", lineIdx, nToken)
		}
		sample, err := strconv.Atoi(gunsafe.BytesToString(tokens[0]))
		if err != nil {
			return nil, fmt.Errorf("tracttsv: line %d: bad sample ID %q", lineIdx, tokens[0])
		}
		if sample < 0 || sample > math.MaxInt32 {
			return nil, fmt.Errorf("tracttsv: line %d: sample ID %d out of range", lineIdx, sample)
		}
		left, err := strconv.ParseFloat(gunsafe.BytesToString(tokens[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("tracttsv: line %d: bad left coordinate %q", lineIdx, tokens[1])
		}
		right, err := strconv.ParseFloat(gunsafe.BytesToString(tokens[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("tracttsv: line %d: bad right coordinate %q", lineIdx, tokens[2])
		}
		recs = append(recs, tract.Record{
			Sample: tract.SampleID(sample),
			Left:   tract.Pos(left),
			Right:  tract.Pos(right),
			// tokens alias the scanner buffer; the conversion makes the
			// needed copy.
			Pop: tract.Population(tokens[3]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// ReadRecordsFromPath is ReadRecords for a local or remote path,
// decompressing .gz input.
func ReadRecordsFromPath(path string) (recs []tract.Record, err error) {
	ctx := vcontext.Background()
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return
		}
	}
	recs, err = ReadRecords(reader)
	return
}
