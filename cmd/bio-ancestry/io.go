package main

// This file defines tractWriter and tractReader. Type tractWriter dumps
// squashed segments into a recordio file with a gob trailer carrying file
// metadata, and tractReader reads them back. The archive is the compact
// interchange form for squashed tracts; TSV remains the human-readable one.

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"

	"github.com/grailbio/ancestry/tract"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/recordio"
	"github.com/grailbio/base/recordio/recordiozstd"
	"github.com/grailbio/base/vcontext"
)

const (
	// <fileVersionHeader, fileVersion> is stored in a recordio header.
	fileVersionHeader = "tractversion"
	fileVersion       = "TRACT_V1"
)

// tractTrailer is stored in the trailer section of the recordio file.
type tractTrailer struct {
	// NRecords is the number of raw records that were squashed into the
	// archive.
	NRecords int64
	// NSegments is the number of segments stored.
	NSegments int64
}

func encodeGOB(gw *gob.Encoder, v interface{}) {
	if err := gw.Encode(v); err != nil {
		panic(err)
	}
}

func decodeGOB(gr *gob.Decoder, v interface{}) {
	if err := gr.Decode(v); err != nil {
		panic(err)
	}
}

// tractWriter writes squashed segments to a recordio file.
type tractWriter struct {
	out      file.File
	w        recordio.Writer
	nRecords int64
	n        int64
}

func newTractWriter(ctx context.Context, outPath string, nRecords int64) (*tractWriter, error) {
	recordiozstd.Init()
	out, err := file.Create(ctx, outPath)
	if err != nil {
		return nil, err
	}
	w := recordio.NewWriter(out.Writer(ctx), recordio.WriterOpts{
		Transformers: []string{recordiozstd.Name},
	})
	w.AddHeader(fileVersionHeader, fileVersion)
	w.AddHeader(recordio.KeyTrailer, true)
	return &tractWriter{out: out, w: w, nRecords: nRecords}, nil
}

// Write adds one segment. Segments must be appended in squashed order.
func (w *tractWriter) Write(seg tract.Segment) {
	b := bytes.NewBuffer(nil)
	gw := gob.NewEncoder(b)
	encodeGOB(gw, seg)
	w.w.Append(b.Bytes())
	w.n++
}

// Close writes the trailer and closes the file. It must be called exactly
// once, after writing all the segments.
func (w *tractWriter) Close(ctx context.Context) error {
	b := bytes.NewBuffer(nil)
	gw := gob.NewEncoder(b)
	encodeGOB(gw, tractTrailer{NRecords: w.nRecords, NSegments: w.n})
	w.w.SetTrailer(b.Bytes())
	if err := w.w.Finish(); err != nil {
		return err
	}
	return w.out.Close(ctx)
}

// tractReader reads segments from a recordio file created by tractWriter.
type tractReader struct {
	in      file.File
	r       recordio.Scanner
	trailer tractTrailer

	seg tract.Segment // last segment read by Scan
}

func newTractReader(ctx context.Context, inPath string) (*tractReader, error) {
	in, err := file.Open(ctx, inPath)
	if err != nil {
		return nil, err
	}
	recordiozstd.Init()
	r := recordio.NewScanner(in.Reader(ctx), recordio.ScannerOpts{})
	versionFound := false
	for _, kv := range r.Header() {
		if kv.Key == fileVersionHeader {
			if kv.Value.(string) != fileVersion {
				_ = in.Close(ctx)
				return nil, fmt.Errorf("%s: tract file version mismatch, got %v, expect %v",
					inPath, kv.Value, fileVersion)
			}
			versionFound = true
			break
		}
	}
	if !versionFound {
		_ = in.Close(ctx)
		return nil, fmt.Errorf("%s: not a tract archive (%s header missing)", inPath, fileVersionHeader)
	}
	gr := gob.NewDecoder(bytes.NewReader(r.Trailer()))
	trailer := tractTrailer{}
	decodeGOB(gr, &trailer)
	return &tractReader{in: in, r: r, trailer: trailer}, nil
}

// Trailer returns the archive metadata. It can be called any time.
func (r *tractReader) Trailer() tractTrailer { return r.trailer }

// Scan reads the next segment.
//
// REQUIRES: Close hasn't been called.
func (r *tractReader) Scan() bool {
	if !r.r.Scan() {
		return false
	}
	gr := gob.NewDecoder(bytes.NewReader(r.r.Get().([]byte)))
	r.seg = tract.Segment{}
	decodeGOB(gr, &r.seg)
	return true
}

// Get yields the current segment.
//
// REQUIRES: Last Scan call returned true.
func (r *tractReader) Get() tract.Segment { return r.seg }

// Close closes the reader. It must be called exactly once.
func (r *tractReader) Close(ctx context.Context) error {
	if err := r.r.Err(); err != nil {
		_ = r.in.Close(ctx)
		return err
	}
	return r.in.Close(ctx)
}

// writeRio dumps segs to a .rio archive at path.
func writeRio(path string, segs []tract.Segment, nRecords int64) error {
	ctx := vcontext.Background()
	w, err := newTractWriter(ctx, path, nRecords)
	if err != nil {
		return err
	}
	for _, seg := range segs {
		w.Write(seg)
	}
	return w.Close(ctx)
}
