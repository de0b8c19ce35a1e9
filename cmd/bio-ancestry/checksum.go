package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash"
	"math"
	"sort"
	"strings"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/ancestry/tract"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/unsafe"
	"v.io/x/lib/cmdline"
)

// popChecksum is the checksum of squashed segments assigned to one
// population.
type popChecksum struct {
	// Pop is the population label.
	Pop string
	// NSegments is the number of segments assigned to the population.
	NSegments int64
	// Span is the total squashed length assigned to the population.
	Span float64
	// SumSamples is the sum of sample IDs over segments. A quick
	// commutative hash.
	SumSamples uint64
	// SumBounds is the sum of per-segment (interval, sample) hashes.
	SumBounds uint64
	// SumLabels is the sum of per-segment (interval, label) hashes.
	SumLabels uint64
}

func hashField(h hash.Hash64, pos [16]byte, value []byte) uint64 {
	h.Reset()
	h.Write(pos[:])
	h.Write(value)
	return h.Sum64()
}

func (c *popChecksum) add(seg tract.Segment, h hash.Hash64) {
	c.NSegments++
	c.Span += float64(seg.Span())
	c.SumSamples += uint64(seg.Sample)

	pos := [16]byte{}
	binary.LittleEndian.PutUint64(pos[:8], math.Float64bits(float64(seg.Left)))
	binary.LittleEndian.PutUint64(pos[8:], math.Float64bits(float64(seg.Right)))

	value := [4]byte{}
	binary.LittleEndian.PutUint32(value[:], uint32(seg.Sample))
	c.SumBounds += hashField(h, pos, value[:])
	c.SumLabels += hashField(h, pos, unsafe.StringToBytes(string(seg.Pop)))
}

// fileChecksum represents the checksum of one tract file.
type fileChecksum struct {
	// NSegments is the total number of squashed segments.
	NSegments int64
	// Span is the total squashed length.
	Span float64
	// Pops holds one entry per population, sorted by label.
	Pops []popChecksum
}

// checksumSegments computes a checksum over squashed segments. Squash
// emits segments in canonical order, so two files holding the same tracts
// produce identical checksums even when their raw records differ in order
// or fragmentation, or use different file formats.
func checksumSegments(segs []tract.Segment) fileChecksum {
	h := seahash.New()
	byPop := map[string]*popChecksum{}
	csum := fileChecksum{}
	for _, seg := range segs {
		c := byPop[string(seg.Pop)]
		if c == nil {
			c = &popChecksum{Pop: string(seg.Pop)}
			byPop[string(seg.Pop)] = c
		}
		c.add(seg, h)
		csum.NSegments++
		csum.Span += float64(seg.Span())
	}
	for _, c := range byPop {
		csum.Pops = append(csum.Pops, *c)
	}
	sort.Slice(csum.Pops, func(i, j int) bool { return csum.Pops[i].Pop < csum.Pops[j].Pop })
	return csum
}

type checksumOpts struct {
	// pops restricts the checksum to the named population labels.
	pops string
}

func newCmdChecksum() *cmdline.Command {
	cmd := &cmdline.Command{
		Name: "checksum",
		Short: `Compute a checksum of a tract file.
The checksum is a JSON string summarizing the squashed segments per
population. It is invariant under record order and fragmentation, so it
compares files semantically`,
		ArgsName: "path",
	}
	opts := checksumOpts{}
	cmd.Flags.StringVar(&opts.pops, "pops", "", "Comma-separated population labels to checksum. Empty checksums all")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("checksum takes a path, but got %v", argv)
		}
		return checksum(argv[0], opts)
	})
	return cmd
}

func checksum(path string, opts checksumOpts) error {
	recs, err := readInput(path)
	if err != nil {
		return err
	}
	segs, err := tract.Squash(recs)
	if err != nil {
		return err
	}
	if opts.pops != "" {
		pops, err := knownPops(segs, strings.Split(opts.pops, ","))
		if err != nil {
			return err
		}
		segs = tract.FilterPops(segs, pops)
	}
	csum := checksumSegments(segs)
	js, err := json.MarshalIndent(csum, "", "  ")
	if err != nil {
		log.Panic(err)
	}
	fmt.Println(string(js))
	return nil
}
