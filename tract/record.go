package tract

// SampleID identifies the sample whose genome an ancestry record describes.
// Upstream tools hand out dense non-negative integers, so 32 bits is enough.
type SampleID int32

// Pos is a position on the sequence. Coordinates are real-valued because
// simulators emit floating-point breakpoints; in practice most values are
// integral base-pair offsets.
type Pos float64

// Population names the population, or ancestry class, a tract is assigned
// to. The label is opaque: callers resolve numeric population codes to
// labels before constructing records, so nothing downstream needs access to
// the genealogy that produced them.
type Population string

// Record is a single raw ancestry claim: the genome of Sample over
// [Left, Right) traces back to Pop.
type Record struct {
	Sample SampleID
	Left   Pos
	Right  Pos
	Pop    Population
}

// Segment is one squashed ancestry tract. Segments produced by Squash are
// pairwise disjoint within a sample and maximal: no two consecutive
// segments with the same population touch.
type Segment struct {
	Sample SampleID
	Left   Pos
	Right  Pos
	Pop    Population
}

// Span returns the length covered by the segment.
func (s Segment) Span() Pos { return s.Right - s.Left }

// Records converts segments back to raw records, e.g. to feed a second
// Squash or to mix with records from another source.
func Records(segs []Segment) []Record {
	recs := make([]Record, len(segs))
	for i, s := range segs {
		recs[i] = Record{Sample: s.Sample, Left: s.Left, Right: s.Right, Pop: s.Pop}
	}
	return recs
}
