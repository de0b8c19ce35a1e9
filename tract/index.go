package tract

import (
	"github.com/biogo/store/llrb"
)

// indexKey orders segments by (sample, left endpoint). The segment pointer
// rides along so that Floor lookups return the segment without a second
// map.
type indexKey struct {
	sample SampleID
	left   Pos
	seg    *Segment
}

func (k indexKey) Compare(c2 llrb.Comparable) int {
	k2 := c2.(indexKey)
	switch {
	case k.sample < k2.sample:
		return -1
	case k.sample > k2.sample:
		return 1
	case k.left < k2.left:
		return -1
	case k.left > k2.left:
		return 1
	}
	return 0
}

// Index answers point and window queries over squashed segments. Build one
// with NewIndex; after that it is immutable and safe for concurrent
// readers.
type Index struct {
	tree llrb.Tree
	segs []Segment
}

// NewIndex indexes segs for Lookup and Overlapping queries. segs must be
// squashed (per-sample disjoint, as produced by Squash); the slice is
// copied.
func NewIndex(segs []Segment) *Index {
	idx := &Index{segs: append([]Segment(nil), segs...)}
	for i := range idx.segs {
		seg := &idx.segs[i]
		idx.tree.Insert(indexKey{sample: seg.Sample, left: seg.Left, seg: seg})
	}
	return idx
}

// Len returns the number of indexed segments.
func (idx *Index) Len() int { return len(idx.segs) }

// Lookup returns the segment of sample covering pos, if any.
func (idx *Index) Lookup(sample SampleID, pos Pos) (Segment, bool) {
	hit := idx.tree.Floor(indexKey{sample: sample, left: pos})
	if hit == nil {
		return Segment{}, false
	}
	seg := hit.(indexKey).seg
	if seg.Sample != sample || pos < seg.Left || pos >= seg.Right {
		return Segment{}, false
	}
	return *seg, true
}

// Overlapping returns the segments of sample intersecting span, in
// increasing left order.
func (idx *Index) Overlapping(sample SampleID, span Span) []Segment {
	if span.Right <= span.Left {
		return nil
	}
	var out []Segment
	// A segment straddling span.Left starts before it, so the range scan
	// below cannot see it.
	if seg, ok := idx.Lookup(sample, span.Left); ok && seg.Left < span.Left {
		out = append(out, seg)
	}
	idx.tree.DoRange(func(c llrb.Comparable) (done bool) {
		out = append(out, *c.(indexKey).seg)
		return false
	}, indexKey{sample: sample, left: span.Left}, indexKey{sample: sample, left: span.Right})
	return out
}
