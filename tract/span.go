package tract

import (
	"fmt"
	"strconv"
	"strings"
)

// Span is a half-open query window [Left, Right) on the sequence.
type Span struct {
	Left  Pos
	Right Pos
}

// ParseSpan parses a window of the form "left-right". Coordinates may be
// written in any form strconv.ParseFloat accepts, e.g. "2500000-3000000"
// or "2.5e6-3e6".
func ParseSpan(s string) (Span, error) {
	sep := strings.IndexByte(s, '-')
	if sep < 0 {
		return Span{}, fmt.Errorf("tract.ParseSpan: %q is not of the form left-right", s)
	}
	left, err := strconv.ParseFloat(s[:sep], 64)
	if err != nil {
		return Span{}, fmt.Errorf("tract.ParseSpan: bad left coordinate in %q: %v", s, err)
	}
	right, err := strconv.ParseFloat(s[sep+1:], 64)
	if err != nil {
		return Span{}, fmt.Errorf("tract.ParseSpan: bad right coordinate in %q: %v", s, err)
	}
	if left < 0 || right <= left {
		return Span{}, fmt.Errorf("tract.ParseSpan: invalid window [%g, %g)", left, right)
	}
	return Span{Left: Pos(left), Right: Pos(right)}, nil
}

// Intersects reports whether the window shares any length with
// [left, right).
func (s Span) Intersects(left, right Pos) bool {
	return s.Left < right && left < s.Right
}

// Filter returns the segments intersecting span, preserving order.
func Filter(segs []Segment, span Span) []Segment {
	var out []Segment
	for _, seg := range segs {
		if span.Intersects(seg.Left, seg.Right) {
			out = append(out, seg)
		}
	}
	return out
}

// FilterPops returns the segments labeled with one of the given
// populations, preserving order.
func FilterPops(segs []Segment, pops []Population) []Segment {
	want := make(map[Population]bool, len(pops))
	for _, pop := range pops {
		want[pop] = true
	}
	var out []Segment
	for _, seg := range segs {
		if want[seg.Pop] {
			out = append(out, seg)
		}
	}
	return out
}
