package tract

import (
	"sort"
)

// PopSpan is the total squashed length one population contributes to one
// sample.
type PopSpan struct {
	Sample    SampleID
	Pop       Population
	NSegments int
	Span      Pos
}

// PopSpans totals squashed length per (sample, population), sorted by
// sample and then population.
func PopSpans(segs []Segment) []PopSpan {
	type key struct {
		sample SampleID
		pop    Population
	}
	totals := make(map[key]PopSpan)
	for _, seg := range segs {
		k := key{seg.Sample, seg.Pop}
		t := totals[k]
		t.Sample = seg.Sample
		t.Pop = seg.Pop
		t.NSegments++
		t.Span += seg.Span()
		totals[k] = t
	}
	out := make([]PopSpan, 0, len(totals))
	for _, t := range totals {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sample != out[j].Sample {
			return out[i].Sample < out[j].Sample
		}
		return out[i].Pop < out[j].Pop
	})
	return out
}

// PopProportion is one population's share of the squashed length in a
// segment set.
type PopProportion struct {
	Pop      Population
	Span     Pos
	Fraction float64
}

// Proportions aggregates squashed length per population across all samples
// and expresses each total as a fraction of the overall covered length,
// sorted by population. Empty input yields an empty slice.
func Proportions(segs []Segment) []PopProportion {
	totals := make(map[Population]Pos)
	var total Pos
	for _, seg := range segs {
		totals[seg.Pop] += seg.Span()
		total += seg.Span()
	}
	out := make([]PopProportion, 0, len(totals))
	for pop, span := range totals {
		out = append(out, PopProportion{Pop: pop, Span: span, Fraction: float64(span / total)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pop < out[j].Pop })
	return out
}

// Window is one of n equal bins along the sequence, with the squashed
// length each population contributes inside it, summed over all samples.
type Window struct {
	Left  Pos
	Right Pos
	Span  map[Population]Pos
}

// Windows bins segs into n equal windows over [0, seqLen), apportioning
// each segment's length to the windows it overlaps. Length outside
// [0, seqLen) is not counted. The result drives ancestry-composition plots
// along the sequence.
func Windows(segs []Segment, seqLen Pos, n int) []Window {
	if n <= 0 || seqLen <= 0 {
		return nil
	}
	wins := make([]Window, n)
	for i := range wins {
		wins[i].Left = seqLen * Pos(i) / Pos(n)
		wins[i].Right = seqLen * Pos(i+1) / Pos(n)
		wins[i].Span = make(map[Population]Pos)
	}
	for _, seg := range segs {
		i := int(float64(seg.Left) * float64(n) / float64(seqLen))
		// Rounding may place i one window late; backing up one is always
		// safe since windows left of the segment contribute nothing.
		if i > 0 {
			i--
		}
		if i < 0 {
			i = 0
		}
		for ; i < n && wins[i].Left < seg.Right; i++ {
			lo, hi := seg.Left, seg.Right
			if wins[i].Left > lo {
				lo = wins[i].Left
			}
			if wins[i].Right < hi {
				hi = wins[i].Right
			}
			if hi > lo {
				wins[i].Span[seg.Pop] += hi - lo
			}
		}
	}
	return wins
}
