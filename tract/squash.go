package tract

import (
	"runtime"
	"sort"

	"github.com/grailbio/base/traverse"
	"github.com/pkg/errors"
)

// ErrBadInterval is the cause of every error returned by Squash and
// SquashParallel: a record with an empty or inverted interval, a negative
// left coordinate, or two records for the same sample that overlap. Such
// input signals a bug in the producer, so it is reported rather than
// repaired. Test for it with errors.Cause.
var ErrBadInterval = errors.New("tract: bad ancestry interval")

// Squash canonicalizes raw ancestry records into maximal per-sample tracts.
//
// Records are grouped by sample and each group is stable-sorted by left
// endpoint, so records with equal left endpoints keep their input order. A
// single left-to-right pass then merges runs of back-to-back records: a
// record extends the open segment exactly when its left endpoint equals the
// open segment's right endpoint and the populations match. A record that
// leaves a gap, or that switches population, starts a new segment.
//
// Output segments are grouped by sample in increasing SampleID order;
// within a sample they have strictly increasing left endpoints, are
// pairwise disjoint, and are maximal (no two consecutive segments of equal
// population touch). Per sample, the covered intervals are exactly those
// of the input.
//
// Squash never modifies recs, and permuting recs does not change the
// result. If any record is malformed or overlaps another record of the
// same sample, Squash returns a nil slice and an error whose cause is
// ErrBadInterval. Empty input yields empty output.
func Squash(recs []Record) ([]Segment, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	groups, samples := groupBySample(recs)
	segs := make([]Segment, 0, len(samples))
	for _, sample := range samples {
		var err error
		if segs, err = appendSquashed(segs, sample, groups[sample]); err != nil {
			return nil, err
		}
	}
	return segs, nil
}

// SquashParallel is Squash with sample groups squashed concurrently.
// Groups are independent, so the result is identical to Squash(recs).
// parallelism bounds the number of concurrent jobs; values <= 0 mean
// runtime.NumCPU().
func SquashParallel(recs []Record, parallelism int) ([]Segment, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	groups, samples := groupBySample(recs)
	if parallelism > len(samples) {
		parallelism = len(samples)
	}
	jobSegs := make([][]Segment, parallelism)
	err := traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * len(samples)) / parallelism
		endIdx := ((jobIdx + 1) * len(samples)) / parallelism
		var segs []Segment
		for _, sample := range samples[startIdx:endIdx] {
			var err error
			if segs, err = appendSquashed(segs, sample, groups[sample]); err != nil {
				return err
			}
		}
		jobSegs[jobIdx] = segs
		return nil
	})
	if err != nil {
		return nil, err
	}
	var segs []Segment
	for _, js := range jobSegs {
		segs = append(segs, js...)
	}
	return segs, nil
}

// groupBySample splits recs into per-sample groups and returns the sample
// IDs in increasing order. The groups are fresh slices, so sorting them
// later leaves recs untouched.
func groupBySample(recs []Record) (map[SampleID][]Record, []SampleID) {
	groups := make(map[SampleID][]Record)
	samples := make([]SampleID, 0, 16)
	for _, r := range recs {
		if _, found := groups[r.Sample]; !found {
			samples = append(samples, r.Sample)
		}
		groups[r.Sample] = append(groups[r.Sample], r)
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return groups, samples
}

// appendSquashed validates and merges one sample's records, appending the
// resulting segments to segs. group must be non-empty and owned by the
// caller; it is sorted in place.
func appendSquashed(segs []Segment, sample SampleID, group []Record) ([]Segment, error) {
	sort.SliceStable(group, func(i, j int) bool { return group[i].Left < group[j].Left })
	var open Segment
	for i, r := range group {
		if r.Left < 0 {
			return nil, errors.Wrapf(ErrBadInterval, "sample %d: negative left coordinate %g", sample, r.Left)
		}
		if r.Right <= r.Left {
			return nil, errors.Wrapf(ErrBadInterval, "sample %d: empty or inverted interval [%g, %g)", sample, r.Left, r.Right)
		}
		if i == 0 {
			open = Segment{Sample: sample, Left: r.Left, Right: r.Right, Pop: r.Pop}
			continue
		}
		switch {
		case r.Left < open.Right:
			return nil, errors.Wrapf(ErrBadInterval, "sample %d: [%g, %g) overlaps [%g, %g)",
				sample, r.Left, r.Right, open.Left, open.Right)
		case r.Left == open.Right && r.Pop == open.Pop:
			open.Right = r.Right
		default:
			segs = append(segs, open)
			open = Segment{Sample: sample, Left: r.Left, Right: r.Right, Pop: r.Pop}
		}
	}
	return append(segs, open), nil
}
