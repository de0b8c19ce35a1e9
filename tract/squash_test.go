package tract

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/pkg/errors"
)

func TestSquashExamples(t *testing.T) {
	tests := []struct {
		name string
		recs []Record
		want []Segment
	}{
		{
			name: "adjacent same population",
			recs: []Record{{0, 0, 10, "P"}, {0, 10, 20, "P"}},
			want: []Segment{{0, 0, 20, "P"}},
		},
		{
			name: "population boundary",
			recs: []Record{{0, 0, 10, "P1"}, {0, 10, 20, "P2"}},
			want: []Segment{{0, 0, 10, "P1"}, {0, 10, 20, "P2"}},
		},
		{
			name: "gap between same population",
			recs: []Record{{0, 0, 10, "P"}, {0, 15, 20, "P"}},
			want: []Segment{{0, 0, 10, "P"}, {0, 15, 20, "P"}},
		},
		{
			name: "samples merge independently",
			recs: []Record{{1, 10, 20, "Q"}, {0, 0, 10, "P"}, {1, 0, 10, "Q"}, {0, 10, 20, "P"}},
			want: []Segment{{0, 0, 20, "P"}, {1, 0, 20, "Q"}},
		},
		{
			name: "single record",
			recs: []Record{{3, 2.5, 7.25, "P"}},
			want: []Segment{{3, 2.5, 7.25, "P"}},
		},
		{
			name: "unsorted run merges",
			recs: []Record{{0, 20, 30, "P"}, {0, 0, 10, "P"}, {0, 10, 20, "P"}},
			want: []Segment{{0, 0, 30, "P"}},
		},
		{
			name: "fractional breakpoints",
			recs: []Record{{0, 0, 0.5, "P"}, {0, 0.5, 1.25, "P"}, {0, 1.25, 2, "Q"}},
			want: []Segment{{0, 0, 1.25, "P"}, {0, 1.25, 2, "Q"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, err := Squash(tt.recs)
			expect.NoError(t, err)
			expect.EQ(t, segs, tt.want)
		})
	}
}

func TestSquashEmpty(t *testing.T) {
	segs, err := Squash(nil)
	expect.NoError(t, err)
	expect.EQ(t, len(segs), 0)

	segs, err = Squash([]Record{})
	expect.NoError(t, err)
	expect.EQ(t, len(segs), 0)
}

func TestSquashBadInput(t *testing.T) {
	tests := []struct {
		name    string
		recs    []Record
		errText string
	}{
		{
			name:    "overlap",
			recs:    []Record{{0, 0, 10, "P"}, {0, 5, 15, "P"}},
			errText: "overlaps",
		},
		{
			name:    "overlap different populations",
			recs:    []Record{{0, 0, 10, "P"}, {0, 9, 20, "Q"}},
			errText: "overlaps",
		},
		{
			name:    "duplicate record",
			recs:    []Record{{0, 0, 10, "P"}, {0, 0, 10, "P"}},
			errText: "overlaps",
		},
		{
			name:    "contained record",
			recs:    []Record{{0, 0, 10, "P"}, {0, 2, 3, "P"}},
			errText: "overlaps",
		},
		{
			name:    "zero length",
			recs:    []Record{{0, 0, 10, "P"}, {0, 10, 10, "P"}},
			errText: "empty or inverted",
		},
		{
			name:    "inverted",
			recs:    []Record{{0, 10, 5, "P"}},
			errText: "empty or inverted",
		},
		{
			name:    "negative left",
			recs:    []Record{{0, -1, 5, "P"}},
			errText: "negative left",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, err := Squash(tt.recs)
			expect.True(t, segs == nil)
			expect.NotNil(t, err)
			expect.EQ(t, errors.Cause(err), ErrBadInterval)
			expect.True(t, strings.Contains(err.Error(), tt.errText))
		})
	}
}

// No partial output: a bad record in one sample fails the whole call even
// when other samples are fine.
func TestSquashNoPartialOutput(t *testing.T) {
	recs := []Record{
		{0, 0, 10, "P"},
		{0, 10, 20, "P"},
		{7, 5, 15, "Q"},
		{7, 0, 10, "Q"},
	}
	segs, err := Squash(recs)
	expect.True(t, segs == nil)
	expect.EQ(t, errors.Cause(err), ErrBadInterval)
}

func TestSquashDoesNotMutateInput(t *testing.T) {
	recs := []Record{
		{1, 10, 20, "Q"}, {0, 10, 20, "P"}, {1, 0, 10, "Q"}, {0, 0, 10, "P"},
	}
	orig := append([]Record(nil), recs...)
	_, err := Squash(recs)
	expect.NoError(t, err)
	expect.EQ(t, recs, orig)
}

func TestSquashIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	recs := makeRecords(r, 5, 40)
	segs, err := Squash(recs)
	expect.NoError(t, err)
	again, err := Squash(Records(segs))
	expect.NoError(t, err)
	expect.EQ(t, again, segs)
}

func TestSquashOrderIndependent(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	recs := makeRecords(r, 4, 30)
	want, err := Squash(recs)
	expect.NoError(t, err)
	for trial := 0; trial < 10; trial++ {
		shuffled := append([]Record(nil), recs...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		segs, err := Squash(shuffled)
		expect.NoError(t, err)
		expect.EQ(t, segs, want)
	}
}

func TestSquashProperties(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for trial := 0; trial < 20; trial++ {
		recs := makeRecords(r, 1+r.Intn(6), 1+r.Intn(50))
		segs, err := Squash(recs)
		expect.NoError(t, err)
		checkSquashed(t, recs, segs)
	}
}

func TestSquashParallelMatchesSquash(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	recs := makeRecords(r, 13, 25)
	want, err := Squash(recs)
	expect.NoError(t, err)
	for _, parallelism := range []int{0, 1, 2, 3, 16, 100} {
		segs, err := SquashParallel(recs, parallelism)
		expect.NoError(t, err)
		expect.EQ(t, segs, want)
	}
}

func TestSquashParallelError(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	recs := makeRecords(r, 8, 10)
	recs = append(recs, Record{Sample: 3, Left: 0, Right: 1e9, Pop: "X"})
	segs, err := SquashParallel(recs, 4)
	expect.True(t, segs == nil)
	expect.NotNil(t, err)
	expect.True(t, strings.Contains(err.Error(), "overlaps"))
}

func TestSquashParallelEmpty(t *testing.T) {
	segs, err := SquashParallel(nil, 4)
	expect.NoError(t, err)
	expect.EQ(t, len(segs), 0)
}

// makeRecords builds a valid record set: per sample, a left-to-right run of
// intervals with random lengths and populations, a gap now and then, then a
// global shuffle. Coordinates are quarter-unit so that span sums compare
// exactly in float64 no matter how records are grouped.
func makeRecords(r *rand.Rand, nSamples, recsPerSample int) []Record {
	pops := []Population{"AFR", "EUR", "EAS", "AMR"}
	var recs []Record
	for s := 0; s < nSamples; s++ {
		pos := Pos(0)
		for i := 0; i < recsPerSample; i++ {
			if r.Intn(5) == 0 {
				pos += Pos(r.Intn(1000)+1) / 4
			}
			end := pos + Pos(r.Intn(1000)+1)/4
			recs = append(recs, Record{
				Sample: SampleID(s),
				Left:   pos,
				Right:  end,
				Pop:    pops[r.Intn(len(pops))],
			})
			pos = end
		}
	}
	r.Shuffle(len(recs), func(i, j int) { recs[i], recs[j] = recs[j], recs[i] })
	return recs
}

type samplePop struct {
	sample SampleID
	pop    Population
}

func sumSpans(recs []Record) map[samplePop]Pos {
	out := map[samplePop]Pos{}
	for _, r := range recs {
		out[samplePop{r.Sample, r.Pop}] += r.Right - r.Left
	}
	return out
}

// checkSquashed verifies the output contract: sample groups in increasing
// order, strictly increasing disjoint intervals per sample, no mergeable
// neighbors, and per-(sample, population) length preserved.
func checkSquashed(t *testing.T, recs []Record, segs []Segment) {
	for i := 1; i < len(segs); i++ {
		prev, cur := segs[i-1], segs[i]
		if prev.Sample != cur.Sample {
			expect.True(t, prev.Sample < cur.Sample)
			continue
		}
		expect.True(t, prev.Left < cur.Left)
		expect.True(t, prev.Right <= cur.Left)
		if prev.Right == cur.Left {
			expect.True(t, prev.Pop != cur.Pop)
		}
	}
	expect.EQ(t, sumSpans(Records(segs)), sumSpans(recs))
}
