package tracttsv_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/ancestry/encoding/tracttsv"
	"github.com/grailbio/ancestry/tract"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRecords(t *testing.T) {
	in := `#SAMPLE	LEFT	RIGHT	POP
0	0	100	AFR

1	0	50.5	EUR
0	100	250	AFR
# trailing comment
`
	recs, err := tracttsv.ReadRecords(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []tract.Record{
		{Sample: 0, Left: 0, Right: 100, Pop: "AFR"},
		{Sample: 1, Left: 0, Right: 50.5, Pop: "EUR"},
		{Sample: 0, Left: 100, Right: 250, Pop: "AFR"},
	}, recs)
}

func TestReadRecordsSpaceSeparated(t *testing.T) {
	recs, err := tracttsv.ReadRecords(strings.NewReader("2   1e3   2.5e3   YRI\n"))
	require.NoError(t, err)
	assert.Equal(t, []tract.Record{{Sample: 2, Left: 1000, Right: 2500, Pop: "YRI"}}, recs)
}

func TestReadRecordsExtraColumns(t *testing.T) {
	recs, err := tracttsv.ReadRecords(strings.NewReader("0\t1\t2\tP\tnote\n"))
	require.NoError(t, err)
	assert.Equal(t, []tract.Record{{Sample: 0, Left: 1, Right: 2, Pop: "P"}}, recs)
}

func TestReadRecordsEmpty(t *testing.T) {
	recs, err := tracttsv.ReadRecords(strings.NewReader(""))
	require.NoError(t, err)
	assert.Len(t, recs, 0)
}

func TestReadRecordsErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short line", "0\t1\t2\n", "fields"},
		{"short second line", "0\t1\t2\tP\n0\t3\n", "fields"},
		{"bad sample", "x\t1\t2\tP\n", "bad sample ID"},
		{"negative sample", "-4\t1\t2\tP\n", "out of range"},
		{"bad left", "0\tx\t2\tP\n", "bad left"},
		{"bad right", "0\t1\tx\tP\n", "bad right"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tracttsv.ReadRecords(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	segs := []tract.Segment{
		{Sample: 0, Left: 0, Right: 1250.5, Pop: "AFR"},
		{Sample: 0, Left: 1250.5, Right: 9e6, Pop: "EUR"},
		{Sample: 7, Left: 3, Right: 4, Pop: "AMR"},
	}
	var buf bytes.Buffer
	require.NoError(t, tracttsv.WriteSegments(&buf, segs))
	assert.True(t, strings.HasPrefix(buf.String(), tracttsv.Header+"\n"))

	recs, err := tracttsv.ReadRecords(&buf)
	require.NoError(t, err)
	assert.Equal(t, tract.Records(segs), recs)
}

func TestWriteRecords(t *testing.T) {
	recs := []tract.Record{{Sample: 1, Left: 0.25, Right: 10, Pop: "EAS"}}
	var buf bytes.Buffer
	require.NoError(t, tracttsv.WriteRecords(&buf, recs))
	assert.Equal(t, tracttsv.Header+"\n1\t0.25\t10\tEAS\n", buf.String())
}

func TestPathRoundTrip(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	segs := []tract.Segment{
		{Sample: 0, Left: 0, Right: 100, Pop: "AFR"},
		{Sample: 1, Left: 50, Right: 60.5, Pop: "EUR"},
	}
	for _, name := range []string{"tracts.tsv", "tracts.tsv.gz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(tmpDir, name)
			require.NoError(t, tracttsv.WriteSegmentsToPath(path, segs))
			recs, err := tracttsv.ReadRecordsFromPath(path)
			require.NoError(t, err)
			assert.Equal(t, tract.Records(segs), recs)
		})
	}
}
