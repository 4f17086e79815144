package analysis

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maastricht-university/oralargs/chunking"
	"github.com/maastricht-university/oralargs/logging"
	"github.com/maastricht-university/oralargs/reference"
	"github.com/maastricht-university/oralargs/transcript"
)

func rec(caseID string, year int, first, justice string, advIdeo, jusIdeo reference.Ideology) chunking.Record {
	return chunking.Record{
		CaseID:                    caseID,
		CaseYear:                  year,
		JusticeName:               justice,
		AdvocateName:              "Jane Smith",
		AdvocateGender:            reference.Female,
		UttIDFirst:                first,
		AdvocateIdeology:          advIdeo,
		JusticeIdeology:           jusIdeo,
		NumToksAdv:                200,
		NumToksJustice:            100,
		NumAdvUttsInterrupted:     3,
		NumJusticeUttsInterrupted: 1,
	}
}

func writeChunks(t *testing.T, dir, name string, recs ...chunking.Record) {
	t.Helper()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, r := range recs {
		require.NoError(t, enc.Encode(r))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644))
}

func TestLoadChunks(t *testing.T) {
	dir := t.TempDir()
	writeChunks(t, dir, "2018_a.jsonl", rec("2018_a", 2018, "1__0_005", "Elena Kagan", reference.Liberal, reference.Liberal))
	writeChunks(t, dir, "2019_b.jsonl",
		rec("2019_b", 2019, "2__0_001", "Elena Kagan", reference.Liberal, reference.Liberal),
		rec("2019_b", 2019, "2__0_009", "Elena Kagan", reference.Liberal, reference.Liberal),
		rec("2019_b", 2019, "2__1_000", "Elena Kagan", reference.Liberal, reference.Liberal),
	)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	got, st, err := LoadChunks(dir, SelectOptions{StartYear: 2019, ExcludeAdvFirstUtt: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2__0_009", got[0].UttIDFirst)
	assert.Equal(t, 1, st.BeforeStart)
	assert.Equal(t, 2, st.AdvFirstUtt)
	assert.Equal(t, 2, st.FilesReadFrom)

	got, _, err = LoadChunks(dir, SelectOptions{StartYear: 2019})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestLoadChunks_BadJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.jsonl"), []byte("{\n"), 0o644))
	_, _, err := LoadChunks(dir, SelectOptions{})
	assert.ErrorContains(t, err, "x.jsonl:1")
}

func TestSelect_Duplicate(t *testing.T) {
	r := rec("2019_b", 2019, "2__0_009", "Elena Kagan", reference.Liberal, reference.Liberal)
	_, _, err := Select([]chunking.Record{r, r}, SelectOptions{})
	assert.ErrorIs(t, err, transcript.ErrDataIntegrity)
}

func TestJoinFilter(t *testing.T) {
	var records []chunking.Record
	// Kagan: three unique chunks, one with an unknown advocate ideology
	for i := 0; i < 3; i++ {
		records = append(records, rec("2019_a", 2019, fmt.Sprintf("1__0_%03d", 10+i), "Elena Kagan", reference.Conservative, reference.Liberal))
	}
	records = append(records, rec("2019_a", 2019, "1__0_020", "Elena Kagan", reference.UnknownIdeology, reference.Liberal))
	// Alito: a single chunk
	records = append(records, rec("2019_a", 2019, "1__0_030", "Samuel A. Alito Jr.", reference.Conservative, reference.Conservative))
	// female-issue chunk for Kagan
	fem := rec("2019_c", 2019, "3__0_010", "Elena Kagan", reference.Liberal, reference.Liberal)
	fem.FemaleIssue = 1
	records = append(records, fem)
	// advocate whose gender could not be attributed
	noGender := rec("2019_d", 2019, "4__0_010", "Elena Kagan", reference.Liberal, reference.Liberal)
	noGender.AdvocateGender = reference.UnknownGender
	records = append(records, noGender)

	genders := reference.JusticeGender()
	rows, st := JoinFilter(records, genders, FilterOptions{MinNumChunksPerJust: 2}, logging.Discard())

	assert.Equal(t, 7, st.Input)
	assert.Equal(t, 5, st.KnownIdeology)
	assert.Equal(t, 1, st.UnknownAdvocates)
	assert.Equal(t, 1, st.UnknownGender)
	assert.Equal(t, []string{"Elena Kagan"}, st.ValidJustices)
	assert.Equal(t, 4, st.AfterJusticeCut)
	assert.Equal(t, 1, st.FemaleIssueDrops)
	require.Len(t, rows, 3)

	r := rows[0]
	assert.Equal(t, reference.Female, r.JusticeGender)
	assert.Equal(t, 0, r.IdeologyMatches)
	assert.Equal(t, "F-conservative", r.AdvIdeologyGender)
	assert.InDelta(t, 15.0, r.AdvInterruptionRate, 1e-9)
	assert.InDelta(t, 10.0, r.JusticeInterruptionRate, 1e-9)

	rows, _ = JoinFilter(records, genders, FilterOptions{MinNumChunksPerJust: 0, IncludeFemIssue: true}, logging.Discard())
	assert.Len(t, rows, 5)
	assert.Equal(t, 1, rows[3].IdeologyMatches)
	for _, r := range rows {
		assert.NotEqual(t, "4__0_010", r.UttIDFirst)
		assert.NotContains(t, r.AdvIdeologyGender, string(reference.UnknownGender)+"-")
	}
}

func TestJoinFilter_UnknownJusticeGender(t *testing.T) {
	l, err := logging.New("warn", "text", &bytes.Buffer{})
	require.NoError(t, err)
	records := []chunking.Record{rec("2019_a", 2019, "1__0_010", "Nobody", reference.Liberal, reference.Liberal)}
	rows, _ := JoinFilter(records, map[string]reference.Gender{}, FilterOptions{}, logrus.FieldLogger(l))
	require.Len(t, rows, 1)
	assert.Equal(t, reference.UnknownGender, rows[0].JusticeGender)
}

func TestPerThousand(t *testing.T) {
	assert.Zero(t, perThousand(3, 0))
	assert.InDelta(t, 2.5, perThousand(1, 400), 1e-9)
}

func TestSaveCSV(t *testing.T) {
	records := []chunking.Record{rec("2019_a", 2019, "1__0_010", "Elena Kagan", reference.Liberal, reference.Liberal)}
	rows, _ := JoinFilter(records, reference.JusticeGender(), FilterOptions{}, logging.Discard())

	path := filepath.Join(t.TempDir(), "out", "final_df.csv")
	require.NoError(t, SaveCSV(path, rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	lines, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, Header, lines[0])
	require.Len(t, lines[1], len(Header))
	assert.Equal(t, "2019_a", lines[1][0])
	assert.Equal(t, "15", lines[1][20])
	assert.Equal(t, "F-liberal", lines[1][len(Header)-1])
}
