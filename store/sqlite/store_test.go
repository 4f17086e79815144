package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maastricht-university/oralargs/chunking"
	"github.com/maastricht-university/oralargs/reference"
	"github.com/maastricht-university/oralargs/transcript"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "chunks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, s.Close()) })
	return s
}

func record(caseID, first string) chunking.Record {
	return chunking.Record{
		CaseID:          caseID,
		CaseYear:        2019,
		JusticeName:     "Elena Kagan",
		AdvocateName:    "Jane Smith",
		UttIDFirst:      first,
		UttIDLast:       first + "9",
		AdvocateGender:  reference.Female,
		JusticeIdeology: reference.Liberal,
		NumUtts:         4,
	}
}

func TestSaveCaseAndAll(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	require.NoError(t, s.SaveCase(ctx, "2019_b", []chunking.Record{record("2019_b", "2__0_001")}))
	require.NoError(t, s.SaveCase(ctx, "2019_a", []chunking.Record{
		record("2019_a", "1__0_001"),
		record("2019_a", "1__0_010"),
	}))

	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "1__0_001", all[0].UttIDFirst)
	assert.Equal(t, "1__0_010", all[1].UttIDFirst)
	assert.Equal(t, "2019_b", all[2].CaseID)
	assert.Equal(t, record("2019_a", "1__0_001"), all[0])
}

func TestSaveCase_Replaces(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	require.NoError(t, s.SaveCase(ctx, "c", []chunking.Record{record("c", "1__0_001"), record("c", "1__0_005")}))
	require.NoError(t, s.SaveCase(ctx, "c", []chunking.Record{record("c", "1__0_005")}))

	got, err := s.Case(ctx, "c")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1__0_005", got[0].UttIDFirst)
}

func TestSaveCase_Duplicate(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	require.NoError(t, s.SaveCase(ctx, "c", []chunking.Record{record("c", "1__0_001")}))

	err := s.SaveCase(ctx, "c", []chunking.Record{record("c", "1__0_002"), record("c", "1__0_002")})
	assert.ErrorIs(t, err, transcript.ErrDataIntegrity)

	got, err := s.Case(ctx, "c")
	require.NoError(t, err)
	require.Len(t, got, 1, "failed save leaves the previous rows")
	assert.Equal(t, "1__0_001", got[0].UttIDFirst)
}

func TestSaveCase_WrongCase(t *testing.T) {
	s := setupTestStore(t)
	err := s.SaveCase(context.Background(), "c", []chunking.Record{record("d", "1__0_001")})
	assert.ErrorIs(t, err, transcript.ErrDataIntegrity)
}

func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "chunks.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveCase(ctx, "c", []chunking.Record{record("c", "1__0_001")}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, path, s.Path())
	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRuns(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, s.SaveRun(ctx, Run{ID: "a", StartedAt: start, FinishedAt: start.Add(time.Minute), YearStart: 2019, YearEnd: 2020, Cases: 3, Chunks: 7}))
	require.NoError(t, s.SaveRun(ctx, Run{ID: "b", StartedAt: start.Add(time.Hour), FinishedAt: start.Add(2 * time.Hour), YearStart: 2019, YearEnd: 2020}))

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "b", runs[0].ID)
	assert.Equal(t, 7, runs[1].Chunks)
	assert.True(t, start.Equal(runs[1].StartedAt))
}
