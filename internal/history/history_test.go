package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())
}

func TestRecordAndList(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	run := Run{
		BatchToken: "batch-1",
		Name:       "test1",
		Sites:      300,
		Taxa:       5,
		Partitions: 3,
		Patterns:   42,
		Sequences:  5,
		TreeCount:  1,
		Status:     StatusOK,
		ResultsDir: "test1_results",
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
	}
	require.NoError(t, st.Record(ctx, run))

	runs, err := st.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.NotEmpty(t, got.ID, "missing id is filled in")
	assert.Equal(t, "test1", got.Name)
	assert.Equal(t, 42, got.Patterns)
	assert.Equal(t, StatusOK, got.Status)
	assert.True(t, got.FinishedAt.Equal(run.FinishedAt))
}

func TestList_MostRecentFirstAndLimited(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, name := range []string{"a", "b", "c"} {
		require.NoError(t, st.Record(ctx, Run{
			BatchToken: "batch-1",
			Name:       name,
			Sites:      100,
			Taxa:       4,
			Partitions: 2,
			Status:     StatusOK,
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + time.Second),
		}))
	}

	runs, err := st.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].Name)
	assert.Equal(t, "b", runs[1].Name)
}

func TestRecord_FailedRunKeepsError(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, st.Record(ctx, Run{
		BatchToken: "batch-2",
		Name:       "broken",
		Sites:      100,
		Taxa:       4,
		Partitions: 2,
		Status:     StatusFailed,
		Error:      "open alignment: no such file",
		StartedAt:  now,
		FinishedAt: now,
	}))

	runs, err := st.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, StatusFailed, runs[0].Status)
	assert.Contains(t, runs[0].Error, "open alignment")
}

func TestList_Empty(t *testing.T) {
	st := openTestStore(t)

	runs, err := st.List(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}
