package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *HistoryStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordRun_FillsIDAndTime(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	r, err := s.RecordRun(ctx, Run{Program: "Primes", Start: 1, End: 120, Mode: "trial", Status: "pass", Digest: "abc", Duration: 1500 * time.Microsecond})
	require.NoError(t, err)
	assert.Len(t, r.ID, 36)
	assert.False(t, r.RecordedAt.IsZero())

	runs, err := s.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, r.ID, runs[0].ID)
	assert.Equal(t, 1500*time.Microsecond, runs[0].Duration)
	assert.Equal(t, 120, runs[0].End)
	assert.Empty(t, runs[0].Detail)
}

func TestRecentRuns_NewestFirstAndLimited(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, prog := range []string{"Test", "Primes", "Test"} {
		_, err := s.RecordRun(ctx, Run{Program: prog, Status: "pass", RecordedAt: base.Add(time.Duration(i) * time.Minute)})
		require.NoError(t, err)
	}

	runs, err := s.RecentRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "Test", runs[0].Program)
	assert.Equal(t, "Primes", runs[1].Program)
	assert.True(t, runs[0].RecordedAt.After(runs[1].RecordedAt))

	tests, err := s.RunsForProgram(ctx, "test", 10)
	require.NoError(t, err)
	assert.Len(t, tests, 2)
}

func TestRecordRun_DuplicateID(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	_, err := s.RecordRun(ctx, Run{ID: "fixed", Program: "Test", Status: "pass"})
	require.NoError(t, err)
	_, err = s.RecordRun(ctx, Run{ID: "fixed", Program: "Test", Status: "pass"})
	assert.Error(t, err)
}

func TestOpen_Memory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, ":memory:", s.Path())

	runs, err := s.RecentRuns(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
