package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/verdict/internal/compare"
	"github.com/roach88/verdict/internal/result"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "verdict.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func buildComparison(t *testing.T, suite string, actualStatus result.Status) *compare.Result {
	t.Helper()
	actual := result.NewSet(0, []*result.Test{result.NewTest("t1", actualStatus)})
	expected := result.NewSet(0, []*result.Test{result.NewTest("t1", result.StatusPassed)})
	r, err := compare.Build(actual, expected, suite)
	require.NoError(t, err)
	return r
}

func TestSaveGetComparison_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	r := buildComparison(t, "unit", result.StatusFailed)
	id, err := s.SaveComparison(ctx, r)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	loaded, err := s.GetComparison(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, r.Status(), loaded.Status())
	assert.Equal(t, "unit", loaded.Suite)
	require.Len(t, loaded.Entries(), 1)
	assert.Equal(t, compare.ReasonResultMismatch, loaded.Entries()[0].Reason)

	// The stored form is canonical, so the fingerprint survives the trip.
	want, err := r.Fingerprint()
	require.NoError(t, err)
	got, err := loaded.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetComparison_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetComparison(context.Background(), "no-such-run")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.SaveComparison(ctx, buildComparison(t, "a", result.StatusPassed))
	require.NoError(t, err)
	second, err := s.SaveComparison(ctx, buildComparison(t, "b", result.StatusFailed))
	require.NoError(t, err)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// uuidv7 ids order by creation within the same timestamp second.
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)
	assert.Equal(t, "b", runs[0].Suite)
	assert.Equal(t, "failed", runs[0].Status)
	assert.Equal(t, 1, runs[0].Tests)
	assert.Equal(t, 1, runs[0].Failed)
	assert.Equal(t, 1, runs[1].Passed)
	assert.NotEmpty(t, runs[0].Fingerprint)
	assert.False(t, runs[0].CreatedAt.IsZero())
}

func TestListRuns_Empty(t *testing.T) {
	s := openTestStore(t)
	runs, err := s.ListRuns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verdict.db")
	s1, err := Open(path)
	require.NoError(t, err)
	id, err := s1.SaveComparison(context.Background(), buildComparison(t, "x", result.StatusPassed))
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
	loaded, err := s2.GetComparison(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, loaded.IsPassing())
}
