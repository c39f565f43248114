package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	id, err := s.SaveOrUpdateRecord(ctx, "campaigns", "", map[string]any{
		"name":  "spring",
		"spend": float64(120),
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	records, err := s.QueryRecords(ctx, "campaigns", nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID)
	assert.Equal(t, "spring", records[0].Fields["name"])
	assert.Equal(t, float64(120), records[0].Fields["spend"])
	assert.False(t, records[0].UpdatedAt.IsZero())
}

func TestSQLiteStoreUpsert(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := s.SaveOrUpdateRecord(ctx, "runs", "r1", map[string]any{"phase": "running"})
	require.NoError(t, err)
	_, err = s.SaveOrUpdateRecord(ctx, "runs", "r1", map[string]any{"phase": "succeeded"})
	require.NoError(t, err)

	records, err := s.QueryRecords(ctx, "runs", nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "succeeded", records[0].Fields["phase"])
}

func TestSQLiteStoreBatchAndFilter(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	ids, err := s.SaveRecords(ctx, "leads", []RecordInput{
		{ID: "a", Fields: map[string]any{"qualified": true}},
		{ID: "b", Fields: map[string]any{"qualified": false}},
		{ID: "c", Fields: map[string]any{"qualified": true}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	records, err := s.QueryRecords(ctx, "leads", map[string]any{"qualified": true})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "c", records[1].ID)
}

func TestSQLiteStoreFilterOnArrayField(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := s.SaveRecords(ctx, "leads", []RecordInput{
		{ID: "a", Fields: map[string]any{"tags": []any{"dental", "local"}}},
		{ID: "b", Fields: map[string]any{"tags": []any{"fitness"}}},
	})
	require.NoError(t, err)

	records, err := s.QueryRecords(ctx, "leads", map[string]any{"tags": []any{"dental", "local"}})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].ID)
}

func TestSQLiteStoreCollectionsAreIsolated(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := s.SaveOrUpdateRecord(ctx, "campaigns", "x", map[string]any{"n": float64(1)})
	require.NoError(t, err)

	records, err := s.QueryRecords(ctx, "leads", nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSQLiteStoreClosed(t *testing.T) {
	s := newTestSQLiteStore(t)
	require.NoError(t, s.Close())

	_, err := s.SaveOrUpdateRecord(context.Background(), "c", "x", map[string]any{})
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = s.QueryRecords(context.Background(), "c", nil)
	assert.ErrorIs(t, err, ErrStoreClosed)
}
