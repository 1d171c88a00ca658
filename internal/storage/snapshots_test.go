package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/crux/internal/common"
	"github.com/Veraticus/crux/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testTable() *model.Table {
	day := func(s string) time.Time {
		d, _ := time.Parse("2006-01-02", s)
		return d
	}
	return model.NewTable([]model.Record{
		{Date: day("2025-01-07"), Weekday: model.Tuesday, Month: model.January, Week: 2, NewEntries: 5, SubscriptionVisits: 35, MealVisits: 10, TotalVisits: 50},
		{Date: day("2025-01-06"), Weekday: model.Monday, Month: model.January, Week: 2, NewEntries: 8, SubscriptionVisits: 40, MealVisits: 12, TotalVisits: 60},
		{Date: day("2025-01-11"), Weekday: model.WeekdayUnknown, Month: model.January, Week: 2, TotalVisits: 1},
	})
}

func TestSQLiteStorage_Migrate(t *testing.T) {
	store := createTestStorage(t)

	// Running again is a no-op.
	require.NoError(t, store.Migrate(context.Background()))

	var version int
	require.NoError(t, store.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestSQLiteStorage_InMemory(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.SaveSnapshot(ctx, "abc", "mem.csv", testTable()))

	got, err := store.GetSnapshot(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Len())
}

func TestSQLiteStorage_SnapshotRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	table := testTable()

	require.NoError(t, store.SaveSnapshot(ctx, "hash-1", "/data/attendance.csv", table))

	got, err := store.GetSnapshot(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, table.Records(), got.Records(), "order and fields must survive storage")
}

func TestSQLiteStorage_SaveReplaces(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, "hash-1", "a.csv", testTable()))
	smaller := model.NewTable(testTable().Records()[:1])
	require.NoError(t, store.SaveSnapshot(ctx, "hash-1", "a.csv", smaller))

	got, err := store.GetSnapshot(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())
}

func TestSQLiteStorage_ListDeletePurge(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, "hash-1", "a.csv", testTable()))
	require.NoError(t, store.SaveSnapshot(ctx, "hash-2", "b.csv", testTable()))

	infos, err := store.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	for _, info := range infos {
		assert.Equal(t, 3, info.RowCount)
		assert.False(t, info.LoadedAt.IsZero())
	}

	require.NoError(t, store.DeleteSnapshot(ctx, "hash-1"))
	assert.ErrorIs(t, store.DeleteSnapshot(ctx, "hash-1"), common.ErrSnapshotNotFound)

	_, err = store.GetSnapshot(ctx, "hash-1")
	assert.ErrorIs(t, err, common.ErrSnapshotNotFound)

	var orphans int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM snapshot_records WHERE hash = 'hash-1'`).Scan(&orphans))
	assert.Zero(t, orphans)

	n, err := store.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	infos, err = store.ListSnapshots(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestSQLiteStorage_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		wantIs error
		table  *model.Table
		name   string
		hash   string
	}{
		{name: "empty hash", hash: " ", table: testTable(), wantIs: ErrEmptyString},
		{name: "nil table", hash: "h", table: nil, wantIs: ErrNilParameter},
		{
			name:   "negative count",
			hash:   "h",
			table:  model.NewTable([]model.Record{{Date: time.Now(), Month: model.May, TotalVisits: -1}}),
			wantIs: ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.SaveSnapshot(ctx, tt.hash, "x.csv", tt.table)
			assert.ErrorIs(t, err, tt.wantIs)
		})
	}

	_, err := NewSQLiteStorage("")
	assert.ErrorIs(t, err, ErrEmptyString)
}
