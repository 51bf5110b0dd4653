package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestNewSQLiteStorage_Validation(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	require.ErrorIs(t, err, ErrEmptyString)
}

func TestSQLiteStorage_Migrate(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// Running again is a no-op.
	require.NoError(t, store.Migrate(ctx))

	var version int
	require.NoError(t, store.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestSQLiteStorage_KV(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "k", "first"))
	require.NoError(t, store.Put(ctx, "k", "second"))

	v, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "second", v)

	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Delete(ctx, "k"))

	_, err = store.Get(ctx, "k")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStorage_KVValidation(t *testing.T) {
	store := createTestStorage(t)

	//nolint:staticcheck // nil context is what is being tested
	_, err := store.Get(nil, "k")
	require.ErrorIs(t, err, ErrNilContext)

	require.ErrorIs(t, store.Put(context.Background(), "", "v"), ErrEmptyString)
	require.ErrorIs(t, store.Delete(context.Background(), " "), ErrEmptyString)
}

func TestSQLiteStorage_InMemory(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Put(ctx, "a", "b"))

	v, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "b", v)
}

func TestSQLiteStorage_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "payments.db")
	ctx := context.Background()

	first, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, first.Migrate(ctx))
	require.NoError(t, first.Put(ctx, DefaultSnapshotKey, `{"sheets":{}}`))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()
	require.NoError(t, second.Migrate(ctx))

	v, err := second.Get(ctx, DefaultSnapshotKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sheets":{}}`, v)
}
