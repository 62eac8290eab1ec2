package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JayR61/congregation-connect/pkg/config"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Read(ctx, "church_programmes")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Write(ctx, "church_programmes", []byte(`[{"id":"p-1"}]`)))
	raw, ok, err := store.Read(ctx, "church_programmes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"p-1"}]`, string(raw))

	require.NoError(t, store.Write(ctx, "church_programmes", []byte(`[]`)))
	raw, _, err = store.Read(ctx, "church_programmes")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	require.NoError(t, store.Delete(ctx, "church_programmes"))
	_, ok, err = store.Read(ctx, "church_programmes")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	exerciseStore(t, store)

	require.NoError(t, store.Close())
	_, _, err := store.Read(context.Background(), "x")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMemoryStoreCopiesPayloads(t *testing.T) {
	store := NewMemoryStore()
	payload := []byte(`"abc"`)
	require.NoError(t, store.Write(context.Background(), "k", payload))
	payload[1] = 'z'

	raw, _, err := store.Read(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(raw))
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	exerciseStore(t, store)

	require.NoError(t, store.Write(context.Background(), "programme_tags", []byte(`[]`)))
	_, err = os.Stat(filepath.Join(dir, "programme_tags.json"))
	require.NoError(t, err)
}

func TestFileStoreRejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	err = store.Write(context.Background(), "../escape", []byte(`1`))
	require.Error(t, err)
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer store.Close()
	exerciseStore(t, store)
}

func TestPrefixedStore(t *testing.T) {
	inner := NewMemoryStore()
	store := WithPrefix(inner, "tenant-a:")
	require.NoError(t, store.Write(context.Background(), "programme_kpis", []byte(`[]`)))

	_, ok, err := inner.Read(context.Background(), "tenant-a:programme_kpis")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Same(t, inner, WithPrefix(inner, ""))
}

func TestRedisStoreWithoutClient(t *testing.T) {
	store := NewRedisStore(nil)
	_, _, err := store.Read(context.Background(), "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, store.Write(context.Background(), "k", nil), ErrClosed)
	assert.NoError(t, store.Close())
}

func newSQLStoreMock(t *testing.T) (*SQLStore, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return NewSQLStore(sqlxDB), mock, func() {
		sqlxDB.Close()
	}
}

func TestSQLStoreReadPostgres(t *testing.T) {
	store, mock, cleanup := newSQLStoreMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT value FROM kv_entries WHERE key = \$1`).
		WithArgs("programme_reminders").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[{"id":"rem-1"}]`))

	raw, ok, err := store.Read(context.Background(), "programme_reminders")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"rem-1"}]`, string(raw))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreReadMissing(t *testing.T) {
	store, mock, cleanup := newSQLStoreMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT value FROM kv_entries`).
		WithArgs("programme_kpis").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, ok, err := store.Read(context.Background(), "programme_kpis")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLStoreWriteUpserts(t *testing.T) {
	store, mock, cleanup := newSQLStoreMock(t)
	defer cleanup()

	mock.ExpectExec(`INSERT INTO kv_entries \(key, value, updated_at\) VALUES \(\$1, \$2, \$3\)`).
		WithArgs("programme_tags", `[]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Write(context.Background(), "programme_tags", []byte(`[]`)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{Store: config.StoreConfig{Driver: "etcd"}})
	require.Error(t, err)
}

func TestOpenMemoryWithPrefix(t *testing.T) {
	store, err := Open(&config.Config{Store: config.StoreConfig{Driver: config.StoreDriverMemory, KeyPrefix: "dev:"}})
	require.NoError(t, err)
	_, isPrefixed := store.(*Prefixed)
	assert.True(t, isPrefixed)
}
