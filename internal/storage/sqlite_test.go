package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lexazver/teamboard/internal/common"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteStore_GetAbsentKey(t *testing.T) {
	st := NewSQLiteStore(setupDB(t, "kvget"))

	_, err := st.Get(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStore_SetGetOverwrite(t *testing.T) {
	ctx := context.Background()
	st := NewSQLiteStore(setupDB(t, "kvset"))

	require.NoError(t, st.Set(ctx, "k", []byte("v1")))

	got, err := st.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v1"), got)

	require.NoError(t, st.Set(ctx, "k", []byte("v2")))

	got, err = st.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), got)
}

func TestSQLiteStore_Delete(t *testing.T) {
	ctx := context.Background()
	st := NewSQLiteStore(setupDB(t, "kvdel"))

	require.NoError(t, st.Set(ctx, "k", []byte("v")))
	require.NoError(t, st.Delete(ctx, "k"))

	_, err := st.Get(ctx, "k")
	require.ErrorIs(t, err, common.ErrNotFound)

	// deleting an absent key is not an error
	require.NoError(t, st.Delete(ctx, "k"))
}

func TestOpen_AppliesMigrations(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "store.db")

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st := NewSQLiteStore(db)
	require.NoError(t, st.Set(ctx, "k", []byte("v")))

	got, err := st.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), got)
}
