package settings

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/todovault/todovault/internal/common"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:settingsrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS settings (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM settings`)
	require.NoError(t, err)
	return db
}

func TestSQLiteRepository_SetGet(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyLanguage, []byte("en")))

	got, err := repo.Get(ctx, KeyLanguage)
	require.NoError(t, err)
	require.Equal(t, []byte("en"), got)

	// upsert overwrites
	require.NoError(t, repo.Set(ctx, KeyLanguage, []byte("pt")))
	got, err = repo.Get(ctx, KeyLanguage)
	require.NoError(t, err)
	require.Equal(t, []byte("pt"), got)
}

func TestSQLiteRepository_GetMissing(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	_, err := repo.Get(context.Background(), "absent")
	require.True(t, errors.Is(err, common.ErrNotFound))
}

func TestSQLiteRepository_DeleteAndClear(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyCurrentUser, []byte(`{"id":"u-1"}`)))
	require.NoError(t, repo.Set(ctx, KeyLanguage, []byte("en")))

	require.NoError(t, repo.Delete(ctx, KeyCurrentUser))
	_, err := repo.Get(ctx, KeyCurrentUser)
	require.True(t, errors.Is(err, common.ErrNotFound))

	// deleting a missing key is a no-op
	require.NoError(t, repo.Delete(ctx, KeyCurrentUser))

	require.NoError(t, repo.Clear(ctx))
	_, err = repo.Get(ctx, KeyLanguage)
	require.True(t, errors.Is(err, common.ErrNotFound))
}
