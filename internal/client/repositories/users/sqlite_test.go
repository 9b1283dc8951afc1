package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/todovault/todovault/internal/client/models"
	"github.com/todovault/todovault/internal/common"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:usersrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS users (
  id            TEXT PRIMARY KEY,
  username      TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  profile_image TEXT NOT NULL DEFAULT '',
  recovery_code TEXT NOT NULL,
  color_hue     INTEGER NOT NULL,
  created_at    TIMESTAMP NOT NULL
);`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM users`)
	require.NoError(t, err)
	return db
}

func sampleUser(id, name string) *models.User {
	return &models.User{
		ID:           id,
		Username:     name,
		PasswordHash: "hash-" + name,
		RecoveryCode: "code-" + name,
		ColorHue:     120,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func TestSQLiteRepository_CreateAndGet(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	u := sampleUser("u-1", "alice")
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "u-1", got.ID)
	require.Equal(t, "hash-alice", got.PasswordHash)
	require.Equal(t, 120, got.ColorHue)

	byID, err := repo.GetByID(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)
}

func TestSQLiteRepository_GetUnknown(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := repo.GetByUsername(ctx, "ghost")
	require.True(t, errors.Is(err, common.ErrNotFound))

	_, err = repo.GetByID(ctx, "nope")
	require.True(t, errors.Is(err, common.ErrNotFound))
}

func TestSQLiteRepository_UsernameIsCaseSensitive(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleUser("u-1", "Alice")))

	_, err := repo.GetByUsername(ctx, "alice")
	require.True(t, errors.Is(err, common.ErrNotFound))
}

func TestSQLiteRepository_DuplicateUsername(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleUser("u-1", "alice")))
	require.Error(t, repo.Create(ctx, sampleUser("u-2", "alice")))
}

func TestSQLiteRepository_Update(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	u := sampleUser("u-1", "alice")
	require.NoError(t, repo.Create(ctx, u))

	u.Username = "alice2"
	u.PasswordHash = "newhash"
	u.ProfileImage = "data:image/png;base64,AAAA"
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.GetByID(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, "alice2", got.Username)
	require.Equal(t, "newhash", got.PasswordHash)
	require.Equal(t, "data:image/png;base64,AAAA", got.ProfileImage)

	require.True(t, errors.Is(repo.Update(ctx, sampleUser("missing", "x")), common.ErrNotFound))
}

func TestSQLiteRepository_DeleteAndList(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleUser("u-1", "alice")))
	require.NoError(t, repo.Create(ctx, sampleUser("u-2", "bob")))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, repo.Delete(ctx, "u-1"))
	require.True(t, errors.Is(repo.Delete(ctx, "u-1"), common.ErrNotFound))

	require.NoError(t, repo.DeleteAll(ctx))
	all, err = repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}
