package users

import (
	"context"
	"database/sql"
	"testing"

	"github.com/focusflow/focusflow/internal/common"
	"github.com/focusflow/focusflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE user (email TEXT PRIMARY KEY, data TEXT NOT NULL);`)
	require.NoError(t, err)
	return db
}

func TestSaveAndGet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	u := &models.User{Name: "Alice", Email: "a@b.com", Avatar: "https://example.com/a.png"}
	require.NoError(t, r.Save(ctx, u))

	got, err := r.Get(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, u, got)

	_, err = r.Get(ctx, "x@y.com")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSave_OverwriteByEmail(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, &models.User{Name: "Alice", Email: "a@b.com"}))
	require.NoError(t, r.Save(ctx, &models.User{Name: "Alice B.", Email: "a@b.com"}))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Alice B.", all[0].Name)
}
