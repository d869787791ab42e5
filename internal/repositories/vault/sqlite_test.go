package vault

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/focusflow/focusflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

const acc = "a@b.com"

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE vault (
  account TEXT NOT NULL,
  id      TEXT NOT NULL,
  data    BLOB NOT NULL,
  PRIMARY KEY (account, id)
);
`)
	require.NoError(t, err)

	return db
}

func sampleItem(id, name string) *models.VaultItem {
	return &models.VaultItem{
		ID:        id,
		Type:      models.MediaImage,
		Name:      name,
		Data:      []byte{0x89, 0x50, 0x4e, 0x47},
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestSave_RoundTripsPayload(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	item := sampleItem("v1", "cat.png")
	require.NoError(t, r.Save(ctx, acc, item))

	got, err := r.GetAll(ctx, acc)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, item.Data, got[0].Data)
	assert.Equal(t, models.MediaImage, got[0].Type)
}

func TestSave_OverwriteByKey(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, acc, sampleItem("v1", "cat.png")))
	renamed := sampleItem("v1", "dog.png")
	require.NoError(t, r.Save(ctx, acc, renamed))

	got, err := r.GetAll(ctx, acc)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "dog.png", got[0].Name)
}

func TestDelete_Idempotent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, acc, sampleItem("v1", "cat.png")))
	require.NoError(t, r.Delete(ctx, acc, "v1"))
	require.NoError(t, r.Delete(ctx, acc, "v1"))

	got, err := r.GetAll(ctx, acc)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveAll_Batch(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	batch := []models.VaultItem{*sampleItem("v1", "a.png"), *sampleItem("v2", "b.png")}
	require.NoError(t, r.SaveAll(ctx, acc, batch))

	got, err := r.GetAll(ctx, acc)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestAccountIsolation(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "x@example.com", sampleItem("v1", "secret.png")))

	got, err := r.GetAll(ctx, "y@example.com")
	require.NoError(t, err)
	assert.Empty(t, got)
}
