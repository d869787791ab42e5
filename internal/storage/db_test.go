package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/focusflow/focusflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// No driver import in this file on purpose: opening the store must work
// with nothing but the storage package's own imports.
func TestOpen_DriverRegisteredByPackageImport(t *testing.T) {
	assert.Contains(t, sql.Drivers(), "sqlite")

	repos, err := Open(context.Background(), filepath.Join(t.TempDir(), "focusflow.db"))
	require.NoError(t, err)
	require.NoError(t, repos.Close())
}

func TestOpen_CreatesSchemaAndRepositories(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "focusflow.db")

	repos, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	// every collection is usable right after first open
	require.NoError(t, repos.Tasks.Save(ctx, "a@b.com", &models.Task{ID: "1", Title: "Buy milk"}))
	require.NoError(t, repos.Vault.Save(ctx, "a@b.com", &models.VaultItem{ID: "v1", Name: "a.jpg"}))
	require.NoError(t, repos.Users.Save(ctx, &models.User{Email: "a@b.com", Name: "Alice"}))
	require.NoError(t, repos.Settings.Set(ctx, "theme", "dark"))

	got, err := repos.Tasks.GetAll(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestOpen_SecondOpenReusesSchema(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "focusflow.db")

	repos, err := Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, repos.Tasks.Save(ctx, "a@b.com", &models.Task{ID: "1", Title: "Buy milk"}))
	require.NoError(t, repos.Close())

	// migrations must not fail or wipe data on re-open
	repos2, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos2.Close() })

	got, err := repos2.Tasks.GetAll(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
