// Package vault persists private media items in the local store, partitioned
// by account.
package vault

import (
	"context"

	"github.com/focusflow/focusflow/internal/models"
)

// Repository describes the operations of the vault collection.
// Same contract as the tasks collection: unique keys per account partition,
// idempotent delete, empty slice for an empty partition.
type Repository interface {
	Save(ctx context.Context, account string, item *models.VaultItem) error
	SaveAll(ctx context.Context, account string, items []models.VaultItem) error
	GetAll(ctx context.Context, account string) ([]models.VaultItem, error)
	Delete(ctx context.Context, account, id string) error
}
