// Package tasks persists Task records in the local store, partitioned by
// account so two accounts on one device never see each other's data.
package tasks

import (
	"context"

	"github.com/focusflow/focusflow/internal/models"
)

// Repository describes the operations of the tasks collection.
// Records are keyed by (account, ID); keys are unique within the partition.
type Repository interface {
	// Save inserts a new task or overwrites the one with the same ID.
	// Idempotent.
	Save(ctx context.Context, account string, task *models.Task) error

	// SaveAll upserts a batch atomically where the backend supports it.
	SaveAll(ctx context.Context, account string, tasks []models.Task) error

	// GetAll returns every task of the account in unspecified order. An
	// empty partition yields an empty slice, not an error.
	GetAll(ctx context.Context, account string) ([]models.Task, error)

	// GetByID returns the task with the given ID, or common.ErrNotFound.
	GetByID(ctx context.Context, account, id string) (*models.Task, error)

	// Delete removes the task with the given ID. Deleting an absent key
	// is a no-op, not an error.
	Delete(ctx context.Context, account, id string) error
}
