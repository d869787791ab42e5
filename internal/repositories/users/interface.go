// Package users persists the user profile in the local store.
package users

import (
	"context"

	"github.com/focusflow/focusflow/internal/models"
)

// Repository describes the operations of the user collection, keyed by email.
type Repository interface {
	Save(ctx context.Context, user *models.User) error

	// Get returns the profile for the given email, or common.ErrNotFound.
	Get(ctx context.Context, email string) (*models.User, error)

	GetAll(ctx context.Context) ([]models.User, error)
}
