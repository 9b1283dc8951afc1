// Package users implements the local credential store: a durable mapping of
// username to user record.
package users

import (
	"context"

	"github.com/todovault/todovault/internal/client/models"
)

// Repository is the credential-store contract consumed by the auth layer.
// Lookups by unknown username or id return common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.User, error)
	DeleteAll(ctx context.Context) error
}
