// Package todos implements the local task store: durable task rows
// partitioned per user.
package todos

import (
	"context"

	"github.com/todovault/todovault/internal/client/models"
)

// Repository is the task-store contract. Every operation is scoped to a
// single owner; rows belonging to other users are never touched.
type Repository interface {
	// ListByUser returns the owner's tasks newest-first.
	ListByUser(ctx context.Context, userID string) ([]models.Todo, error)
	Create(ctx context.Context, todo *models.Todo) error
	// SetCompleted updates the completed flag of one task. Unknown ids are
	// a silent no-op.
	SetCompleted(ctx context.Context, userID, id string, completed bool) error
	// Delete removes one task. Unknown ids are a silent no-op.
	Delete(ctx context.Context, userID, id string) error
	DeleteCompleted(ctx context.Context, userID string) error
	DeleteByUser(ctx context.Context, userID string) error
}
