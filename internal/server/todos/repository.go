package todos

import "context"

// Repository is the durable todo store. List results come back newest first.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*Todo, error)
	Create(ctx context.Context, todo *Todo) (*Todo, error)
	// SetCompleted flips the done flag; an id the user does not own is a
	// no-op and returns common.ErrNotFound.
	SetCompleted(ctx context.Context, userID, id string, completed bool) error
	Delete(ctx context.Context, userID, id string) error
	// DeleteCompleted removes the user's done rows and reports how many.
	DeleteCompleted(ctx context.Context, userID string) (int64, error)
}
