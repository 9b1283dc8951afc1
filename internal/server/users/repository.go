// Package users implements accounts and authentication for the TodoVault
// server: the credential store, token issuing, and the recovery flow.
package users

import (
	"context"
)

// Repository is the durable user store. Unknown usernames and ids return
// common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
	// Delete removes the user; the schema cascades to their todos.
	Delete(ctx context.Context, id string) error
}
