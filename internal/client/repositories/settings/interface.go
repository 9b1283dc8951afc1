// Package settings implements the durable key/value store used for the
// session mirror (current_user) and UI preferences (language).
package settings

import "context"

// Well-known keys.
const (
	KeyCurrentUser = "current_user"
	KeyLanguage    = "language"
	KeyAPIToken    = "api_token"
)

// Repository is a small key/value contract. Missing keys return
// common.ErrNotFound.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
