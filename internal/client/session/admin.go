package session

import (
	"context"
	"fmt"

	"github.com/todovault/todovault/internal/client/models"
	"github.com/todovault/todovault/internal/client/repositories/todos"
	"github.com/todovault/todovault/internal/client/repositories/users"
)

// Admin is an explicit administrative capability over the local store.
// It replaces the ambient debug commands of earlier builds: a caller can
// only list, impersonate, or delete users if it was handed an Admin.
// Local-persistence variant only.
type Admin struct {
	users    users.Repository
	todos    todos.Repository
	sessions *Service
}

// NewAdmin constructs the capability around the given repositories and
// session manager.
func NewAdmin(u users.Repository, td todos.Repository, sessions *Service) *Admin {
	return &Admin{users: u, todos: td, sessions: sessions}
}

// ListUsers returns all registered usernames.
func (a *Admin) ListUsers(ctx context.Context) ([]string, error) {
	all, err := a.users.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(all))
	for _, u := range all {
		names = append(names, u.Username)
	}
	return names, nil
}

// DeleteUser removes one user and their tasks, logging out if it was the
// active session.
func (a *Admin) DeleteUser(ctx context.Context, username string) error {
	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := a.todos.DeleteByUser(ctx, user.ID); err != nil {
		return err
	}
	if err := a.users.Delete(ctx, user.ID); err != nil {
		return err
	}

	if cur := a.sessions.CurrentUser(); cur != nil && cur.ID == user.ID {
		return a.sessions.Logout(ctx)
	}
	return nil
}

// DeleteAllUsers wipes every account, the settings rows, and logs out.
func (a *Admin) DeleteAllUsers(ctx context.Context) error {
	all, err := a.users.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range all {
		if err := a.todos.DeleteByUser(ctx, u.ID); err != nil {
			return fmt.Errorf("delete todos of %s: %w", u.Username, err)
		}
	}
	if err := a.users.DeleteAll(ctx); err != nil {
		return err
	}
	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}
	// the language preference and any retained token go with the accounts
	return a.sessions.settings.Clear(ctx)
}

// LoginAs establishes a session for the named user without a credential
// check. Strictly a diagnostic tool.
func (a *Admin) LoginAs(ctx context.Context, username string) (*models.User, error) {
	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	a.sessions.establish(user)
	if err := a.sessions.persistMirror(ctx); err != nil {
		return nil, err
	}
	return user, nil
}
