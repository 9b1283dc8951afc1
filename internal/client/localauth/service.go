// Package localauth implements authentication against the local sqlite
// credential store. It is the single-process analogue of the remote API:
// the session layer talks to either through the same interface.
package localauth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/todovault/todovault/internal/client/models"
	"github.com/todovault/todovault/internal/client/repositories/todos"
	"github.com/todovault/todovault/internal/client/repositories/users"
	"github.com/todovault/todovault/internal/common"
	"github.com/todovault/todovault/internal/cryptox"
	"github.com/todovault/todovault/internal/dbx"
)

// Service performs credential operations directly against the local store.
type Service struct {
	db *sql.DB
}

// NewService constructs a Service bound to the given database.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

func (s *Service) userRepo(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (s *Service) todoRepo(db dbx.DBTX) todos.Repository {
	return todos.NewSQLiteRepository(db)
}

// Login succeeds only on an exact username match plus a credential match.
// Unknown user and wrong password are indistinguishable to the caller: both
// return common.ErrUnauthorized.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !cryptox.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrUnauthorized
	}

	return user, nil
}

// Register creates a new user with a fresh recovery code and a random color
// hue. Returns common.ErrAlreadyExists when the username is taken and
// common.ErrValidation for blank input.
func (s *Service) Register(ctx context.Context, username, password, profileImage string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, common.ErrValidation
	}

	repo := s.userRepo(s.db)

	if _, err := repo.GetByUsername(ctx, username); err == nil {
		return nil, common.ErrAlreadyExists
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	code, err := cryptox.NewRecoveryCode()
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	hue, err := common.RandomHue()
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		ProfileImage: profileImage,
		RecoveryCode: code,
		ColorHue:     hue,
		CreatedAt:    time.Now().UTC(),
	}

	if err := repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	return user, nil
}

// Logout is a no-op; the local backend holds no per-session credential.
func (s *Service) Logout(ctx context.Context) error {
	return nil
}

// CheckUsername returns common.ErrAlreadyExists when the username is held by
// an existing user.
func (s *Service) CheckUsername(ctx context.Context, username string) error {
	_, err := s.userRepo(s.db).GetByUsername(ctx, username)
	if err == nil {
		return common.ErrAlreadyExists
	}
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("check username: %w", err)
}

// UpdateProfile commits profile edits for the user with the given id.
// An empty newPassword keeps the stored credential. A username change to a
// name held by another user returns common.ErrAlreadyExists.
func (s *Service) UpdateProfile(ctx context.Context, userID, username, newPassword, profileImage string) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, common.ErrValidation
	}

	repo := s.userRepo(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if username != user.Username {
		if _, err := repo.GetByUsername(ctx, username); err == nil {
			return nil, common.ErrAlreadyExists
		} else if !errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	user.Username = username
	user.ProfileImage = profileImage
	if newPassword != "" {
		hash, err := cryptox.HashPassword(newPassword)
		if err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return user, nil
}

// VerifyRecoveryCode checks the candidate code against the stored one.
// Both an unknown username and a wrong code yield common.ErrCodeMismatch.
func (s *Service) VerifyRecoveryCode(ctx context.Context, username, code string) error {
	user, err := s.userRepo(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrCodeMismatch
		}
		return fmt.Errorf("verify recovery code: %w", err)
	}

	if !cryptox.CheckRecoveryCode(user.RecoveryCode, code) {
		return common.ErrCodeMismatch
	}
	return nil
}

// ResetPassword overwrites the stored credential when the recovery code
// matches; the session is bypassed entirely.
func (s *Service) ResetPassword(ctx context.Context, username, code, newPassword string) error {
	if newPassword == "" {
		return common.ErrValidation
	}

	if err := s.VerifyRecoveryCode(ctx, username, code); err != nil {
		return err
	}

	repo := s.userRepo(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	user.PasswordHash = hash

	if err := repo.Update(ctx, user); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

// DeleteAccount removes the user and all of their tasks in one transaction.
func (s *Service) DeleteAccount(ctx context.Context, username string) error {
	user, err := s.userRepo(s.db).GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.todoRepo(tx).DeleteByUser(ctx, user.ID); err != nil {
			return err
		}
		return s.userRepo(tx).Delete(ctx, user.ID)
	})
}
