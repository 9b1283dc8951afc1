package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/todovault/todovault/internal/common"
	"github.com/todovault/todovault/internal/cryptox"
	"github.com/todovault/todovault/internal/server/auth"
	"github.com/todovault/todovault/internal/server/config"
)

type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates the account with a fresh recovery code and random hue and
// returns it with an access token. A taken username yields
// common.ErrAlreadyExists, blank input common.ErrValidation.
func (s *Service) Register(ctx context.Context, username, password, profileImage string) (*User, string, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, "", common.ErrValidation
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, "", common.ErrAlreadyExists
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, "", common.ErrInternal
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	code, err := cryptox.NewRecoveryCode()
	if err != nil {
		return nil, "", common.ErrInternal
	}

	hue, err := common.RandomHue()
	if err != nil {
		return nil, "", common.ErrInternal
	}

	user := &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		ProfileImage: profileImage,
		RecoveryCode: code,
		ColorHue:     hue,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	return user, token, nil
}

// Login succeeds only on an exact username plus credential match; unknown
// user and wrong password are both common.ErrUnauthorized.
func (s *Service) Login(ctx context.Context, username, password string) (*User, string, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrUnauthorized
		}
		return nil, "", common.ErrInternal
	}

	if !cryptox.CheckPassword(user.PasswordHash, password) {
		return nil, "", common.ErrUnauthorized
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	return user, token, nil
}

// CheckUsername returns common.ErrAlreadyExists when the name is taken.
func (s *Service) CheckUsername(ctx context.Context, username string) error {
	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return common.ErrAlreadyExists
	}
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	return common.ErrInternal
}

// GetByID loads one user by id.
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile commits a profile edit. An empty newPassword keeps the
// stored credential; a rename to a taken name fails with
// common.ErrAlreadyExists.
func (s *Service) UpdateProfile(ctx context.Context, userID, username, newPassword, profileImage string) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, common.ErrValidation
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if username != user.Username {
		if err := s.CheckUsername(ctx, username); err != nil {
			return nil, err
		}
	}

	user.Username = username
	user.ProfileImage = profileImage
	if newPassword != "" {
		hash, err := cryptox.HashPassword(newPassword)
		if err != nil {
			return nil, common.ErrInternal
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return user, nil
}

// VerifyRecoveryCode checks the candidate against the stored code. Unknown
// usernames are indistinguishable from a wrong code.
func (s *Service) VerifyRecoveryCode(ctx context.Context, username, code string) error {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrCodeMismatch
		}
		return common.ErrInternal
	}

	if !cryptox.CheckRecoveryCode(user.RecoveryCode, code) {
		return common.ErrCodeMismatch
	}
	return nil
}

// ResetPassword overwrites the credential when the recovery code matches,
// bypassing authentication.
func (s *Service) ResetPassword(ctx context.Context, username, code, newPassword string) error {
	if newPassword == "" {
		return common.ErrValidation
	}

	if err := s.VerifyRecoveryCode(ctx, username, code); err != nil {
		return err
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return common.ErrInternal
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return common.ErrInternal
	}
	user.PasswordHash = hash

	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	return nil
}

// Delete removes the account; the schema cascades to the user's todos.
func (s *Service) Delete(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}

func (s *Service) generateAccessToken(user *User) (string, error) {
	return auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
}
