// Package session tracks the single currently-authenticated identity,
// mirrors it to durable storage for restart continuity, and stages profile
// edits until they are explicitly committed.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/todovault/todovault/internal/client/models"
	"github.com/todovault/todovault/internal/client/repositories/settings"
	"github.com/todovault/todovault/internal/common"
	"github.com/todovault/todovault/internal/logging"
)

// Authenticator is the credential backend the session layer talks to.
// The local sqlite store and the remote HTTP API both satisfy it.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, username, password, profileImage string) (*models.User, error)
	Logout(ctx context.Context) error
	CheckUsername(ctx context.Context, username string) error
	UpdateProfile(ctx context.Context, userID, username, newPassword, profileImage string) (*models.User, error)
	VerifyRecoveryCode(ctx context.Context, username, code string) error
	ResetPassword(ctx context.Context, username, code, newPassword string) error
	DeleteAccount(ctx context.Context, username string) error
}

// SupportedLanguages lists the locale codes the UI can persist.
var SupportedLanguages = []string{"en", "pt"}

// storedSession is the durable mirror of the active user. Unlike the public
// model it round-trips the credential hash so a restored session stays
// consistent with the credential store.
type storedSession struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	ProfileImage string    `json:"profile_image,omitempty"`
	RecoveryCode string    `json:"recovery_code"`
	ColorHue     int       `json:"color_hue"`
	CreatedAt    time.Time `json:"created_at"`
}

// Service is the session manager. At most one identity is active at a time;
// all mutations of the active user flow through the staged copy.
type Service struct {
	auth     Authenticator
	settings settings.Repository
	logger   logging.Logger

	current        *models.User // staged state, nil when logged out
	committed      *models.User // last durably committed state
	stagedPassword string       // empty means unchanged
}

// NewService constructs a session manager over the given backend and
// settings store.
func NewService(auth Authenticator, st settings.Repository, logger logging.Logger) *Service {
	return &Service{
		auth:     auth,
		settings: st,
		logger:   logger.With("module", "session"),
	}
}

// Restore loads the persisted session mirror, if any. Called once at
// startup; a missing mirror simply leaves the session logged out.
func (s *Service) Restore(ctx context.Context) error {
	raw, err := s.settings.Get(ctx, settings.KeyCurrentUser)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("restore session: %w", err)
	}

	var stored storedSession
	if err := json.Unmarshal(raw, &stored); err != nil {
		// A corrupt mirror must not brick the app; drop it and start clean.
		s.logger.Warn(ctx, "dropping unreadable session mirror", "error", err.Error())
		return s.settings.Delete(ctx, settings.KeyCurrentUser)
	}

	user := stored.toModel()
	s.establish(user)
	return nil
}

// Login authenticates and establishes the session, persisting the mirror.
// Returns common.ErrUnauthorized on any mismatch.
func (s *Service) Login(ctx context.Context, username, password string) error {
	user, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}

	s.establish(user)
	if err := s.persistMirror(ctx); err != nil {
		return err
	}

	s.logger.Info(ctx, "logged in", "username", user.Username)
	return nil
}

// Register creates the account and establishes a session for the new user.
func (s *Service) Register(ctx context.Context, username, password, profileImage string) error {
	user, err := s.auth.Register(ctx, username, password, profileImage)
	if err != nil {
		return err
	}

	s.establish(user)
	if err := s.persistMirror(ctx); err != nil {
		return err
	}

	s.logger.Info(ctx, "registered", "username", user.Username)
	return nil
}

// Logout clears the session, its durable mirror, and whatever credential the
// backend retains (the bearer token in the remote variant). Idempotent.
func (s *Service) Logout(ctx context.Context) error {
	s.current = nil
	s.committed = nil
	s.stagedPassword = ""
	if err := s.auth.Logout(ctx); err != nil {
		return err
	}
	return s.settings.Delete(ctx, settings.KeyCurrentUser)
}

// IsAuthenticated reports whether a session is active.
func (s *Service) IsAuthenticated() bool {
	return s.current != nil
}

// CurrentUser returns a copy of the staged active user, or nil.
func (s *Service) CurrentUser() *models.User {
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// GetRecoveryCode returns the active user's recovery code, or "".
func (s *Service) GetRecoveryCode() string {
	if s.current == nil {
		return ""
	}
	return s.current.RecoveryCode
}

// UpdateUsername stages a rename. It fails with common.ErrAlreadyExists when
// another user holds the name; renaming to one's own current name is allowed.
func (s *Service) UpdateUsername(ctx context.Context, newName string) error {
	if s.current == nil {
		return common.ErrNoSession
	}
	if newName == "" {
		return common.ErrValidation
	}

	if newName != s.committed.Username {
		if err := s.auth.CheckUsername(ctx, newName); err != nil {
			return err
		}
	}

	s.current.Username = newName
	return nil
}

// UpdatePassword stages a password change. In-memory only until SaveChanges.
func (s *Service) UpdatePassword(newPassword string) error {
	if s.current == nil {
		return common.ErrNoSession
	}
	s.stagedPassword = newPassword
	return nil
}

// UpdateProfileImage stages a profile image change; an empty string clears it.
func (s *Service) UpdateProfileImage(image string) error {
	if s.current == nil {
		return common.ErrNoSession
	}
	s.current.ProfileImage = image
	return nil
}

// HasUnsavedChanges reports whether staged state differs from the last
// committed state (username, password, or profile image).
func (s *Service) HasUnsavedChanges() bool {
	if s.current == nil || s.committed == nil {
		return false
	}
	return s.current.Username != s.committed.Username ||
		s.current.ProfileImage != s.committed.ProfileImage ||
		s.stagedPassword != ""
}

// SaveChanges commits all staged fields to the credential store and
// refreshes the durable session mirror.
func (s *Service) SaveChanges(ctx context.Context) error {
	if s.current == nil {
		return common.ErrNoSession
	}

	updated, err := s.auth.UpdateProfile(ctx,
		s.current.ID, s.current.Username, s.stagedPassword, s.current.ProfileImage)
	if err != nil {
		return err
	}

	s.establish(updated)
	if err := s.persistMirror(ctx); err != nil {
		return err
	}

	s.logger.Info(ctx, "profile saved", "username", updated.Username)
	return nil
}

// VerifyRecoveryCode delegates to the backend; no session required.
func (s *Service) VerifyRecoveryCode(ctx context.Context, username, code string) error {
	return s.auth.VerifyRecoveryCode(ctx, username, code)
}

// ResetPassword overwrites the credential when the recovery code matches,
// bypassing any session.
func (s *Service) ResetPassword(ctx context.Context, username, code, newPassword string) error {
	return s.auth.ResetPassword(ctx, username, code, newPassword)
}

// DeleteAccount removes the user and all of their tasks. Deleting the active
// user logs out as a side effect.
func (s *Service) DeleteAccount(ctx context.Context, username string) error {
	if err := s.auth.DeleteAccount(ctx, username); err != nil {
		return err
	}

	if s.current != nil && s.committed.Username == username {
		return s.Logout(ctx)
	}
	return nil
}

// Language returns the persisted UI language, defaulting to "en".
func (s *Service) Language(ctx context.Context) (string, error) {
	raw, err := s.settings.Get(ctx, settings.KeyLanguage)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return SupportedLanguages[0], nil
		}
		return "", err
	}
	return string(raw), nil
}

// SetLanguage persists the UI language. Unsupported codes are rejected with
// common.ErrValidation.
func (s *Service) SetLanguage(ctx context.Context, code string) error {
	supported := false
	for _, l := range SupportedLanguages {
		if l == code {
			supported = true
			break
		}
	}
	if !supported {
		return common.ErrValidation
	}
	return s.settings.Set(ctx, settings.KeyLanguage, []byte(code))
}

// establish makes user the active identity and resets staging.
func (s *Service) establish(user *models.User) {
	staged := *user
	committed := *user
	s.current = &staged
	s.committed = &committed
	s.stagedPassword = ""
}

func (s *Service) persistMirror(ctx context.Context) error {
	raw, err := json.Marshal(fromModel(s.committed))
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return s.settings.Set(ctx, settings.KeyCurrentUser, raw)
}

func fromModel(u *models.User) storedSession {
	return storedSession{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		ProfileImage: u.ProfileImage,
		RecoveryCode: u.RecoveryCode,
		ColorHue:     u.ColorHue,
		CreatedAt:    u.CreatedAt,
	}
}

func (st storedSession) toModel() *models.User {
	return &models.User{
		ID:           st.ID,
		Username:     st.Username,
		PasswordHash: st.PasswordHash,
		ProfileImage: st.ProfileImage,
		RecoveryCode: st.RecoveryCode,
		ColorHue:     st.ColorHue,
		CreatedAt:    st.CreatedAt,
	}
}
