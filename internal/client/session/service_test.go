package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/todovault/todovault/internal/client/models"
	"github.com/todovault/todovault/internal/client/repositories/settings"
	"github.com/todovault/todovault/internal/common"
	"github.com/todovault/todovault/internal/logging"
)

// ---- fakes ----

// fakeAuth implements Authenticator for session tests.
type fakeAuth struct {
	LoginUser *models.User
	LoginErr  error

	RegisterUser *models.User
	RegisterErr  error

	CheckUsernameErr error

	UpdateUser *models.User
	UpdateErr  error

	VerifyErr error
	ResetErr  error
	DeleteErr error

	LogoutCalls int

	LastLoginUsername string
	LastLoginPassword string
	LastUpdateID      string
	LastUpdateName    string
	LastUpdatePass    string
	LastUpdateImage   string
	LastDeleted       string
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (*models.User, error) {
	f.LastLoginUsername = username
	f.LastLoginPassword = password
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	u := *f.LoginUser
	return &u, nil
}

func (f *fakeAuth) Register(ctx context.Context, username, password, profileImage string) (*models.User, error) {
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	u := *f.RegisterUser
	return &u, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.LogoutCalls++
	return nil
}

func (f *fakeAuth) CheckUsername(ctx context.Context, username string) error {
	return f.CheckUsernameErr
}

func (f *fakeAuth) UpdateProfile(ctx context.Context, userID, username, newPassword, profileImage string) (*models.User, error) {
	f.LastUpdateID = userID
	f.LastUpdateName = username
	f.LastUpdatePass = newPassword
	f.LastUpdateImage = profileImage
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	if f.UpdateUser != nil {
		u := *f.UpdateUser
		return &u, nil
	}
	return &models.User{ID: userID, Username: username, ProfileImage: profileImage}, nil
}

func (f *fakeAuth) VerifyRecoveryCode(ctx context.Context, username, code string) error {
	return f.VerifyErr
}

func (f *fakeAuth) ResetPassword(ctx context.Context, username, code, newPassword string) error {
	return f.ResetErr
}

func (f *fakeAuth) DeleteAccount(ctx context.Context, username string) error {
	f.LastDeleted = username
	return f.DeleteErr
}

// memSettings is an in-memory settings.Repository.
type memSettings struct {
	m map[string][]byte
}

func newMemSettings() *memSettings { return &memSettings{m: map[string][]byte{}} }

func (s *memSettings) Get(ctx context.Context, key string) ([]byte, error) {
	v, ok := s.m[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	return v, nil
}

func (s *memSettings) Set(ctx context.Context, key string, value []byte) error {
	s.m[key] = value
	return nil
}

func (s *memSettings) Delete(ctx context.Context, key string) error {
	delete(s.m, key)
	return nil
}

func (s *memSettings) Clear(ctx context.Context) error {
	s.m = map[string][]byte{}
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func sampleUser() *models.User {
	return &models.User{
		ID:           "u-1",
		Username:     "alice",
		PasswordHash: "$2a$10$hash",
		RecoveryCode: "deadbeef",
		ColorHue:     200,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

// ---- tests ----

func TestLogin_EstablishesAndPersistsSession(t *testing.T) {
	auth := &fakeAuth{LoginUser: sampleUser()}
	st := newMemSettings()
	svc := NewService(auth, st, testLogger())
	ctx := context.Background()

	require.False(t, svc.IsAuthenticated())
	require.NoError(t, svc.Login(ctx, "alice", "pw"))

	require.True(t, svc.IsAuthenticated())
	require.Equal(t, "alice", svc.CurrentUser().Username)
	require.Equal(t, "pw", auth.LastLoginPassword)

	raw, ok := st.m[settings.KeyCurrentUser]
	require.True(t, ok, "mirror must be written on login")

	var stored storedSession
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Equal(t, "u-1", stored.ID)
	require.Equal(t, "$2a$10$hash", stored.PasswordHash)
}

func TestLogin_Failure(t *testing.T) {
	auth := &fakeAuth{LoginErr: common.ErrUnauthorized}
	st := newMemSettings()
	svc := NewService(auth, st, testLogger())

	err := svc.Login(context.Background(), "alice", "bad")
	require.True(t, errors.Is(err, common.ErrUnauthorized))
	require.False(t, svc.IsAuthenticated())
	require.Empty(t, st.m)
}

func TestRestore_RoundTrip(t *testing.T) {
	auth := &fakeAuth{LoginUser: sampleUser()}
	st := newMemSettings()
	svc := NewService(auth, st, testLogger())
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "alice", "pw"))

	// simulate restart: a fresh service over the same settings store
	svc2 := NewService(auth, st, testLogger())
	require.NoError(t, svc2.Restore(ctx))
	require.True(t, svc2.IsAuthenticated())
	require.Equal(t, "alice", svc2.CurrentUser().Username)
	require.Equal(t, "deadbeef", svc2.GetRecoveryCode())
}

func TestRestore_NoMirror(t *testing.T) {
	svc := NewService(&fakeAuth{}, newMemSettings(), testLogger())
	require.NoError(t, svc.Restore(context.Background()))
	require.False(t, svc.IsAuthenticated())
}

func TestRestore_CorruptMirrorIsDropped(t *testing.T) {
	st := newMemSettings()
	st.m[settings.KeyCurrentUser] = []byte("{not json")
	svc := NewService(&fakeAuth{}, st, testLogger())

	require.NoError(t, svc.Restore(context.Background()))
	require.False(t, svc.IsAuthenticated())
	_, ok := st.m[settings.KeyCurrentUser]
	require.False(t, ok)
}

func TestLogout_Idempotent(t *testing.T) {
	auth := &fakeAuth{LoginUser: sampleUser()}
	st := newMemSettings()
	svc := NewService(auth, st, testLogger())
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "alice", "pw"))
	require.NoError(t, svc.Logout(ctx))
	require.False(t, svc.IsAuthenticated())
	require.Empty(t, st.m)

	require.NoError(t, svc.Logout(ctx))
}

func TestLogout_ClearsBackendCredential(t *testing.T) {
	auth := &fakeAuth{LoginUser: sampleUser()}
	st := newMemSettings()
	svc := NewService(auth, st, testLogger())
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "alice", "pw"))
	require.NoError(t, svc.Logout(ctx))
	require.Equal(t, 1, auth.LogoutCalls)
}

func TestStagedEdits_AndSaveChanges(t *testing.T) {
	auth := &fakeAuth{LoginUser: sampleUser()}
	st := newMemSettings()
	svc := NewService(auth, st, testLogger())
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "alice", "pw"))
	require.False(t, svc.HasUnsavedChanges())

	require.NoError(t, svc.UpdateUsername(ctx, "alice2"))
	require.True(t, svc.HasUnsavedChanges())
	require.Equal(t, "alice2", svc.CurrentUser().Username)

	// not yet committed
	require.Equal(t, "", auth.LastUpdateID)

	require.NoError(t, svc.UpdatePassword("newpw"))
	require.NoError(t, svc.UpdateProfileImage("data:image/png;base64,AA"))

	updated := sampleUser()
	updated.Username = "alice2"
	updated.ProfileImage = "data:image/png;base64,AA"
	auth.UpdateUser = updated

	require.NoError(t, svc.SaveChanges(ctx))
	require.Equal(t, "u-1", auth.LastUpdateID)
	require.Equal(t, "alice2", auth.LastUpdateName)
	require.Equal(t, "newpw", auth.LastUpdatePass)
	require.False(t, svc.HasUnsavedChanges())

	var stored storedSession
	require.NoError(t, json.Unmarshal(st.m[settings.KeyCurrentUser], &stored))
	require.Equal(t, "alice2", stored.Username)
}

func TestUpdateUsername_ConflictAndOwnName(t *testing.T) {
	auth := &fakeAuth{LoginUser: sampleUser(), CheckUsernameErr: common.ErrAlreadyExists}
	svc := NewService(auth, newMemSettings(), testLogger())
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "alice", "pw"))

	err := svc.UpdateUsername(ctx, "bob")
	require.True(t, errors.Is(err, common.ErrAlreadyExists))
	require.Equal(t, "alice", svc.CurrentUser().Username)

	// own current name never hits the conflict check
	require.NoError(t, svc.UpdateUsername(ctx, "alice"))
}

func TestStagedEdits_RequireSession(t *testing.T) {
	svc := NewService(&fakeAuth{}, newMemSettings(), testLogger())
	ctx := context.Background()

	require.True(t, errors.Is(svc.UpdateUsername(ctx, "x"), common.ErrNoSession))
	require.True(t, errors.Is(svc.UpdatePassword("x"), common.ErrNoSession))
	require.True(t, errors.Is(svc.UpdateProfileImage("x"), common.ErrNoSession))
	require.True(t, errors.Is(svc.SaveChanges(ctx), common.ErrNoSession))
	require.False(t, svc.HasUnsavedChanges())
}

func TestDeleteAccount_ActiveUserLogsOut(t *testing.T) {
	auth := &fakeAuth{LoginUser: sampleUser()}
	st := newMemSettings()
	svc := NewService(auth, st, testLogger())
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "alice", "pw"))
	require.NoError(t, svc.DeleteAccount(ctx, "alice"))

	require.Equal(t, "alice", auth.LastDeleted)
	require.False(t, svc.IsAuthenticated())
	require.Empty(t, st.m)
}

func TestDeleteAccount_OtherUserKeepsSession(t *testing.T) {
	auth := &fakeAuth{LoginUser: sampleUser()}
	svc := NewService(auth, newMemSettings(), testLogger())
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "alice", "pw"))
	require.NoError(t, svc.DeleteAccount(ctx, "bob"))
	require.True(t, svc.IsAuthenticated())
}

func TestLanguage(t *testing.T) {
	svc := NewService(&fakeAuth{}, newMemSettings(), testLogger())
	ctx := context.Background()

	lang, err := svc.Language(ctx)
	require.NoError(t, err)
	require.Equal(t, "en", lang, "default language")

	require.NoError(t, svc.SetLanguage(ctx, "pt"))
	lang, err = svc.Language(ctx)
	require.NoError(t, err)
	require.Equal(t, "pt", lang)

	require.True(t, errors.Is(svc.SetLanguage(ctx, "fr"), common.ErrValidation))
}
