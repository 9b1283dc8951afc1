// Package api is the remote backend adapter. It speaks the server's JSON
// HTTP API and satisfies both the session layer's Authenticator contract
// and the task layer's Store contract, so the rest of the client cannot
// tell remote from local.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/todovault/todovault/internal/client/models"
	"github.com/todovault/todovault/internal/client/repositories/settings"
	"github.com/todovault/todovault/internal/common"
)

const requestTimeout = 10 * time.Second

// Client holds the bearer token for the active session and mirrors it to
// the settings store so a restored session can keep calling the server.
type Client struct {
	baseURL  string
	http     *http.Client
	settings settings.Repository
	token    string
}

func NewClient(ctx context.Context, baseURL string, st settings.Repository) *Client {
	c := &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: requestTimeout},
		settings: st,
	}
	if raw, err := st.Get(ctx, settings.KeyAPIToken); err == nil {
		c.token = string(raw)
	}
	return c
}

type userDTO struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	ProfileImage string    `json:"profile_image"`
	RecoveryCode string    `json:"recovery_code"`
	ColorHue     int       `json:"color_hue"`
	CreatedAt    time.Time `json:"created_at"`
}

type todoDTO struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	User  userDTO `json:"user"`
	Token string  `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (u userDTO) toModel() *models.User {
	return &models.User{
		ID:           u.ID,
		Username:     u.Username,
		ProfileImage: u.ProfileImage,
		RecoveryCode: u.RecoveryCode,
		ColorHue:     u.ColorHue,
		CreatedAt:    u.CreatedAt,
	}
}

// statusErr maps HTTP statuses back to the sentinels the services use.
func statusErr(status int) error {
	switch status {
	case http.StatusBadRequest:
		return common.ErrValidation
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusForbidden:
		return common.ErrCodeMismatch
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusConflict:
		return common.ErrAlreadyExists
	default:
		return common.ErrInternal
	}
}

// do issues one JSON request. A non-nil out receives the decoded body on
// 2xx; error bodies are drained and turned into sentinel errors.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var er errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&er)
		return statusErr(resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	} else {
		io.Copy(io.Discard, resp.Body)
	}
	return nil
}

func (c *Client) setToken(ctx context.Context, token string) {
	c.token = token
	if token == "" {
		_ = c.settings.Delete(ctx, settings.KeyAPIToken)
		return
	}
	_ = c.settings.Set(ctx, settings.KeyAPIToken, []byte(token))
}

// Login authenticates against the server and retains the issued token.
func (c *Client) Login(ctx context.Context, username, password string) (*models.User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/login",
		map[string]string{"username": username, "password": password}, &resp)
	if err != nil {
		return nil, err
	}
	c.setToken(ctx, resp.Token)
	return resp.User.toModel(), nil
}

// Register creates the account and retains the issued token.
func (c *Client) Register(ctx context.Context, username, password, profileImage string) (*models.User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/register",
		map[string]string{"username": username, "password": password, "profile_image": profileImage}, &resp)
	if err != nil {
		return nil, err
	}
	c.setToken(ctx, resp.Token)
	return resp.User.toModel(), nil
}

func (c *Client) CheckUsername(ctx context.Context, username string) error {
	return c.do(ctx, http.MethodPost, "/api/username/check",
		map[string]string{"username": username}, nil)
}

// UpdateProfile commits a profile edit. The acting account comes from the
// bearer token; userID is accepted for interface parity with the local
// backend.
func (c *Client) UpdateProfile(ctx context.Context, userID, username, newPassword, profileImage string) (*models.User, error) {
	var resp userDTO
	err := c.do(ctx, http.MethodPut, "/api/profile",
		map[string]string{"username": username, "new_password": newPassword, "profile_image": profileImage}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

func (c *Client) VerifyRecoveryCode(ctx context.Context, username, code string) error {
	return c.do(ctx, http.MethodPost, "/api/recovery/verify",
		map[string]string{"username": username, "code": code}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, username, code, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/api/recovery/reset",
		map[string]string{"username": username, "code": code, "new_password": newPassword}, nil)
}

// DeleteAccount removes the authenticated account. Only the token owner can
// be deleted, so username is not sent.
func (c *Client) DeleteAccount(ctx context.Context, username string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/profile", nil, nil); err != nil {
		return err
	}
	c.setToken(ctx, "")
	return nil
}

// Logout drops the retained token without touching the account.
func (c *Client) Logout(ctx context.Context) error {
	c.setToken(ctx, "")
	return nil
}

// ListByUser returns the token owner's todos, newest first.
func (c *Client) ListByUser(ctx context.Context, userID string) ([]models.Todo, error) {
	var resp []todoDTO
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &resp); err != nil {
		return nil, err
	}
	result := make([]models.Todo, 0, len(resp))
	for _, t := range resp {
		result = append(result, models.Todo{
			ID:        t.ID,
			UserID:    userID,
			Text:      t.Text,
			Completed: t.Completed,
			CreatedAt: t.CreatedAt,
		})
	}
	return result, nil
}

// Create adds a todo and copies the server-assigned id and timestamp back
// into the passed model.
func (c *Client) Create(ctx context.Context, todo *models.Todo) error {
	var resp todoDTO
	err := c.do(ctx, http.MethodPost, "/api/todos", map[string]string{"text": todo.Text}, &resp)
	if err != nil {
		return err
	}
	todo.ID = resp.ID
	todo.CreatedAt = resp.CreatedAt
	todo.Completed = resp.Completed
	return nil
}

func (c *Client) SetCompleted(ctx context.Context, userID, id string, completed bool) error {
	return c.do(ctx, http.MethodPatch, "/api/todos/"+url.PathEscape(id),
		map[string]bool{"completed": completed}, nil)
}

func (c *Client) Delete(ctx context.Context, userID, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/todos/"+url.PathEscape(id), nil, nil)
}

func (c *Client) DeleteCompleted(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/api/todos/completed", nil, nil)
}

// GetUploadURL asks the server for a presigned PUT target for a new avatar.
func (c *Client) GetUploadURL(ctx context.Context) (key, uploadURL string, err error) {
	var resp struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/images/upload-url", nil, &resp); err != nil {
		return "", "", err
	}
	return resp.Key, resp.URL, nil
}

// GetImageURL resolves a stored avatar key to a short-lived download URL.
func (c *Client) GetImageURL(ctx context.Context, key string) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/images/url?key="+url.QueryEscape(key), nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}
