package httpapi

import (
	"time"

	"github.com/todovault/todovault/internal/server/todos"
	"github.com/todovault/todovault/internal/server/users"
)

// UserDTO is the wire shape of an account. The recovery code travels here
// so the owning client can show it after registration; the password hash
// never leaves the server.
type UserDTO struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	ProfileImage string    `json:"profile_image"`
	RecoveryCode string    `json:"recovery_code"`
	ColorHue     int       `json:"color_hue"`
	CreatedAt    time.Time `json:"created_at"`
}

type TodoDTO struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

type RegisterRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	ProfileImage string `json:"profile_image"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CheckUsernameRequest struct {
	Username string `json:"username"`
}

type RecoveryVerifyRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

type RecoveryResetRequest struct {
	Username    string `json:"username"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type UpdateProfileRequest struct {
	Username     string `json:"username"`
	NewPassword  string `json:"new_password"`
	ProfileImage string `json:"profile_image"`
}

type AddTodoRequest struct {
	Text string `json:"text"`
}

type SetCompletedRequest struct {
	Completed bool `json:"completed"`
}

type ClearCompletedResponse struct {
	Deleted int64 `json:"deleted"`
}

type UploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type ImageURLResponse struct {
	URL string `json:"url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toUserDTO(u *users.User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Username:     u.Username,
		ProfileImage: u.ProfileImage,
		RecoveryCode: u.RecoveryCode,
		ColorHue:     u.ColorHue,
		CreatedAt:    u.CreatedAt,
	}
}

func toTodoDTO(t *todos.Todo) TodoDTO {
	return TodoDTO{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt,
	}
}

func toTodoDTOs(list []*todos.Todo) []TodoDTO {
	result := make([]TodoDTO, 0, len(list))
	for _, t := range list {
		result = append(result, toTodoDTO(t))
	}
	return result
}
