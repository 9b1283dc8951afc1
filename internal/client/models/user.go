// Package models defines client-side data models used by the TodoVault CLI.
package models

import "time"

// User is a registered account in the local credential store.
// PasswordHash is the bcrypt hash of the password; the clear text never
// reaches storage.
type User struct {
	// ID is a globally unique identifier for the user.
	ID string `json:"id"`

	// Username is unique and case-sensitive across the store.
	Username string `json:"username"`

	// PasswordHash is the stored credential. Never serialized to callers.
	PasswordHash string `json:"-"`

	// ProfileImage is an optional data URI or URL.
	ProfileImage string `json:"profile_image,omitempty"`

	// RecoveryCode authorizes password reset without the old password.
	RecoveryCode string `json:"recovery_code"`

	// ColorHue is the avatar hue in [0, 359], fixed at registration.
	ColorHue int `json:"color_hue"`

	// CreatedAt is the registration time in UTC.
	CreatedAt time.Time `json:"created_at"`
}
