package users

import "time"

// User is a row in user_profiles. PasswordHash is the stored credential and
// never leaves the server.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	ProfileImage string
	RecoveryCode string
	ColorHue     int
	CreatedAt    time.Time
}
