// Package cryptox wraps the credential-hashing primitives used by both
// storage variants. Passwords are never persisted in clear text; stores keep
// a bcrypt hash and login compares against it.
package cryptox

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/todovault/todovault/internal/common"
)

// RecoveryCodeBytes is the number of random bytes behind a recovery code.
// The encoded code is twice as long (hex).
const RecoveryCodeBytes = 8

// HashPassword returns the bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewRecoveryCode generates a fresh opaque recovery code.
func NewRecoveryCode() (string, error) {
	return common.MakeRandHexString(RecoveryCodeBytes)
}

// CheckRecoveryCode compares a candidate recovery code against the stored one
// in constant time.
func CheckRecoveryCode(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}
