package domain

import (
	"errors"
	"time"
)

var ErrUserExists = errors.New("the username is already taken")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrMissingCredentials = errors.New("username and password are required")
var ErrInvalidToken = errors.New("invalid or expired token")

// User models a registered account. Passwords are stored only as bcrypt
// hashes; the plaintext never leaves the auth service.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
