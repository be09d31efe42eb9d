package domain

import "time"

const (
	MaxLoginLength    = 12
	MaxPasswordLength = 20
	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72
)

// User represents an account able to own tasks.
type User struct {
	ID           int64     `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidateCredentials checks the raw login/password shape accepted by the API.
func ValidateCredentials(login, password string) error {
	switch {
	case login == "":
		return Invalid("login is required")
	case len([]rune(login)) > MaxLoginLength:
		return Invalid("login must be at most 12 characters")
	case password == "":
		return Invalid("password is required")
	case len([]rune(password)) > MaxPasswordLength:
		return Invalid("password must be at most 20 characters")
	case len(password) > MaxPasswordBytes:
		return Invalid("password must be at most 72 bytes")
	}
	return nil
}
