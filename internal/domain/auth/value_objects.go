package auth

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyUsername      = errors.New("username is required")
	ErrEmptyPassword      = errors.New("password is required")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
)

// bcrypt ignores input past this length
const maxPasswordBytes = 72

type Credentials struct {
	username string
	password string
}

func NewCredentials(username, password string) (Credentials, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Credentials{}, ErrEmptyUsername
	}
	if password == "" {
		return Credentials{}, ErrEmptyPassword
	}
	if len(password) > maxPasswordBytes {
		return Credentials{}, ErrPasswordTooLong
	}

	return Credentials{
		username: username,
		password: password,
	}, nil
}

func (c Credentials) Username() string {
	return c.username
}

func (c Credentials) Password() string {
	return c.password
}
