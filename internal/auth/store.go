package auth

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	ID       string
	Username string
	Hash     []byte
}

type UserStore interface {
	Create(ctx context.Context, username, password, id string) error
	Verify(ctx context.Context, username, password string) (User, error)
	Ping(ctx context.Context) error
}

// Usernames compare case-insensitively.
func normalizeUsername(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}

func normalizePassword(p string) string {
	return strings.TrimSpace(p)
}
