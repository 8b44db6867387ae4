package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// SeedUser makes sure username exists. An existing account keeps its
// password.
func SeedUser(ctx context.Context, users UserStore, username, password string) (bool, error) {
	err := users.Create(ctx, username, password, "u_"+uuid.NewString())
	if errors.Is(err, ErrUserExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
