//go:build integration
// +build integration

package auth

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"ProductDashboard/pkg/kit"
)

func TestPostgresStore_CreateVerify(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := kit.OpenPostgres(ctx, dsn, 5*time.Second)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	s := NewPostgresStore(db)
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	name := "it_" + uuid.NewString()[:8]
	if err := s.Create(ctx, name, "password123", "u_"+uuid.NewString()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Create(ctx, name, "password456", "u_"+uuid.NewString()); !errors.Is(err, ErrUserExists) {
		t.Fatalf("duplicate err=%v want=%v", err, ErrUserExists)
	}

	u, err := s.Verify(ctx, name, "password123")
	if err != nil || u.Username != name {
		t.Fatalf("Verify: u=%+v err=%v", u, err)
	}

	if _, err := s.Verify(ctx, name, "nope-nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err=%v", err)
	}
}
