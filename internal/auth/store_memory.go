package auth

import (
	"context"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

type MemStore struct {
	mu         sync.RWMutex
	byUsername map[string]User
	cost       int
}

func NewMemStore() *MemStore {
	return &MemStore{byUsername: make(map[string]User), cost: bcrypt.DefaultCost}
}

// NewFastMemStore trades hash strength for speed. Tests only.
func NewFastMemStore() *MemStore {
	s := NewMemStore()
	s.cost = bcrypt.MinCost
	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Create(ctx context.Context, username, password, id string) error {
	username = normalizeUsername(username)
	password = normalizePassword(password)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byUsername[username]; ok {
		return ErrUserExists
	}

	s.byUsername[username] = User{ID: id, Username: username, Hash: hash}
	return nil
}

func (s *MemStore) Verify(ctx context.Context, username, password string) (User, error) {
	username = normalizeUsername(username)

	s.mu.RLock()
	u, ok := s.byUsername[username]
	s.mu.RUnlock()

	if !ok {
		return User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(u.Hash, []byte(normalizePassword(password))); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}
