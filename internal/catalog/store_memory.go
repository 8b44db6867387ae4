package catalog

import (
	"context"
	"slices"
	"sync"
)

type MemStore struct {
	mu sync.Mutex
	c  Catalog
}

func NewMemStore(seed ...Product) *MemStore {
	return &MemStore{c: slices.Clone(Catalog(seed))}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Load(ctx context.Context) (Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := slices.Clone(s.c)
	if out == nil {
		out = Catalog{}
	}
	return out, nil
}

func (s *MemStore) Mutate(ctx context.Context, fn func(Catalog) (Catalog, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := slices.Clone(s.c)
	if cur == nil {
		cur = Catalog{}
	}

	next, err := fn(cur)
	if err != nil {
		return err
	}
	s.c = slices.Clone(next)
	return nil
}
