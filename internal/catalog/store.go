package catalog

import (
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"
)

var ErrCorruptDocument = errors.New("catalog document is not a product array")

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// Catalog is the full ordered product list. Order is insertion order.
type Catalog []Product

// Store owns the durable catalog. Callers never keep a Catalog across requests.
type Store interface {
	// Load returns the whole catalog. A store that was never written is empty.
	Load(ctx context.Context) (Catalog, error)
	// Mutate loads the catalog, applies fn and replaces the stored catalog
	// with its result. Concurrent Mutate calls are serialized. If fn returns
	// an error nothing is written.
	Mutate(ctx context.Context, fn func(Catalog) (Catalog, error)) error
	Ping(ctx context.Context) error
}

func NewID() string {
	return uuid.NewString()
}

// Add appends a new product built from d with a fresh id.
func (c Catalog) Add(d Draft) (Catalog, Product) {
	p := Product{
		ID:          NewID(),
		Name:        d.Name,
		Price:       d.Price,
		Description: d.Description,
	}
	return append(c, p), p
}

// Update overwrites the first product with the given id. The id and the
// position stay the same. It reports whether a product matched.
func (c Catalog) Update(id string, d Draft) (Catalog, bool) {
	i := c.index(id)
	if i < 0 {
		return c, false
	}

	out := slices.Clone(c)
	out[i].Name = d.Name
	out[i].Price = d.Price
	out[i].Description = d.Description
	return out, true
}

// Delete removes every product with the given id and returns the compacted
// catalog along with how many were removed.
func (c Catalog) Delete(id string) (Catalog, int) {
	out := make(Catalog, 0, len(c))
	for _, p := range c {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out, len(c) - len(out)
}

func (c Catalog) Find(id string) (Product, bool) {
	i := c.index(id)
	if i < 0 {
		return Product{}, false
	}
	return c[i], true
}

func (c Catalog) index(id string) int {
	return slices.IndexFunc(c, func(p Product) bool { return p.ID == id })
}
