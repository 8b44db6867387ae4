package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ProductDashboard/pkg/kit"
)

const (
	pingTimeout   = 1 * time.Second
	queryTimeout  = 3 * time.Second
	mutateTimeout = 5 * time.Second
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	position    INTEGER NOT NULL,
	name        TEXT NOT NULL,
	price       DOUBLE PRECISION NOT NULL CHECK (price > 0),
	description TEXT NOT NULL
)`

// PostgresStore keeps the catalog in a products table. Row order is kept in
// the position column, and every Mutate rewrites the table in one
// transaction.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	return kit.WithTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, schema)
		return err
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return kit.WithTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) Load(ctx context.Context) (Catalog, error) {
	var out Catalog
	err := kit.WithTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		var err error
		out, err = loadRows(ctx, s.db)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Mutate(ctx context.Context, fn func(Catalog) (Catalog, error)) error {
	return kit.WithTimeout(ctx, mutateTimeout, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		// Self-conflicting lock: plain reads go on, writers queue.
		if _, err := tx.ExecContext(ctx, `LOCK TABLE products IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("lock catalog: %w", err)
		}

		cur, err := loadRows(ctx, tx)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		next, err := fn(cur)
		if err != nil {
			return err
		}

		if err := replaceRows(ctx, tx, next); err != nil {
			return fmt.Errorf("replace catalog: %w", err)
		}
		return tx.Commit()
	})
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func loadRows(ctx context.Context, q querier) (Catalog, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, price, description
		FROM products
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(Catalog, 0, 16)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func replaceRows(ctx context.Context, tx *sql.Tx, c Catalog) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (id, position, name, price, description)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range c {
		if _, err := stmt.ExecContext(ctx, p.ID, i, p.Name, p.Price, p.Description); err != nil {
			return err
		}
	}
	return nil
}
