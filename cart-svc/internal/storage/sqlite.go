package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"overcooked-storefront/cart-svc/internal/cart"

	"github.com/jmoiron/sqlx"
)

// SQLiteStorage keeps cart entries in a local key/value table.
type SQLiteStorage struct {
	DB *sqlx.DB
}

func NewSQLiteStorage(db *sqlx.DB) *SQLiteStorage {
	return &SQLiteStorage{DB: db}
}

func (s *SQLiteStorage) EnsureSchema(ctx context.Context) error {
	const q = `
		CREATE TABLE IF NOT EXISTS cart_entries (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	if _, err := s.DB.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("ensure cart_entries table: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Load(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.DB.GetContext(ctx, &value, `SELECT value FROM cart_entries WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, cart.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load cart entry %q: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLiteStorage) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO cart_entries (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(data))
	if err != nil {
		return fmt.Errorf("save cart entry %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStorage) Remove(ctx context.Context, key string) error {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM cart_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove cart entry %q: %w", key, err)
	}
	return nil
}

var _ cart.Storage = (*SQLiteStorage)(nil)
