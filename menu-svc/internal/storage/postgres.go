package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"overcooked-storefront/menu-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT,
			price       NUMERIC(10,2) NOT NULL,
			category    TEXT NOT NULL,
			image_url   TEXT,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		"CREATE INDEX IF NOT EXISTS products_category_idx ON products (category)",
	}

	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

func (r *PostgresRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO products (id, name, description, price, category, image_url) VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at",
		p.ID, p.Name, p.Description, p.Price, p.Category, p.Image,
	).Scan(&p.CreatedAt)
}

// ListProducts returns the menu ordered by category. An empty category
// returns every product.
func (r *PostgresRepository) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), price, category, COALESCE(image_url, ''), created_at
		FROM products
		WHERE $1 = '' OR category = $1
		ORDER BY category, name`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Image, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresRepository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(description, ''), price, category, COALESCE(image_url, ''), created_at
		FROM products
		WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Image, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	err := r.DB.QueryRowContext(ctx, `
		UPDATE products SET name=$1, description=$2, price=$3, category=$4
		WHERE id=$5
		RETURNING COALESCE(image_url, ''), created_at`,
		p.Name, p.Description, p.Price, p.Category, p.ID).
		Scan(&p.Image, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProductNotFound
	}
	return err
}

func (r *PostgresRepository) DeleteProduct(ctx context.Context, id string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) UpdateProductImage(ctx context.Context, id, imageURL string) error {
	result, err := r.DB.ExecContext(ctx, "UPDATE products SET image_url=$1 WHERE id=$2", imageURL, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT category, COUNT(*)
		FROM products
		GROUP BY category
		ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Name, &c.Products); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
