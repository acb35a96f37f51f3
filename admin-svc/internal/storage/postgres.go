package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"overcooked-storefront/admin-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'customer',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id              TEXT PRIMARY KEY,
			customer_name   TEXT NOT NULL,
			delivery_option TEXT NOT NULL,
			payment_method  TEXT NOT NULL,
			total           NUMERIC(10,2) NOT NULL,
			placed_at       TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_id   TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id TEXT NOT NULL,
			name       TEXT NOT NULL,
			price      NUMERIC(10,2) NOT NULL,
			quantity   INTEGER NOT NULL,
			note       TEXT
		)`,
		"CREATE INDEX IF NOT EXISTS orders_placed_at_idx ON orders (placed_at)",
	}

	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE email = $1`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) GetUserRole(ctx context.Context, userID string) (string, error) {
	var role string
	err := r.DB.QueryRowContext(ctx, "SELECT role FROM users WHERE id = $1", userID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrUserNotFound
	}
	return role, err
}

func (r *PostgresRepository) CreateUser(ctx context.Context, u *domain.User) error {
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO users (id, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING created_at",
		u.ID, u.Email, u.PasswordHash, u.Role,
	).Scan(&u.CreatedAt)
}

// SaveOrder stores an order with its items. It reports false when the order
// was already stored, so redelivered events are not counted twice.
func (r *PostgresRepository) SaveOrder(ctx context.Context, msg domain.OrderPlacedMessage) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_name, delivery_option, payment_method, total, placed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`,
		msg.OrderID, msg.CustomerName, msg.Delivery, msg.PaymentMethod, msg.Total, msg.Timestamp)
	if err != nil {
		return false, fmt.Errorf("insert order %s: %w", msg.OrderID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return false, nil
	}

	for _, item := range msg.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, price, quantity, note)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			msg.OrderID, item.ProductID, item.Name, item.Price, item.Quantity, item.Note); err != nil {
			return false, fmt.Errorf("insert order item %s: %w", item.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (r *PostgresRepository) RecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT o.id, o.customer_name, o.delivery_option, o.payment_method, o.total, o.placed_at,
			COALESCE(SUM(oi.quantity), 0)
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		GROUP BY o.id
		ORDER BY o.placed_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.Delivery, &o.PaymentMethod, &o.Total, &o.PlacedAt, &o.ItemCount); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// RevenueSince sums orders per calendar day in loc.
func (r *PostgresRepository) RevenueSince(ctx context.Context, since time.Time, loc *time.Location) ([]domain.DailyRevenue, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT to_char((placed_at AT TIME ZONE $2)::date, 'YYYY-MM-DD'), SUM(total), COUNT(*)
		FROM orders
		WHERE placed_at >= $1
		GROUP BY 1
		ORDER BY 1`, since, loc.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series []domain.DailyRevenue
	for rows.Next() {
		var d domain.DailyRevenue
		if err := rows.Scan(&d.Date, &d.Revenue, &d.Orders); err != nil {
			return nil, err
		}
		series = append(series, d)
	}
	return series, rows.Err()
}

func (r *PostgresRepository) TopProducts(ctx context.Context, limit int) ([]domain.ProductSales, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT product_id, MAX(name), SUM(quantity), SUM(price * quantity)
		FROM order_items
		GROUP BY product_id
		ORDER BY SUM(quantity) DESC, product_id
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []domain.ProductSales{}
	for rows.Next() {
		var p domain.ProductSales
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Quantity, &p.Revenue); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresRepository) Totals(ctx context.Context) (decimal.Decimal, int64, error) {
	var (
		revenue decimal.Decimal
		count   int64
	)
	err := r.DB.QueryRowContext(ctx, "SELECT COALESCE(SUM(total), 0), COUNT(*) FROM orders").Scan(&revenue, &count)
	return revenue, count, err
}
