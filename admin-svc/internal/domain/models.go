package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const RoleAdmin = "admin"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrUserNotFound       = errors.New("user not found")
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is what is kept in Redis under the session token.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionView struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsAdmin   bool      `json:"is_admin"`
	ExpiresAt time.Time `json:"expires_at"`
}

type OrderItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Note      string          `json:"note,omitempty"`
}

// OrderPlacedMessage is the checkout event read from Kafka.
type OrderPlacedMessage struct {
	Type          string          `json:"type"`
	OrderID       string          `json:"order_id"`
	CustomerName  string          `json:"customer_name"`
	Delivery      string          `json:"delivery_option"`
	PaymentMethod string          `json:"payment_method"`
	Items         []OrderItem     `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Timestamp     time.Time       `json:"timestamp"`
}

type Order struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customer_name"`
	Delivery      string          `json:"delivery_option"`
	PaymentMethod string          `json:"payment_method"`
	Total         decimal.Decimal `json:"total"`
	ItemCount     int             `json:"item_count"`
	PlacedAt      time.Time       `json:"placed_at"`
}

type DailyRevenue struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int64           `json:"orders"`
}

type ProductSales struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type Dashboard struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	OrderCount   int64           `json:"order_count"`
	Revenue      []DailyRevenue  `json:"revenue"`
	TopProducts  []ProductSales  `json:"top_products"`
	RecentOrders []Order         `json:"recent_orders"`
}
