package service

import (
	"context"
	"time"

	"overcooked-storefront/admin-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserRole(ctx context.Context, userID string) (string, error)
	CreateUser(ctx context.Context, u *domain.User) error
}

type SessionStore interface {
	Create(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

type OrderRepository interface {
	SaveOrder(ctx context.Context, msg domain.OrderPlacedMessage) (bool, error)
	RecentOrders(ctx context.Context, limit int) ([]domain.Order, error)
	RevenueSince(ctx context.Context, since time.Time, loc *time.Location) ([]domain.DailyRevenue, error)
	TopProducts(ctx context.Context, limit int) ([]domain.ProductSales, error)
	Totals(ctx context.Context) (decimal.Decimal, int64, error)
}

type Aggregates interface {
	RecordOrder(ctx context.Context, date string, msg domain.OrderPlacedMessage) error
	DailyRevenue(ctx context.Context, dates []string) ([]domain.DailyRevenue, []string, error)
	TopProducts(ctx context.Context, limit int) ([]domain.ProductSales, error)
	Totals(ctx context.Context) (decimal.Decimal, int64, bool, error)
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type AuthServiceInterface interface {
	SignIn(ctx context.Context, email, password string) (*domain.SessionView, error)
	SignOut(ctx context.Context, token string) error
	Session(ctx context.Context, token string) (*domain.SessionView, error)
}

type DashboardServiceInterface interface {
	Dashboard(ctx context.Context, days int) (*domain.Dashboard, error)
	RecentOrders(ctx context.Context, limit int) ([]domain.Order, error)
}

var (
	_ AuthServiceInterface      = (*AuthService)(nil)
	_ DashboardServiceInterface = (*DashboardService)(nil)
	_ MessageReader             = (*kafka.Reader)(nil)
)
