package mocks

import (
	"context"
	"time"

	"overcooked-storefront/admin-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetUserRole(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *UserRepository) CreateUser(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) SaveOrder(ctx context.Context, msg domain.OrderPlacedMessage) (bool, error) {
	args := m.Called(ctx, msg)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepository) RecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	args := m.Called(ctx, limit)
	if orders, ok := args.Get(0).([]domain.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderRepository) RevenueSince(ctx context.Context, since time.Time, loc *time.Location) ([]domain.DailyRevenue, error) {
	args := m.Called(ctx, since, loc)
	if series, ok := args.Get(0).([]domain.DailyRevenue); ok {
		return series, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderRepository) TopProducts(ctx context.Context, limit int) ([]domain.ProductSales, error) {
	args := m.Called(ctx, limit)
	if products, ok := args.Get(0).([]domain.ProductSales); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderRepository) Totals(ctx context.Context) (decimal.Decimal, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Get(1).(int64), args.Error(2)
}
