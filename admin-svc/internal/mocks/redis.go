package mocks

import (
	"context"

	"overcooked-storefront/admin-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) Create(ctx context.Context, session domain.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *SessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if s, ok := args.Get(0).(*domain.Session); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionStore) Delete(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type Aggregates struct {
	mock.Mock
}

func (m *Aggregates) RecordOrder(ctx context.Context, date string, msg domain.OrderPlacedMessage) error {
	return m.Called(ctx, date, msg).Error(0)
}

func (m *Aggregates) DailyRevenue(ctx context.Context, dates []string) ([]domain.DailyRevenue, []string, error) {
	args := m.Called(ctx, dates)
	series, _ := args.Get(0).([]domain.DailyRevenue)
	missing, _ := args.Get(1).([]string)
	return series, missing, args.Error(2)
}

func (m *Aggregates) TopProducts(ctx context.Context, limit int) ([]domain.ProductSales, error) {
	args := m.Called(ctx, limit)
	products, _ := args.Get(0).([]domain.ProductSales)
	return products, args.Error(1)
}

func (m *Aggregates) Totals(ctx context.Context) (decimal.Decimal, int64, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Get(1).(int64), args.Bool(2), args.Error(3)
}
