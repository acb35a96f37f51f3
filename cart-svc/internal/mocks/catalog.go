package mocks

import (
	"context"

	"overcooked-storefront/cart-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type ProductCatalog struct {
	mock.Mock
}

func (m *ProductCatalog) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if p, ok := args.Get(0).(*domain.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type OrderPublisher struct {
	mock.Mock
}

func (m *OrderPublisher) PublishOrder(ctx context.Context, msg domain.OrderPlacedMessage) error {
	return m.Called(ctx, msg).Error(0)
}

type QRGenerator struct {
	mock.Mock
}

func (m *QRGenerator) Generate(content string) ([]byte, error) {
	args := m.Called(content)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}
