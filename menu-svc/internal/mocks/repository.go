package mocks

import (
	"context"
	"io"

	"overcooked-storefront/menu-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *ProductRepository) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	args := m.Called(ctx, category)
	if products, ok := args.Get(0).([]domain.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProductRepository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProductRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *ProductRepository) DeleteProduct(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepository) UpdateProductImage(ctx context.Context, id, imageURL string) error {
	return m.Called(ctx, id, imageURL).Error(0)
}

func (m *ProductRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if categories, ok := args.Get(0).([]domain.Category); ok {
		return categories, args.Error(1)
	}
	return nil, args.Error(1)
}

type ImageStore struct {
	mock.Mock
}

func (m *ImageStore) Save(filename string, src io.Reader) (string, error) {
	args := m.Called(filename, src)
	return args.String(0), args.Error(1)
}
