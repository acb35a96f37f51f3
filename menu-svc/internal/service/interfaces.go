package service

import (
	"context"
	"io"

	"overcooked-storefront/menu-svc/internal/domain"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, p *domain.Product) error
	ListProducts(ctx context.Context, category string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) (int64, error)
	UpdateProductImage(ctx context.Context, id, imageURL string) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type ImageStore interface {
	Save(filename string, src io.Reader) (string, error)
}

type ProductServiceInterface interface {
	Create(ctx context.Context, p *domain.Product) error
	List(ctx context.Context, category string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, id, filename, contentType string, src io.Reader) (string, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

var _ ProductServiceInterface = (*ProductService)(nil)
