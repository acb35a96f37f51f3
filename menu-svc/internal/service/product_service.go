package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"overcooked-storefront/menu-svc/internal/domain"
	"overcooked-storefront/pkg/logx"

	"github.com/google/uuid"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type ProductService struct {
	repo   ProductRepository
	images ImageStore
}

func NewProductService(repo ProductRepository, images ImageStore) *ProductService {
	return &ProductService{repo: repo, images: images}
}

func (s *ProductService) Create(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	logx.Info().Str("product_id", p.ID).Str("category", p.Category).Msg("product created")
	return nil
}

func (s *ProductService) List(ctx context.Context, category string) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx, strings.TrimSpace(category))
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *ProductService) Update(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	return s.repo.UpdateProduct(ctx, p)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	rows, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// UploadImage stores an image for the product and records its URL.
func (s *ProductService) UploadImage(ctx context.Context, id, filename, contentType string, src io.Reader) (string, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported image type %q", domain.ErrInvalidProduct, contentType)
	}
	if _, err := s.repo.GetProduct(ctx, id); err != nil {
		return "", err
	}

	// The stored extension always comes from the declared image type, never
	// from the client filename.
	imageURL, err := s.images.Save("product_"+id+ext, src)
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdateProductImage(ctx, id, imageURL); err != nil {
		return "", err
	}
	logx.Info().Str("product_id", id).Str("filename", filename).Str("url", imageURL).Msg("product image uploaded")
	return imageURL, nil
}

func (s *ProductService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func validateProduct(p *domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidProduct)
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("%w: category is required", domain.ErrInvalidProduct)
	}
	if !p.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", domain.ErrInvalidProduct)
	}
	return nil
}
