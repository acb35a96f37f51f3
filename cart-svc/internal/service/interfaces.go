package service

import (
	"context"
	"time"

	"overcooked-storefront/cart-svc/internal/domain"
)

type ProductCatalog interface {
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
}

type OrderPublisher interface {
	PublishOrder(ctx context.Context, msg domain.OrderPlacedMessage) error
}

type QRGenerator interface {
	Generate(content string) ([]byte, error)
}

type OpeningHours interface {
	IsOpen(t time.Time) bool
	Status(t time.Time) string
	Timetable() map[string]string
}

type CartServiceInterface interface {
	View(ctx context.Context, cartID string) domain.CartView
	Add(ctx context.Context, cartID, productID string, quantity int, note string) (domain.CartView, error)
	Remove(ctx context.Context, cartID, productID string) (domain.CartView, error)
	SetQuantity(ctx context.Context, cartID, productID string, quantity int) (domain.CartView, error)
	SetNote(ctx context.Context, cartID, productID, note string) (domain.CartView, error)
	Clear(ctx context.Context, cartID string) (domain.CartView, error)
}

type CheckoutServiceInterface interface {
	Submit(ctx context.Context, cartID string, form domain.CheckoutForm) (*domain.CheckoutResult, error)
	Hours() domain.HoursView
}

var (
	_ CartServiceInterface     = (*CartService)(nil)
	_ CheckoutServiceInterface = (*CheckoutService)(nil)
)
