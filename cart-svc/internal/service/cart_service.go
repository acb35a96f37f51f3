package service

import (
	"context"

	"overcooked-storefront/cart-svc/internal/cart"
	"overcooked-storefront/cart-svc/internal/domain"
)

// CartService opens the cart belonging to a session and applies one
// mutation to it.
type CartService struct {
	storage cart.Storage
	catalog ProductCatalog
}

func NewCartService(storage cart.Storage, catalog ProductCatalog) *CartService {
	return &CartService{storage: storage, catalog: catalog}
}

func (s *CartService) Open(ctx context.Context, cartID string) *cart.Store {
	return cart.Open(ctx, s.storage, cart.EntryFor(cartID))
}

func (s *CartService) View(ctx context.Context, cartID string) domain.CartView {
	return s.Open(ctx, cartID).View()
}

func (s *CartService) Add(ctx context.Context, cartID, productID string, quantity int, note string) (domain.CartView, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return domain.CartView{}, err
	}
	store := s.Open(ctx, cartID)
	if err := store.AddItem(ctx, *product, quantity, note); err != nil {
		return domain.CartView{}, err
	}
	return store.View(), nil
}

func (s *CartService) Remove(ctx context.Context, cartID, productID string) (domain.CartView, error) {
	store := s.Open(ctx, cartID)
	if err := store.RemoveItem(ctx, productID); err != nil {
		return domain.CartView{}, err
	}
	return store.View(), nil
}

func (s *CartService) SetQuantity(ctx context.Context, cartID, productID string, quantity int) (domain.CartView, error) {
	store := s.Open(ctx, cartID)
	if err := store.UpdateQuantity(ctx, productID, quantity); err != nil {
		return domain.CartView{}, err
	}
	return store.View(), nil
}

func (s *CartService) SetNote(ctx context.Context, cartID, productID, note string) (domain.CartView, error) {
	store := s.Open(ctx, cartID)
	if err := store.UpdateNote(ctx, productID, note); err != nil {
		return domain.CartView{}, err
	}
	return store.View(), nil
}

func (s *CartService) Clear(ctx context.Context, cartID string) (domain.CartView, error) {
	store := s.Open(ctx, cartID)
	if err := store.Clear(ctx); err != nil {
		return domain.CartView{}, err
	}
	return store.View(), nil
}
