package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"overcooked-storefront/cart-svc/internal/domain"
	"overcooked-storefront/pkg/logx"

	"github.com/shopspring/decimal"
)

// DefaultEntry is the storage entry used when no session id is known.
const DefaultEntry = "cart"

// EntryFor names the storage entry holding the cart of one session.
func EntryFor(cartID string) string {
	if cartID == "" {
		return DefaultEntry
	}
	return DefaultEntry + ":" + cartID
}

var ErrNotFound = errors.New("cart entry not found")

// Storage is durable key/value storage for serialized carts.
// Load returns ErrNotFound when the entry does not exist.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Remove(ctx context.Context, key string) error
}

// Store holds the lines of one cart and writes the whole collection back to
// storage after every mutation.
type Store struct {
	mu      sync.Mutex
	storage Storage
	key     string
	lines   []domain.CartLine
}

// Open rehydrates the cart stored under key. A missing, unreadable or
// corrupted entry yields an empty cart; corrupted entries are removed.
func Open(ctx context.Context, storage Storage, key string) *Store {
	s := &Store{storage: storage, key: key, lines: []domain.CartLine{}}

	data, err := storage.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logx.Warn().Err(err).Str("entry", key).Msg("failed to read stored cart, starting empty")
		}
		return s
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		logx.Warn().Err(err).Str("entry", key).Msg("failed to parse stored cart, discarding entry")
		if rmErr := storage.Remove(ctx, key); rmErr != nil {
			logx.Warn().Err(rmErr).Str("entry", key).Msg("failed to remove corrupted cart entry")
		}
		return s
	}
	if lines != nil {
		s.lines = lines
	}
	return s
}

func (s *Store) Key() string {
	return s.key
}

// AddItem increments the line for product by quantity, or appends a new line.
// A non-positive quantity is treated as the default of 1. The note replaces an
// existing note only when it is non-empty.
func (s *Store) AddItem(ctx context.Context, product domain.Product, quantity int, note string) error {
	if quantity <= 0 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(product.ID); i >= 0 {
		s.lines[i].Quantity += quantity
		if note != "" {
			s.lines[i].Note = note
		}
	} else {
		s.lines = append(s.lines, domain.CartLine{Product: product, Quantity: quantity, Note: note})
	}
	return s.persist(ctx)
}

func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(ctx, productID)
}

// UpdateQuantity sets the quantity of a line. Zero or less removes it.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.remove(ctx, productID)
	}
	if i := s.indexOf(productID); i >= 0 {
		s.lines[i].Quantity = quantity
	}
	return s.persist(ctx)
}

func (s *Store) UpdateNote(ctx context.Context, productID, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(productID); i >= 0 {
		s.lines[i].Note = note
	}
	return s.persist(ctx)
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = []domain.CartLine{}
	return s.persist(ctx)
}

// Items returns a copy of the current lines.
func (s *Store) Items() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.CartLine, len(s.lines))
	copy(items, s.lines)
	return items
}

func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Total())
	}
	return total
}

func (s *Store) View() domain.CartView {
	return domain.CartView{
		Items:     s.Items(),
		ItemCount: s.ItemCount(),
		Subtotal:  s.Subtotal(),
	}
}

func (s *Store) remove(ctx context.Context, productID string) error {
	if i := s.indexOf(productID); i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
	return s.persist(ctx)
}

func (s *Store) indexOf(productID string) int {
	for i, line := range s.lines {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.storage.Save(ctx, s.key, data); err != nil {
		return fmt.Errorf("save cart %q: %w", s.key, err)
	}
	return nil
}
