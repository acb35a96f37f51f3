package service

import (
	"context"
	"errors"
	"time"

	"overcooked-storefront/cart-svc/internal/checkout"
	"overcooked-storefront/cart-svc/internal/domain"
	"overcooked-storefront/pkg/logx"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrClosed    = errors.New("restaurant is closed")
)

// ValidationError carries field-level checkout form messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid checkout form"
}

type CheckoutService struct {
	carts     *CartService
	hours     OpeningHours
	publisher OrderPublisher
	qrEncoder QRGenerator
	phone     string
	pixKey    string
	now       func() time.Time
}

func NewCheckoutService(carts *CartService, hours OpeningHours, publisher OrderPublisher, qr QRGenerator, phone string) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		hours:     hours,
		publisher: publisher,
		qrEncoder: qr,
		phone:     phone,
		now:       time.Now,
	}
}

// WithClock replaces the time source used for the opening-hours gate.
func (s *CheckoutService) WithClock(now func() time.Time) *CheckoutService {
	s.now = now
	return s
}

// WithPixKey sets the restaurant PIX key returned for PIX orders.
func (s *CheckoutService) WithPixKey(key string) *CheckoutService {
	s.pixKey = key
	return s
}

func (s *CheckoutService) Hours() domain.HoursView {
	now := s.now()
	return domain.HoursView{
		Open:      s.hours.IsOpen(now),
		Status:    s.hours.Status(now),
		Timetable: s.hours.Timetable(),
	}
}

// Submit turns the cart into a WhatsApp order link and empties the cart.
func (s *CheckoutService) Submit(ctx context.Context, cartID string, form domain.CheckoutForm) (*domain.CheckoutResult, error) {
	store := s.carts.Open(ctx, cartID)
	lines := store.Items()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	now := s.now()
	if !s.hours.IsOpen(now) {
		return nil, ErrClosed
	}

	subtotal := store.Subtotal()
	if fields := checkout.Validate(form, subtotal); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	items := checkout.ItemsFromCart(lines)
	result := &domain.CheckoutResult{
		OrderID:     uuid.NewString(),
		WhatsAppURL: checkout.Link(s.phone, items, form, subtotal),
		Message:     checkout.Message(items, form, subtotal),
		Total:       subtotal,
	}
	if change, ok := form.ChangeDue(subtotal); ok {
		result.ChangeDue = &change
	}
	if form.Payment == domain.PaymentPix {
		result.PixKey = s.pixKey
	}

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(result.WhatsAppURL); err == nil {
			result.QRCode = qr
		} else {
			logx.Warn().Err(err).Str("order_id", result.OrderID).Msg("failed to generate order qr code")
		}
	}

	if s.publisher != nil {
		err := s.publisher.PublishOrder(ctx, domain.OrderPlacedMessage{
			Type:          "order_placed",
			OrderID:       result.OrderID,
			CustomerName:  form.Name,
			Delivery:      form.Delivery,
			PaymentMethod: form.Payment,
			Items:         items,
			Total:         subtotal,
			Timestamp:     now,
		})
		if err != nil {
			logx.Warn().Err(err).Str("order_id", result.OrderID).Msg("failed to publish order")
		}
	}

	if err := store.Clear(ctx); err != nil {
		return nil, err
	}

	logx.Info().Str("order_id", result.OrderID).Int("items", len(items)).Str("total", subtotal.StringFixed(2)).Msg("order handed off to whatsapp")
	return result, nil
}
