package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
}

// CartLine is one product entry in the cart. A cart holds at most one line
// per product id.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Note     string  `json:"note,omitempty"`
}

// Total is price times quantity for the line.
func (l CartLine) Total() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type CartView struct {
	Items     []CartLine      `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type DeliveryMode string

const (
	Pickup   DeliveryMode = "pickup"
	Delivery DeliveryMode = "delivery"
)

type PaymentMethod string

const (
	PaymentPix  PaymentMethod = "pix"
	PaymentCash PaymentMethod = "cash"
)

type CheckoutForm struct {
	Name         string          `json:"name"`
	Delivery     DeliveryMode    `json:"delivery_option"`
	Address      string          `json:"address,omitempty"`
	Payment      PaymentMethod   `json:"payment_method"`
	ChangeNeeded bool            `json:"change_needed"`
	ChangeAmount decimal.Decimal `json:"change_amount"`
}

// ChangeDue is the amount handed back to a cash customer. The second result
// is false when no change was requested.
func (f CheckoutForm) ChangeDue(subtotal decimal.Decimal) (decimal.Decimal, bool) {
	if f.Payment != PaymentCash || !f.ChangeNeeded || !f.ChangeAmount.IsPositive() {
		return decimal.Zero, false
	}
	return f.ChangeAmount.Sub(subtotal), true
}

type CheckoutResult struct {
	OrderID     string           `json:"order_id"`
	WhatsAppURL string           `json:"whatsapp_url"`
	Message     string           `json:"message"`
	Total       decimal.Decimal  `json:"total"`
	ChangeDue   *decimal.Decimal `json:"change_due,omitempty"`
	QRCode      []byte           `json:"qr_code,omitempty"`
	PixKey      string           `json:"pix_key,omitempty"`
}

type OrderItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Note      string          `json:"note,omitempty"`
}

type OrderPlacedMessage struct {
	Type          string          `json:"type"`
	OrderID       string          `json:"order_id"`
	CustomerName  string          `json:"customer_name"`
	Delivery      DeliveryMode    `json:"delivery_option"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Items         []OrderItem     `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Timestamp     time.Time       `json:"timestamp"`
}

type HoursView struct {
	Open      bool              `json:"is_open"`
	Status    string            `json:"status"`
	Timetable map[string]string `json:"opening_hours"`
}
