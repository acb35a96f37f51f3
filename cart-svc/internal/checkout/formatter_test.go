package checkout_test

import (
	"net/url"
	"strings"
	"testing"

	"overcooked-storefront/cart-svc/internal/checkout"
	"overcooked-storefront/cart-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLines() []domain.CartLine {
	return []domain.CartLine{
		{Product: domain.Product{ID: "burger", Name: "Burger", Price: decimal.RequireFromString("28.90")}, Quantity: 2, Note: "sem cebola"},
		{Product: domain.Product{ID: "soda", Name: "Soda", Price: decimal.RequireFromString("6.00")}, Quantity: 1},
	}
}

var subtotal = decimal.RequireFromString("63.80")

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"63.8", "R$ 63,80"},
		{"6.2", "R$ 6,20"},
		{"0", "R$ 0,00"},
	}
	for _, testCase := range tests {
		t.Run(testCase.in, func(t *testing.T) {
			assert.Equal(t, testCase.want, checkout.FormatCurrency(decimal.RequireFromString(testCase.in)))
		})
	}
}

func TestMessage_PickupPix(t *testing.T) {
	form := domain.CheckoutForm{Name: "Maria", Delivery: domain.Pickup, Payment: domain.PaymentPix}

	msg := checkout.Message(checkout.ItemsFromCart(sampleLines()), form, subtotal)

	assert.Contains(t, msg, "*Nome do cliente:* Maria")
	assert.Contains(t, msg, "*Tipo:* Retirada")
	assert.Contains(t, msg, "• 2x Burger - R$ 57,80")
	assert.Contains(t, msg, "   _Obs: sem cebola_")
	assert.Contains(t, msg, "• 1x Soda - R$ 6,00")
	assert.Contains(t, msg, "*Método:* PIX")
	assert.Contains(t, msg, "*TOTAL: R$ 63,80*")
	assert.NotContains(t, msg, "Endereço")
	assert.NotContains(t, msg, "Troco")
	assert.Equal(t, 1, strings.Count(msg, "_Obs:"))
}

func TestMessage_DeliveryCashWithChange(t *testing.T) {
	form := domain.CheckoutForm{
		Name:         "João",
		Delivery:     domain.Delivery,
		Address:      "Rua das Flores, 10",
		Payment:      domain.PaymentCash,
		ChangeNeeded: true,
		ChangeAmount: decimal.RequireFromString("70.00"),
	}

	msg := checkout.Message(checkout.ItemsFromCart(sampleLines()), form, subtotal)

	assert.Contains(t, msg, "*Tipo:* Entrega")
	assert.Contains(t, msg, "*Endereço:* Rua das Flores, 10")
	assert.Contains(t, msg, "*Método:* Dinheiro")
	assert.Contains(t, msg, "*Troco para:* R$ 70,00")
	assert.Contains(t, msg, "*Troco a ser dado:* R$ 6,20")
}

func TestMessage_CashWithoutChange(t *testing.T) {
	form := domain.CheckoutForm{Name: "Ana", Delivery: domain.Pickup, Payment: domain.PaymentCash}

	msg := checkout.Message(checkout.ItemsFromCart(sampleLines()), form, subtotal)

	assert.Contains(t, msg, "*Método:* Dinheiro")
	assert.NotContains(t, msg, "Troco")
}

func TestChangeDue(t *testing.T) {
	form := domain.CheckoutForm{Payment: domain.PaymentCash, ChangeNeeded: true, ChangeAmount: decimal.RequireFromString("70.00")}

	change, ok := form.ChangeDue(subtotal)
	require.True(t, ok)
	assert.True(t, change.Equal(decimal.RequireFromString("6.20")), "change %s", change)

	form.Payment = domain.PaymentPix
	_, ok = form.ChangeDue(subtotal)
	assert.False(t, ok)
}

func TestEncodeMessage(t *testing.T) {
	encoded := checkout.EncodeMessage("2x Burger & Soda\n*TOTAL*")

	assert.Equal(t, "2x%20Burger%20%26%20Soda%0A*TOTAL*", encoded)
	decoded, err := url.PathUnescape(encoded)
	require.NoError(t, err)
	assert.Equal(t, "2x Burger & Soda\n*TOTAL*", decoded)
}

func TestEncodeMessage_MatchesEncodeURIComponent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "rfc 3986 marks kept", in: "*a* (b)! ~'", want: "*a*%20(b)!%20~'"},
		{name: "reserved escaped", in: "a+b=c/d?e#f", want: "a%2Bb%3Dc%2Fd%3Fe%23f"},
		{name: "accents as utf-8", in: "Endereço", want: "Endere%C3%A7o"},
		{name: "currency", in: "R$ 63,80", want: "R%24%2063%2C80"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, checkout.EncodeMessage(testCase.in))
		})
	}
}

func TestLink(t *testing.T) {
	form := domain.CheckoutForm{Name: "Maria", Delivery: domain.Pickup, Payment: domain.PaymentPix}
	items := checkout.ItemsFromCart(sampleLines())

	link := checkout.Link("+55 (11) 99876-5432", items, form, subtotal)

	require.True(t, strings.HasPrefix(link, "https://wa.me/5511998765432?text="), link)
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, checkout.Message(items, form, subtotal), parsed.Query().Get("text"))
}

func TestPhoneDigits(t *testing.T) {
	assert.Equal(t, "5511998765432", checkout.PhoneDigits("+55 11 99876-5432"))
	assert.Equal(t, "", checkout.PhoneDigits("n/a"))
}
