package checkout

import (
	"strconv"
	"strings"

	"overcooked-storefront/cart-svc/internal/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const whatsAppBaseURL = "https://wa.me/"

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatCurrency renders v as Brazilian Real, e.g. "R$ 1.234,50".
func FormatCurrency(v decimal.Decimal) string {
	return "R$ " + brl.Sprint(number.Decimal(v.Round(2).InexactFloat64(), number.Scale(2)))
}

// ItemsFromCart snapshots cart lines into order items.
func ItemsFromCart(lines []domain.CartLine) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
			Note:      line.Note,
		})
	}
	return items
}

// Message renders the human-readable order sent to the restaurant.
func Message(items []domain.OrderItem, form domain.CheckoutForm, subtotal decimal.Decimal) string {
	var b strings.Builder

	b.WriteString("🍽️ *NOVO PEDIDO* 🍽️\n\n")
	b.WriteString("*Nome do cliente:* " + form.Name + "\n")

	if form.Delivery == domain.Delivery && strings.TrimSpace(form.Address) != "" {
		b.WriteString("*Tipo:* Entrega\n")
		b.WriteString("*Endereço:* " + form.Address + "\n\n")
	} else {
		b.WriteString("*Tipo:* Retirada\n\n")
	}

	b.WriteString("*ITENS DO PEDIDO:*\n")
	for _, item := range items {
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		b.WriteString("• " + strconv.Itoa(item.Quantity) + "x " + item.Name + " - " + FormatCurrency(lineTotal) + "\n")
		if item.Note != "" {
			b.WriteString("   _Obs: " + item.Note + "_\n")
		}
	}

	b.WriteString("\n*PAGAMENTO:*\n")
	if form.Payment == domain.PaymentPix {
		b.WriteString("*Método:* PIX\n")
	} else {
		b.WriteString("*Método:* Dinheiro\n")
	}

	if change, ok := form.ChangeDue(subtotal); ok {
		b.WriteString("*Troco para:* " + FormatCurrency(form.ChangeAmount) + "\n")
		b.WriteString("*Troco a ser dado:* " + FormatCurrency(change) + "\n")
	}

	b.WriteString("\n*TOTAL: " + FormatCurrency(subtotal) + "*")
	return b.String()
}

const upperHex = "0123456789ABCDEF"

// EncodeMessage percent-encodes text byte by byte the way browsers'
// encodeURIComponent does: letters, digits and -_.!~*'() pass through.
func EncodeMessage(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if passesUnescaped(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

func passesUnescaped(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// PhoneDigits strips everything but digits from a phone number.
func PhoneDigits(phone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
}

// Link builds the WhatsApp deep link carrying the encoded order message.
func Link(phone string, items []domain.OrderItem, form domain.CheckoutForm, subtotal decimal.Decimal) string {
	return whatsAppBaseURL + PhoneDigits(phone) + "?text=" + EncodeMessage(Message(items, form, subtotal))
}
