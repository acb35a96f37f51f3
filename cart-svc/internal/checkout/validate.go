package checkout

import (
	"strings"

	"overcooked-storefront/cart-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	FieldName         = "name"
	FieldAddress      = "address"
	FieldChangeAmount = "changeAmount"
	FieldDelivery     = "deliveryOption"
	FieldPayment      = "paymentMethod"
)

// Validate checks the form against the cart subtotal and returns field-level
// messages. An empty map means the form can be submitted.
func Validate(form domain.CheckoutForm, subtotal decimal.Decimal) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(form.Name) == "" {
		errs[FieldName] = "Nome é obrigatório"
	}

	switch form.Delivery {
	case domain.Pickup:
	case domain.Delivery:
		if strings.TrimSpace(form.Address) == "" {
			errs[FieldAddress] = "Endereço é obrigatório para entrega"
		}
	default:
		errs[FieldDelivery] = "Opção de entrega inválida"
	}

	switch form.Payment {
	case domain.PaymentPix:
	case domain.PaymentCash:
		if form.ChangeNeeded && form.ChangeAmount.LessThanOrEqual(subtotal) {
			errs[FieldChangeAmount] = "Valor para troco deve ser maior que o total"
		}
	default:
		errs[FieldPayment] = "Forma de pagamento inválida"
	}

	return errs
}
