package tests

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"overcooked-storefront/cart-svc/internal/domain"
	"overcooked-storefront/cart-svc/internal/hours"
	"overcooked-storefront/cart-svc/internal/mocks"
	"overcooked-storefront/cart-svc/internal/service"
	"overcooked-storefront/cart-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	burger = &domain.Product{ID: "burger", Name: "Burger", Price: decimal.RequireFromString("28.90"), Category: "Hambúrgueres"}
	soda   = &domain.Product{ID: "soda", Name: "Soda", Price: decimal.RequireFromString("6.00"), Category: "Bebidas"}

	// Monday, inside the 11:00-22:00 window.
	lunchTime = time.Date(2025, time.May, 5, 12, 30, 0, 0, time.UTC)
	// Monday, after closing.
	lateNight = time.Date(2025, time.May, 5, 23, 15, 0, 0, time.UTC)
)

func newCartService(t *testing.T, catalog service.ProductCatalog) *service.CartService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return service.NewCartService(storage.NewRedisStorage(client, time.Hour), catalog)
}

func TestCartService_Add(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		mockProd  *domain.Product
		mockError error
		wantErr   error
		wantCount int
	}{
		{
			name:      "product found",
			productID: "burger",
			mockProd:  burger,
			wantCount: 2,
		},
		{
			name:      "product not found",
			productID: "ghost",
			mockError: domain.ErrProductNotFound,
			wantErr:   domain.ErrProductNotFound,
		},
		{
			name:      "catalog unavailable",
			productID: "burger",
			mockError: errors.New("connection refused"),
			wantErr:   errors.New("connection refused"),
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			catalog := new(mocks.ProductCatalog)
			svc := newCartService(t, catalog)

			catalog.On("GetProduct", mock.Anything, testCase.productID).Return(testCase.mockProd, testCase.mockError).Once()

			view, err := svc.Add(context.Background(), "session-1", testCase.productID, 2, "")

			if testCase.wantErr != nil {
				assert.EqualError(t, err, testCase.wantErr.Error())
			} else {
				require.NoError(t, err)
				assert.Equal(t, testCase.wantCount, view.ItemCount)
			}
			catalog.AssertExpectations(t)
		})
	}
}

func TestCartService_SessionsAreIsolated(t *testing.T) {
	catalog := new(mocks.ProductCatalog)
	catalog.On("GetProduct", mock.Anything, "burger").Return(burger, nil)
	catalog.On("GetProduct", mock.Anything, "soda").Return(soda, nil)
	svc := newCartService(t, catalog)
	ctx := context.Background()

	_, err := svc.Add(ctx, "alice", "burger", 2, "sem cebola")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "bob", "soda", 1, "")
	require.NoError(t, err)

	alice := svc.View(ctx, "alice")
	bob := svc.View(ctx, "bob")

	assert.Equal(t, 2, alice.ItemCount)
	assert.Equal(t, "sem cebola", alice.Items[0].Note)
	assert.Equal(t, 1, bob.ItemCount)
	assert.True(t, bob.Subtotal.Equal(decimal.RequireFromString("6")))
}

func TestCartService_Mutations(t *testing.T) {
	catalog := new(mocks.ProductCatalog)
	catalog.On("GetProduct", mock.Anything, "burger").Return(burger, nil)
	catalog.On("GetProduct", mock.Anything, "soda").Return(soda, nil)
	svc := newCartService(t, catalog)
	ctx := context.Background()

	_, err := svc.Add(ctx, "s", "burger", 1, "")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s", "soda", 1, "")
	require.NoError(t, err)

	view, err := svc.SetQuantity(ctx, "s", "burger", 4)
	require.NoError(t, err)
	assert.Equal(t, 5, view.ItemCount)

	view, err = svc.SetNote(ctx, "s", "soda", "gelada")
	require.NoError(t, err)
	assert.Equal(t, "gelada", view.Items[1].Note)

	view, err = svc.SetQuantity(ctx, "s", "soda", 0)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)

	view, err = svc.Remove(ctx, "s", "burger")
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	_, err = svc.Add(ctx, "s", "soda", 3, "")
	require.NoError(t, err)
	view, err = svc.Clear(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 0, view.ItemCount)
	assert.Empty(t, svc.View(ctx, "s").Items)
}

func TestCartService_StorageFailure(t *testing.T) {
	catalog := new(mocks.ProductCatalog)
	catalog.On("GetProduct", mock.Anything, "burger").Return(burger, nil).Once()

	store := new(mocks.CartStorage)
	store.On("Load", mock.Anything, "cart:s").Return(nil, errors.New("redis down")).Once()
	store.On("Save", mock.Anything, "cart:s", mock.Anything).Return(errors.New("redis down")).Once()

	svc := service.NewCartService(store, catalog)
	_, err := svc.Add(context.Background(), "s", "burger", 1, "")

	assert.Error(t, err)
	store.AssertExpectations(t)
	catalog.AssertExpectations(t)
}

func fillCart(t *testing.T, svc *service.CartService, cartID string) {
	t.Helper()
	ctx := context.Background()
	_, err := svc.Add(ctx, cartID, "burger", 2, "sem cebola")
	require.NoError(t, err)
	_, err = svc.Add(ctx, cartID, "soda", 1, "")
	require.NoError(t, err)
}

func newCatalog() *mocks.ProductCatalog {
	catalog := new(mocks.ProductCatalog)
	catalog.On("GetProduct", mock.Anything, "burger").Return(burger, nil)
	catalog.On("GetProduct", mock.Anything, "soda").Return(soda, nil)
	return catalog
}

func TestCheckoutService_Submit(t *testing.T) {
	validPix := domain.CheckoutForm{Name: "Maria", Delivery: domain.Pickup, Payment: domain.PaymentPix}

	tests := []struct {
		name       string
		fill       bool
		now        time.Time
		form       domain.CheckoutForm
		wantErr    error
		wantFields []string
	}{
		{
			name:    "empty cart",
			now:     lunchTime,
			form:    validPix,
			wantErr: service.ErrEmptyCart,
		},
		{
			name:    "restaurant closed",
			fill:    true,
			now:     lateNight,
			form:    validPix,
			wantErr: service.ErrClosed,
		},
		{
			name:       "missing name and address",
			fill:       true,
			now:        lunchTime,
			form:       domain.CheckoutForm{Delivery: domain.Delivery, Payment: domain.PaymentPix},
			wantFields: []string{"name", "address"},
		},
		{
			name: "change below total",
			fill: true,
			now:  lunchTime,
			form: domain.CheckoutForm{
				Name: "João", Delivery: domain.Pickup, Payment: domain.PaymentCash,
				ChangeNeeded: true, ChangeAmount: decimal.RequireFromString("50"),
			},
			wantFields: []string{"changeAmount"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			carts := newCartService(t, newCatalog())
			if testCase.fill {
				fillCart(t, carts, "s")
			}
			publisher := new(mocks.OrderPublisher)
			svc := service.NewCheckoutService(carts, hours.DefaultSchedule(time.UTC), publisher, nil, "+55 (11) 99876-5432").
				WithClock(func() time.Time { return testCase.now })

			result, err := svc.Submit(context.Background(), "s", testCase.form)

			assert.Nil(t, result)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			} else {
				var validation *service.ValidationError
				require.ErrorAs(t, err, &validation)
				for _, field := range testCase.wantFields {
					assert.Contains(t, validation.Fields, field)
				}
				assert.Len(t, validation.Fields, len(testCase.wantFields))
			}
			if testCase.fill {
				assert.Equal(t, 3, carts.View(context.Background(), "s").ItemCount, "failed checkout keeps the cart")
			}
			publisher.AssertNotCalled(t, "PublishOrder", mock.Anything, mock.Anything)
		})
	}
}

func TestCheckoutService_SubmitSuccess(t *testing.T) {
	ctx := context.Background()
	carts := newCartService(t, newCatalog())
	fillCart(t, carts, "s")

	publisher := new(mocks.OrderPublisher)
	publisher.On("PublishOrder", mock.Anything, mock.MatchedBy(func(msg domain.OrderPlacedMessage) bool {
		return msg.Type == "order_placed" &&
			msg.CustomerName == "João" &&
			len(msg.Items) == 2 &&
			msg.Total.Equal(decimal.RequireFromString("63.80")) &&
			msg.Timestamp.Equal(lunchTime)
	})).Return(nil).Once()

	qr := new(mocks.QRGenerator)
	qr.On("Generate", mock.MatchedBy(func(content string) bool {
		return strings.HasPrefix(content, "https://wa.me/5511998765432?text=")
	})).Return([]byte("png"), nil).Once()

	svc := service.NewCheckoutService(carts, hours.DefaultSchedule(time.UTC), publisher, qr, "+55 (11) 99876-5432").
		WithClock(func() time.Time { return lunchTime })

	result, err := svc.Submit(ctx, "s", domain.CheckoutForm{
		Name:         "João",
		Delivery:     domain.Delivery,
		Address:      "Rua das Flores, 123",
		Payment:      domain.PaymentCash,
		ChangeNeeded: true,
		ChangeAmount: decimal.RequireFromString("70.00"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.OrderID)
	assert.True(t, strings.HasPrefix(result.WhatsAppURL, "https://wa.me/5511998765432?text="))
	assert.Contains(t, result.Message, "*Endereço:* Rua das Flores, 123")
	assert.Contains(t, result.Message, "2x Burger - R$ 57,80")
	assert.True(t, result.Total.Equal(decimal.RequireFromString("63.80")))
	require.NotNil(t, result.ChangeDue)
	assert.True(t, result.ChangeDue.Equal(decimal.RequireFromString("6.20")))
	assert.Equal(t, []byte("png"), result.QRCode)

	assert.Empty(t, carts.View(ctx, "s").Items, "checkout clears the cart")
	publisher.AssertExpectations(t)
	qr.AssertExpectations(t)
}

func TestCheckoutService_SubmitSurvivesPublishFailure(t *testing.T) {
	carts := newCartService(t, newCatalog())
	fillCart(t, carts, "s")

	publisher := new(mocks.OrderPublisher)
	publisher.On("PublishOrder", mock.Anything, mock.Anything).Return(errors.New("broker unavailable")).Once()

	svc := service.NewCheckoutService(carts, hours.DefaultSchedule(time.UTC), publisher, nil, "5511998765432").
		WithClock(func() time.Time { return lunchTime })

	result, err := svc.Submit(context.Background(), "s", domain.CheckoutForm{Name: "Maria", Delivery: domain.Pickup, Payment: domain.PaymentPix})
	require.NoError(t, err)
	assert.Nil(t, result.ChangeDue)
	assert.Nil(t, result.QRCode)
	publisher.AssertExpectations(t)
}

func TestCheckoutService_SubmitPixKey(t *testing.T) {
	tests := []struct {
		name    string
		form    domain.CheckoutForm
		wantKey string
	}{
		{
			name:    "pix order carries key",
			form:    domain.CheckoutForm{Name: "Maria", Delivery: domain.Pickup, Payment: domain.PaymentPix},
			wantKey: "11998765432",
		},
		{
			name: "cash order omits key",
			form: domain.CheckoutForm{Name: "Maria", Delivery: domain.Pickup, Payment: domain.PaymentCash},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			carts := newCartService(t, newCatalog())
			fillCart(t, carts, "s")

			svc := service.NewCheckoutService(carts, hours.DefaultSchedule(time.UTC), nil, nil, "5511998765432").
				WithClock(func() time.Time { return lunchTime }).
				WithPixKey("11998765432")

			result, err := svc.Submit(context.Background(), "s", testCase.form)
			require.NoError(t, err)
			assert.Equal(t, testCase.wantKey, result.PixKey)
		})
	}
}

func TestCheckoutService_Hours(t *testing.T) {
	svc := service.NewCheckoutService(nil, hours.DefaultSchedule(time.UTC), nil, nil, "")

	open := svc.WithClock(func() time.Time { return lunchTime }).Hours()
	assert.True(t, open.Open)
	assert.Equal(t, hours.StatusOpen, open.Status)
	assert.Len(t, open.Timetable, 7)

	closed := svc.WithClock(func() time.Time { return lateNight }).Hours()
	assert.False(t, closed.Open)
	assert.Equal(t, hours.StatusClosed, closed.Status)
}
