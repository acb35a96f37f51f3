package storage_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"overcooked-storefront/cart-svc/internal/domain"
	"overcooked-storefront/cart-svc/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogClient_GetProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/products/burger":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"burger","name":"Burger","price":"28.90","category":"Hambúrgueres"}`))
		case "/api/products/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := storage.NewCatalogClient(srv.URL, srv.Client())

	product, err := client.GetProduct(context.Background(), "burger")
	require.NoError(t, err)
	assert.Equal(t, "Burger", product.Name)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("28.90")))

	_, err = client.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = client.GetProduct(context.Background(), "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrProductNotFound)
}
