package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"overcooked-storefront/cart-svc/internal/domain"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// CatalogClient resolves products from the menu service.
type CatalogClient struct {
	BaseURL string
	Client  HTTPClient
}

func NewCatalogClient(baseURL string, client HTTPClient) *CatalogClient {
	return &CatalogClient{BaseURL: baseURL, Client: client}
}

func (c *CatalogClient) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/products/"+url.PathEscape(productID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch product %q: %w", productID, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrProductNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch product %q: unexpected status %d", productID, resp.StatusCode)
	}

	var product domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("decode product %q: %w", productID, err)
	}
	return &product, nil
}
