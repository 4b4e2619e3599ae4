// =============================================================================
// Sales Analytics CLI - Product Catalog Client
// =============================================================================
//
// HTTP client for the external product catalog (DummyJSON-compatible API).
// The catalog is a best-effort enrichment source: any failure here — network,
// timeout, bad status, malformed body — is logged as a warning and surfaces
// as an empty product list. Enrichment then simply marks every transaction
// as unmatched; the pipeline never fails because the catalog is down.
//
// =============================================================================

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"salescli/internal/types"
)

// =============================================================================
// TYPES
// =============================================================================

// Product is a single catalog entry as returned by the API.
type Product struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
}

// productsResponse is the API's list envelope.
type productsResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// Client fetches product metadata from the catalog API.
type Client struct {
	baseURL    string
	limit      int
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a catalog client.
// logger may be nil, in which case slog.Default() is used.
func NewClient(baseURL string, timeout time.Duration, limit int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		limit:      limit,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// =============================================================================
// FETCHING
// =============================================================================

// FetchAllProducts retrieves the product list from the catalog.
//
// Failures never propagate: on any error the problem is logged at warning
// level and an empty slice is returned, so callers can always proceed with
// an empty mapping.
func (c *Client) FetchAllProducts(ctx context.Context) []Product {
	url := fmt.Sprintf("%s/products?limit=%d", c.baseURL, c.limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Warn("catalog request could not be built", "url", url, "error", err)
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("catalog fetch failed", "url", url, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("catalog returned non-OK status", "url", url, "status", resp.StatusCode)
		return nil
	}

	var payload productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("catalog response could not be decoded", "url", url, "error", err)
		return nil
	}

	c.logger.Debug("catalog fetch complete", "products", len(payload.Products))
	return payload.Products
}

// =============================================================================
// MAPPING
// =============================================================================

// CreateProductMapping indexes products by their catalog ID for the
// enrichment join.
func CreateProductMapping(products []Product) map[int]types.ProductMeta {
	mapping := make(map[int]types.ProductMeta, len(products))
	for _, p := range products {
		mapping[p.ID] = types.ProductMeta{
			Title:    p.Title,
			Category: p.Category,
			Brand:    p.Brand,
			Rating:   p.Rating,
		}
	}
	return mapping
}
