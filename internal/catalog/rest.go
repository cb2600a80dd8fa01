package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/devaraji08/HarvestHubFinal/internal/domain"
)

// RESTCatalog talks to the backend-as-a-service product table over its
// REST interface (PostgREST-style filter syntax).
type RESTCatalog struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewRESTCatalog(baseURL, apiKey string) *RESTCatalog {
	return &RESTCatalog{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// productRow is the remote table's column layout.
type productRow struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"image_url"`
	FarmerID    string          `json:"farmer_id"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

func rowFromProduct(p domain.Product) productRow {
	return productRow{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Stock:       p.Stock,
		ImageURL:    p.Image,
		FarmerID:    p.Farmer,
		IsActive:    p.IsActive,
	}
}

func (r productRow) toProduct() domain.Product {
	p := domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Stock:       r.Stock,
		Image:       r.ImageURL,
		Farmer:      r.FarmerID,
		IsActive:    r.IsActive,
	}
	if r.CreatedAt != nil {
		p.CreatedAt = *r.CreatedAt
	}
	if r.UpdatedAt != nil {
		p.UpdatedAt = *r.UpdatedAt
	}
	return p
}

func (c *RESTCatalog) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	row := rowFromProduct(p)
	row.IsActive = true

	rows, err := c.do(ctx, http.MethodPost, "/rest/v1/products", row)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("create returned no rows")
	}
	created := rows[0].toProduct()
	return &created, nil
}

func (c *RESTCatalog) ListByFarmer(ctx context.Context, farmerID string) ([]domain.Product, error) {
	path := fmt.Sprintf("/rest/v1/products?farmer_id=eq.%s&order=created_at.desc", url.QueryEscape(farmerID))
	rows, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

func (c *RESTCatalog) ListActive(ctx context.Context) ([]domain.Product, error) {
	rows, err := c.do(ctx, http.MethodGet, "/rest/v1/products?is_active=eq.true&order=created_at.desc", nil)
	if err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

func (c *RESTCatalog) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	path := fmt.Sprintf("/rest/v1/products?id=eq.%s", url.QueryEscape(id))
	rows, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrProductNotFound
	}
	p := rows[0].toProduct()
	return &p, nil
}

func (c *RESTCatalog) Update(ctx context.Context, farmerID string, p domain.Product) (*domain.Product, error) {
	now := time.Now().UTC()
	row := rowFromProduct(p)
	row.ID = ""
	row.FarmerID = ""
	row.UpdatedAt = &now

	path := fmt.Sprintf("/rest/v1/products?id=eq.%s&farmer_id=eq.%s",
		url.QueryEscape(p.ID), url.QueryEscape(farmerID))
	rows, err := c.do(ctx, http.MethodPatch, path, row)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		// either the product does not exist or it belongs to someone else
		return nil, ErrProductNotFound
	}
	updated := rows[0].toProduct()
	return &updated, nil
}

func (c *RESTCatalog) Delete(ctx context.Context, farmerID, id string) error {
	path := fmt.Sprintf("/rest/v1/products?id=eq.%s&farmer_id=eq.%s",
		url.QueryEscape(id), url.QueryEscape(farmerID))
	rows, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrProductNotFound
	}
	return nil
}

// do sends one request and decodes the row set from the response. All
// verbs ask the table service to return the affected representation so
// ownership-scoped writes can detect "matched nothing".
func (c *RESTCatalog) do(ctx context.Context, method, path string, body any) ([]productRow, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request failed: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request failed: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Prefer", "return=representation")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("catalog request returned status %d", resp.StatusCode)
	}

	var rows []productRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}
	return rows, nil
}

func toProducts(rows []productRow) []domain.Product {
	out := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toProduct())
	}
	return out
}
