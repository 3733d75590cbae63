package httpapi

import (
	"time"

	"github.com/meenakshi0478/ai-product-search/internal/domain"
)

// Response statuses used in the API envelope.
const (
	statusSuccess = "success"
	statusInfo    = "info"
	statusError   = "error"
)

// envelope is the uniform response body for every endpoint.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// searchRequest is the body of POST /api/ai/search.
type searchRequest struct {
	Query         string   `json:"query"`
	Category      string   `json:"category,omitempty"`
	MinPrice      *float64 `json:"minPrice,omitempty"`
	MaxPrice      *float64 `json:"maxPrice,omitempty"`
	SortBy        string   `json:"sortBy,omitempty"`
	SortDirection string   `json:"sortDirection,omitempty"`
	Limit         int      `json:"limit,omitempty"`
}

// productRequest is the body of product create and update calls.
type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	UPC         string  `json:"upcCode"`
}

// productResponse is the wire shape of a product.
type productResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    string    `json:"category,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	UPC         string    `json:"upcCode"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func productToWire(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Brand:       p.Brand,
		UPC:         p.UPC,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func productsToWire(ps []domain.Product) []productResponse {
	out := make([]productResponse, len(ps))
	for i, p := range ps {
		out[i] = productToWire(p)
	}
	return out
}

func productFromWire(r productRequest) domain.Product {
	return domain.Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Brand:       r.Brand,
		UPC:         r.UPC,
	}
}
