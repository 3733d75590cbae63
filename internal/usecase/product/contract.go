package product

import (
	"context"

	"github.com/meenakshi0478/ai-product-search/internal/domain"
)

// Store is the relational catalog contract.
type Store interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Update(ctx context.Context, p domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (domain.Product, error)
	ExistsByUPC(ctx context.Context, upc string) (bool, error)
	Latest(ctx context.Context, offset, limit int) ([]domain.Product, error)
	ByCategory(ctx context.Context, category string, offset, limit int) ([]domain.Product, error)
	ByPriceRange(ctx context.Context, minPrice, maxPrice float64, offset, limit int) ([]domain.Product, error)
}

// Index maintains product vectors in the similarity index.
type Index interface {
	Index(ctx context.Context, productID int64, vector []float32) error
	Remove(ctx context.Context, productID int64) error
}

// Embedder vectorizes product text for indexing.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
