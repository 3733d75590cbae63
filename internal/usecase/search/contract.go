package search

import (
	"context"

	"github.com/meenakshi0478/ai-product-search/internal/domain"
	"github.com/meenakshi0478/ai-product-search/internal/domain/search"
)

// VectorIndex answers approximate nearest-neighbor queries.
// Candidates come back ordered by ascending distance, at most k of them,
// with no duplicate ids.
type VectorIndex interface {
	Nearest(ctx context.Context, vector []float32, k int) ([]search.Candidate, error)
}

// Catalog hydrates candidate ids into full products.
// Ids without a product are absent from the map, not an error.
type Catalog interface {
	Hydrate(ctx context.Context, ids []int64) (map[int64]domain.Product, error)
}

// Embedder vectorizes query text (normally the cached decorator chain).
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
