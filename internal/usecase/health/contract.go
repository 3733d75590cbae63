package health

import "context"

// CatalogPinger checks the relational catalog availability.
type CatalogPinger interface {
	Ping(ctx context.Context) error
}

// IndexPinger checks the vector index backend availability.
type IndexPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
