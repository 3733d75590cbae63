// Package search orchestrates the semantic product search pipeline:
// embed the query, retrieve nearest candidates, filter on metadata,
// hydrate from the catalog, and rank.
package search

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/meenakshi0478/ai-product-search/internal/domain"
	"github.com/meenakshi0478/ai-product-search/internal/domain/search"
	"github.com/meenakshi0478/ai-product-search/internal/metrics"
)

// DefaultCandidateLimit is the vector index over-fetch cap: metadata filters
// run after retrieval, so more candidates are fetched than one page needs.
const DefaultCandidateLimit = 50

// Service runs the search pipeline. It is stateless per call; the only
// shared state between requests lives inside the embedder's cache.
type Service struct {
	index          VectorIndex
	catalog        Catalog
	embed          Embedder
	candidateLimit int
	logger         *zap.Logger
}

// New creates a search service.
func New(index VectorIndex, catalog Catalog, embed Embedder, logger *zap.Logger) *Service {
	return &Service{
		index:          index,
		catalog:        catalog,
		embed:          embed,
		candidateLimit: DefaultCandidateLimit,
		logger:         logger,
	}
}

// WithCandidateLimit overrides the index over-fetch cap.
func (s *Service) WithCandidateLimit(n int) *Service {
	if n > 0 {
		s.candidateLimit = n
	}
	return s
}

// Search executes the pipeline for a validated query.
// An empty result is a valid outcome, distinct from an error.
// With no explicit sort the output keeps the index similarity order.
func (s *Service) Search(ctx context.Context, q *search.Query) ([]domain.Product, error) {
	if q.Text() == "" {
		// Query construction already rejects blank text; guard anyway so a
		// zero-value Query can never reach the provider.
		return nil, fmt.Errorf("%w: query text is required", domain.ErrInvalidQuery)
	}

	embRes, err := s.embed.Embed(ctx, q.Text())
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	candidates, err := s.index.Nearest(ctx, embRes.Embedding, s.candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("nearest candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ProductID
	}

	hydrated, err := s.catalog.Hydrate(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrate candidates: %w", err)
	}

	// Filter in candidate order: keeps relevance ranking intact and drops
	// ids deleted since indexing without treating them as errors.
	results := make([]domain.Product, 0, len(candidates))
	for _, c := range candidates {
		p, ok := hydrated[c.ProductID]
		if !ok {
			continue
		}
		if !q.Matches(p) {
			continue
		}
		results = append(results, p)
	}

	metrics.SearchCandidatesReturned.Observe(float64(len(results)))
	s.logger.Debug("search pipeline",
		zap.Int("candidates", len(candidates)),
		zap.Int("hydrated", len(hydrated)),
		zap.Int("matched", len(results)),
	)

	s.sortResults(results, q)

	if len(results) > q.Limit() {
		results = results[:q.Limit()]
	}

	return results, nil
}

// sortResults applies the explicit sort, if any. The sort is stable so
// products that compare equal keep their relevance order.
func (s *Service) sortResults(results []domain.Product, q *search.Query) {
	var less func(a, b domain.Product) bool

	switch q.SortBy() {
	case search.SortPrice:
		less = func(a, b domain.Product) bool { return a.Price < b.Price }
	case search.SortName:
		less = func(a, b domain.Product) bool { return a.Name < b.Name }
	default:
		return
	}

	if q.SortDirection() == search.Desc {
		asc := less
		less = func(a, b domain.Product) bool { return asc(b, a) }
	}

	sort.SliceStable(results, func(i, j int) bool { return less(results[i], results[j]) })
}
