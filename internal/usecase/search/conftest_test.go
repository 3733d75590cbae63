package search

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/meenakshi0478/ai-product-search/internal/domain"
	domsearch "github.com/meenakshi0478/ai-product-search/internal/domain/search"
)

type mockIndex struct {
	candidates []domsearch.Candidate
	err        error
	calls      int
	lastK      int
}

func (m *mockIndex) Nearest(_ context.Context, _ []float32, k int) ([]domsearch.Candidate, error) {
	m.calls++
	m.lastK = k
	return m.candidates, m.err
}

type mockCatalog struct {
	products map[int64]domain.Product
	err      error
	lastIDs  []int64
}

func (m *mockCatalog) Hydrate(_ context.Context, ids []int64) (map[int64]domain.Product, error) {
	m.lastIDs = ids
	return m.products, m.err
}

type mockEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

func newTestService(t *testing.T, index *mockIndex, catalog *mockCatalog, embed *mockEmbedder) *Service {
	t.Helper()
	if embed.vec == nil {
		embed.vec = []float32{0.1, 0.2, 0.3}
	}
	return New(index, catalog, embed, zap.NewNop())
}

func mustQuery(t *testing.T, text, category string, minPrice, maxPrice *float64, sortBy, sortDir string, limit int) *domsearch.Query {
	t.Helper()
	q, err := domsearch.New(text, category, minPrice, maxPrice, sortBy, sortDir, limit)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	return &q
}

func f64(v float64) *float64 { return &v }

func candidates(ids ...int64) []domsearch.Candidate {
	out := make([]domsearch.Candidate, len(ids))
	for i, id := range ids {
		out[i] = domsearch.Candidate{ProductID: id, Distance: float64(i) * 0.1}
	}
	return out
}
