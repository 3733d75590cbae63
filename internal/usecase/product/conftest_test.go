package product

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/meenakshi0478/ai-product-search/internal/domain"
)

type mockStore struct {
	products  map[int64]domain.Product
	nextID    int64
	upcTaken  bool
	upcErr    error
	createErr error
	updateErr error
	deleteErr error
	listed    []domain.Product

	lastOffset int
	lastLimit  int
}

func newMockStore() *mockStore {
	return &mockStore{products: map[int64]domain.Product{}, nextID: 1}
}

func (m *mockStore) Create(_ context.Context, p domain.Product) (domain.Product, error) {
	if m.createErr != nil {
		return domain.Product{}, m.createErr
	}
	p.ID = m.nextID
	m.nextID++
	m.products[p.ID] = p
	return p, nil
}

func (m *mockStore) Update(_ context.Context, p domain.Product) (domain.Product, error) {
	if m.updateErr != nil {
		return domain.Product{}, m.updateErr
	}
	m.products[p.ID] = p
	return p, nil
}

func (m *mockStore) Delete(_ context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockStore) Get(_ context.Context, id int64) (domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (m *mockStore) ExistsByUPC(_ context.Context, _ string) (bool, error) {
	return m.upcTaken, m.upcErr
}

func (m *mockStore) Latest(_ context.Context, offset, limit int) ([]domain.Product, error) {
	m.lastOffset, m.lastLimit = offset, limit
	return m.listed, nil
}

func (m *mockStore) ByCategory(_ context.Context, _ string, offset, limit int) ([]domain.Product, error) {
	m.lastOffset, m.lastLimit = offset, limit
	return m.listed, nil
}

func (m *mockStore) ByPriceRange(_ context.Context, _, _ float64, offset, limit int) ([]domain.Product, error) {
	m.lastOffset, m.lastLimit = offset, limit
	return m.listed, nil
}

type mockIndex struct {
	indexErr    error
	removeErr   error
	indexed     []int64
	removed     []int64
	lastVector  []float32
	indexCalled int
}

func (m *mockIndex) Index(_ context.Context, productID int64, vector []float32) error {
	m.indexCalled++
	if m.indexErr != nil {
		return m.indexErr
	}
	m.indexed = append(m.indexed, productID)
	m.lastVector = vector
	return nil
}

func (m *mockIndex) Remove(_ context.Context, productID int64) error {
	if m.removeErr != nil {
		return m.removeErr
	}
	m.removed = append(m.removed, productID)
	return nil
}

type mockEmbedder struct {
	vec      []float32
	err      error
	lastText string
	calls    int
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	m.lastText = text
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

func newTestService(t *testing.T, store *mockStore, index *mockIndex, embed *mockEmbedder) *Service {
	t.Helper()
	if embed.vec == nil && embed.err == nil {
		embed.vec = []float32{0.1, 0.2}
	}
	return New(store, index, embed, zap.NewNop())
}

func validProduct() domain.Product {
	return domain.Product{
		Name:        "Wireless Headphones",
		Description: "Noise cancelling over-ear",
		Price:       199.99,
		Category:    "Electronics",
		Brand:       "Acme",
		UPC:         "012345678905",
	}
}
