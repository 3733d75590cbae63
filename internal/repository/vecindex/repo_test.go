package vecindex

import (
	"context"
	"errors"
	"testing"

	"github.com/meenakshi0478/ai-product-search/internal/db"
	"github.com/meenakshi0478/ai-product-search/internal/domain"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchResult *db.SearchResult
	searchErr    error
	lastQuery    *db.KNNQuery
	searchCalls  int

	createErr error
	lastDef   *db.IndexDefinition

	hsetErr    error
	lastKey    string
	lastFields map[string]string

	delErr  error
	delKeys []string
}

func (m *mockStore) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	m.searchCalls++
	m.lastQuery = q
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if m.searchResult == nil {
		return &db.SearchResult{}, nil
	}
	return m.searchResult, nil
}

func (m *mockStore) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	m.lastDef = def
	return m.createErr
}

func (m *mockStore) HSet(_ context.Context, key string, fields map[string]string) error {
	m.lastKey = key
	m.lastFields = fields
	return m.hsetErr
}

func (m *mockStore) Del(_ context.Context, key string) error {
	m.delKeys = append(m.delKeys, key)
	return m.delErr
}

func TestEnsureIndex_Creates(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms, 1536).WithHNSW(HNSWConfig{M: 32, EFConstruct: 400})

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.lastDef == nil {
		t.Fatal("expected CreateIndex call")
	}
	if ms.lastDef.Name != "prodsearch:products_idx" {
		t.Errorf("index name: got %q", ms.lastDef.Name)
	}
	field := ms.lastDef.Fields[0]
	if field.VectorDim != 1536 || field.VectorM != 32 || field.VectorEFConstruct != 400 {
		t.Errorf("unexpected vector field: %+v", field)
	}
	if field.VectorDistance != db.DistanceCosine {
		t.Errorf("expected cosine distance, got %v", field.VectorDistance)
	}
}

func TestEnsureIndex_AlreadyExists(t *testing.T) {
	ms := &mockStore{createErr: db.ErrIndexExists}
	repo := New(ms, 1536)

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("existing index must not be an error: %v", err)
	}
}

func TestIndex_WritesHash(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms, 3)

	if err := repo.Index(context.Background(), 42, []float32{0.1, 0.2, 0.3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.lastKey != "prodsearch:vector:42" {
		t.Errorf("key: got %q", ms.lastKey)
	}
	if ms.lastFields["product_id"] != "42" {
		t.Errorf("product_id field: got %q", ms.lastFields["product_id"])
	}
	if len(ms.lastFields["vector"]) != 12 {
		t.Errorf("vector blob: expected 12 bytes, got %d", len(ms.lastFields["vector"]))
	}
}

func TestIndex_DimensionMismatch(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms, 3)

	err := repo.Index(context.Background(), 42, []float32{0.1, 0.2})
	if err == nil {
		t.Fatal("expected dimension mismatch error")
	}
	if ms.lastKey != "" {
		t.Fatal("mismatched vector must not be written")
	}
}

func TestRemove(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms, 3)

	if err := repo.Remove(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ms.delKeys) != 1 || ms.delKeys[0] != "prodsearch:vector:42" {
		t.Errorf("del keys: got %v", ms.delKeys)
	}
}

func TestNearest_ParsesCandidates(t *testing.T) {
	ms := &mockStore{searchResult: &db.SearchResult{
		Total: 3,
		Entries: []db.SearchEntry{
			{Key: "prodsearch:vector:5", Distance: 0.1, Fields: map[string]string{"product_id": "5"}},
			{Key: "prodsearch:vector:2", Distance: 0.2, Fields: map[string]string{"product_id": "2"}},
			{Key: "prodsearch:vector:9", Distance: 0.3, Fields: map[string]string{"product_id": "9"}},
		},
	}}
	repo := New(ms, 3)

	got, err := repo.Nearest(context.Background(), []float32{0.1, 0.2, 0.3}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int64{5, 2, 9}
	if len(got) != len(want) {
		t.Fatalf("expected %d candidates, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ProductID != id {
			t.Errorf("position %d: expected id %d, got %d", i, id, got[i].ProductID)
		}
	}
	if got[0].Distance != 0.1 {
		t.Errorf("distance not carried through: %v", got[0].Distance)
	}
}

func TestNearest_FallsBackToKeySuffix(t *testing.T) {
	ms := &mockStore{searchResult: &db.SearchResult{
		Total: 1,
		Entries: []db.SearchEntry{
			{Key: "prodsearch:vector:7", Distance: 0.4, Fields: map[string]string{}},
		},
	}}
	repo := New(ms, 3)

	got, err := repo.Nearest(context.Background(), []float32{0.1, 0.2, 0.3}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ProductID != 7 {
		t.Fatalf("expected id 7 from key suffix, got %v", got)
	}
}

func TestNearest_SkipsForeignKeys(t *testing.T) {
	ms := &mockStore{searchResult: &db.SearchResult{
		Total: 2,
		Entries: []db.SearchEntry{
			{Key: "prodsearch:vector:not-a-number", Distance: 0.1, Fields: map[string]string{}},
			{Key: "prodsearch:vector:3", Distance: 0.2, Fields: map[string]string{"product_id": "3"}},
		},
	}}
	repo := New(ms, 3)

	got, err := repo.Nearest(context.Background(), []float32{0.1, 0.2, 0.3}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ProductID != 3 {
		t.Fatalf("expected only id 3, got %v", got)
	}
}

func TestNearest_ZeroKNoBackendCall(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms, 3)

	got, err := repo.Nearest(context.Background(), []float32{0.1, 0.2, 0.3}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil candidates, got %v", got)
	}
	if ms.searchCalls != 0 {
		t.Fatalf("expected no backend call, got %d", ms.searchCalls)
	}
}

func TestNearest_WrapsIndexUnavailable(t *testing.T) {
	ms := &mockStore{searchErr: errors.New("connection refused")}
	repo := New(ms, 3)

	_, err := repo.Nearest(context.Background(), []float32{0.1, 0.2, 0.3}, 10)
	if !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Fatalf("expected ErrIndexUnavailable, got %v", err)
	}
}

func TestNearest_PassesQueryThrough(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms, 3)

	_, _ = repo.Nearest(context.Background(), []float32{0.1, 0.2, 0.3}, 25)

	if ms.lastQuery.K != 25 {
		t.Errorf("k: got %d", ms.lastQuery.K)
	}
	if ms.lastQuery.IndexName != "prodsearch:products_idx" {
		t.Errorf("index name: got %q", ms.lastQuery.IndexName)
	}
	if len(ms.lastQuery.ReturnFields) != 1 || ms.lastQuery.ReturnFields[0] != "product_id" {
		t.Errorf("return fields: got %v", ms.lastQuery.ReturnFields)
	}
}
