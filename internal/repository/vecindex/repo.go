// Package vecindex is the product vector index client over the FT search store.
package vecindex

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/meenakshi0478/ai-product-search/internal/db"
	"github.com/meenakshi0478/ai-product-search/internal/domain"
	"github.com/meenakshi0478/ai-product-search/internal/domain/search"
)

const (
	indexName    = domain.KeyPrefix + "products_idx"
	vectorPrefix = domain.KeyPrefix + "vector:"
)

// store is the consumer interface for vector index operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	HSet(ctx context.Context, key string, fields map[string]string) error
	Del(ctx context.Context, key string) error
}

// HNSWConfig holds index build parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo maintains product vectors and answers nearest-neighbor queries.
type Repo struct {
	store store
	dim   int
	hnsw  HNSWConfig
}

// New creates a vector index client for vectors of the given dimension.
func New(s store, dim int) *Repo {
	return &Repo{store: s, dim: dim}
}

// WithHNSW overrides the HNSW build parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

// EnsureIndex creates the product vector index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def := &db.IndexDefinition{
		Name:        indexName,
		StorageType: db.StorageHash,
		Prefixes:    []string{vectorPrefix},
		Fields: []db.IndexField{{
			Name:              "vector",
			Type:              db.IndexFieldVector,
			VectorAlgo:        db.VectorHNSW,
			VectorDim:         r.dim,
			VectorDistance:    db.DistanceCosine,
			VectorM:           r.hnsw.M,
			VectorEFConstruct: r.hnsw.EFConstruct,
		}},
	}

	err := r.store.CreateIndex(ctx, def)
	if err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create product index: %w", err)
	}
	return nil
}

// Index stores or replaces the vector for a product.
func (r *Repo) Index(ctx context.Context, productID int64, vector []float32) error {
	if len(vector) != r.dim {
		return fmt.Errorf("vector has %d dimensions, index expects %d", len(vector), r.dim)
	}

	fields := map[string]string{
		"product_id": strconv.FormatInt(productID, 10),
		"vector":     encodeVector(vector),
	}
	if err := r.store.HSet(ctx, vectorKey(productID), fields); err != nil {
		return fmt.Errorf("index product %d: %w: %w", productID, domain.ErrIndexUnavailable, err)
	}
	return nil
}

// Remove deletes the vector for a product. Removing an unindexed product is a no-op.
func (r *Repo) Remove(ctx context.Context, productID int64) error {
	if err := r.store.Del(ctx, vectorKey(productID)); err != nil {
		return fmt.Errorf("remove product %d: %w: %w", productID, domain.ErrIndexUnavailable, err)
	}
	return nil
}

// Nearest returns up to k candidates ordered by ascending distance.
// k <= 0 returns an empty set without touching the backend.
func (r *Repo) Nearest(ctx context.Context, vector []float32, k int) ([]search.Candidate, error) {
	if k <= 0 {
		return nil, nil
	}

	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    indexName,
		Vector:       vector,
		K:            k,
		ReturnFields: []string{"product_id"},
	})
	if err != nil {
		return nil, fmt.Errorf("search knn: %w: %w", domain.ErrIndexUnavailable, err)
	}

	candidates := make([]search.Candidate, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id, err := parseProductID(entry)
		if err != nil {
			// Foreign key under our prefix; skip rather than fail the search.
			continue
		}
		candidates = append(candidates, search.Candidate{ProductID: id, Distance: entry.Distance})
	}

	return candidates, nil
}

func vectorKey(productID int64) string {
	return vectorPrefix + strconv.FormatInt(productID, 10)
}

func parseProductID(entry db.SearchEntry) (int64, error) {
	if raw, ok := entry.Fields["product_id"]; ok {
		return strconv.ParseInt(raw, 10, 64)
	}
	return strconv.ParseInt(strings.TrimPrefix(entry.Key, vectorPrefix), 10, 64)
}

// encodeVector packs a float32 vector into the little-endian blob stored in
// the document hash; FT.SEARCH compares it against the query blob directly.
func encodeVector(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
