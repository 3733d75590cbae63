// Package product manages the catalog and keeps the vector index in step
// with catalog writes.
package product

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/meenakshi0478/ai-product-search/internal/domain"
)

// Pagination defaults.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Service handles product CRUD and the vector lifecycle that follows it.
type Service struct {
	store           Store
	index           Index
	embed           Embedder
	logger          *zap.Logger
	defaultPageSize int
	maxPageSize     int
}

// New creates a product service.
func New(store Store, index Index, embed Embedder, logger *zap.Logger) *Service {
	return &Service{
		store:           store,
		index:           index,
		embed:           embed,
		logger:          logger,
		defaultPageSize: DefaultPageSize,
		maxPageSize:     MaxPageSize,
	}
}

// WithPagination overrides the page size bounds.
func (s *Service) WithPagination(defaultSize, maxSize int) *Service {
	if defaultSize > 0 {
		s.defaultPageSize = defaultSize
	}
	if maxSize > 0 {
		s.maxPageSize = maxSize
	}
	return s
}

// Create validates and stores a new product, then indexes its vector.
// Indexing is best-effort: the product exists either way, and a failed
// index write is logged and repaired on the next update.
func (s *Service) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := validate(p); err != nil {
		return domain.Product{}, err
	}

	exists, err := s.store.ExistsByUPC(ctx, p.UPC)
	if err != nil {
		return domain.Product{}, fmt.Errorf("check upc: %w", err)
	}
	if exists {
		return domain.Product{}, fmt.Errorf("upc %s: %w", p.UPC, domain.ErrDuplicateUPC)
	}

	created, err := s.store.Create(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}

	s.reindex(ctx, created)
	return created, nil
}

// Update overwrites a product and refreshes its vector.
func (s *Service) Update(ctx context.Context, id int64, p domain.Product) (domain.Product, error) {
	if err := validate(p); err != nil {
		return domain.Product{}, err
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if p.UPC != current.UPC {
		exists, err := s.store.ExistsByUPC(ctx, p.UPC)
		if err != nil {
			return domain.Product{}, fmt.Errorf("check upc: %w", err)
		}
		if exists {
			return domain.Product{}, fmt.Errorf("upc %s: %w", p.UPC, domain.ErrDuplicateUPC)
		}
	}

	p.ID = id
	p.CreatedAt = current.CreatedAt

	updated, err := s.store.Update(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}

	s.reindex(ctx, updated)
	return updated, nil
}

// Delete removes a product and its vector.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.index.Remove(ctx, id); err != nil {
		s.logger.Warn("Failed to remove product vector", zap.Int64("product_id", id), zap.Error(err))
	}
	return nil
}

// Get fetches a single product.
func (s *Service) Get(ctx context.Context, id int64) (domain.Product, error) {
	return s.store.Get(ctx, id)
}

// Latest lists the newest products.
func (s *Service) Latest(ctx context.Context, page, size int) ([]domain.Product, error) {
	offset, limit := s.pageBounds(page, size)
	return s.store.Latest(ctx, offset, limit)
}

// ByCategory lists products in a category, newest first.
func (s *Service) ByCategory(ctx context.Context, category string, page, size int) ([]domain.Product, error) {
	offset, limit := s.pageBounds(page, size)
	return s.store.ByCategory(ctx, category, offset, limit)
}

// ByPriceRange lists products inside an inclusive price range, cheapest first.
// Unlike the search pipeline (which treats an inverted range as empty), this
// listing endpoint rejects minPrice > maxPrice.
func (s *Service) ByPriceRange(ctx context.Context, minPrice, maxPrice float64, page, size int) ([]domain.Product, error) {
	if minPrice < 0 || maxPrice < 0 {
		return nil, fmt.Errorf("%w: prices must not be negative", domain.ErrValidation)
	}
	if minPrice > maxPrice {
		return nil, fmt.Errorf("%w: minPrice cannot be greater than maxPrice", domain.ErrValidation)
	}

	offset, limit := s.pageBounds(page, size)
	return s.store.ByPriceRange(ctx, minPrice, maxPrice, offset, limit)
}

// reindex embeds the product text and upserts its vector.
func (s *Service) reindex(ctx context.Context, p domain.Product) {
	res, err := s.embed.Embed(ctx, embedText(p))
	if err != nil {
		s.logger.Warn("Failed to embed product", zap.Int64("product_id", p.ID), zap.Error(err))
		return
	}
	if err := s.index.Index(ctx, p.ID, res.Embedding); err != nil {
		s.logger.Warn("Failed to index product vector", zap.Int64("product_id", p.ID), zap.Error(err))
	}
}

// embedText is the text representation indexed for similarity search.
func embedText(p domain.Product) string {
	parts := []string{p.Name}
	if p.Description != "" {
		parts = append(parts, p.Description)
	}
	if p.Category != "" {
		parts = append(parts, p.Category)
	}
	if p.Brand != "" {
		parts = append(parts, p.Brand)
	}
	return strings.Join(parts, ". ")
}

func (s *Service) pageBounds(page, size int) (offset, limit int) {
	if size <= 0 {
		size = s.defaultPageSize
	}
	if size > s.maxPageSize {
		size = s.maxPageSize
	}
	if page < 0 {
		page = 0
	}
	return page * size, size
}

func validate(p domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name cannot be empty", domain.ErrValidation)
	}
	if p.Price <= 0 {
		return fmt.Errorf("%w: product price must be greater than zero", domain.ErrValidation)
	}
	if strings.TrimSpace(p.UPC) == "" {
		return fmt.Errorf("%w: upc code is required", domain.ErrValidation)
	}
	return nil
}
