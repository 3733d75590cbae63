package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/meenakshi0478/ai-product-search/internal/domain"
)

// Create inserts a product and returns it with its assigned ID.
func (c *Catalog) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	model := toModel(p)
	model.ID = 0

	if err := c.session(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Product{}, fmt.Errorf("upc %s: %w", p.UPC, domain.ErrDuplicateUPC)
		}
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	return toDomain(model), nil
}

// Update overwrites a product. Fails with domain.ErrProductNotFound when absent.
func (c *Catalog) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	if _, err := c.Get(ctx, p.ID); err != nil {
		return domain.Product{}, err
	}

	model := toModel(p)
	if err := c.session(ctx).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Product{}, fmt.Errorf("upc %s: %w", p.UPC, domain.ErrDuplicateUPC)
		}
		return domain.Product{}, fmt.Errorf("update product %d: %w", p.ID, err)
	}
	return toDomain(model), nil
}

// Delete removes a product by ID. Fails with domain.ErrProductNotFound when absent.
func (c *Catalog) Delete(ctx context.Context, id int64) error {
	res := c.session(ctx).Delete(&productModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	return nil
}

// Get fetches a single product by ID.
func (c *Catalog) Get(ctx context.Context, id int64) (domain.Product, error) {
	var model productModel
	if err := c.session(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
		}
		return domain.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return toDomain(model), nil
}

// Hydrate resolves ids to full products in one batch query.
// Ids with no product are simply absent from the result, never an error.
func (c *Catalog) Hydrate(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	if len(ids) == 0 {
		return map[int64]domain.Product{}, nil
	}

	var models []productModel
	if err := c.session(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("hydrate products: %w", err)
	}

	out := make(map[int64]domain.Product, len(models))
	for _, m := range models {
		out[m.ID] = toDomain(m)
	}
	return out, nil
}

// ExistsByUPC reports whether any product carries the given UPC.
func (c *Catalog) ExistsByUPC(ctx context.Context, upc string) (bool, error) {
	var count int64
	if err := c.session(ctx).Model(&productModel{}).Where("upc = ?", upc).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count upc %s: %w", upc, err)
	}
	return count > 0, nil
}

// Latest lists products ordered by creation time, newest first.
func (c *Catalog) Latest(ctx context.Context, offset, limit int) ([]domain.Product, error) {
	return c.list(ctx, c.session(ctx).Order("created_at DESC"), offset, limit)
}

// ByCategory lists products in a category, newest first.
func (c *Catalog) ByCategory(ctx context.Context, category string, offset, limit int) ([]domain.Product, error) {
	q := c.session(ctx).Where("category = ?", category).Order("created_at DESC")
	return c.list(ctx, q, offset, limit)
}

// ByPriceRange lists products with minPrice <= price <= maxPrice, cheapest first.
func (c *Catalog) ByPriceRange(ctx context.Context, minPrice, maxPrice float64, offset, limit int) ([]domain.Product, error) {
	q := c.session(ctx).Where("price BETWEEN ? AND ?", minPrice, maxPrice).Order("price ASC")
	return c.list(ctx, q, offset, limit)
}

func (c *Catalog) list(_ context.Context, q *gorm.DB, offset, limit int) ([]domain.Product, error) {
	var models []productModel
	if err := q.Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]domain.Product, len(models))
	for i, m := range models {
		out[i] = toDomain(m)
	}
	return out, nil
}
