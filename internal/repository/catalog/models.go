package catalog

import (
	"time"

	"github.com/meenakshi0478/ai-product-search/internal/domain"
)

// productModel is the GORM persistence model for products.
type productModel struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"not null;index"`
	Description string  `gorm:"type:text"`
	Price       float64 `gorm:"not null;index"`
	Category    string  `gorm:"index"`
	Brand       string
	UPC         string `gorm:"column:upc;uniqueIndex"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (productModel) TableName() string { return "products" }

func toDomain(m productModel) domain.Product {
	return domain.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Category:    m.Category,
		Brand:       m.Brand,
		UPC:         m.UPC,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toModel(p domain.Product) productModel {
	return productModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Brand:       p.Brand,
		UPC:         p.UPC,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
