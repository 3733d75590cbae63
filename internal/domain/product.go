// Package domain holds the core entities and contracts shared between layers.
package domain

import "time"

// KeyPrefix namespaces every key this service writes to the vector store.
const KeyPrefix = "prodsearch:"

// Product is a catalog entry. The search pipeline treats it as read-only.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Category    string
	Brand       string
	UPC         string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
