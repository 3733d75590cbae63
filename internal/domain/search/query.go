// Package search holds the validated search query and candidate types.
package search

import (
	"fmt"
	"strings"

	"github.com/meenakshi0478/ai-product-search/internal/domain"
)

// Query parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultLimit   = 20
	MaxLimit       = 100
)

// SortField selects the output ordering of a search.
type SortField string

const (
	// SortNone keeps the similarity order returned by the index.
	SortNone SortField = ""
	// SortPrice orders results by numeric price.
	SortPrice SortField = "price"
	// SortName orders results by lexicographic name.
	SortName SortField = "name"
)

// SortDirection is the sort direction, ascending by default.
type SortDirection string

const (
	// Asc sorts ascending.
	Asc SortDirection = "asc"
	// Desc sorts descending.
	Desc SortDirection = "desc"
)

// Query is a validated product search request.
type Query struct {
	text     string
	category string
	minPrice *float64
	maxPrice *float64
	sortBy   SortField
	sortDir  SortDirection
	limit    int
}

// New validates and normalizes search parameters.
// The query text is trimmed; a blank query fails with domain.ErrInvalidQuery
// and an unrecognized sortBy fails with domain.ErrInvalidSortField.
// limit defaults to DefaultLimit and is clamped to MaxLimit.
func New(
	text, category string,
	minPrice, maxPrice *float64,
	sortBy, sortDirection string,
	limit int,
) (Query, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Query{}, fmt.Errorf("%w: query text is required", domain.ErrInvalidQuery)
	}
	if len(text) > MaxQueryLength {
		return Query{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxQueryLength)
	}

	field, err := parseSortField(sortBy)
	if err != nil {
		return Query{}, err
	}

	// Anything other than "desc" sorts ascending.
	dir := Asc
	if strings.EqualFold(sortDirection, string(Desc)) {
		dir = Desc
	}

	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Query{
		text:     text,
		category: category,
		minPrice: minPrice,
		maxPrice: maxPrice,
		sortBy:   field,
		sortDir:  dir,
		limit:    limit,
	}, nil
}

func parseSortField(s string) (SortField, error) {
	switch strings.ToLower(s) {
	case "":
		return SortNone, nil
	case string(SortPrice):
		return SortPrice, nil
	case string(SortName):
		return SortName, nil
	default:
		return SortNone, fmt.Errorf("%w: %q", domain.ErrInvalidSortField, s)
	}
}

// Text returns the trimmed query text.
func (q *Query) Text() string { return q.text }

// Category returns the exact-match category filter, empty when absent.
func (q *Query) Category() string { return q.category }

// MinPrice returns the inclusive lower price bound, nil when absent.
func (q *Query) MinPrice() *float64 { return q.minPrice }

// MaxPrice returns the inclusive upper price bound, nil when absent.
func (q *Query) MaxPrice() *float64 { return q.maxPrice }

// SortBy returns the requested sort field (SortNone = similarity order).
func (q *Query) SortBy() SortField { return q.sortBy }

// SortDirection returns the sort direction.
func (q *Query) SortDirection() SortDirection { return q.sortDir }

// Limit returns the maximum number of results to return.
func (q *Query) Limit() int { return q.limit }

// Matches evaluates the metadata predicate against a hydrated product.
// Category matches exactly (case-sensitive); price bounds are inclusive.
// Out-of-order bounds form an empty range, not an error.
func (q *Query) Matches(p domain.Product) bool {
	if q.category != "" && p.Category != q.category {
		return false
	}
	if q.minPrice != nil && p.Price < *q.minPrice {
		return false
	}
	if q.maxPrice != nil && p.Price > *q.maxPrice {
		return false
	}
	return true
}
