package domain

import "errors"

var (
	// ErrInvalidQuery signals a blank or malformed search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidSortField signals an unrecognized sort key.
	ErrInvalidSortField = errors.New("invalid sort field")
	// ErrValidation signals invalid request parameters or product fields.
	ErrValidation = errors.New("validation failed")
	// ErrProductNotFound signals a missing product.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateUPC signals that another product already carries the UPC.
	ErrDuplicateUPC = errors.New("duplicate upc")
	// ErrEmbeddingUnavailable signals a transport-level embedding failure (timeout, network).
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
	// ErrEmbeddingProviderError signals a malformed embedding provider response.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrIndexUnavailable signals a vector index backend failure.
	ErrIndexUnavailable = errors.New("vector index unavailable")
)
