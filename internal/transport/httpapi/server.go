// Package httpapi exposes the product search service over a chi HTTP API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/meenakshi0478/ai-product-search/internal/domain"
	domsearch "github.com/meenakshi0478/ai-product-search/internal/domain/search"
	healthuc "github.com/meenakshi0478/ai-product-search/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Searcher runs the semantic search pipeline.
type Searcher interface {
	Search(ctx context.Context, q *domsearch.Query) ([]domain.Product, error)
}

// ProductManager covers catalog CRUD and listing.
type ProductManager interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Update(ctx context.Context, id int64, p domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (domain.Product, error)
	Latest(ctx context.Context, page, size int) ([]domain.Product, error)
	ByCategory(ctx context.Context, category string, page, size int) ([]domain.Product, error)
	ByPriceRange(ctx context.Context, minPrice, maxPrice float64, page, size int) ([]domain.Product, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server is the HTTP API server.
type Server struct {
	search        Searcher
	products      ProductManager
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, products ProductManager, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		search:   search,
		products: products,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest),
		sentinelHandler(domain.ErrInvalidSortField, http.StatusBadRequest),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest),
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound),
		sentinelHandler(domain.ErrDuplicateUPC, http.StatusConflict),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway),
		sentinelHandler(domain.ErrEmbeddingUnavailable, http.StatusServiceUnavailable),
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusServiceUnavailable),
	}
	return s
}

// Routes mounts all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/ai/search", s.Search)

	r.Route("/api/products", func(r chi.Router) {
		r.Post("/", s.CreateProduct)
		r.Get("/", s.LatestProducts)
		r.Get("/{id}", s.GetProduct)
		r.Put("/{id}", s.UpdateProduct)
		r.Delete("/{id}", s.DeleteProduct)
		r.Get("/category/{category}", s.ProductsByCategory)
		r.Get("/price-range", s.ProductsByPriceRange)
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Search handles POST /api/ai/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	q, err := domsearch.New(req.Query, req.Category, req.MinPrice, req.MaxPrice,
		req.SortBy, req.SortDirection, req.Limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, err := s.search.Search(r.Context(), &q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if len(results) == 0 {
		writeJSON(w, http.StatusOK, envelope{
			Status:  statusInfo,
			Message: "No products found matching your search",
			Data:    []productResponse{},
		})
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Status:  statusSuccess,
		Message: fmt.Sprintf("Found %d products", len(results)),
		Data:    productsToWire(results),
	})
}

// CreateProduct handles POST /api/products.
func (s *Server) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := s.products.Create(r.Context(), productFromWire(req))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/products/%d", created.ID))
	writeJSON(w, http.StatusCreated, envelope{
		Status:  statusSuccess,
		Message: "Product created",
		Data:    productToWire(created),
	})
}

// UpdateProduct handles PUT /api/products/{id}.
func (s *Server) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.productID(w, r)
	if !ok {
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updated, err := s.products.Update(r.Context(), id, productFromWire(req))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Status:  statusSuccess,
		Message: "Product updated",
		Data:    productToWire(updated),
	})
}

// DeleteProduct handles DELETE /api/products/{id}.
func (s *Server) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.productID(w, r)
	if !ok {
		return
	}

	if err := s.products.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Status:  statusSuccess,
		Message: "Product deleted",
	})
}

// GetProduct handles GET /api/products/{id}.
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.productID(w, r)
	if !ok {
		return
	}

	p, err := s.products.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Status: statusSuccess,
		Data:   productToWire(p),
	})
}

// LatestProducts handles GET /api/products.
func (s *Server) LatestProducts(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	ps, err := s.products.Latest(r.Context(), page, size)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	s.writeListing(w, ps)
}

// ProductsByCategory handles GET /api/products/category/{category}.
func (s *Server) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	page, size := pageParams(r)

	ps, err := s.products.ByCategory(r.Context(), category, page, size)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	s.writeListing(w, ps)
}

// ProductsByPriceRange handles GET /api/products/price-range.
func (s *Server) ProductsByPriceRange(w http.ResponseWriter, r *http.Request) {
	minPrice, err := floatParam(r, "minPrice")
	if err != nil {
		writeError(w, http.StatusBadRequest, "minPrice must be a number")
		return
	}
	maxPrice, err := floatParam(r, "maxPrice")
	if err != nil {
		writeError(w, http.StatusBadRequest, "maxPrice must be a number")
		return
	}
	page, size := pageParams(r)

	ps, err := s.products.ByPriceRange(r.Context(), minPrice, maxPrice, page, size)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	s.writeListing(w, ps)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) writeListing(w http.ResponseWriter, ps []domain.Product) {
	if len(ps) == 0 {
		writeJSON(w, http.StatusOK, envelope{
			Status:  statusInfo,
			Message: "No products found",
			Data:    []productResponse{},
		})
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Status:  statusSuccess,
		Message: fmt.Sprintf("Found %d products", len(ps)),
		Data:    productsToWire(ps),
	})
}

func (s *Server) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "product id must be a positive integer")
		return 0, false
	}
	return id, true
}

func pageParams(r *http.Request) (page, size int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	size, _ = strconv.Atoi(r.URL.Query().Get("size"))
	return page, size
}

func floatParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	return strconv.ParseFloat(raw, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{
		Status:  statusError,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrInvalidSortField,
		domain.ErrValidation,
		domain.ErrProductNotFound,
		domain.ErrDuplicateUPC,
		domain.ErrEmbeddingProviderError,
		domain.ErrEmbeddingUnavailable,
		domain.ErrIndexUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
