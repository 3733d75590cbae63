package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/meenakshi0478/ai-product-search/internal/config"
	"github.com/meenakshi0478/ai-product-search/internal/db/redis"
	"github.com/meenakshi0478/ai-product-search/internal/domain"
	logpkg "github.com/meenakshi0478/ai-product-search/internal/logger"
	"github.com/meenakshi0478/ai-product-search/internal/metrics"
	"github.com/meenakshi0478/ai-product-search/internal/repository/catalog"
	"github.com/meenakshi0478/ai-product-search/internal/repository/embcache"
	"github.com/meenakshi0478/ai-product-search/internal/repository/vecindex"
	"github.com/meenakshi0478/ai-product-search/internal/transport/httpapi"
	openaiEmb "github.com/meenakshi0478/ai-product-search/internal/transport/openai"
	healthuc "github.com/meenakshi0478/ai-product-search/internal/usecase/health"
	productuc "github.com/meenakshi0478/ai-product-search/internal/usecase/product"
	searchuc "github.com/meenakshi0478/ai-product-search/internal/usecase/search"
	"github.com/meenakshi0478/ai-product-search/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting product search API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("vector_addrs", cfg.Vector.Addrs),
	)

	// Vector store (Redis with RediSearch)
	store, err := redis.NewStore(redis.Config{
		Addrs:    cfg.Vector.Addrs,
		Username: cfg.Vector.Username,
		Password: cfg.Vector.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create vector store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Vector.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Vector store not ready", zap.Error(err))
	}
	logger.Info("Connected to vector store")

	// Relational catalog
	cat, err := catalog.Open(ctx, cfg.Catalog.URL)
	if err != nil {
		logger.Fatal("Failed to open catalog", zap.Error(err))
	}
	defer func() { _ = cat.Close() }()
	logger.Info("Connected to catalog", zap.String("url", cfg.Catalog.URL))

	// Register embedding metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()

	embedder, err := buildEmbedder(cfg, store, logger)
	if err != nil {
		logger.Fatal("Failed to build embedder", zap.Error(err))
	}
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
		zap.String("cache_backend", cfg.Embedding.Cache.Backend),
	)

	// Vector index repository
	index := vecindex.New(store, cfg.Embedding.Dimensions).WithHNSW(vecindex.HNSWConfig{
		M:           cfg.Vector.HNSWM,
		EFConstruct: cfg.Vector.HNSWEFConstruct,
	})
	if err := index.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure vector index", zap.Error(err))
	}

	// Use case services
	searchSvc := searchuc.New(index, cat, embedder, logger).
		WithCandidateLimit(cfg.Search.CandidateLimit)
	productSvc := productuc.New(cat, index, embedder, logger).
		WithPagination(cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	healthSvc := healthuc.New(cat, store, newEmbeddingHealthChecker(embedder))

	server := httpapi.NewServer(searchSvc, productSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(httpapi.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached.
func buildEmbedder(cfg config.Config, store *redis.Store, logger *zap.Logger) (domain.Embedder, error) {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Timeout:    time.Duration(cfg.Embedding.TimeoutSec) * time.Second,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})

	var cacheStore embcache.Store
	switch cfg.Embedding.Cache.Backend {
	case "redis":
		cacheStore = embcache.NewRedisStore(store, store, domain.KeyPrefix+"embcache:")
	default:
		ms, err := embcache.NewMemoryStore(cfg.Embedding.Cache.Capacity)
		if err != nil {
			return nil, fmt.Errorf("memory cache: %w", err)
		}
		cacheStore = ms
	}

	return embcache.New(base, cacheStore, metrics.EmbeddingCacheTotal, logger), nil
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"status":  "error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
