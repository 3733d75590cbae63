package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP:    HTTPConfig{Port: 8080},
		Vector:  VectorConfig{Addrs: []string{"localhost:6379"}},
		Catalog: CatalogConfig{URL: "sqlite:///tmp/products.db"},
		Embedding: EmbeddingConfig{
			Cache: EmbeddingCacheConfig{Backend: "memory"},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := validConfig()
		cfg.HTTP.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("port %d: expected error", port)
		}
	}
}

func TestValidate_MissingVectorAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Vector.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing vector addrs")
	}
}

func TestValidate_MissingCatalogURL(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.URL = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing catalog url")
	}
}

func TestValidate_InvalidCacheBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Cache.Backend = "memcached"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid cache backend")
	}

	expected := `embedding.cache.backend must be "memory" or "redis", got "memcached"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_RedisCacheBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Cache.Backend = "redis"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Embedding.Model != "text-embedding-ada-002" {
		t.Errorf("expected default model, got %q", cfg.Embedding.Model)
	}
	if cfg.Embedding.Dimensions != 1536 {
		t.Errorf("expected 1536 dimensions, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Embedding.Cache.Backend != "memory" {
		t.Errorf("expected memory cache backend, got %q", cfg.Embedding.Cache.Backend)
	}
	if cfg.Search.CandidateLimit != 50 {
		t.Errorf("expected candidate limit 50, got %d", cfg.Search.CandidateLimit)
	}
	if cfg.Search.DefaultPageSize != 20 || cfg.Search.MaxPageSize != 100 {
		t.Errorf("expected page sizes 20/100, got %d/%d", cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	}
	if cfg.Vector.HNSWM != 32 || cfg.Vector.HNSWEFConstruct != 400 {
		t.Errorf("expected HNSW 32/400, got %d/%d", cfg.Vector.HNSWM, cfg.Vector.HNSWEFConstruct)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Search:    SearchConfig{CandidateLimit: 200},
		Embedding: EmbeddingConfig{Model: "text-embedding-3-small", Dimensions: 512},
	}
	cfg.ApplyDefaults()

	if cfg.Search.CandidateLimit != 200 {
		t.Errorf("explicit candidate limit overwritten: %d", cfg.Search.CandidateLimit)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" || cfg.Embedding.Dimensions != 512 {
		t.Errorf("explicit embedding settings overwritten: %q/%d", cfg.Embedding.Model, cfg.Embedding.Dimensions)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_API_KEY", "sk-123")

	out := string(expandEnvVars([]byte("api_key: ${TEST_API_KEY}")))
	if out != "api_key: sk-123" {
		t.Errorf("unexpected expansion: %q", out)
	}
}

func TestExpandEnvVars_Default(t *testing.T) {
	out := string(expandEnvVars([]byte("addr: ${UNSET_TEST_VAR:-localhost:6379}")))
	if out != "addr: localhost:6379" {
		t.Errorf("unexpected expansion: %q", out)
	}

	t.Setenv("SET_TEST_VAR", "redis:6379")
	out = string(expandEnvVars([]byte("addr: ${SET_TEST_VAR:-localhost:6379}")))
	if out != "addr: redis:6379" {
		t.Errorf("env value must win over default: %q", out)
	}
}
