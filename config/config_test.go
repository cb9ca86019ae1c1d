package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("LISTAFACIL_SERVER_PORT")
		os.Unsetenv("LISTAFACIL_SERVER_ENVIRONMENT")
		os.Unsetenv("LISTAFACIL_CATALOG_BASE_URL")
		os.Unsetenv("LISTAFACIL_CATALOG_CONSUMER_KEY")
		os.Unsetenv("LISTAFACIL_CATALOG_CONSUMER_SECRET")
		os.Unsetenv("LISTAFACIL_CATALOG_PAGE_SIZE")
		os.Unsetenv("LISTAFACIL_CACHE_TTL")
		os.Unsetenv("LISTAFACIL_MATCHING_NAME_THRESHOLD")
		os.Unsetenv("LISTAFACIL_MATCHING_KEYWORD_THRESHOLD")
		os.Unsetenv("LISTAFACIL_MATCHING_CONTAINMENT_SCORE")
		os.Unsetenv("LISTAFACIL_MATCHING_CONCURRENCY")
		os.Unsetenv("LISTAFACIL_LOG_LEVEL")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("LISTAFACIL_CATALOG_BASE_URL", "https://tienda.example.com/wp-json/wc/v3")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Catalog.PageSize != 10 {
			t.Errorf("Catalog.PageSize = %d, want 10", cfg.Catalog.PageSize)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.Matching.NameThreshold != 0.70 {
			t.Errorf("Matching.NameThreshold = %v, want 0.70", cfg.Matching.NameThreshold)
		}
		if cfg.Matching.KeywordThreshold != 0.60 {
			t.Errorf("Matching.KeywordThreshold = %v, want 0.60", cfg.Matching.KeywordThreshold)
		}
		if cfg.Matching.ContainmentScore != 0.9 {
			t.Errorf("Matching.ContainmentScore = %v, want 0.9", cfg.Matching.ContainmentScore)
		}
		if cfg.Matching.MaxKeywords != 5 {
			t.Errorf("Matching.MaxKeywords = %d, want 5", cfg.Matching.MaxKeywords)
		}
		if cfg.Matching.Concurrency != 5 {
			t.Errorf("Matching.Concurrency = %d, want 5", cfg.Matching.Concurrency)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("LISTAFACIL_SERVER_PORT", "9090")
		os.Setenv("LISTAFACIL_SERVER_ENVIRONMENT", "production")
		os.Setenv("LISTAFACIL_CATALOG_BASE_URL", "https://otra.example.com/api")
		os.Setenv("LISTAFACIL_CATALOG_CONSUMER_KEY", "ck_custom")
		os.Setenv("LISTAFACIL_MATCHING_NAME_THRESHOLD", "0.8")
		os.Setenv("LISTAFACIL_MATCHING_CONCURRENCY", "10")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Catalog.BaseURL != "https://otra.example.com/api" {
			t.Errorf("Catalog.BaseURL = %s, want custom URL", cfg.Catalog.BaseURL)
		}
		if cfg.Catalog.ConsumerKey != "ck_custom" {
			t.Errorf("Catalog.ConsumerKey = %s, want ck_custom", cfg.Catalog.ConsumerKey)
		}
		if cfg.Matching.NameThreshold != 0.8 {
			t.Errorf("Matching.NameThreshold = %v, want 0.8", cfg.Matching.NameThreshold)
		}
		if cfg.Matching.Concurrency != 10 {
			t.Errorf("Matching.Concurrency = %d, want 10", cfg.Matching.Concurrency)
		}
	})

	t.Run("fails without a catalog base URL", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for missing catalog base URL")
		}
	})

	t.Run("fails with an out-of-range threshold", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("LISTAFACIL_CATALOG_BASE_URL", "https://tienda.example.com/wp-json/wc/v3")
		os.Setenv("LISTAFACIL_MATCHING_NAME_THRESHOLD", "1.5")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for threshold > 1")
		}
	})

	t.Run("fails with zero concurrency", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("LISTAFACIL_CATALOG_BASE_URL", "https://tienda.example.com/wp-json/wc/v3")
		os.Setenv("LISTAFACIL_MATCHING_CONCURRENCY", "0")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for concurrency < 1")
		}
	})
}
