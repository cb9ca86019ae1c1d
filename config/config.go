package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	Cache    CacheConfig
	Matching MatchingConfig
	Log      LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds storefront catalog API configuration
type CatalogConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	ConsumerKey       string        `mapstructure:"consumer_key"`
	ConsumerSecret    string        `mapstructure:"consumer_secret"`
	PageSize          int           `mapstructure:"page_size"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// MatchingConfig holds the reconciliation tuning knobs. The thresholds and
// the containment score are empirically calibrated constants, exposed here
// so tuning never requires a code change.
type MatchingConfig struct {
	NameThreshold    float64 `mapstructure:"name_threshold"`
	KeywordThreshold float64 `mapstructure:"keyword_threshold"`
	ContainmentScore float64 `mapstructure:"containment_score"`
	MaxKeywords      int     `mapstructure:"max_keywords"`
	Concurrency      int     `mapstructure:"concurrency"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/listafacil/")

	v.SetEnvPrefix("LISTAFACIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Env-only keys with no default are invisible to Unmarshal unless bound.
	v.BindEnv("catalog.base_url")
	v.BindEnv("catalog.consumer_key")
	v.BindEnv("catalog.consumer_secret")

	setDefaults(v)

	// Config file is optional; env vars and defaults carry a bare deployment.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	v.SetDefault("catalog.page_size", 10)
	v.SetDefault("catalog.timeout", "30s")
	v.SetDefault("catalog.requests_per_second", 5.0)

	v.SetDefault("cache.ttl", "1h")

	v.SetDefault("matching.name_threshold", 0.70)
	v.SetDefault("matching.keyword_threshold", 0.60)
	v.SetDefault("matching.containment_score", 0.9)
	v.SetDefault("matching.max_keywords", 5)
	v.SetDefault("matching.concurrency", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/listafacil.log")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base URL is required (set LISTAFACIL_CATALOG_BASE_URL)")
	}

	for name, threshold := range map[string]float64{
		"matching.name_threshold":    config.Matching.NameThreshold,
		"matching.keyword_threshold": config.Matching.KeywordThreshold,
		"matching.containment_score": config.Matching.ContainmentScore,
	} {
		if threshold <= 0 || threshold > 1 {
			return fmt.Errorf("%s must be in (0, 1], got: %v", name, threshold)
		}
	}

	if config.Matching.Concurrency < 1 {
		return fmt.Errorf("matching.concurrency must be at least 1, got: %d", config.Matching.Concurrency)
	}

	return nil
}
