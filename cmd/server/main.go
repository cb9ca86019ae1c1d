package main

import (
	"fmt"
	"log"

	"github.com/listafacil/backend/config"
	httpDelivery "github.com/listafacil/backend/internal/delivery/http"
	"github.com/listafacil/backend/internal/infrastructure/cache"
	"github.com/listafacil/backend/internal/infrastructure/catalog"
	"github.com/listafacil/backend/internal/logging"
	"github.com/listafacil/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.Setup(cfg)
	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("catalog", cfg.Catalog.BaseURL).
		Msg("starting listafacil backend")

	// Infrastructure: storefront client behind a read-through query cache.
	catalogClient := catalog.NewClient(catalog.ClientConfig{
		BaseURL:           cfg.Catalog.BaseURL,
		ConsumerKey:       cfg.Catalog.ConsumerKey,
		ConsumerSecret:    cfg.Catalog.ConsumerSecret,
		PageSize:          cfg.Catalog.PageSize,
		Timeout:           cfg.Catalog.Timeout,
		RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
	}, logger)

	memoryCache := cache.NewMemoryCache()
	cachedCatalog := catalog.NewCachingClient(catalogClient, memoryCache, cfg.Cache.TTL)

	// Usecase layer: scorer, keyword fallback, per-item resolver, batch fan-out.
	matcher := usecase.NewMatchingService(usecase.MatchConfig{
		ContainmentScore: cfg.Matching.ContainmentScore,
	})
	keywords := usecase.NewKeywordExtractor(cfg.Matching.MaxKeywords)
	resolver := usecase.NewResolverService(cachedCatalog, matcher, keywords, usecase.ResolverConfig{
		NameThreshold:    cfg.Matching.NameThreshold,
		KeywordThreshold: cfg.Matching.KeywordThreshold,
	}, logger)
	reconciler := usecase.NewReconcileService(resolver, usecase.ReconcileConfig{
		Concurrency: cfg.Matching.Concurrency,
	}, logger)

	logger.Info().
		Float64("name_threshold", cfg.Matching.NameThreshold).
		Float64("keyword_threshold", cfg.Matching.KeywordThreshold).
		Int("concurrency", cfg.Matching.Concurrency).
		Msg("matching configured")

	handler := httpDelivery.NewHandler(reconciler)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("server listening")

	if err := router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
