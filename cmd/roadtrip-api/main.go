// README: Entry point; loads config, wires caches, providers and services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roadtrip/internal/advisor"
	"roadtrip/internal/ai"
	"roadtrip/internal/cache"
	"roadtrip/internal/config"
	httptransport "roadtrip/internal/http"
	"roadtrip/internal/infra"
	"roadtrip/internal/maps"
	"roadtrip/internal/modules/conversation"
	"roadtrip/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	advisorCache := cache.Store(cache.NewMemoryStore(cfg.Cache.AdvisorTTL))
	weatherFresh := cache.Store(cache.NewMemoryStore(cfg.Weather.FreshTTL))
	weatherFallback := cache.Store(cache.NewMemoryStore(cfg.Weather.FallbackTTL))
	if cfg.Cache.RedisAddr != "" {
		rdb, err := infra.NewRedis(ctx, cfg.Cache.RedisAddr)
		if err != nil {
			logger.Fatal("redis init", zap.Error(err))
		}
		defer func() { _ = rdb.Close() }()
		advisorCache = cache.NewRedisStore(rdb, "roadtrip:advisor:", cfg.Cache.AdvisorTTL)
		weatherFresh = cache.NewRedisStore(rdb, "roadtrip:weather:", cfg.Weather.FreshTTL)
		weatherFallback = cache.NewRedisStore(rdb, "roadtrip:weather-fallback:", cfg.Weather.FallbackTTL)
		logger.Info("using redis caches", zap.String("addr", cfg.Cache.RedisAddr))
	}

	provider, err := ai.NewProvider(ctx, ai.Options{
		Provider:    cfg.LLM.Provider,
		GeminiKey:   cfg.LLM.GeminiKey,
		GeminiModel: cfg.LLM.GeminiModel,
		OpenAIKey:   cfg.LLM.OpenAIKey,
		OpenAIModel: cfg.LLM.OpenAIModel,
		OpenAIBase:  cfg.LLM.OpenAIBase,
		Timeout:     cfg.LLM.Timeout,
	})
	if err != nil {
		logger.Fatal("llm provider init", zap.Error(err))
	}
	defer provider.Close()

	weatherClient := weather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Weather.Timeout)
	weatherSvc := weather.NewService(weatherClient, weatherFresh, weatherFallback, logger.Named("weather"))

	deps := advisor.Deps{
		LLM:     provider,
		Cache:   advisorCache,
		Weather: weatherSvc,
		Logger:  logger.Named("advisor"),
	}
	if cfg.Maps.APIKey != "" {
		places, err := maps.NewPlacesService(cfg.Maps.APIKey)
		if err != nil {
			logger.Fatal("maps places init", zap.Error(err))
		}
		routes, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			logger.Fatal("maps routes init", zap.Error(err))
		}
		deps.Attractions = places
		deps.Routes = routes
	}
	advisorSvc := advisor.NewService(deps)

	var store conversation.Store = conversation.NewRemoteStore(cfg.DataService.URL, cfg.DataService.Timeout)
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Fatal("postgres init", zap.Error(err))
		}
		defer dbPool.Close()
		store = conversation.NewPGStore(dbPool)
	}
	conversationSvc := conversation.NewService(store)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Advisor:       advisorSvc,
		Conversations: conversationSvc,
		Weather:       weatherSvc,
		Verifier:      infra.NewJWTVerifier(cfg.Auth.JWTSecret),
		Logger:        logger,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTP.Addr), zap.String("llm", cfg.LLM.Provider))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", zap.Error(err))
	}
}
