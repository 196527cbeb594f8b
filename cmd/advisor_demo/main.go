package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"roadtrip/internal/advisor"
	"roadtrip/internal/ai"
	"roadtrip/internal/cache"
	"roadtrip/internal/config"
	"roadtrip/internal/http/handlers"
	"roadtrip/internal/infra"
	"roadtrip/internal/weather"
)

func main() {
	query := flag.String("q", "Je veux faire un roadtrip de 6 jours dans les Highlands en Écosse", "question to ask")
	location := flag.String("location", "Inverness", "destination used for weather")
	withWeather := flag.Bool("weather", true, "include current weather")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := infra.NewLogger("development", "warn")
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
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
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	weatherSvc := weather.NewService(
		weather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Weather.Timeout),
		cache.NewMemoryStore(cfg.Weather.FreshTTL),
		cache.NewMemoryStore(cfg.Weather.FallbackTTL),
		logger,
	)
	svc := advisor.NewService(advisor.Deps{
		LLM:     provider,
		Cache:   cache.NewMemoryStore(time.Hour),
		Weather: weatherSvc,
		Logger:  logger,
	})

	req := advisor.Request{Query: *query, Location: *location, IncludeWeather: *withWeather}
	fmt.Printf("User: %s\n", req.Query)

	start := time.Now()
	res := svc.Advise(ctx, req)
	fmt.Printf("Kind: %s (%s)\n", res.Kind, time.Since(start).Round(time.Millisecond))
	if err := res.Err(); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
	fmt.Println(strings.TrimSpace(handlers.FormatResult(res)))

	start = time.Now()
	again := svc.Advise(ctx, req)
	fmt.Printf("\nSecond call: %s (%s)\n", again.Kind, time.Since(start).Round(time.Millisecond))
}
