// README: Smoke runner against a live deployment; executes HTTP, Redis and Postgres checks and prints results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	runner := NewRunner(cfg)
	results := runner.RunAll(ctx)

	fmt.Println("\n== Summary ==")
	pass, fail, skipped := 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case statusPass:
			pass++
		case statusFail:
			fail++
		case statusSkip:
			skipped++
		}
	}
	fmt.Printf("PASS=%d FAIL=%d SKIP=%d\n", pass, fail, skipped)

	if fail > 0 || (cfg.Strict && skipped > 0) {
		os.Exit(1)
	}
}

type Config struct {
	BaseURL        string
	JWTSecret      string
	DSN            string
	RedisAddr      string
	MigrationPath  string
	ApplyMigration bool
	Live           bool
	Strict         bool
	Timeout        time.Duration
	Concurrency    int
}

func loadConfig() Config {
	_ = godotenv.Load()

	var cfg Config
	flag.StringVar(&cfg.BaseURL, "base-url", envOrDefault("ROADTRIP_SMOKE_BASE_URL", "http://localhost:5001"), "API base URL")
	flag.StringVar(&cfg.JWTSecret, "jwt-secret", envOrDefault("JWT_SECRET", "roadtrip-dev-secret"), "secret used to sign test tokens")
	flag.StringVar(&cfg.DSN, "dsn", os.Getenv("ROADTRIP_DB_DSN"), "Postgres DSN (optional)")
	flag.StringVar(&cfg.RedisAddr, "redis", os.Getenv("ROADTRIP_REDIS_ADDR"), "Redis address (optional)")
	flag.StringVar(&cfg.MigrationPath, "migration", envOrDefault("ROADTRIP_SMOKE_MIGRATION", "migrations/0001_messages.sql"), "Migration SQL path")
	flag.BoolVar(&cfg.ApplyMigration, "apply-migration", envOrDefaultBool("ROADTRIP_SMOKE_APPLY_MIGRATION", false), "Apply migration SQL before tests")
	flag.BoolVar(&cfg.Live, "live", envOrDefaultBool("ROADTRIP_SMOKE_LIVE", false), "Run cases that call the LLM")
	flag.BoolVar(&cfg.Strict, "strict", envOrDefaultBool("ROADTRIP_SMOKE_STRICT", false), "Fail on skipped cases")
	flag.DurationVar(&cfg.Timeout, "timeout", envOrDefaultDuration("ROADTRIP_SMOKE_TIMEOUT", 3*time.Minute), "Total timeout")
	flag.IntVar(&cfg.Concurrency, "concurrency", envOrDefaultInt("ROADTRIP_SMOKE_CONCURRENCY", 8), "Identical requests sent in the coalescing case")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
