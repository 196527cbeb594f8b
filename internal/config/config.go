// README: Config loader with env defaults for HTTP, LLM, weather, maps, cache and persistence settings.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingLLMKey = errors.New("no API key configured for the selected LLM provider")

type LLMConfig struct {
	Provider    string
	GeminiKey   string
	GeminiModel string
	OpenAIKey   string
	OpenAIModel string
	OpenAIBase  string
	Timeout     time.Duration
}

type WeatherConfig struct {
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	FreshTTL    time.Duration
	FallbackTTL time.Duration
}

type Config struct {
	Env      string
	LogLevel string
	HTTP     struct {
		Addr string
	}
	LLM     LLMConfig
	Weather WeatherConfig
	Maps    struct {
		APIKey string
	}
	Cache struct {
		AdvisorTTL time.Duration
		RedisAddr  string
	}
	DB struct {
		DSN string
	}
	DataService struct {
		URL     string
		Timeout time.Duration
	}
	Auth struct {
		JWTSecret string
	}
}

// Load reads .env when present and then the process environment.
// Redis, Postgres and Maps are optional; an empty value disables them.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	cfg.Env = envOrDefault("ROADTRIP_ENV", "development")
	cfg.LogLevel = envOrDefault("ROADTRIP_LOG_LEVEL", "info")
	cfg.HTTP.Addr = envOrDefault("ROADTRIP_HTTP_ADDR", ":5001")

	cfg.LLM.Provider = envOrDefault("ROADTRIP_LLM_PROVIDER", "openai")
	cfg.LLM.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.LLM.GeminiModel = envOrDefault("ROADTRIP_GEMINI_MODEL", "gemini-2.5-flash")
	cfg.LLM.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.LLM.OpenAIModel = envOrDefault("ROADTRIP_OPENAI_MODEL", "gpt-4o-mini")
	cfg.LLM.OpenAIBase = os.Getenv("ROADTRIP_OPENAI_BASE_URL")
	cfg.LLM.Timeout = envOrDefaultDuration("ROADTRIP_LLM_TIMEOUT", 60*time.Second)

	cfg.Weather.APIKey = os.Getenv("WEATHER_API_KEY")
	cfg.Weather.BaseURL = os.Getenv("ROADTRIP_WEATHER_BASE_URL")
	cfg.Weather.Timeout = envOrDefaultDuration("ROADTRIP_WEATHER_TIMEOUT", 5*time.Second)
	cfg.Weather.FreshTTL = envOrDefaultDuration("ROADTRIP_WEATHER_TTL", 10*time.Minute)
	cfg.Weather.FallbackTTL = envOrDefaultDuration("ROADTRIP_WEATHER_FALLBACK_TTL", 7*24*time.Hour)

	cfg.Maps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")

	cfg.Cache.AdvisorTTL = envOrDefaultDuration("ROADTRIP_CACHE_TTL", time.Hour)
	cfg.Cache.RedisAddr = os.Getenv("ROADTRIP_REDIS_ADDR")

	cfg.DB.DSN = os.Getenv("ROADTRIP_DB_DSN")

	cfg.DataService.URL = envOrDefault("DATA_SERVICE_URL", "http://localhost:5002")
	cfg.DataService.Timeout = envOrDefaultDuration("ROADTRIP_DATA_SERVICE_TIMEOUT", 10*time.Second)

	cfg.Auth.JWTSecret = envOrDefault("JWT_SECRET", "roadtrip-dev-secret")

	if !envOrDefaultBool("ROADTRIP_SKIP_LLM_CHECK", false) {
		switch cfg.LLM.Provider {
		case "gemini":
			if cfg.LLM.GeminiKey == "" {
				return cfg, ErrMissingLLMKey
			}
		default:
			if cfg.LLM.OpenAIKey == "" {
				return cfg, ErrMissingLLMKey
			}
		}
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// envOrDefaultDuration accepts Go durations ("90s") or a bare number of seconds.
func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n := envOrDefaultInt(key, -1); n >= 0 {
		return time.Duration(n) * time.Second
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
