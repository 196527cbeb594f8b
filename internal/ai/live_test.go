package ai

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
)

// TestLiveProviderReturnsJSON calls the configured provider for real. It only
// runs when ROADTRIP_TEST_LIVE_LLM is set.
func TestLiveProviderReturnsJSON(t *testing.T) {
	_ = godotenv.Load(filepath.Join("..", "..", ".env"))
	if os.Getenv("ROADTRIP_TEST_LIVE_LLM") == "" {
		t.Skip("ROADTRIP_TEST_LIVE_LLM not set; skipping live provider test")
	}

	opts := Options{
		Provider:    os.Getenv("ROADTRIP_LLM_PROVIDER"),
		GeminiKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel: envOr("ROADTRIP_GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel: envOr("ROADTRIP_OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBase:  os.Getenv("ROADTRIP_OPENAI_BASE_URL"),
		Timeout:     60 * time.Second,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	p, err := NewProvider(ctx, opts)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	defer p.Close()

	raw, err := p.GenerateJSON(ctx,
		`Réponds en JSON : {"type":"roadtrip_advice","sujet":"...","reponse":"..."}`,
		"Un conseil pour conduire en montagne ?")
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("expected JSON, got %q: %v", raw, err)
	}
	if s, _ := out["reponse"].(string); strings.TrimSpace(s) == "" {
		t.Errorf("expected a non-empty answer, got %v", out)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
