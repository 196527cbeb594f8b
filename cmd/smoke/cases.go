// README: Smoke cases covering auth, refusals, caching, weather and persistence.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"roadtrip/internal/infra"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
	token string
}

type Result struct {
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 90 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}
	tok, err := infra.SignToken(r.cfg.JWTSecret, jwt.MapClaims{
		"userId": "smoke-" + uuid.NewString()[:8],
		"email":  "smoke@example.com",
		"role":   "premium",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "sign token: %v\n", err)
	}
	r.token = tok

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency.Round(time.Millisecond))
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	return []TestCase{
		{Name: "Env: Postgres connect", Run: func(ctx context.Context, r *Runner) Result {
			if r.db == nil {
				return Result{Status: statusSkip, Note: "db not configured"}
			}
			ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			if err := r.db.Ping(ctx); err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			return Result{Status: statusPass}
		}},
		{Name: "Env: Redis connect", Run: func(ctx context.Context, r *Runner) Result {
			if r.redis == nil {
				return Result{Status: statusSkip, Note: "redis not configured"}
			}
			ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			if err := r.redis.Ping(ctx).Err(); err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			return Result{Status: statusPass}
		}},
		{Name: "Migration: apply (optional)", Run: func(ctx context.Context, r *Runner) Result {
			if !r.cfg.ApplyMigration {
				return Result{Status: statusSkip, Note: "apply-migration=false"}
			}
			if r.db == nil {
				return Result{Status: statusFail, Note: "db not configured"}
			}
			sql, err := os.ReadFile(r.cfg.MigrationPath)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			if _, err := r.db.Exec(ctx, string(sql)); err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			return Result{Status: statusPass}
		}},
		{Name: "API: health", Run: func(ctx context.Context, r *Runner) Result {
			status, _, latency, err := r.call(ctx, http.MethodGet, "/health", nil, false)
			return expectStatus(status, latency, err, http.StatusOK)
		}},
		{Name: "API: ask without token is rejected", Run: func(ctx context.Context, r *Runner) Result {
			status, _, latency, err := r.call(ctx, http.MethodPost, "/api/ai/ask", map[string]any{"prompt": "Roadtrip en Norvège"}, false)
			return expectStatus(status, latency, err, http.StatusUnauthorized)
		}},
		{Name: "API: off-topic question is refused", Run: func(ctx context.Context, r *Runner) Result {
			return r.expectRefusal(ctx, "What is 2+2?", "invalid_topic")
		}},
		{Name: "API: 20-day trip is refused", Run: func(ctx context.Context, r *Runner) Result {
			return r.expectRefusal(ctx, "Roadtrip de 20 jours en Norvège", "validation_duration")
		}},
		{Name: "API: weather lookup", Run: func(ctx context.Context, r *Runner) Result {
			status, body, latency, err := r.call(ctx, http.MethodGet, "/api/weather/Lyon", nil, false)
			res := expectStatus(status, latency, err, http.StatusOK)
			if res.Status == statusPass {
				var out map[string]any
				_ = json.Unmarshal(body, &out)
				res.Note = fmt.Sprintf("source=%v", out["source"])
			}
			return res
		}},
		{Name: "API: repeated question hits the cache", Run: func(ctx context.Context, r *Runner) Result {
			if !r.cfg.Live {
				return Result{Status: statusSkip, Note: "live=false"}
			}
			body := map[string]any{"prompt": "Roadtrip de 4 jours en Bretagne en " + uuid.NewString()[:4]}
			first, _, cold, err := r.call(ctx, http.MethodPost, "/api/ai/ask", body, true)
			if err != nil || first != http.StatusOK {
				return Result{Status: statusFail, Note: fmt.Sprintf("first call status=%d err=%v", first, err)}
			}
			second, _, warm, err := r.call(ctx, http.MethodPost, "/api/ai/ask", body, true)
			if err != nil || second != http.StatusOK {
				return Result{Status: statusFail, Note: fmt.Sprintf("second call status=%d err=%v", second, err)}
			}
			if warm > cold/2 {
				return Result{Status: statusFail, Latency: warm, Note: fmt.Sprintf("cold=%s warm=%s", cold, warm)}
			}
			return Result{Status: statusPass, Latency: warm, Note: fmt.Sprintf("cold=%s", cold.Round(time.Millisecond))}
		}},
		{Name: "Redis: advisor keys present", Run: func(ctx context.Context, r *Runner) Result {
			if r.redis == nil || !r.cfg.Live {
				return Result{Status: statusSkip, Note: "needs redis and live=true"}
			}
			keys, _, err := r.redis.Scan(ctx, 0, "roadtrip:advisor:roadtrip_*", 100).Result()
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			if len(keys) == 0 {
				return Result{Status: statusFail, Note: "no advisor keys found"}
			}
			return Result{Status: statusPass, Note: fmt.Sprintf("keys=%d", len(keys))}
		}},
		{Name: "Concurrency: identical questions coalesce", Run: func(ctx context.Context, r *Runner) Result {
			if !r.cfg.Live {
				return Result{Status: statusSkip, Note: "live=false"}
			}
			return r.burst(ctx)
		}},
		{Name: "API: save and read back a message", Run: func(ctx context.Context, r *Runner) Result {
			conv := "smoke-" + uuid.NewString()[:8]
			status, _, latency, err := r.call(ctx, http.MethodPost, "/api/ai/save", map[string]any{
				"role": "user", "content": "Bonjour", "conversationId": conv,
			}, true)
			if res := expectStatus(status, latency, err, http.StatusCreated); res.Status != statusPass {
				return res
			}
			status, body, latency, err := r.call(ctx, http.MethodGet, "/api/ai/conversation/"+conv, nil, true)
			if res := expectStatus(status, latency, err, http.StatusOK); res.Status != statusPass {
				return res
			}
			var msgs []map[string]any
			if err := json.Unmarshal(body, &msgs); err != nil || len(msgs) != 1 {
				return Result{Status: statusFail, Note: "expected 1 message, got " + compact(body)}
			}
			_, _, _, _ = r.call(ctx, http.MethodDelete, "/api/ai/conversation/"+conv, nil, true)
			return Result{Status: statusPass, Latency: latency}
		}},
	}
}

func (r *Runner) expectRefusal(ctx context.Context, prompt, errorType string) Result {
	status, body, latency, err := r.call(ctx, http.MethodPost, "/api/ai/ask", map[string]any{"prompt": prompt}, true)
	if res := expectStatus(status, latency, err, http.StatusOK); res.Status != statusPass {
		return res
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if out["error"] != true || out["errorType"] != errorType {
		return Result{Status: statusFail, Note: "unexpected body " + compact(body)}
	}
	return Result{Status: statusPass, Latency: latency}
}

// burst sends identical new questions at once; all must succeed with the same content.
func (r *Runner) burst(ctx context.Context) Result {
	body := map[string]any{"prompt": "Conseils pour un roadtrip en van " + uuid.NewString()[:4]}
	var (
		mu       sync.Mutex
		contents = map[string]int{}
		failures int
		wg       sync.WaitGroup
	)
	start := time.Now()
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, raw, _, err := r.call(ctx, http.MethodPost, "/api/ai/ask", body, true)
			mu.Lock()
			defer mu.Unlock()
			if err != nil || status != http.StatusOK {
				failures++
				return
			}
			var out map[string]any
			_ = json.Unmarshal(raw, &out)
			content, _ := out["content"].(string)
			contents[content]++
		}()
	}
	wg.Wait()

	if failures > 0 {
		return Result{Status: statusFail, Note: fmt.Sprintf("%d of %d requests failed", failures, r.cfg.Concurrency)}
	}
	if len(contents) != 1 {
		return Result{Status: statusFail, Note: fmt.Sprintf("expected one shared answer, got %d distinct", len(contents))}
	}
	return Result{Status: statusPass, Latency: time.Since(start), Note: fmt.Sprintf("requests=%d", r.cfg.Concurrency)}
}

func (r *Runner) call(ctx context.Context, method, path string, body any, auth bool) (int, []byte, time.Duration, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, 0, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.cfg.BaseURL+path, rd)
	if err != nil {
		return 0, nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	return resp.StatusCode, raw, time.Since(start), err
}

func expectStatus(status int, latency time.Duration, err error, want int) Result {
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if status != want {
		return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d want=%d", status, want)}
	}
	return Result{Status: statusPass, Latency: latency}
}

// compact trims a response body for notes.
func compact(b []byte) string {
	s := strings.Join(strings.Fields(string(b)), " ")
	if len(s) > 120 {
		return s[:120] + "…"
	}
	return s
}
