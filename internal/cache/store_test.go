package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type entry struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	var got entry
	if ok, err := s.Get(ctx, "missing", &got); ok || err != nil {
		t.Fatalf("Get(missing) = %v, %v", ok, err)
	}

	in := entry{Name: "corse", Items: []string{"Ajaccio", "Bastia"}}
	if err := s.Set(ctx, "k", in); err != nil {
		t.Fatalf("Set: %v", err)
	}
	in.Items[0] = "mutated"

	ok, err := s.Get(ctx, "k", &got)
	if !ok || err != nil {
		t.Fatalf("Get(k) = %v, %v", ok, err)
	}
	if got.Items[0] != "Ajaccio" {
		t.Errorf("stored value aliased caller slice: %+v", got)
	}
	got.Items[1] = "changed"
	var again entry
	_, _ = s.Get(ctx, "k", &again)
	if again.Items[1] != "Bastia" {
		t.Errorf("Get returned shared value: %+v", again)
	}
	if s.Len() != 1 || s.TTL() != time.Hour {
		t.Errorf("Len = %d, TTL = %v", s.Len(), s.TTL())
	}
}

func TestMemoryStoreExpires(t *testing.T) {
	s := NewMemoryStore(20 * time.Millisecond)
	ctx := context.Background()
	if err := s.Set(ctx, "k", entry{Name: "x"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	var got entry
	if ok, _ := s.Get(ctx, "k", &got); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestMemoryStoreRejectsUnencodable(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	if err := s.Set(context.Background(), "k", make(chan int)); err == nil {
		t.Fatalf("expected encode error")
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("ROADTRIP_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("ROADTRIP_TEST_REDIS_ADDR not set; skipping Redis store test")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	s := NewRedisStore(rdb, "roadtrip:test:", time.Minute)
	t.Cleanup(func() { rdb.Del(context.Background(), s.Key("k")) })

	var got entry
	if ok, err := s.Get(ctx, "absent", &got); ok || err != nil {
		t.Fatalf("Get(absent) = %v, %v", ok, err)
	}
	if err := s.Set(ctx, "k", entry{Name: "alpes", Items: []string{"Annecy"}}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if ok, err := s.Get(ctx, "k", &got); !ok || err != nil || got.Name != "alpes" {
		t.Fatalf("Get(k) = %v, %v, %+v", ok, err, got)
	}
	ttl, err := rdb.TTL(ctx, s.Key("k")).Result()
	if err != nil || ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected ttl %v, %v", ttl, err)
	}
}
