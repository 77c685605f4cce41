package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "github.com/AlexeyPevz/Travel-bot-sub002/internal/adapters/redis"
)

func TestCache_SetGetExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	type payload struct {
		Total int      `json:"total"`
		Names []string `json:"names"`
	}

	ok, err := c.Get(ctx, "search:abc", &payload{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected miss on empty cache")
	}

	in := payload{Total: 2, Names: []string{"Sunrise Resort", "Blue Bay"}}
	if err := c.Set(ctx, "search:abc", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out payload
	ok, err = c.Get(ctx, "search:abc", &out)
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%v err=%v", ok, err)
	}
	if out.Total != 2 || len(out.Names) != 2 || out.Names[0] != "Sunrise Resort" {
		t.Fatalf("unexpected payload: %+v", out)
	}

	if ttl := mr.TTL("search:abc"); ttl <= 0 {
		t.Fatalf("expected a positive TTL, got %v", ttl)
	}

	// entries age out by TTL, never by explicit invalidation
	mr.FastForward(61 * time.Second)
	ok, _ = c.Get(ctx, "search:abc", &out)
	if ok {
		t.Fatalf("expected miss after expiry")
	}
}

func TestCache_SetDefaultsTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)

	if err := c.Set(context.Background(), "search:zero", 1, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("search:zero"); ttl <= 0 {
		t.Fatalf("zero ttlSec must still expire, got %v", ttl)
	}
}
