package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/farmtrackhq/farmtrack-backend/pkg/config"
)

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error when neither url nor address is set")
	}
}

func TestOptionsFromConfigParsesURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6379/2", PoolSize: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
	if opts.PoolSize != 5 {
		t.Fatalf("expected pool size fallback, got %d", opts.PoolSize)
	}
}

func TestKeyBuilders(t *testing.T) {
	c := &Client{}
	if got := c.AccessSessionKey("abc"); got != "ft:session:access:abc" {
		t.Fatalf("unexpected session key %q", got)
	}
	if got := c.RateLimitKey("login:ip:1.2.3.4"); got != "ft:rate_limit:login:ip:1.2.3.4" {
		t.Fatalf("unexpected rate limit key %q", got)
	}
}

func TestUninitializedClientErrors(t *testing.T) {
	c := &Client{}
	if err := c.Ping(t.Context()); err == nil {
		t.Fatal("expected error for uninitialized client")
	}
	if _, err := c.Get(t.Context(), "k"); err == nil {
		t.Fatal("expected error for uninitialized client")
	}
}

type fakeCmdable struct {
	counts  map[string]int64
	expires map[string]time.Duration
}

func newFakeCmdable() *fakeCmdable {
	return &fakeCmdable{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (f *fakeCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeCmdable) Set(_ context.Context, _ string, _ any, _ time.Duration) *redis.StatusCmd {
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCmdable) Get(_ context.Context, _ string) *redis.StringCmd {
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeCmdable) SetNX(_ context.Context, _ string, _ any, _ time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCmdable) Incr(_ context.Context, key string) *redis.IntCmd {
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCmdable) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	f.expires[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCmdable) Del(_ context.Context, _ ...string) *redis.IntCmd {
	return redis.NewIntResult(1, nil)
}

func TestFixedWindowAllow(t *testing.T) {
	fake := newFakeCmdable()
	c := &Client{store: fake}

	window := time.Minute
	for i := int64(1); i <= 3; i++ {
		allowed, count, err := c.FixedWindowAllow(t.Context(), "ip:login:1.2.3.4", 2, window)
		if err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
		if count != i {
			t.Fatalf("attempt %d: expected count %d got %d", i, i, count)
		}
		if wantAllowed := i <= 2; allowed != wantAllowed {
			t.Fatalf("attempt %d: expected allowed=%v", i, wantAllowed)
		}
	}

	key := "ft:rate_limit:ip:login:1.2.3.4"
	if fake.counts[key] != 3 {
		t.Fatalf("counter should live under the namespaced key, got %v", fake.counts)
	}
	if fake.expires[key] != window {
		t.Fatalf("expected window ttl on first increment, got %v", fake.expires[key])
	}
}
