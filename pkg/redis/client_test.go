package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockCmdable struct {
	values      map[string]string
	counters    map[string]int64
	expireCalls []string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{values: map[string]string{}, counters: map[string]int64{}}
}

func (m *mockCmdable) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	m.values[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	value, ok := m.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (m *mockCmdable) SetNX(ctx context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd {
	if _, exists := m.values[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	m.values[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.counters[key]++
	return redis.NewIntResult(m.counters[key], nil)
}

func (m *mockCmdable) Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	m.expireCalls = append(m.expireCalls, key)
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := m.values[key]; ok {
			delete(m.values, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}

	if err := client.Set(ctx, "key", "value", time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	got, err := client.Get(ctx, "key")
	if err != nil || got != "value" {
		t.Fatalf("Get = %q/%v, want value", got, err)
	}
	if err := client.Del(ctx, "key"); err != nil {
		t.Fatalf("Del returned error: %v", err)
	}
	if _, err := client.Get(ctx, "key"); err != Nil {
		t.Fatalf("expected Nil for a deleted key, got %v", err)
	}
}

func TestIncrWithTTL_SetsExpiryOnce(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	count, err := client.IncrWithTTL(ctx, "counter", time.Minute)
	if err != nil || count != 1 {
		t.Fatalf("first increment = %d/%v", count, err)
	}
	if len(mock.expireCalls) != 1 {
		t.Fatalf("expected expiry on the first increment, got %d calls", len(mock.expireCalls))
	}

	count, err = client.IncrWithTTL(ctx, "counter", time.Minute)
	if err != nil || count != 2 {
		t.Fatalf("second increment = %d/%v", count, err)
	}
	if len(mock.expireCalls) != 1 {
		t.Fatal("expiry must not be reset on later increments")
	}
}

func TestFixedWindowAllow(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}

	for i := int64(1); i <= 2; i++ {
		allowed, count, err := client.FixedWindowAllow(ctx, "login", 2, time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !allowed || count != i {
			t.Fatalf("request %d: allowed=%v count=%d", i, allowed, count)
		}
	}

	allowed, count, err := client.FixedWindowAllow(ctx, "login", 2, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed || count != 3 {
		t.Fatalf("expected the third request to be rejected, allowed=%v count=%d", allowed, count)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.OTPKey("vendor", "11111111"); got != "sl:otp:vendor:11111111" {
		t.Fatalf("OTPKey = %q", got)
	}
	if got := client.RateLimitKey("login"); got != "sl:rate_limit:login" {
		t.Fatalf("RateLimitKey = %q", got)
	}
	if got := client.LockKey("cron"); got != "sl:lock:cron" {
		t.Fatalf("LockKey = %q", got)
	}
}

func TestUninitializedClient(t *testing.T) {
	client := &Client{}
	if err := client.Set(context.Background(), "k", "v", 0); err == nil {
		t.Fatal("expected error from an uninitialized client")
	}
	if _, err := client.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected error from an uninitialized client")
	}
}
