package ratelimit

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	mu     sync.Mutex
	counts map[string]int64
	ttls   map[string]time.Duration
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		counts: map[string]int64{},
		ttls:   map[string]time.Duration{},
		values: map[string]string{},
	}
}

func (m *memStore) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], nil
}

func (m *memStore) Expire(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ttls[key] = ttl
	return nil
}

func (m *memStore) TTL(_ context.Context, key string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ttls[key], nil
}

func (m *memStore) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.counts, k)
		delete(m.ttls, k)
		delete(m.values, k)
	}
	return nil
}

func (m *memStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *memStore) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value.(string)
	m.ttls[key] = ttl
	return nil
}

func TestNilStoreAlwaysAllows(t *testing.T) {
	l := New(nil)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		if allowed, _ := l.CheckRegistration(ctx, "1.2.3.4"); !allowed {
			t.Fatal("nil store must never rate limit")
		}
	}
	if locked, _ := l.CheckEmailLockout(ctx, "a@b.com"); locked {
		t.Error("nil store must never lock out")
	}
}

func TestRegistrationLimit(t *testing.T) {
	l := New(newMemStore())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if allowed, _ := l.CheckRegistration(ctx, "1.2.3.4"); !allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	allowed, retry := l.CheckRegistration(ctx, "1.2.3.4")
	if allowed {
		t.Error("6th attempt should be blocked")
	}
	if retry < 1 {
		t.Errorf("retry-after should be positive, got %d", retry)
	}

	// Another IP is unaffected.
	if allowed, _ := l.CheckRegistration(ctx, "5.6.7.8"); !allowed {
		t.Error("different IP should not share the counter")
	}
}

func TestMessagePostLimit(t *testing.T) {
	l := New(newMemStore())
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if allowed, _ := l.CheckMessagePost(ctx, "viewer-1"); !allowed {
			t.Fatalf("message %d should be allowed", i+1)
		}
	}
	if allowed, _ := l.CheckMessagePost(ctx, "viewer-1"); allowed {
		t.Error("11th message in a minute should be blocked")
	}
}

func TestLoginLockoutEscalation(t *testing.T) {
	l := New(newMemStore())
	ctx := context.Background()
	email := "viewer@example.com"

	for i := 0; i < 4; i++ {
		if locked, _ := l.RecordLoginFailure(ctx, email); locked {
			t.Fatalf("failure %d should not lock", i+1)
		}
	}

	locked, secs := l.RecordLoginFailure(ctx, email)
	if !locked || secs != 300 {
		t.Fatalf("5th failure should lock for 300s, got locked=%v secs=%d", locked, secs)
	}

	if locked, _ := l.CheckEmailLockout(ctx, email); !locked {
		t.Error("lockout should be visible to CheckEmailLockout")
	}

	for i := 5; i < 10; i++ {
		locked, secs = l.RecordLoginFailure(ctx, email)
	}
	if !locked || secs != 1800 {
		t.Errorf("10th failure should lock for 1800s, got locked=%v secs=%d", locked, secs)
	}

	l.ResetLoginEmail(ctx, email)
	if locked, _ := l.CheckEmailLockout(ctx, email); locked {
		t.Error("reset should clear the lockout")
	}
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name   string
		xff    string
		xri    string
		remote string
		want   string
	}{
		{"x-forwarded-for wins", "10.0.0.1, 172.16.0.1", "10.0.0.2", "127.0.0.1:1234", "10.0.0.1"},
		{"x-real-ip fallback", "", "10.0.0.2", "127.0.0.1:1234", "10.0.0.2"},
		{"remote addr strips port", "", "", "192.168.1.5:5555", "192.168.1.5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tc.remote
			if tc.xff != "" {
				r.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.xri != "" {
				r.Header.Set("X-Real-IP", tc.xri)
			}
			if got := ClientIP(r); got != tc.want {
				t.Errorf("ClientIP = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestHashEmailNormalizes(t *testing.T) {
	a := hashEmail("Viewer@Example.com ")
	b := hashEmail("viewer@example.com")
	if a != b {
		t.Error("hash should normalize case and whitespace")
	}
	if len(a) != 16 {
		t.Errorf("hash length = %d; want 16", len(a))
	}
}
