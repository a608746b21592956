package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matchboard/matchboard/internal/platform/logging"
	"github.com/matchboard/matchboard/internal/platform/resilience"
	"github.com/matchboard/matchboard/internal/usecase"
)

func newTestFetcher(t *testing.T, upstream *httptest.Server, maxRetries int) *Fetcher {
	t.Helper()
	return NewFetcher(Config{
		Name:       "test-upstream",
		HTTPClient: upstream.Client(),
		BaseURL:    upstream.URL,
		MaxRetries: maxRetries,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 3,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})
}

func TestFetcher_GetJSONDecodes(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/scoreboard" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("dates") != "20260311" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":2}`))
	}))
	defer upstream.Close()

	f := newTestFetcher(t, upstream, 0)

	var out struct {
		Count int `json:"count"`
	}
	raw, err := f.GetJSON(context.Background(), "/scoreboard", url.Values{"dates": {"20260311"}}, &out)
	if err != nil {
		t.Fatalf("get json: %v", err)
	}
	if out.Count != 2 {
		t.Fatalf("expected count=2, got %d", out.Count)
	}
	if string(raw) != `{"count":2}` {
		t.Fatalf("raw body mangled: %s", raw)
	}
}

func TestFetcher_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	f := newTestFetcher(t, upstream, 2)
	if _, err := f.GetBytes(context.Background(), "/", nil); err != nil {
		t.Fatalf("expected recovery after retry, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestFetcher_NonRetryableStatusFailsFast(t *testing.T) {
	t.Parallel()

	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer upstream.Close()

	f := newTestFetcher(t, upstream, 3)
	_, err := f.GetBytes(context.Background(), "/missing", nil)
	if err == nil {
		t.Fatalf("expected error on 404")
	}
	if errors.Is(err, usecase.ErrProviderUnavailable) {
		t.Fatalf("404 is a permanent error, got unavailable: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected a single attempt, got %d", got)
	}
}

func TestFetcher_MalformedJSONIsProviderUnavailable(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events": [`))
	}))
	defer upstream.Close()

	f := newTestFetcher(t, upstream, 0)
	var out map[string]any
	_, err := f.GetJSON(context.Background(), "/", nil, &out)
	if !errors.Is(err, usecase.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable on malformed payload, got %v", err)
	}
}

func TestFetcher_CircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	f := newTestFetcher(t, upstream, 0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := f.GetBytes(ctx, "/", nil); !errors.Is(err, usecase.ErrProviderUnavailable) {
			t.Fatalf("attempt %d: expected provider unavailable, got %v", i, err)
		}
	}

	before := atomic.LoadInt32(&calls)
	if _, err := f.GetBytes(ctx, "/", nil); !errors.Is(err, usecase.ErrProviderUnavailable) {
		t.Fatalf("expected circuit-open rejection, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != before {
		t.Fatalf("open circuit must not reach the upstream, calls %d -> %d", before, got)
	}
}
