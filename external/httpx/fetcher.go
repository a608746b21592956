// Package httpx carries the shared plumbing of every upstream client:
// timeouts, retries with linear backoff, a circuit breaker per upstream,
// request deduplication, and traced transports. Provider packages stay
// focused on their payload shapes.
package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/matchboard/matchboard/internal/platform/logging"
	"github.com/matchboard/matchboard/internal/platform/resilience"
	"github.com/matchboard/matchboard/internal/usecase"
)

const maxResponseBytes = 24 << 20

var errTransient = crerr.New("transient upstream failure")

type Config struct {
	// Name tags log lines and the breaker; use the provider package name.
	Name           string
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Fetcher struct {
	name           string
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.Group[[]byte]
}

func NewFetcher(cfg Config) *Fetcher {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	return &Fetcher{
		name:           strings.TrimSpace(cfg.Name),
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

func (f *Fetcher) BaseURL() string { return f.baseURL }

// GetJSON fetches path and decodes the body into target, returning the
// raw bytes as well so callers can cache them verbatim.
func (f *Fetcher) GetJSON(ctx context.Context, path string, query url.Values, target any) ([]byte, error) {
	raw, err := f.GetBytes(ctx, path, query)
	if err != nil {
		return nil, err
	}
	if target != nil {
		if err := sonic.Unmarshal(raw, target); err != nil {
			return nil, fmt.Errorf("%w: decode %s payload: %v", usecase.ErrProviderUnavailable, f.name, err)
		}
	}
	return raw, nil
}

// GetBytes fetches path with the breaker, deduplication, and retry loop
// applied, returning the raw response body.
func (f *Fetcher) GetBytes(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if f.circuitEnabled {
		if err := f.breaker.Allow(); err != nil {
			f.logger.WarnContext(ctx, "circuit breaker rejected request", "upstream", f.name, "state", f.breaker.State())
			return nil, fmt.Errorf("%w: %s circuit is open", usecase.ErrProviderUnavailable, f.name)
		}
	}

	fullURL := f.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err, _ := f.flight.Do(fullURL, func() ([]byte, error) {
		raw, reqErr := f.execute(ctx, fullURL)
		if f.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errTransient) {
				f.breaker.RecordFailure()
			} else {
				f.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (f *Fetcher) execute(ctx context.Context, fullURL string) ([]byte, error) {
	var body []byte
	err := resilience.Retry(ctx, f.maxRetries, time.Second, func(err error) bool {
		return crerr.Is(err, errTransient)
	}, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json, text/calendar, application/zip;q=0.9, */*;q=0.8")

		resp, err := f.httpClient.Do(req)
		if err != nil {
			return crerr.Wrapf(errTransient, "send request: %v", err)
		}
		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		_ = resp.Body.Close()
		if readErr != nil {
			return crerr.Wrapf(errTransient, "read response body: %v", readErr)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) {
				return crerr.Wrapf(errTransient, "upstream status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
			return fmt.Errorf("upstream status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
		}
		body = raw
		return nil
	})
	if err != nil {
		f.logger.WarnContext(ctx, "upstream request failed", "upstream", f.name, "url", fullURL, "error", err)
		if crerr.Is(err, errTransient) || ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %s: %v", usecase.ErrProviderUnavailable, f.name, err)
		}
		return nil, err
	}
	return body, nil
}

func isRetryableStatus(status int) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	return status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 200
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
