// Package imagesearch resolves artwork URLs for events through the
// Google Custom Search image API. Lookups are best-effort: a failed
// search yields no URL, never an error the dashboard would surface.
package imagesearch

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/matchboard/matchboard/external/httpx"
	"github.com/matchboard/matchboard/internal/platform/logging"
)

const defaultBaseURL = "https://www.googleapis.com/customsearch"

type Client struct {
	fetch  *httpx.Fetcher
	apiKey string
	cx     string
	logger *logging.Logger

	mu   sync.Mutex
	memo map[string]string
}

type searchEnvelope struct {
	Items []struct {
		Link string `json:"link"`
	} `json:"items"`
}

func NewClient(cfg httpx.Config, apiKey, cx string) *Client {
	cfg.Name = "imagesearch"
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		fetch:  httpx.NewFetcher(cfg),
		apiKey: strings.TrimSpace(apiKey),
		cx:     strings.TrimSpace(cx),
		logger: logger,
		memo:   make(map[string]string),
	}
}

// Resolve returns the first image hit for query, or "" when the search
// finds nothing or fails. Results are memoized for the process lifetime.
func (c *Client) Resolve(ctx context.Context, query string) string {
	query = strings.TrimSpace(query)
	if query == "" || c.apiKey == "" || c.cx == "" {
		return ""
	}

	memoKey := strings.ToLower(query)
	c.mu.Lock()
	if cached, ok := c.memo[memoKey]; ok {
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	params := url.Values{
		"key":        {c.apiKey},
		"cx":         {c.cx},
		"searchType": {"image"},
		"num":        {"1"},
		"safe":       {"active"},
		"q":          {query},
	}

	var envelope searchEnvelope
	if _, err := c.fetch.GetJSON(ctx, "/v1", params, &envelope); err != nil {
		c.logger.WarnContext(ctx, "image search failed", "query", query, "error", err)
		return ""
	}

	link := ""
	if len(envelope.Items) > 0 {
		link = strings.TrimSpace(envelope.Items[0].Link)
	}

	c.mu.Lock()
	c.memo[memoKey] = link
	c.mu.Unlock()
	return link
}
