// Package fastf1 talks to a FastF1 HTTP bridge that exposes the season
// schedule and driver standings as JSON.
package fastf1

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/matchboard/matchboard/external/httpx"
	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/domain/standings"
	"github.com/matchboard/matchboard/internal/usecase"
)

type Client struct {
	fetch *httpx.Fetcher
	now   func() time.Time
}

func NewClient(cfg httpx.Config) *Client {
	cfg.Name = "fastf1"
	return &Client{
		fetch: httpx.NewFetcher(cfg),
		now:   time.Now,
	}
}

func (c *Client) Events(ctx context.Context, sportKey string, kind event.QueryKind) ([]event.Event, error) {
	if kind == event.QueryLive {
		// The bridge has no live timing endpoint.
		return nil, fmt.Errorf("%w: fastf1 bridge has no live feed", usecase.ErrUnsupportedSport)
	}

	now := c.now().UTC()
	query := url.Values{"year": {strconv.Itoa(now.Year())}}

	var envelope scheduleEnvelope
	if _, err := c.fetch.GetJSON(ctx, "/schedule", query, &envelope); err != nil {
		return nil, err
	}
	return adaptSchedule(sportKey, envelope, kind, now)
}

func (c *Client) Standings(ctx context.Context, _ string) (standings.Doc, error) {
	now := c.now().UTC()
	query := url.Values{"year": {strconv.Itoa(now.Year())}}

	var envelope standingsEnvelope
	if _, err := c.fetch.GetJSON(ctx, "/standings", query, &envelope); err != nil {
		return standings.Doc{}, err
	}
	return adaptStandings(envelope, now.Year())
}
