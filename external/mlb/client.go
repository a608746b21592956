package mlb

import (
	"context"
	"net/url"
	"time"

	"github.com/matchboard/matchboard/external/httpx"
	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/domain/standings"
)

// Client talks to the MLB Stats API. Only the regular-season schedule and
// the AL/NL standings feeds are used.
type Client struct {
	fetch *httpx.Fetcher
	now   func() time.Time
}

func NewClient(cfg httpx.Config) *Client {
	cfg.Name = "mlb"
	return &Client{
		fetch: httpx.NewFetcher(cfg),
		now:   time.Now,
	}
}

func (c *Client) Events(ctx context.Context, sportKey string, kind event.QueryKind) ([]event.Event, error) {
	start, end := scheduleWindow(kind, c.now().UTC())
	query := url.Values{
		"sportId":   {"1"},
		"startDate": {start.Format("2006-01-02")},
		"endDate":   {end.Format("2006-01-02")},
		"hydrate":   {"team,linescore"},
	}

	var envelope scheduleEnvelope
	if _, err := c.fetch.GetJSON(ctx, "/schedule", query, &envelope); err != nil {
		return nil, err
	}
	return adaptSchedule(sportKey, envelope, kind)
}

func (c *Client) Standings(ctx context.Context, _ string) (standings.Doc, error) {
	// 103 and 104 are the American and National leagues.
	query := url.Values{"leagueId": {"103,104"}}

	var envelope standingsEnvelope
	if _, err := c.fetch.GetJSON(ctx, "/standings", query, &envelope); err != nil {
		return standings.Doc{}, err
	}
	return adaptStandings(envelope)
}

func scheduleWindow(kind event.QueryKind, now time.Time) (time.Time, time.Time) {
	switch kind {
	case event.QueryLive:
		return now, now
	case event.QueryUpcoming:
		return now, now.AddDate(0, 0, 7)
	case event.QueryRecent:
		return now.AddDate(0, 0, -7), now
	default:
		return now, now
	}
}
