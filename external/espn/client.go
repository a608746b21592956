package espn

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/matchboard/matchboard/external/httpx"
	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/domain/standings"
	"github.com/matchboard/matchboard/internal/usecase"
)

// leaguePaths maps dashboard sport keys onto ESPN's sport/league slugs.
var leaguePaths = map[string]string{
	"nba":    "basketball/nba",
	"nfl":    "football/nfl",
	"nhl":    "hockey/nhl",
	"tennis": "tennis/atp",
	"golf":   "golf/pga",
}

// individualSports have athlete competitors instead of team competitors.
var individualSports = map[string]bool{
	"tennis": true,
	"golf":   true,
}

type Client struct {
	fetch *httpx.Fetcher
	now   func() time.Time
}

func NewClient(cfg httpx.Config) *Client {
	cfg.Name = "espn"
	return &Client{
		fetch: httpx.NewFetcher(cfg),
		now:   time.Now,
	}
}

// Events fetches the scoreboard window matching kind and filters it down
// to the events in that lifecycle stage.
func (c *Client) Events(ctx context.Context, sportKey string, kind event.QueryKind) ([]event.Event, error) {
	leaguePath, ok := leaguePaths[sportKey]
	if !ok {
		return nil, fmt.Errorf("%w: espn has no league for %q", usecase.ErrUnsupportedSport, sportKey)
	}

	query := url.Values{}
	if window := scoreboardWindow(kind, c.now().UTC()); window != "" {
		query.Set("dates", window)
	}

	var envelope scoreboardEnvelope
	path := "/site/v2/sports/" + leaguePath + "/scoreboard"
	if _, err := c.fetch.GetJSON(ctx, path, query, &envelope); err != nil {
		return nil, err
	}

	events, err := adaptScoreboard(sportKey, envelope)
	if err != nil {
		return nil, err
	}
	return filterByKind(events, kind), nil
}

// Standings fetches the league table grouped by conference.
func (c *Client) Standings(ctx context.Context, sportKey string) (standings.Doc, error) {
	leaguePath, ok := leaguePaths[sportKey]
	if !ok {
		return standings.Doc{}, fmt.Errorf("%w: espn has no league for %q", usecase.ErrUnsupportedSport, sportKey)
	}
	if individualSports[sportKey] {
		// Ranking feeds for individual sports are a different API family.
		return standings.Doc{}, fmt.Errorf("%w: espn standings not available for %q", usecase.ErrUnsupportedSport, sportKey)
	}

	var envelope standingsEnvelope
	path := "/v2/sports/" + leaguePath + "/standings"
	if _, err := c.fetch.GetJSON(ctx, path, url.Values{"level": {"2"}}, &envelope); err != nil {
		return standings.Doc{}, err
	}

	return adaptStandings(envelope)
}

// scoreboardWindow returns the dates parameter for a query kind: today
// for live, a week ahead for upcoming, a week back for recent.
func scoreboardWindow(kind event.QueryKind, now time.Time) string {
	const layout = "20060102"
	switch kind {
	case event.QueryLive:
		return now.Format(layout)
	case event.QueryUpcoming:
		return now.Format(layout) + "-" + now.AddDate(0, 0, 7).Format(layout)
	case event.QueryRecent:
		return now.AddDate(0, 0, -7).Format(layout) + "-" + now.Format(layout)
	default:
		return ""
	}
}

func filterByKind(events []event.Event, kind event.QueryKind) []event.Event {
	var want event.Status
	switch kind {
	case event.QueryLive:
		want = event.StatusLive
	case event.QueryUpcoming:
		want = event.StatusScheduled
	case event.QueryRecent:
		want = event.StatusCompleted
	default:
		return events
	}

	out := make([]event.Event, 0, len(events))
	for _, ev := range events {
		if ev.Status == want {
			out = append(out, ev)
		}
	}
	return out
}
