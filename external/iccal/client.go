// Package iccal reads the ICC fixtures iCalendar feed. The feed carries
// upcoming internationals only; completed matches come from a different
// source and live cricket has no feed at all.
package iccal

import (
	"bytes"
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/matchboard/matchboard/external/httpx"
	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/usecase"
)

type Client struct {
	fetch *httpx.Fetcher
	now   func() time.Time
}

func NewClient(cfg httpx.Config) *Client {
	cfg.Name = "iccal"
	return &Client{
		fetch: httpx.NewFetcher(cfg),
		now:   time.Now,
	}
}

func (c *Client) Events(ctx context.Context, sportKey string, kind event.QueryKind) ([]event.Event, error) {
	if kind != event.QueryUpcoming {
		return nil, fmt.Errorf("%w: icc calendar only lists upcoming fixtures", usecase.ErrUnsupportedSport)
	}

	raw, err := c.fetch.GetBytes(ctx, "", nil)
	if err != nil {
		return nil, err
	}

	cal, err := ics.ParseCalendar(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: parse icc calendar: %v", usecase.ErrProviderUnavailable, err)
	}

	return adaptCalendar(sportKey, cal, c.now().UTC())
}
