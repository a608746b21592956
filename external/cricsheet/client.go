// Package cricsheet downloads the "recently played" archives that
// Cricsheet publishes as zip files of per-match JSON. It is the results
// source for cricket; the fixtures calendar covers the other direction.
package cricsheet

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/matchboard/matchboard/external/httpx"
	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/usecase"
)

// Window selects which rolling archive to download.
type Window int

const (
	WindowTwoDays Window = 2
	WindowWeek    Window = 7
	WindowMonth   Window = 30
)

const maxMatchFileBytes = 8 << 20

type Client struct {
	fetch  *httpx.Fetcher
	window Window
}

func NewClient(cfg httpx.Config) *Client {
	cfg.Name = "cricsheet"
	return &Client{
		fetch:  httpx.NewFetcher(cfg),
		window: WindowWeek,
	}
}

func (c *Client) Events(ctx context.Context, sportKey string, kind event.QueryKind) ([]event.Event, error) {
	if kind != event.QueryRecent {
		return nil, fmt.Errorf("%w: cricsheet only carries completed matches", usecase.ErrUnsupportedSport)
	}

	path := fmt.Sprintf("/recently_played_%d_json.zip", int(c.window))
	raw, err := c.fetch.GetBytes(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	reader, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("%w: open cricsheet archive: %v", usecase.ErrProviderUnavailable, err)
	}

	out := make([]event.Event, 0, len(reader.File))
	for _, file := range reader.File {
		if !strings.HasSuffix(file.Name, ".json") {
			continue
		}
		ev, err := readMatch(sportKey, file)
		if err != nil {
			// One malformed match must not sink the whole archive.
			continue
		}
		out = append(out, ev)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func readMatch(sportKey string, file *zip.File) (event.Event, error) {
	rc, err := file.Open()
	if err != nil {
		return event.Event{}, err
	}
	raw, readErr := io.ReadAll(io.LimitReader(rc, maxMatchFileBytes))
	_ = rc.Close()
	if readErr != nil {
		return event.Event{}, readErr
	}

	var match matchFile
	if err := sonic.Unmarshal(raw, &match); err != nil {
		return event.Event{}, err
	}

	id := strings.TrimSuffix(file.Name, ".json")
	if idx := strings.LastIndex(id, "/"); idx >= 0 {
		id = id[idx+1:]
	}
	return adaptMatch(sportKey, id, match)
}
