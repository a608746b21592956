package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matchboard/matchboard/internal/config"
	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/domain/sport"
	"github.com/matchboard/matchboard/internal/domain/standings"
	"github.com/matchboard/matchboard/internal/fallback"
	"github.com/matchboard/matchboard/internal/platform/cache"
	"github.com/matchboard/matchboard/internal/platform/logging"
)

var testClock = func() time.Time {
	return time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
}

type stubEventSource struct {
	calls  int32
	events func(sportKey string, kind event.QueryKind) ([]event.Event, error)
}

func (s *stubEventSource) Events(_ context.Context, sportKey string, kind event.QueryKind) ([]event.Event, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.events(sportKey, kind)
}

type stubStandingsSource struct {
	calls int32
	doc   standings.Doc
	err   error
}

func (s *stubStandingsSource) Standings(context.Context, string) (standings.Doc, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.doc, s.err
}

func newTestResolver(t *testing.T, registry *ProviderRegistry) (*Resolver, *cache.Store) {
	t.Helper()
	store, err := cache.NewStore(t.TempDir(), logging.NewNop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	resolver := NewResolver(
		registry,
		sport.DefaultRegistry(),
		store,
		config.DefaultTTLTable(),
		fallback.NewDataset(testClock),
		logging.NewNop(),
	)
	return resolver, store
}

func scheduledEvent(id, sportKey string, date time.Time, home, away string) event.Event {
	return event.Event{
		ID:       id,
		SportKey: sportKey,
		Kind:     event.KindTeam,
		Status:   event.StatusScheduled,
		Date:     date,
		Home:     &event.Side{Name: home},
		Away:     &event.Side{Name: away},
	}
}

func TestResolver_EventsCachesProviderAnswer(t *testing.T) {
	t.Parallel()

	source := &stubEventSource{events: func(string, event.QueryKind) ([]event.Event, error) {
		return []event.Event{
			scheduledEvent("nba-1", "nba", testClock().Add(24*time.Hour), "Boston Celtics", "Miami Heat"),
		}, nil
	}}
	registry := NewProviderRegistry()
	registry.AddEvents("nba", source)
	resolver, _ := newTestResolver(t, registry)

	ctx := context.Background()
	first, err := resolver.Events(ctx, "nba", event.QueryUpcoming)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := resolver.Events(ctx, "nba", event.QueryUpcoming)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if got := atomic.LoadInt32(&source.calls); got != 1 {
		t.Fatalf("expected one upstream call, got %d", got)
	}
	if len(first) != 1 || len(second) != 1 || first[0].ID != second[0].ID {
		t.Fatalf("cached answer diverged: %v vs %v", first, second)
	}
	if first[0].Home.Name != "Boston Celtics" {
		t.Fatalf("unexpected event %+v", first[0])
	}
}

func TestResolver_ProviderFailureFallsBackWithoutCaching(t *testing.T) {
	t.Parallel()

	source := &stubEventSource{events: func(string, event.QueryKind) ([]event.Event, error) {
		return nil, fmt.Errorf("scoreboard: %w", ErrProviderUnavailable)
	}}
	registry := NewProviderRegistry()
	registry.AddEvents("nhl", source)
	resolver, store := newTestResolver(t, registry)

	ctx := context.Background()
	events, err := resolver.Events(ctx, "nhl", event.QueryLive)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) == 0 {
		t.Fatalf("expected placeholder events")
	}
	for _, ev := range events {
		if !strings.HasPrefix(ev.ID, "fallback-") {
			t.Fatalf("expected placeholder id, got %q", ev.ID)
		}
	}
	if entries := store.Info(ctx); len(entries) != 0 {
		t.Fatalf("placeholder answer must not be cached, found %d entries", len(entries))
	}

	if _, err := resolver.Events(ctx, "nhl", event.QueryLive); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got := atomic.LoadInt32(&source.calls); got != 2 {
		t.Fatalf("expected a retry against the upstream, got %d calls", got)
	}
}

func TestResolver_UnknownSportErrors(t *testing.T) {
	t.Parallel()

	resolver, _ := newTestResolver(t, NewProviderRegistry())
	if _, err := resolver.Events(context.Background(), "curling", event.QueryLive); !errors.Is(err, ErrUnsupportedSport) {
		t.Fatalf("expected ErrUnsupportedSport, got %v", err)
	}
}

func TestResolver_ChainSkipsSourceThatCannotAnswer(t *testing.T) {
	t.Parallel()

	upcomingOnly := &stubEventSource{events: func(_ string, kind event.QueryKind) ([]event.Event, error) {
		if kind != event.QueryUpcoming {
			return nil, fmt.Errorf("%w: kind=%s", ErrUnsupportedSport, kind)
		}
		return []event.Event{
			scheduledEvent("ics-1", "cricket", testClock().Add(48*time.Hour), "India", "England"),
		}, nil
	}}
	recentOnly := &stubEventSource{events: func(_ string, kind event.QueryKind) ([]event.Event, error) {
		if kind != event.QueryRecent {
			return nil, fmt.Errorf("%w: kind=%s", ErrUnsupportedSport, kind)
		}
		completed := scheduledEvent("csv-1", "cricket", testClock().Add(-48*time.Hour), "Australia", "South Africa")
		completed.Status = event.StatusCompleted
		home, away := 160, 142
		completed.Home.Score = &home
		completed.Away.Score = &away
		return []event.Event{completed}, nil
	}}

	registry := NewProviderRegistry()
	registry.AddEvents("cricket", upcomingOnly, recentOnly)
	resolver, _ := newTestResolver(t, registry)

	ctx := context.Background()
	upcoming, err := resolver.Events(ctx, "cricket", event.QueryUpcoming)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].ID != "ics-1" {
		t.Fatalf("expected the calendar answer, got %v", upcoming)
	}

	recent, err := resolver.Events(ctx, "cricket", event.QueryRecent)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != "csv-1" {
		t.Fatalf("expected the archive answer, got %v", recent)
	}
}

func TestResolver_StandingsFallbackIsNotCached(t *testing.T) {
	t.Parallel()

	registry := NewProviderRegistry()
	registry.SetStandings("golf", &stubStandingsSource{err: fmt.Errorf("%w: golf", ErrUnsupportedSport)})
	resolver, store := newTestResolver(t, registry)

	ctx := context.Background()
	doc, err := resolver.Standings(ctx, "golf")
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if doc.League.Name != "PGA Tour" {
		t.Fatalf("expected placeholder standings, got %q", doc.League.Name)
	}
	if entries := store.Info(ctx); len(entries) != 0 {
		t.Fatalf("placeholder standings must not be cached")
	}
}

func TestResolver_StandingsCached(t *testing.T) {
	t.Parallel()

	source := &stubStandingsSource{doc: standings.Doc{League: standings.League{
		Name: "National Basketball Association",
		Standings: [][]standings.TeamStanding{{
			{Rank: 1, Team: standings.Team{Name: "Boston Celtics"}, Wins: 52, Losses: 14, Played: 66, WinPct: 0.788},
		}},
	}}}
	registry := NewProviderRegistry()
	registry.SetStandings("nba", source)
	resolver, _ := newTestResolver(t, registry)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		doc, err := resolver.Standings(ctx, "nba")
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if doc.League.Standings[0][0].Team.Name != "Boston Celtics" {
			t.Fatalf("call %d: unexpected doc %+v", i, doc)
		}
	}
	if got := atomic.LoadInt32(&source.calls); got != 1 {
		t.Fatalf("expected one upstream call, got %d", got)
	}
}

func TestResolver_TeamStatsPrefersStandingsRow(t *testing.T) {
	t.Parallel()

	registry := NewProviderRegistry()
	registry.SetStandings("nba", &stubStandingsSource{doc: standings.Doc{League: standings.League{
		Name: "National Basketball Association",
		Standings: [][]standings.TeamStanding{{
			{Rank: 3, Team: standings.Team{Name: "Boston Celtics"}, Wins: 52, Losses: 14, Played: 66, WinPct: 0.788},
		}},
	}}})
	resolver, _ := newTestResolver(t, registry)

	stats := resolver.TeamStats(context.Background(), "nba", "Celtics")
	if stats.Wins != 52 || stats.Losses != 14 || stats.Rank != 3 {
		t.Fatalf("expected the standings record, got %+v", stats)
	}

	missing := resolver.TeamStats(context.Background(), "nba", "Springfield Isotopes")
	if missing.Wins == 52 && missing.Losses == 14 {
		t.Fatalf("unknown team should get placeholder stats")
	}
}

func TestResolver_SportGamesCapsRows(t *testing.T) {
	t.Parallel()

	source := &stubEventSource{events: func(_ string, kind event.QueryKind) ([]event.Event, error) {
		out := make([]event.Event, 0, 12)
		for i := 0; i < 12; i++ {
			out = append(out, scheduledEvent(
				fmt.Sprintf("nba-%s-%02d", kind, i),
				"nba",
				testClock().Add(time.Duration(i+1)*time.Hour),
				"Boston Celtics", "Miami Heat",
			))
		}
		return out, nil
	}}
	registry := NewProviderRegistry()
	registry.AddEvents("nba", source)
	resolver, _ := newTestResolver(t, registry)

	games, err := resolver.SportGames(context.Background(), "nba")
	if err != nil {
		t.Fatalf("sport games: %v", err)
	}
	if len(games.Live) != 8 || len(games.Upcoming) != 8 || len(games.Recent) != 8 {
		t.Fatalf("rows must cap at 8, got %d/%d/%d", len(games.Live), len(games.Upcoming), len(games.Recent))
	}
}
