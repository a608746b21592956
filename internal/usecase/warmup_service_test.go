package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/domain/sport"
	"github.com/matchboard/matchboard/internal/domain/standings"
	"github.com/matchboard/matchboard/internal/platform/logging"
)

func TestWarmupService_PrimesEveryRead(t *testing.T) {
	t.Parallel()

	events := &stubEventSource{events: func(sportKey string, kind event.QueryKind) ([]event.Event, error) {
		return []event.Event{
			scheduledEvent("warm-"+sportKey+"-"+string(kind), sportKey, testClock().Add(24*time.Hour), "Boston Celtics", "Miami Heat"),
		}, nil
	}}
	table := &stubStandingsSource{doc: standings.Doc{League: standings.League{
		Name:      "National Basketball Association",
		Standings: [][]standings.TeamStanding{{{Rank: 1, Team: standings.Team{Name: "Boston Celtics"}, Wins: 1, Played: 1, WinPct: 1}}},
	}}}

	registry := NewProviderRegistry()
	registry.AddEvents("nba", events)
	registry.SetStandings("nba", table)
	resolver, store := newTestResolver(t, registry)

	sports := sport.NewRegistry(sport.Info{Key: sport.NBA, Name: "NBA", Participant: sport.ParticipantTeam})
	service := NewWarmupService(resolver, sports, 2, logging.NewNop())

	ctx := context.Background()
	service.Warm(ctx)

	if got := atomic.LoadInt32(&events.calls); got != 3 {
		t.Fatalf("expected live, upcoming and recent fetches, got %d", got)
	}
	if got := atomic.LoadInt32(&table.calls); got != 1 {
		t.Fatalf("expected one standings fetch, got %d", got)
	}
	if entries := store.Info(ctx); len(entries) != 4 {
		t.Fatalf("expected 4 primed cache entries, got %d", len(entries))
	}

	// Dashboard reads after warmup come from the cache.
	if _, err := resolver.Events(ctx, "nba", event.QueryLive); err != nil {
		t.Fatalf("read after warmup: %v", err)
	}
	if got := atomic.LoadInt32(&events.calls); got != 3 {
		t.Fatalf("warmed read must not hit the upstream, got %d calls", got)
	}
}

func TestWarmupService_FailuresAreBestEffort(t *testing.T) {
	t.Parallel()

	registry := NewProviderRegistry()
	resolver, store := newTestResolver(t, registry)
	sports := sport.NewRegistry(
		sport.Info{Key: sport.Golf, Name: "Golf", Participant: sport.ParticipantPlayer},
	)
	service := NewWarmupService(resolver, sports, 2, logging.NewNop())

	ctx := context.Background()
	service.Warm(ctx)

	if entries := store.Info(ctx); len(entries) != 0 {
		t.Fatalf("placeholder answers must not land in the cache, got %d entries", len(entries))
	}
}
