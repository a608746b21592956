package usecase

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/domain/standings"
	"github.com/matchboard/matchboard/internal/fallback"
)

func newSuggestionService(t *testing.T) *SuggestionService {
	t.Helper()

	source := &kindedSource{byKind: map[event.QueryKind][]event.Event{
		event.QueryUpcoming: {
			scheduledEvent("nba-up-1", "nba", testClock().Add(24*time.Hour), "Quahog Clams", "Miami Heat"),
		},
		event.QueryRecent: {},
	}}
	registry := NewProviderRegistry()
	registry.AddEvents("nba", source)
	registry.SetStandings("nba", &stubStandingsSource{doc: standings.Doc{League: standings.League{
		Name: "National Basketball Association",
		Standings: [][]standings.TeamStanding{{
			{Rank: 1, Team: standings.Team{Name: "Springfield Isotopes"}, Wins: 50, Losses: 16, Played: 66, WinPct: 0.758},
		}},
	}}})
	resolver, _ := newTestResolver(t, registry)
	return NewSuggestionService(resolver, fallback.NewDataset(testClock))
}

func TestSuggestionService_EmptyQueryReturnsFullPool(t *testing.T) {
	t.Parallel()

	service := newSuggestionService(t)
	suggestions, err := service.Suggestions(context.Background(), "nba", "")
	if err != nil {
		t.Fatalf("suggestions: %v", err)
	}

	if !sort.StringsAreSorted(suggestions) {
		t.Fatalf("suggestions must be sorted: %v", suggestions)
	}
	for _, want := range []string{"Boston Celtics", "Springfield Isotopes", "Quahog Clams"} {
		if !containsString(suggestions, want) {
			t.Fatalf("missing %q in %v", want, suggestions)
		}
	}
}

func TestSuggestionService_SubstringFilter(t *testing.T) {
	t.Parallel()

	service := newSuggestionService(t)
	suggestions, err := service.Suggestions(context.Background(), "nba", "SPRING")
	if err != nil {
		t.Fatalf("suggestions: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0] != "Springfield Isotopes" {
		t.Fatalf("expected the single substring match, got %v", suggestions)
	}
}

func TestSuggestionService_DeduplicatesAcrossSources(t *testing.T) {
	t.Parallel()

	// Miami Heat appears in the static pool and as an event side.
	service := newSuggestionService(t)
	suggestions, err := service.Suggestions(context.Background(), "nba", "miami")
	if err != nil {
		t.Fatalf("suggestions: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0] != "Miami Heat" {
		t.Fatalf("expected one deduplicated entry, got %v", suggestions)
	}
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
