package usecase

import (
	"context"
	"strings"

	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/domain/news"
)

// maxRowEvents caps each dashboard row; anything past it is noise on a
// single screen.
const maxRowEvents = 8

// SportGames bundles one sport's dashboard rows.
type SportGames struct {
	Live     []event.Event `json:"live"`
	Upcoming []event.Event `json:"upcoming"`
	Recent   []event.Event `json:"recent"`
}

// SportGames returns the live, upcoming and recent rows for one sport,
// served from the same cache keys the warmup primes.
func (r *Resolver) SportGames(ctx context.Context, sportKey string) (SportGames, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Resolver.SportGames")
	defer span.End()

	var games SportGames
	live, err := r.Events(ctx, sportKey, event.QueryLive)
	if err != nil {
		return SportGames{}, err
	}
	upcoming, err := r.Events(ctx, sportKey, event.QueryUpcoming)
	if err != nil {
		return SportGames{}, err
	}
	recent, err := r.Events(ctx, sportKey, event.QueryRecent)
	if err != nil {
		return SportGames{}, err
	}

	games.Live = capEvents(live)
	games.Upcoming = capEvents(upcoming)
	games.Recent = capEvents(recent)
	return games, nil
}

func capEvents(events []event.Event) []event.Event {
	if len(events) > maxRowEvents {
		return events[:maxRowEvents]
	}
	return events
}

// TeamStats extracts a team's record from the sport's standings, falling
// back to a seeded placeholder line when the team is not listed.
func (r *Resolver) TeamStats(ctx context.Context, sportKey, team string) news.TeamStats {
	ctx, span := startUsecaseSpan(ctx, "usecase.Resolver.TeamStats")
	defer span.End()

	team = strings.TrimSpace(team)
	doc, err := r.Standings(ctx, sportKey)
	if err == nil {
		if row := doc.FindTeam(team); row != nil {
			stats := r.fallback.TeamStats(team)
			stats.Wins = row.Wins
			stats.Losses = row.Losses
			stats.WinPct = row.WinPct
			stats.Rank = row.Rank
			return stats
		}
	}
	return r.fallback.TeamStats(team)
}

// News returns headlines for a team. No upstream carries team news, so
// this is always the placeholder wire.
func (r *Resolver) News(_ context.Context, team string) []news.Item {
	return r.fallback.News(team)
}
