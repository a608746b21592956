package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/domain/news"
	"github.com/matchboard/matchboard/internal/domain/standings"
	"github.com/matchboard/matchboard/internal/fallback"
)

// HeroBundle is everything the expanded hero card needs for one event,
// fetched in a single request.
type HeroBundle struct {
	Stats         news.TeamStats  `json:"stats"`
	Standings     []standings.Doc `json:"standings"`
	News          []news.Item     `json:"news"`
	SelectedTeam  string          `json:"selected_team"`
	GameTime      string          `json:"game_time"`
	Network       string          `json:"network"`
	HomeTeamStats *news.TeamStats `json:"home_team_stats,omitempty"`
	AwayTeamStats *news.TeamStats `json:"away_team_stats,omitempty"`
	Recap         string          `json:"recap,omitempty"`
	Highlights    []string        `json:"highlights,omitempty"`
	Preview       string          `json:"preview,omitempty"`
	TeamNews      []string        `json:"team_news,omitempty"`
	PlayByPlay    []news.Play     `json:"play_by_play,omitempty"`
}

type HeroService struct {
	resolver *Resolver
	fallback *fallback.Dataset
}

func NewHeroService(resolver *Resolver, dataset *fallback.Dataset) *HeroService {
	return &HeroService{resolver: resolver, fallback: dataset}
}

// Bundle assembles the hero card payload for one event. The headline
// team is the first favorite playing in the event, otherwise the home
// side. Completed events get a recap and highlights; everything else
// gets a preview and team notes, and live events add commentary lines.
func (s *HeroService) Bundle(ctx context.Context, ev event.Event, favorites []string) (HeroBundle, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HeroService.Bundle")
	defer span.End()

	if err := ev.Validate(); err != nil {
		return HeroBundle{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	selected := selectTeam(ev, favorites)
	doc, err := s.resolver.Standings(ctx, ev.SportKey)
	if err != nil {
		return HeroBundle{}, err
	}

	bundle := HeroBundle{
		Stats:        s.resolver.TeamStats(ctx, ev.SportKey, selected),
		Standings:    standings.Wrap(doc),
		News:         s.resolver.News(ctx, selected),
		SelectedTeam: selected,
		GameTime:     formatGameTime(ev),
		Network:      fallback.Network(ev.SportKey),
	}
	if ev.Home != nil {
		stats := s.resolver.TeamStats(ctx, ev.SportKey, ev.Home.Name)
		bundle.HomeTeamStats = &stats
	}
	if ev.Away != nil {
		stats := s.resolver.TeamStats(ctx, ev.SportKey, ev.Away.Name)
		bundle.AwayTeamStats = &stats
	}

	switch ev.Status {
	case event.StatusCompleted:
		bundle.Recap = s.fallback.Recap(ev)
		bundle.Highlights = s.fallback.Highlights(ev)
	case event.StatusLive:
		bundle.Preview = s.fallback.Preview(ev)
		bundle.TeamNews = s.fallback.TeamNews(ev)
		bundle.PlayByPlay = s.fallback.PlayByPlay(ev)
	default:
		bundle.Preview = s.fallback.Preview(ev)
		bundle.TeamNews = s.fallback.TeamNews(ev)
	}
	return bundle, nil
}

func selectTeam(ev event.Event, favorites []string) string {
	for _, favorite := range favorites {
		if strings.TrimSpace(favorite) == "" {
			continue
		}
		if ev.Involves(favorite) {
			if ev.Home != nil && sideMatches(ev.Home, favorite) {
				return ev.Home.Name
			}
			if ev.Away != nil && sideMatches(ev.Away, favorite) {
				return ev.Away.Name
			}
		}
	}
	if ev.Home != nil && ev.Home.Name != "" {
		return ev.Home.Name
	}
	if ev.Venue.Name != "" {
		return ev.Venue.Name
	}
	return ev.League.Name
}

func sideMatches(side *event.Side, favorite string) bool {
	return strings.Contains(strings.ToLower(side.Name), strings.ToLower(strings.TrimSpace(favorite)))
}

func formatGameTime(ev event.Event) string {
	return ev.Date.UTC().Format("Monday, January 2 at 3:04 PM MST")
}
