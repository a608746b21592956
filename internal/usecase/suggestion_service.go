package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/fallback"
)

type SuggestionService struct {
	resolver *Resolver
	fallback *fallback.Dataset
}

func NewSuggestionService(resolver *Resolver, dataset *fallback.Dataset) *SuggestionService {
	return &SuggestionService{resolver: resolver, fallback: dataset}
}

// Suggestions returns participant names for the favorites picker. The
// pool merges the static per-sport list, the standings table and the
// sides of known events, deduplicated and sorted. An empty query keeps
// the whole pool; otherwise names are filtered by case-insensitive
// substring.
func (s *SuggestionService) Suggestions(ctx context.Context, sportKey, query string) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuggestionService.Suggestions")
	defer span.End()

	seen := make(map[string]string, 32)
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		seen[strings.ToLower(name)] = name
	}

	for _, name := range s.fallback.Teams(sportKey) {
		add(name)
	}

	doc, err := s.resolver.Standings(ctx, sportKey)
	if err != nil {
		return nil, err
	}
	for _, group := range doc.League.Standings {
		for _, row := range group {
			add(row.Team.Name)
		}
	}

	for _, kind := range []event.QueryKind{event.QueryUpcoming, event.QueryRecent} {
		events, err := s.resolver.Events(ctx, sportKey, kind)
		if err != nil {
			return nil, err
		}
		for _, ev := range events {
			if ev.Home != nil {
				add(ev.Home.Name)
			}
			if ev.Away != nil {
				add(ev.Away.Name)
			}
		}
	}

	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]string, 0, len(seen))
	for lower, name := range seen {
		if query != "" && !strings.Contains(lower, query) {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}
