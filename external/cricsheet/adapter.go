package cricsheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/usecase"
)

type matchFile struct {
	Info    matchInfo `json:"info"`
	Innings []innings `json:"innings"`
}

type matchInfo struct {
	Dates     []string `json:"dates"`
	Teams     []string `json:"teams"`
	City      string   `json:"city"`
	Venue     string   `json:"venue"`
	MatchType string   `json:"match_type"`
	Event     struct {
		Name string `json:"name"`
	} `json:"event"`
	Outcome struct {
		Winner string `json:"winner"`
		Result string `json:"result"`
	} `json:"outcome"`
}

type innings struct {
	Team  string `json:"team"`
	Overs []struct {
		Deliveries []struct {
			Runs struct {
				Total int `json:"total"`
			} `json:"runs"`
		} `json:"deliveries"`
	} `json:"overs"`
}

func adaptMatch(sportKey, id string, match matchFile) (event.Event, error) {
	if len(match.Info.Teams) != 2 {
		return event.Event{}, fmt.Errorf("%w: match %s: expected two teams, got %d", usecase.ErrAdapterMismatch, id, len(match.Info.Teams))
	}
	if len(match.Info.Dates) == 0 {
		return event.Event{}, fmt.Errorf("%w: match %s: missing dates", usecase.ErrAdapterMismatch, id)
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(match.Info.Dates[0]))
	if err != nil {
		return event.Event{}, fmt.Errorf("%w: match %s: unparseable date %q", usecase.ErrAdapterMismatch, id, match.Info.Dates[0])
	}

	totals := inningsTotals(match.Innings)
	homeName := strings.TrimSpace(match.Info.Teams[0])
	awayName := strings.TrimSpace(match.Info.Teams[1])
	homeScore := totals[homeName]
	awayScore := totals[awayName]

	detail := strings.TrimSpace(match.Info.MatchType)
	if name := strings.TrimSpace(match.Info.Event.Name); name != "" {
		if detail != "" {
			detail += " | "
		}
		detail += name
	}
	if winner := strings.TrimSpace(match.Info.Outcome.Winner); winner != "" {
		detail += " | " + winner + " won"
	}

	ev := event.Event{
		ID:       id,
		SportKey: sportKey,
		Kind:     event.KindTeam,
		Status:   event.StatusCompleted,
		Date:     date.UTC(),
		Home:     &event.Side{Name: homeName, Score: &homeScore},
		Away:     &event.Side{Name: awayName, Score: &awayScore},
		League:   event.League{Name: strings.TrimSpace(match.Info.Event.Name)},
		Venue: event.Venue{
			Name: strings.TrimSpace(match.Info.Venue),
			City: strings.TrimSpace(match.Info.City),
		},
		Detail: strings.TrimLeft(detail, " |"),
	}
	if err := ev.Validate(); err != nil {
		return event.Event{}, fmt.Errorf("%w: match %s: %v", usecase.ErrAdapterMismatch, id, err)
	}
	return ev, nil
}

// inningsTotals sums delivery runs per batting team across all innings.
func inningsTotals(all []innings) map[string]int {
	totals := make(map[string]int, 2)
	for _, inn := range all {
		team := strings.TrimSpace(inn.Team)
		if team == "" {
			continue
		}
		for _, over := range inn.Overs {
			for _, delivery := range over.Deliveries {
				totals[team] += delivery.Runs.Total
			}
		}
	}
	return totals
}
