package fastf1

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/domain/standings"
	"github.com/matchboard/matchboard/internal/usecase"
)

type scheduleEnvelope struct {
	Year  int    `json:"year"`
	Races []race `json:"races"`
}

type race struct {
	Round    int    `json:"round"`
	RaceName string `json:"race_name"`
	Country  string `json:"country"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Winner   string `json:"winner"`
}

type standingsEnvelope struct {
	Standings []driverStanding `json:"standings"`
}

type driverStanding struct {
	Position int     `json:"position"`
	Driver   string  `json:"driver"`
	Team     string  `json:"team"`
	Points   float64 `json:"points"`
	Wins     int     `json:"wins"`
}

var raceDateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
}

func adaptSchedule(sportKey string, envelope scheduleEnvelope, kind event.QueryKind, now time.Time) ([]event.Event, error) {
	year := envelope.Year
	if year == 0 {
		year = now.Year()
	}

	out := make([]event.Event, 0, len(envelope.Races))
	for _, r := range envelope.Races {
		ev, err := adaptRace(sportKey, year, r, now)
		if err != nil {
			return nil, err
		}
		switch kind {
		case event.QueryUpcoming:
			if ev.Status != event.StatusScheduled {
				continue
			}
		case event.QueryRecent:
			if ev.Status != event.StatusCompleted {
				continue
			}
		}
		out = append(out, ev)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			if kind == event.QueryRecent {
				return out[i].Date.After(out[j].Date)
			}
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func adaptRace(sportKey string, year int, r race, now time.Time) (event.Event, error) {
	name := strings.TrimSpace(r.RaceName)
	if name == "" || r.Round <= 0 {
		return event.Event{}, fmt.Errorf("%w: race round=%d missing name or round", usecase.ErrAdapterMismatch, r.Round)
	}
	date, err := parseRaceDate(r.Date)
	if err != nil {
		return event.Event{}, fmt.Errorf("%w: race %q: %v", usecase.ErrAdapterMismatch, name, err)
	}

	status := event.StatusScheduled
	detail := fmt.Sprintf("Round %d", r.Round)
	if date.Before(now) {
		status = event.StatusCompleted
		if winner := strings.TrimSpace(r.Winner); winner != "" {
			detail += " | " + winner + " won"
		}
	}

	return event.Event{
		ID:       fmt.Sprintf("f1-%d-r%02d", year, r.Round),
		SportKey: sportKey,
		Kind:     event.KindField,
		Status:   status,
		Date:     date.UTC(),
		League:   event.League{Name: "Formula 1"},
		Venue: event.Venue{
			Name: name,
			City: strings.TrimSpace(strings.Join(nonEmpty(r.Location, r.Country), ", ")),
		},
		Detail: detail,
	}, nil
}

func adaptStandings(envelope standingsEnvelope, year int) (standings.Doc, error) {
	if len(envelope.Standings) == 0 {
		return standings.Doc{}, fmt.Errorf("%w: standings payload has no rows", usecase.ErrAdapterMismatch)
	}

	rows := make([]standings.TeamStanding, 0, len(envelope.Standings))
	for i, item := range envelope.Standings {
		driver := strings.TrimSpace(item.Driver)
		if driver == "" {
			continue
		}
		rank := item.Position
		if rank <= 0 {
			rank = i + 1
		}
		rows = append(rows, standings.TeamStanding{
			Rank:     rank,
			Team:     standings.Team{Name: driver},
			Wins:     item.Wins,
			Points:   int(item.Points),
			Division: strings.TrimSpace(item.Team),
		})
	}
	if len(rows) == 0 {
		return standings.Doc{}, fmt.Errorf("%w: standings payload has no usable rows", usecase.ErrAdapterMismatch)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Rank < rows[j].Rank })

	return standings.Doc{
		League: standings.League{
			Name:      "Formula 1 Drivers' Championship",
			Season:    fmt.Sprintf("%d", year),
			Standings: [][]standings.TeamStanding{rows},
		},
	}, nil
}

func parseRaceDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range raceDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
