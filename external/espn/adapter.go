package espn

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/domain/standings"
	"github.com/matchboard/matchboard/internal/usecase"
)

// espnDateLayouts covers the two timestamp shapes the scoreboard emits.
var espnDateLayouts = []string{
	"2006-01-02T15:04Z07:00",
	time.RFC3339,
}

func adaptScoreboard(sportKey string, envelope scoreboardEnvelope) ([]event.Event, error) {
	leagueName := ""
	if len(envelope.Leagues) > 0 {
		leagueName = strings.TrimSpace(envelope.Leagues[0].Name)
	}

	kind := event.KindTeam
	if individualSports[sportKey] {
		kind = event.KindIndividual
	}

	out := make([]event.Event, 0, len(envelope.Events))
	for _, item := range envelope.Events {
		ev, err := adaptEvent(sportKey, kind, leagueName, item)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func adaptEvent(sportKey string, kind event.Kind, leagueName string, item scoreboardEvent) (event.Event, error) {
	date, err := parseESPNDate(item.Date)
	if err != nil {
		return event.Event{}, fmt.Errorf("%w: event %s: %v", usecase.ErrAdapterMismatch, item.ID, err)
	}

	status := classifyState(item.Status.Type)

	ev := event.Event{
		ID:       strings.TrimSpace(item.ID),
		SportKey: sportKey,
		Kind:     kind,
		Status:   status,
		Date:     date,
		League:   event.League{Name: leagueName},
		Detail:   strings.TrimSpace(item.ShortName),
	}

	if len(item.Competitions) > 0 {
		comp := item.Competitions[0]
		ev.Venue = event.Venue{
			Name: strings.TrimSpace(comp.Venue.FullName),
			City: strings.TrimSpace(comp.Venue.Address.City),
		}
		home, away := splitCompetitors(comp.Competitors, status)
		ev.Home = home
		ev.Away = away
	}

	if err := ev.Validate(); err != nil {
		return event.Event{}, fmt.Errorf("%w: event %s: %v", usecase.ErrAdapterMismatch, item.ID, err)
	}
	return ev, nil
}

// classifyState maps ESPN's state machine onto the canonical status:
// "in" is live, "post" is completed, anything else is scheduled.
func classifyState(st statusType) event.Status {
	switch strings.ToLower(strings.TrimSpace(st.State)) {
	case "in":
		return event.StatusLive
	case "post":
		return event.StatusCompleted
	default:
		return event.StatusScheduled
	}
}

func splitCompetitors(competitors []competitor, status event.Status) (*event.Side, *event.Side) {
	var home, away *event.Side
	for i := range competitors {
		side := adaptCompetitor(competitors[i], status)
		if side == nil {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(competitors[i].HomeAway)) {
		case "home":
			home = side
		case "away":
			away = side
		default:
			// Athlete scoreboards omit homeAway; assign in order.
			if home == nil {
				home = side
			} else if away == nil {
				away = side
			}
		}
	}
	return home, away
}

func adaptCompetitor(item competitor, status event.Status) *event.Side {
	side := &event.Side{}
	switch {
	case item.Team != nil:
		side.Name = strings.TrimSpace(item.Team.DisplayName)
		side.Abbreviation = strings.TrimSpace(item.Team.Abbreviation)
		side.LogoURL = strings.TrimSpace(item.Team.Logo)
	case item.Athlete != nil:
		side.Name = strings.TrimSpace(item.Athlete.DisplayName)
	default:
		return nil
	}
	if side.Name == "" {
		return nil
	}

	// Scheduled events often carry a placeholder "0" score; the canonical
	// shape wants nil there.
	if status != event.StatusScheduled {
		if score, err := strconv.Atoi(strings.TrimSpace(item.Score)); err == nil {
			side.Score = &score
		}
	}
	return side
}

func parseESPNDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range espnDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

func adaptStandings(envelope standingsEnvelope) (standings.Doc, error) {
	if len(envelope.Children) == 0 {
		return standings.Doc{}, fmt.Errorf("%w: standings payload has no groups", usecase.ErrAdapterMismatch)
	}

	groups := make([][]standings.TeamStanding, 0, len(envelope.Children))
	for _, child := range envelope.Children {
		rows := make([]standings.TeamStanding, 0, len(child.Standings.Entries))
		for _, entry := range child.Standings.Entries {
			row := adaptStandingsEntry(entry, child.Name)
			if row.Team.Name == "" {
				continue
			}
			rows = append(rows, row)
		}
		if len(rows) == 0 {
			continue
		}
		sortStandingRows(rows)
		groups = append(groups, rows)
	}
	if len(groups) == 0 {
		return standings.Doc{}, fmt.Errorf("%w: standings payload has no rows", usecase.ErrAdapterMismatch)
	}

	return standings.Doc{
		League: standings.League{
			Name:      strings.TrimSpace(envelope.Name),
			Season:    strings.TrimSpace(envelope.Season.DisplayName),
			Standings: groups,
		},
	}, nil
}

func adaptStandingsEntry(entry standingsEntry, division string) standings.TeamStanding {
	row := standings.TeamStanding{
		Team: standings.Team{
			Name:         strings.TrimSpace(entry.Team.DisplayName),
			Abbreviation: strings.TrimSpace(entry.Team.Abbreviation),
		},
		Division: strings.TrimSpace(division),
	}
	if len(entry.Team.Logos) > 0 {
		row.Team.Logo = strings.TrimSpace(entry.Team.Logos[0].Href)
	}

	for _, stat := range entry.Stats {
		switch strings.ToLower(strings.TrimSpace(stat.Name)) {
		case "wins":
			row.Wins = int(stat.Value)
		case "losses":
			row.Losses = int(stat.Value)
		case "gamesplayed":
			row.Played = int(stat.Value)
		case "winpercent":
			row.WinPct = stat.Value
		case "points":
			row.Points = int(stat.Value)
		case "playoffseed", "rank":
			if row.Rank == 0 {
				row.Rank = int(stat.Value)
			}
		}
	}
	if row.Played == 0 {
		row.Played = row.Wins + row.Losses
	}
	if row.WinPct == 0 && row.Played > 0 {
		row.WinPct = float64(row.Wins) / float64(row.Played)
	}
	return row
}

func sortStandingRows(rows []standings.TeamStanding) {
	for i := range rows {
		if rows[i].Rank == 0 {
			rows[i].Rank = i + 1
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Rank < rows[j].Rank })
}
