package mlb

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/domain/standings"
	"github.com/matchboard/matchboard/internal/usecase"
)

func adaptSchedule(sportKey string, envelope scheduleEnvelope, kind event.QueryKind) ([]event.Event, error) {
	out := make([]event.Event, 0, 16)
	for _, date := range envelope.Dates {
		for _, g := range date.Games {
			ev, err := adaptGame(sportKey, g)
			if err != nil {
				return nil, err
			}
			if !matchesKind(ev.Status, kind) {
				continue
			}
			out = append(out, ev)
		}
	}
	return out, nil
}

func adaptGame(sportKey string, g game) (event.Event, error) {
	date, err := time.Parse(time.RFC3339, strings.TrimSpace(g.GameDate))
	if err != nil {
		return event.Event{}, fmt.Errorf("%w: game %d: unparseable date %q", usecase.ErrAdapterMismatch, g.GamePk, g.GameDate)
	}

	status := classifyGameState(g.Status.AbstractGameState)

	ev := event.Event{
		ID:       strconv.FormatInt(g.GamePk, 10),
		SportKey: sportKey,
		Kind:     event.KindTeam,
		Status:   status,
		Date:     date.UTC(),
		Home:     adaptGameSide(g.Teams.Home, status),
		Away:     adaptGameSide(g.Teams.Away, status),
		League:   event.League{Name: "Major League Baseball", Country: "USA"},
		Venue:    event.Venue{Name: strings.TrimSpace(g.Venue.Name)},
	}
	if err := ev.Validate(); err != nil {
		return event.Event{}, fmt.Errorf("%w: game %d: %v", usecase.ErrAdapterMismatch, g.GamePk, err)
	}
	return ev, nil
}

// classifyGameState maps abstractGameState onto the canonical status:
// Live, Final, and Preview are the three states the schedule feed emits.
func classifyGameState(raw string) event.Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "live":
		return event.StatusLive
	case "final":
		return event.StatusCompleted
	default:
		return event.StatusScheduled
	}
}

func adaptGameSide(side gameSide, status event.Status) *event.Side {
	name := strings.TrimSpace(side.Team.Name)
	if name == "" {
		return nil
	}
	out := &event.Side{Name: name}
	if status != event.StatusScheduled && side.Score != nil {
		score := *side.Score
		out.Score = &score
	}
	return out
}

func matchesKind(status event.Status, kind event.QueryKind) bool {
	switch kind {
	case event.QueryLive:
		return status == event.StatusLive
	case event.QueryUpcoming:
		return status == event.StatusScheduled
	case event.QueryRecent:
		return status == event.StatusCompleted
	default:
		return true
	}
}

func adaptStandings(envelope standingsEnvelope) (standings.Doc, error) {
	if len(envelope.Records) == 0 {
		return standings.Doc{}, fmt.Errorf("%w: standings payload has no records", usecase.ErrAdapterMismatch)
	}

	groups := make([][]standings.TeamStanding, 0, len(envelope.Records))
	for _, record := range envelope.Records {
		rows := make([]standings.TeamStanding, 0, len(record.TeamRecords))
		for i, tr := range record.TeamRecords {
			name := strings.TrimSpace(tr.Team.Name)
			if name == "" {
				continue
			}
			rank, err := strconv.Atoi(strings.TrimSpace(tr.DivisionRank))
			if err != nil || rank <= 0 {
				rank = i + 1
			}
			played := tr.GamesPlayed
			if played == 0 {
				played = tr.Wins + tr.Losses
			}
			winPct, _ := strconv.ParseFloat(strings.TrimSpace(tr.WinningPercentage), 64)
			if winPct == 0 && played > 0 {
				winPct = float64(tr.Wins) / float64(played)
			}
			rows = append(rows, standings.TeamStanding{
				Rank:     rank,
				Team:     standings.Team{Name: name},
				Wins:     tr.Wins,
				Losses:   tr.Losses,
				Played:   played,
				WinPct:   winPct,
				Division: strings.TrimSpace(record.Division.NameShort),
			})
		}
		if len(rows) > 0 {
			groups = append(groups, rows)
		}
	}
	if len(groups) == 0 {
		return standings.Doc{}, fmt.Errorf("%w: standings payload has no rows", usecase.ErrAdapterMismatch)
	}

	return standings.Doc{
		League: standings.League{
			Name:      "Major League Baseball",
			Standings: groups,
		},
	}, nil
}
