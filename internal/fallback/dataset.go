// Package fallback holds the placeholder data served when no live
// provider can answer. Everything here is deterministic relative to the
// injected clock so the dashboard and its tests render stable output.
// Placeholder data is never written to the cache.
package fallback

import (
	"fmt"
	"time"

	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/domain/news"
	"github.com/matchboard/matchboard/internal/domain/standings"
)

type Dataset struct {
	now func() time.Time
}

func NewDataset(now func() time.Time) *Dataset {
	if now == nil {
		now = time.Now
	}
	return &Dataset{now: now}
}

// matchup seeds one placeholder fixture.
type matchup struct {
	home string
	away string
}

var matchupsBySport = map[string][]matchup{
	"nba": {
		{home: "Boston Celtics", away: "Miami Heat"},
		{home: "Denver Nuggets", away: "Los Angeles Lakers"},
		{home: "Milwaukee Bucks", away: "New York Knicks"},
		{home: "Phoenix Suns", away: "Golden State Warriors"},
	},
	"nfl": {
		{home: "Kansas City Chiefs", away: "Buffalo Bills"},
		{home: "Philadelphia Eagles", away: "Dallas Cowboys"},
		{home: "San Francisco 49ers", away: "Detroit Lions"},
		{home: "Baltimore Ravens", away: "Green Bay Packers"},
	},
	"nhl": {
		{home: "Boston Bruins", away: "Toronto Maple Leafs"},
		{home: "Edmonton Oilers", away: "Colorado Avalanche"},
		{home: "New York Rangers", away: "Florida Panthers"},
		{home: "Vegas Golden Knights", away: "Dallas Stars"},
	},
	"mlb": {
		{home: "New York Yankees", away: "Boston Red Sox"},
		{home: "Los Angeles Dodgers", away: "San Francisco Giants"},
		{home: "Atlanta Braves", away: "Chicago Cubs"},
		{home: "Houston Astros", away: "Baltimore Orioles"},
	},
	"cricket": {
		{home: "India", away: "England"},
		{home: "Australia", away: "South Africa"},
		{home: "New Zealand", away: "Pakistan"},
		{home: "Sri Lanka", away: "West Indies"},
	},
	"tennis": {
		{home: "Carlos Alcaraz", away: "Jannik Sinner"},
		{home: "Novak Djokovic", away: "Daniil Medvedev"},
		{home: "Iga Swiatek", away: "Aryna Sabalenka"},
		{home: "Coco Gauff", away: "Elena Rybakina"},
	},
	"golf": {
		{home: "Scottie Scheffler", away: "Rory McIlroy"},
		{home: "Jon Rahm", away: "Viktor Hovland"},
		{home: "Xander Schauffele", away: "Collin Morikawa"},
		{home: "Brooks Koepka", away: "Justin Thomas"},
	},
}

var f1Races = []string{
	"Bahrain Grand Prix",
	"Monaco Grand Prix",
	"British Grand Prix",
	"Italian Grand Prix",
}

var leagueNames = map[string]string{
	"nba":      "National Basketball Association",
	"nfl":      "National Football League",
	"nhl":      "National Hockey League",
	"mlb":      "Major League Baseball",
	"cricket":  "ICC",
	"formula1": "Formula 1",
	"tennis":   "ATP Tour",
	"golf":     "PGA Tour",
}

// Events returns placeholder events for a sport and kind. IDs carry a
// "fallback-" prefix so they can never collide with provider IDs.
func (d *Dataset) Events(sportKey string, kind event.QueryKind) []event.Event {
	if sportKey == "formula1" {
		return d.f1Events(kind)
	}

	matchups, ok := matchupsBySport[sportKey]
	if !ok {
		return nil
	}
	evKind := event.KindTeam
	if sportKey == "tennis" || sportKey == "golf" {
		evKind = event.KindIndividual
	}

	now := d.now().UTC()
	out := make([]event.Event, 0, len(matchups))
	for i, m := range matchups {
		ev := event.Event{
			ID:       fmt.Sprintf("fallback-%s-%s-%d", sportKey, kind, i+1),
			SportKey: sportKey,
			Kind:     evKind,
			League:   event.League{Name: leagueNames[sportKey]},
			Home:     &event.Side{Name: m.home, Abbreviation: Abbreviate(m.home)},
			Away:     &event.Side{Name: m.away, Abbreviation: Abbreviate(m.away)},
		}

		switch kind {
		case event.QueryLive:
			ev.Status = event.StatusLive
			ev.Date = now.Add(-time.Duration(30+i*10) * time.Minute)
			home, away := seededScore(ev.ID)
			ev.Home.Score = &home
			ev.Away.Score = &away
		case event.QueryRecent:
			ev.Status = event.StatusCompleted
			ev.Date = now.Add(-time.Duration(i+1) * 24 * time.Hour)
			home, away := seededScore(ev.ID)
			ev.Home.Score = &home
			ev.Away.Score = &away
		default:
			ev.Status = event.StatusScheduled
			ev.Date = now.Add(time.Duration(i+1) * 24 * time.Hour)
		}
		out = append(out, ev)
	}
	return out
}

func (d *Dataset) f1Events(kind event.QueryKind) []event.Event {
	now := d.now().UTC()
	out := make([]event.Event, 0, len(f1Races))
	for i, name := range f1Races {
		ev := event.Event{
			ID:       fmt.Sprintf("fallback-formula1-%s-%d", kind, i+1),
			SportKey: "formula1",
			Kind:     event.KindField,
			League:   event.League{Name: "Formula 1"},
			Venue:    event.Venue{Name: name},
			Detail:   fmt.Sprintf("Round %d", i+1),
		}
		switch kind {
		case event.QueryRecent:
			ev.Status = event.StatusCompleted
			ev.Date = now.Add(-time.Duration(i+1) * 7 * 24 * time.Hour)
		case event.QueryLive:
			return nil
		default:
			ev.Status = event.StatusScheduled
			ev.Date = now.Add(time.Duration(i+1) * 7 * 24 * time.Hour)
		}
		out = append(out, ev)
	}
	return out
}

// Teams lists the known participant names for a sport, home sides first.
func (d *Dataset) Teams(sportKey string) []string {
	if sportKey == "formula1" {
		return append([]string(nil), f1Races...)
	}
	matchups := matchupsBySport[sportKey]
	out := make([]string, 0, len(matchups)*2)
	for _, m := range matchups {
		out = append(out, m.home)
	}
	for _, m := range matchups {
		out = append(out, m.away)
	}
	return out
}

// Standings builds a placeholder table from the sport's matchup pool.
func (d *Dataset) Standings(sportKey string) standings.Doc {
	names := make([]string, 0, 8)
	if sportKey == "formula1" {
		names = append(names, "Max Verstappen", "Lando Norris", "Charles Leclerc", "Lewis Hamilton")
	} else {
		for _, m := range matchupsBySport[sportKey] {
			names = append(names, m.home, m.away)
		}
	}
	if len(names) == 0 {
		names = append(names, "Team A", "Team B")
	}

	rows := make([]standings.TeamStanding, 0, len(names))
	for i, name := range names {
		wins := 40 - i*3
		losses := 12 + i*3
		if wins < 0 {
			wins = 0
		}
		played := wins + losses
		rows = append(rows, standings.TeamStanding{
			Rank:   i + 1,
			Team:   standings.Team{Name: name, Abbreviation: Abbreviate(name)},
			Wins:   wins,
			Losses: losses,
			Played: played,
			WinPct: float64(wins) / float64(played),
			Points: wins * 2,
		})
	}

	leagueName := leagueNames[sportKey]
	if leagueName == "" {
		leagueName = "League"
	}
	return standings.Doc{
		League: standings.League{
			Name:      leagueName,
			Standings: [][]standings.TeamStanding{rows},
		},
	}
}

// News returns placeholder headlines for a team.
func (d *Dataset) News(team string) []news.Item {
	if team == "" {
		team = "the home side"
	}
	now := d.now().UTC()
	return []news.Item{
		{
			Title:   fmt.Sprintf("%s sharpen rotation ahead of next matchup", team),
			Summary: fmt.Sprintf("Coaching staff experimented with lineup changes as %s prepare for a testing stretch of the schedule.", team),
			Date:    now.Add(-6 * time.Hour),
			Source:  "Matchboard Wire",
		},
		{
			Title:   fmt.Sprintf("Injury report: %s near full strength", team),
			Summary: "Two rotation players returned to full practice and are expected to be available.",
			Date:    now.Add(-26 * time.Hour),
			Source:  "Matchboard Wire",
		},
		{
			Title:   "League announces updated broadcast slate",
			Summary: "National broadcast windows were reshuffled for the remainder of the season.",
			Date:    now.Add(-50 * time.Hour),
			Source:  "Matchboard Wire",
		},
	}
}

// TeamStats returns a deterministic placeholder stat line for a team.
func (d *Dataset) TeamStats(team string) news.TeamStats {
	seed := hashString(team)
	wins := 30 + int(seed%20)
	losses := 12 + int((seed>>8)%15)
	return news.TeamStats{
		Wins:          wins,
		Losses:        losses,
		WinPct:        float64(wins) / float64(wins+losses),
		Rank:          1 + int((seed>>16)%8),
		PointsPerGame: 95 + float64((seed>>24)%30),
	}
}

// PlayByPlay returns placeholder live commentary lines.
func (d *Dataset) PlayByPlay(ev event.Event) []news.Play {
	home, away := "Home", "Away"
	if ev.Home != nil {
		home = ev.Home.Name
	}
	if ev.Away != nil {
		away = ev.Away.Name
	}
	return []news.Play{
		{Clock: "Q4 02:31", Team: home, Text: fmt.Sprintf("%s convert in transition to extend the lead.", home)},
		{Clock: "Q4 03:05", Team: away, Text: fmt.Sprintf("%s answer immediately from long range.", away)},
		{Clock: "Q4 04:12", Team: home, Text: "Timeout on the floor as the pace picks up."},
		{Clock: "Q4 05:40", Team: away, Text: fmt.Sprintf("Defensive stop forces %s into a shot-clock violation.", home)},
	}
}

// seededScore derives a stable score pair from an event ID.
func seededScore(id string) (int, int) {
	seed := hashString(id)
	home := 84 + int(seed%40)
	away := 84 + int((seed>>16)%40)
	if home == away {
		away++
	}
	return home, away
}

func hashString(value string) uint64 {
	// FNV-1a, inlined to keep the seed stable across releases.
	var hash uint64 = 14695981039346656037
	for i := 0; i < len(value); i++ {
		hash ^= uint64(value[i])
		hash *= 1099511628211
	}
	return hash
}
