package event

import (
	"errors"
	"strings"
	"time"
)

// Status classifies an event's lifecycle stage.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

// Kind describes how an event's sides should be read.
type Kind string

const (
	// KindTeam means Home and Away are real team sides.
	KindTeam Kind = "team"
	// KindIndividual means the sides carry player names (tennis, golf leaders).
	KindIndividual Kind = "individual"
	// KindField means there are no sides at all (races, tournaments).
	KindField Kind = "field"
)

// Side is one competitor of an event.
type Side struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
	LogoURL      string `json:"logo_url,omitempty"`
	Score        *int   `json:"score"`
}

// League names the competition an event belongs to.
type League struct {
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

// Venue locates an event.
type Venue struct {
	Name string `json:"name,omitempty"`
	City string `json:"city,omitempty"`
}

// Event is the canonical shape every provider adapter produces and the
// dashboard consumes. One struct for all sports; Kind tells the reader
// whether the sides are teams, individuals, or absent.
type Event struct {
	ID       string    `json:"id"`
	SportKey string    `json:"sport_key"`
	Kind     Kind      `json:"kind"`
	Status   Status    `json:"status"`
	Date     time.Time `json:"date"`
	Home     *Side     `json:"home"`
	Away     *Side     `json:"away"`
	League   League    `json:"league"`
	Venue    Venue     `json:"venue,omitempty"`
	// Detail carries a short human line (race name, series stage, round).
	Detail string `json:"detail,omitempty"`
}

var (
	ErrMissingID        = errors.New("event: missing id")
	ErrMissingDate      = errors.New("event: missing date")
	ErrScoreOnScheduled = errors.New("event: scheduled event carries a score")
	ErrScoreMissing     = errors.New("event: completed event missing a score")
	ErrSidesRequired    = errors.New("event: team event missing a side")
)

// Validate enforces the score/status contract at the adapter boundary.
// Completed events must carry both scores, scheduled events neither; live
// events may have partial scores. Side checks only apply when sides exist.
func (e Event) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrMissingID
	}
	if e.Date.IsZero() {
		return ErrMissingDate
	}
	if e.Kind == KindTeam && (e.Home == nil || e.Away == nil) {
		return ErrSidesRequired
	}
	if e.Home == nil || e.Away == nil {
		return nil
	}
	switch e.Status {
	case StatusCompleted:
		if e.Home.Score == nil || e.Away.Score == nil {
			return ErrScoreMissing
		}
	case StatusScheduled:
		if e.Home.Score != nil || e.Away.Score != nil {
			return ErrScoreOnScheduled
		}
	}
	return nil
}

// IsLive reports whether the event is in progress.
func (e Event) IsLive() bool { return e.Status == StatusLive }

// Involves reports whether either side's name contains the given team
// name, case-insensitively. Used for favorite matching.
func (e Event) Involves(team string) bool {
	team = strings.ToLower(strings.TrimSpace(team))
	if team == "" {
		return false
	}
	for _, side := range []*Side{e.Home, e.Away} {
		if side != nil && strings.Contains(strings.ToLower(side.Name), team) {
			return true
		}
	}
	return false
}

// Kinds of timeline rows a cached query can ask for.
type QueryKind string

const (
	QueryLive      QueryKind = "live"
	QueryUpcoming  QueryKind = "upcoming"
	QueryRecent    QueryKind = "recent"
	QueryStandings QueryKind = "standings"
	QueryNews      QueryKind = "news"
)
