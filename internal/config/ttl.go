package config

import (
	"strings"
	"time"

	"github.com/matchboard/matchboard/internal/domain/event"
)

// TTLTable resolves the freshness budget for a (sport, kind) cache read.
// Per-kind defaults apply unless a sport-specific override exists.
type TTLTable struct {
	defaults  map[event.QueryKind]time.Duration
	overrides map[string]time.Duration
}

// DefaultTTLTable carries the shipped budgets: live data turns over in
// seconds, schedules in hours, standings somewhere in between. Sports
// with slow-moving calendars get longer upcoming windows.
func DefaultTTLTable() TTLTable {
	return TTLTable{
		defaults: map[event.QueryKind]time.Duration{
			event.QueryLive:      30 * time.Second,
			event.QueryUpcoming:  24 * time.Hour,
			event.QueryRecent:    48 * time.Hour,
			event.QueryStandings: 6 * time.Hour,
			event.QueryNews:      time.Hour,
		},
		overrides: map[string]time.Duration{
			overrideKey("tennis", event.QueryLive):       30 * time.Minute,
			overrideKey("golf", event.QueryLive):         30 * time.Minute,
			overrideKey("golf", event.QueryUpcoming):     time.Hour,
			overrideKey("formula1", event.QueryUpcoming): 7 * 24 * time.Hour,
		},
	}
}

// For returns the TTL for a (sport, kind) pair.
func (t TTLTable) For(sportKey string, kind event.QueryKind) time.Duration {
	if ttl, ok := t.overrides[overrideKey(sportKey, kind)]; ok {
		return ttl
	}
	if ttl, ok := t.defaults[kind]; ok {
		return ttl
	}
	return time.Minute
}

func overrideKey(sportKey string, kind event.QueryKind) string {
	return strings.ToLower(strings.TrimSpace(sportKey)) + "/" + string(kind)
}
