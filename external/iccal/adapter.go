package iccal

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/matchboard/matchboard/internal/domain/event"
)

// summaryPattern matches fixture summaries like
// "1st T20I: England v India" or "Final: Australia vs South Africa".
var summaryPattern = regexp.MustCompile(`^(?:(.+?):\s*)?(.+?)\s+vs?\.?\s+(.+)$`)

func adaptCalendar(sportKey string, cal *ics.Calendar, now time.Time) ([]event.Event, error) {
	out := make([]event.Event, 0, 16)
	for _, item := range cal.Events() {
		ev, ok := adaptVEvent(sportKey, item)
		if !ok {
			continue
		}
		if ev.Date.Before(now) {
			continue
		}
		out = append(out, ev)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func adaptVEvent(sportKey string, item *ics.VEvent) (event.Event, bool) {
	summary := propertyValue(item, ics.ComponentPropertySummary)
	start, err := item.GetStartAt()
	if err != nil || summary == "" {
		return event.Event{}, false
	}

	label, homeName, awayName := parseSummary(summary)
	if homeName == "" || awayName == "" {
		return event.Event{}, false
	}

	id := strings.TrimSpace(item.Id())
	if id == "" {
		id = fmt.Sprintf("icc-%s-%s", slug(homeName+"-"+awayName), start.UTC().Format("20060102"))
	}

	detail := label
	if description := propertyValue(item, ics.ComponentPropertyDescription); description != "" {
		if detail != "" {
			detail += " | "
		}
		detail += description
	}

	return event.Event{
		ID:       id,
		SportKey: sportKey,
		Kind:     event.KindTeam,
		Status:   event.StatusScheduled,
		Date:     start.UTC(),
		Home:     &event.Side{Name: homeName},
		Away:     &event.Side{Name: awayName},
		League:   event.League{Name: "ICC"},
		Venue:    event.Venue{Name: propertyValue(item, ics.ComponentPropertyLocation)},
		Detail:   detail,
	}, true
}

// parseSummary splits "1st T20I: England v India" into the match label
// and the two team names. Summaries without a label still parse.
func parseSummary(summary string) (label, home, away string) {
	match := summaryPattern.FindStringSubmatch(strings.TrimSpace(summary))
	if match == nil {
		return "", "", ""
	}
	return strings.TrimSpace(match[1]), strings.TrimSpace(match[2]), strings.TrimSpace(match[3])
}

func propertyValue(item *ics.VEvent, prop ics.ComponentProperty) string {
	p := item.GetProperty(prop)
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.Value)
}

func slug(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(value) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
