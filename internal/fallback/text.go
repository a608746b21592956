package fallback

import (
	"fmt"

	"github.com/matchboard/matchboard/internal/domain/event"
)

// Narrative text is generated, not fetched. Pieces are chosen by a hash
// of the event ID so the same event always reads the same way.

var recapLeads = []string{
	"%s controlled the tempo from the opening stretch and never let %s back within reach.",
	"%s survived a late %s surge, closing the game on a decisive run.",
	"A balanced attack carried %s past %s in a game that swung twice after halftime.",
	"%s leaned on their defense to wear down %s over the final period.",
}

var recapCloses = []string{
	"The winners shot well above their season average and dominated second-chance opportunities.",
	"Bench scoring proved the difference, outscoring the visitors' reserves by double digits.",
	"Both sides emptied the bench late with the result no longer in doubt.",
	"The result tightens the standings picture with the regular season winding down.",
}

var previewLeads = []string{
	"%s host %s in a matchup with real seeding implications.",
	"%s and %s meet for the final time this regular season.",
	"A short turnaround brings %s home to face a rested %s side.",
	"%s look to extend their streak when %s visit.",
}

var previewCloses = []string{
	"The season series is tied, and both coaching staffs have hinted at rotation changes.",
	"Injury reports list both teams near full strength for the first time in weeks.",
	"Expect a slower pace; these teams rank near the bottom of the league in possessions.",
	"The road side has won three straight in this building.",
}

func eventNames(ev event.Event) (string, string) {
	home, away := "the home side", "the visitors"
	if ev.Home != nil && ev.Home.Name != "" {
		home = ev.Home.Name
	}
	if ev.Away != nil && ev.Away.Name != "" {
		away = ev.Away.Name
	}
	return home, away
}

// Recap returns a short completed-game summary.
func (d *Dataset) Recap(ev event.Event) string {
	home, away := eventNames(ev)
	if ev.Home != nil && ev.Away != nil && ev.Home.Score != nil && ev.Away.Score != nil && *ev.Away.Score > *ev.Home.Score {
		home, away = away, home
	}
	seed := hashString(ev.ID)
	lead := fmt.Sprintf(recapLeads[seed%uint64(len(recapLeads))], home, away)
	return lead + " " + recapCloses[(seed>>8)%uint64(len(recapCloses))]
}

// Highlights returns bullet lines for a completed game.
func (d *Dataset) Highlights(ev event.Event) []string {
	home, away := eventNames(ev)
	seed := hashString(ev.ID)
	return []string{
		fmt.Sprintf("%s opened the game on a %d-%d run.", home, 10+int(seed%9), 2+int((seed>>4)%5)),
		fmt.Sprintf("%s's leading scorer finished with %d points.", away, 22+int((seed>>8)%16)),
		fmt.Sprintf("The lead changed hands %d times before the final stretch.", 3+int((seed>>16)%9)),
	}
}

// Preview returns a short scheduled-game look-ahead.
func (d *Dataset) Preview(ev event.Event) string {
	home, away := eventNames(ev)
	seed := hashString(ev.ID)
	lead := fmt.Sprintf(previewLeads[seed%uint64(len(previewLeads))], home, away)
	return lead + " " + previewCloses[(seed>>8)%uint64(len(previewCloses))]
}

// TeamNews returns one-line notes for each side of an upcoming game.
func (d *Dataset) TeamNews(ev event.Event) []string {
	home, away := eventNames(ev)
	return []string{
		fmt.Sprintf("%s: no changes expected to the starting lineup.", home),
		fmt.Sprintf("%s: listed one starter as questionable after the last outing.", away),
	}
}

// Network picks the placeholder broadcaster for a sport.
func Network(sportKey string) string {
	switch sportKey {
	case "nfl":
		return "CBS"
	case "nba":
		return "TNT"
	case "nhl":
		return "ESPN"
	case "mlb":
		return "FOX"
	case "cricket":
		return "Willow"
	case "formula1":
		return "Sky Sports F1"
	case "tennis":
		return "Tennis Channel"
	case "golf":
		return "Golf Channel"
	default:
		return "ESPN"
	}
}
