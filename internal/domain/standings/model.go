package standings

// Team identifies a ranked club within a standings table.
type Team struct {
	Name         string `json:"name"`
	Logo         string `json:"logo,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// TeamStanding is one table row.
type TeamStanding struct {
	Rank     int     `json:"rank"`
	Team     Team    `json:"team"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	Played   int     `json:"played"`
	WinPct   float64 `json:"win_pct"`
	Points   int     `json:"points,omitempty"`
	Division string  `json:"division,omitempty"`
}

// League wraps the grouped tables of one competition. Standings is a list
// of groups (conferences, divisions) each holding ordered rows.
type League struct {
	Name      string           `json:"name"`
	Season    string           `json:"season,omitempty"`
	Standings [][]TeamStanding `json:"standings"`
}

// Doc is one standings response entry.
type Doc struct {
	League League `json:"league"`
}

// Wrap produces the canonical array-of-one-document response shape.
func Wrap(doc Doc) []Doc { return []Doc{doc} }

// FindTeam scans every group for a row whose team name contains the given
// name case-insensitively, or vice versa. Returns nil when absent.
func (d Doc) FindTeam(name string) *TeamStanding {
	for _, group := range d.League.Standings {
		for i := range group {
			if teamNameMatches(group[i].Team.Name, name) {
				return &group[i]
			}
		}
	}
	return nil
}
