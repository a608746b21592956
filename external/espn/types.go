package espn

// Provider-native payload shapes. Decoding stays typed so the adapter can
// be a pure function from these structs to canonical events.

type scoreboardEnvelope struct {
	Leagues []scoreboardLeague `json:"leagues"`
	Events  []scoreboardEvent  `json:"events"`
}

type scoreboardLeague struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type scoreboardEvent struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Name         string        `json:"name"`
	ShortName    string        `json:"shortName"`
	Status       eventStatus   `json:"status"`
	Competitions []competition `json:"competitions"`
}

type eventStatus struct {
	Type statusType `json:"type"`
}

type statusType struct {
	State       string `json:"state"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
}

type competition struct {
	Competitors []competitor `json:"competitors"`
	Venue       venueInfo    `json:"venue"`
}

type competitor struct {
	HomeAway string       `json:"homeAway"`
	Score    string       `json:"score"`
	Winner   bool         `json:"winner"`
	Team     *teamInfo    `json:"team"`
	Athlete  *athleteInfo `json:"athlete"`
}

type teamInfo struct {
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
	Logo         string `json:"logo"`
}

type athleteInfo struct {
	DisplayName string `json:"displayName"`
	ShortName   string `json:"shortName"`
}

type venueInfo struct {
	FullName string `json:"fullName"`
	Address  struct {
		City string `json:"city"`
	} `json:"address"`
}

type standingsEnvelope struct {
	Name         string           `json:"name"`
	Abbreviation string           `json:"abbreviation"`
	Season       standingsSeason  `json:"season"`
	Children     []standingsGroup `json:"children"`
}

type standingsSeason struct {
	DisplayName string `json:"displayName"`
}

type standingsGroup struct {
	Name      string `json:"name"`
	Standings struct {
		Entries []standingsEntry `json:"entries"`
	} `json:"standings"`
}

type standingsEntry struct {
	Team struct {
		DisplayName  string `json:"displayName"`
		Abbreviation string `json:"abbreviation"`
		Logos        []struct {
			Href string `json:"href"`
		} `json:"logos"`
	} `json:"team"`
	Stats []standingsStat `json:"stats"`
}

type standingsStat struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}
