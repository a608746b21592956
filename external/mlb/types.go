package mlb

type scheduleEnvelope struct {
	Dates []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Date  string `json:"date"`
	Games []game `json:"games"`
}

type game struct {
	GamePk   int64      `json:"gamePk"`
	GameDate string     `json:"gameDate"`
	Status   gameStatus `json:"status"`
	Teams    gameTeams  `json:"teams"`
	Venue    gameVenue  `json:"venue"`
}

type gameStatus struct {
	AbstractGameState string `json:"abstractGameState"`
	DetailedState     string `json:"detailedState"`
}

type gameTeams struct {
	Away gameSide `json:"away"`
	Home gameSide `json:"home"`
}

type gameSide struct {
	Score  *int    `json:"score"`
	Team   teamRef `json:"team"`
	Record teamWL  `json:"leagueRecord"`
}

type teamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type teamWL struct {
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Pct    string `json:"pct"`
}

type gameVenue struct {
	Name string `json:"name"`
}

type standingsEnvelope struct {
	Records []divisionRecord `json:"records"`
}

type divisionRecord struct {
	Division struct {
		ID        int64  `json:"id"`
		NameShort string `json:"nameShort"`
	} `json:"division"`
	TeamRecords []teamRecord `json:"teamRecords"`
}

type teamRecord struct {
	Team              teamRef `json:"team"`
	Wins              int     `json:"wins"`
	Losses            int     `json:"losses"`
	WinningPercentage string  `json:"winningPercentage"`
	GamesPlayed       int     `json:"gamesPlayed"`
	DivisionRank      string  `json:"divisionRank"`
}
