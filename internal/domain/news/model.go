package news

import "time"

// Item is one headline shown in the hero panel.
type Item struct {
	Title   string    `json:"title"`
	Summary string    `json:"summary"`
	Date    time.Time `json:"date"`
	Source  string    `json:"source"`
}

// TeamStats is the condensed stat line shown for a side in the hero panel.
type TeamStats struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinPct        float64 `json:"win_pct"`
	Rank          int     `json:"rank"`
	PointsPerGame float64 `json:"points_per_game,omitempty"`
}

// Play is one play-by-play line for a live game.
type Play struct {
	Clock string `json:"clock"`
	Team  string `json:"team,omitempty"`
	Text  string `json:"text"`
}
