package fallback

import "strings"

// abbreviations maps well-known team names to scoreboard codes. Used when
// a provider payload or placeholder event lacks one.
var abbreviations = map[string]string{
	// NBA
	"boston celtics":        "BOS",
	"miami heat":            "MIA",
	"milwaukee bucks":       "MIL",
	"new york knicks":       "NYK",
	"philadelphia 76ers":    "PHI",
	"denver nuggets":        "DEN",
	"los angeles lakers":    "LAL",
	"golden state warriors": "GSW",
	"phoenix suns":          "PHX",
	"dallas mavericks":      "DAL",
	// NFL
	"kansas city chiefs":  "KC",
	"buffalo bills":       "BUF",
	"philadelphia eagles": "PHI",
	"dallas cowboys":      "DAL",
	"san francisco 49ers": "SF",
	"baltimore ravens":    "BAL",
	"detroit lions":       "DET",
	"green bay packers":   "GB",
	// NHL
	"boston bruins":        "BOS",
	"toronto maple leafs":  "TOR",
	"edmonton oilers":      "EDM",
	"colorado avalanche":   "COL",
	"new york rangers":     "NYR",
	"florida panthers":     "FLA",
	"vegas golden knights": "VGK",
	"dallas stars":         "DAL",
	// MLB
	"new york yankees":     "NYY",
	"boston red sox":       "BOS",
	"los angeles dodgers":  "LAD",
	"atlanta braves":       "ATL",
	"houston astros":       "HOU",
	"chicago cubs":         "CHC",
	"san francisco giants": "SF",
	"baltimore orioles":    "BAL",
	// Cricket internationals
	"india":        "IND",
	"england":      "ENG",
	"australia":    "AUS",
	"south africa": "SA",
	"new zealand":  "NZ",
	"pakistan":     "PAK",
	"sri lanka":    "SL",
	"west indies":  "WI",
}

// Abbreviate returns the known code for a team, or a derived one from the
// name's initials.
func Abbreviate(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if abbr, ok := abbreviations[key]; ok {
		return abbr
	}

	fields := strings.Fields(key)
	if len(fields) == 0 {
		return ""
	}
	if len(fields) == 1 {
		word := strings.ToUpper(fields[0])
		if len(word) > 3 {
			word = word[:3]
		}
		return word
	}
	var b strings.Builder
	for _, field := range fields {
		b.WriteByte(field[0])
	}
	return strings.ToUpper(b.String())
}
