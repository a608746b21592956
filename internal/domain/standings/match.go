package standings

import "strings"

// teamNameMatches handles the mismatch between provider names ("Boston
// Celtics") and user-entered favorites ("Celtics"): either string may be
// the shorter one.
func teamNameMatches(rowName, query string) bool {
	a := strings.ToLower(strings.TrimSpace(rowName))
	b := strings.ToLower(strings.TrimSpace(query))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
