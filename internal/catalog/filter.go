package catalog

import "strings"

// Filter returns the games whose title contains query and whose mode matches
// mode. The query is trimmed and compared case-insensitively; an empty query
// matches every title. Mode ModeAll (or "") matches every game.
func Filter(games []Game, query, mode string) []Game {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Game, 0, len(games))
	for _, g := range games {
		if mode != "" && mode != ModeAll && g.Mode != mode {
			continue
		}
		if !strings.Contains(strings.ToLower(g.Title), q) {
			continue
		}
		out = append(out, g)
	}
	return out
}
