package standings

import "github.com/Dosada05/matchup-generator/models"

// Highlight marks the completed matches with the largest goal margin. Among
// those, only the ones with the most total goals stay highlighted. The slice
// is modified in place and returned.
func Highlight(matches []models.MatchHistoryItem) []models.MatchHistoryItem {
	bestMargin, bestTotal := -1, -1
	for i := range matches {
		matches[i].Highlighted = false
		s1, s2, ok := matches[i].Scores()
		if !ok {
			continue
		}
		margin, total := abs(s1-s2), s1+s2
		if margin > bestMargin || (margin == bestMargin && total > bestTotal) {
			bestMargin, bestTotal = margin, total
		}
	}
	if bestMargin < 0 {
		return matches
	}

	for i := range matches {
		s1, s2, ok := matches[i].Scores()
		if ok && abs(s1-s2) == bestMargin && s1+s2 == bestTotal {
			matches[i].Highlighted = true
		}
	}
	return matches
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
