// Package matchup picks and repairs the pair of teams shown to a session.
package matchup

import "github.com/Dosada05/matchup-generator/models"

// Filter returns the teams whose rating lies in [minRating, maxRating],
// dropping national sides when excludeNations is set. Input order is kept.
// When minRating > maxRating the result is empty.
func Filter(teams []models.Team, minRating, maxRating float64, excludeNations bool) []models.Team {
	eligible := make([]models.Team, 0, len(teams))
	for _, t := range teams {
		if t.Rating < minRating || t.Rating > maxRating {
			continue
		}
		if excludeNations && t.IsNation() {
			continue
		}
		eligible = append(eligible, t)
	}
	return eligible
}

// FilterBySettings applies Filter with the bounds from s.
func FilterBySettings(teams []models.Team, s models.Settings) []models.Team {
	return Filter(teams, s.MinRating, s.MaxRating, s.ExcludeNations)
}

// Unplayed drops every team present in played.
func Unplayed(teams []models.Team, played map[string]struct{}) []models.Team {
	out := make([]models.Team, 0, len(teams))
	for _, t := range teams {
		if _, ok := played[t.ID]; ok {
			continue
		}
		out = append(out, t)
	}
	return out
}

func contains(teams []models.Team, id string) bool {
	for _, t := range teams {
		if t.ID == id {
			return true
		}
	}
	return false
}
