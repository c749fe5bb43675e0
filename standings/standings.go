// Package standings aggregates today's matches into a player leaderboard.
package standings

import (
	"sort"

	"github.com/Dosada05/matchup-generator/models"
)

// Compute builds one record per player from the completed matches. Unscored
// matches contribute nothing. A win is a strictly higher score and is worth
// one point; draws and losses are worth zero. Each participant is credited
// with the overall rating of the team they played for.
//
// The result is sorted by points, goal difference and goals for, all
// descending. Full ties keep the order of players.
func Compute(matches []models.MatchHistoryItem, players []models.Player, teams []models.Team) []models.PlayerStanding {
	records := make([]models.PlayerStanding, len(players))
	byPlayer := make(map[string]*models.PlayerStanding, len(players))
	for i, p := range players {
		records[i] = models.PlayerStanding{PlayerID: p.ID, PlayerName: p.Name}
		byPlayer[p.ID] = &records[i]
	}
	teamsByID := models.IndexTeams(teams)

	for _, m := range matches {
		s1, s2, ok := m.Scores()
		if !ok {
			continue
		}
		credit(byPlayer, m.Team1Players, s1, s2, teamsByID[m.Team1ID].OverallRating)
		credit(byPlayer, m.Team2Players, s2, s1, teamsByID[m.Team2ID].OverallRating)
	}

	for i := range records {
		records[i].GoalDifference = records[i].GoalsFor - records[i].GoalsAgainst
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.GoalsFor > b.GoalsFor
	})
	return records
}

func credit(byPlayer map[string]*models.PlayerStanding, roster []models.Player, own, opp, overall int) {
	for _, p := range roster {
		rec, ok := byPlayer[p.ID]
		if !ok {
			continue
		}
		rec.GoalsFor += own
		rec.GoalsAgainst += opp
		if own > opp {
			rec.Points++
		}
		rec.TotalOverallRating += overall
	}
}
