package models

// PlayerStanding is derived from today's matches and is never stored.
type PlayerStanding struct {
	PlayerID           string `json:"player_id"`
	PlayerName         string `json:"player_name"`
	Points             int    `json:"points"`
	GoalsFor           int    `json:"goals_for"`
	GoalsAgainst       int    `json:"goals_against"`
	GoalDifference     int    `json:"goal_difference"`
	TotalOverallRating int    `json:"total_overall_rating"` // сумма OVR команд, за которые играл
}
