package models

import "time"

// MaxPlayersPerSide ограничивает состав одной стороны матча.
const MaxPlayersPerSide = 4

type Side int

const (
	SideHome Side = 1
	SideAway Side = 2
)

func (s Side) Valid() bool {
	return s == SideHome || s == SideAway
}

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == SideHome {
		return SideAway
	}
	return SideHome
}

type Match struct {
	ID         string    `json:"id" db:"id"`
	Team1ID    string    `json:"team1_id" db:"team1_id"`
	Team2ID    string    `json:"team2_id" db:"team2_id"`
	Team1Score *int      `json:"team1_score" db:"team1_score"`
	Team2Score *int      `json:"team2_score" db:"team2_score"`
	PlayedAt   time.Time `json:"played_at" db:"played_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Completed reports whether both scores are recorded. A match with only one
// score is treated as unscored.
func (m Match) Completed() bool {
	return m.Team1Score != nil && m.Team2Score != nil
}

// Scores returns both scores and whether the match is completed.
func (m Match) Scores() (int, int, bool) {
	if !m.Completed() {
		return 0, 0, false
	}
	return *m.Team1Score, *m.Team2Score, true
}

type MatchParticipant struct {
	ID        string    `json:"id" db:"id"`
	MatchID   string    `json:"match_id" db:"match_id"`
	PlayerID  string    `json:"player_id" db:"player_id"`
	Side      Side      `json:"team_number" db:"team_number"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MatchHistoryItem is a read-only projection of a match with team names and
// both rosters resolved. It is rebuilt on every history fetch.
type MatchHistoryItem struct {
	Match
	Team1Name    string   `json:"team1_name"`
	Team1LogoURL string   `json:"team1_logo_url"`
	Team2Name    string   `json:"team2_name"`
	Team2LogoURL string   `json:"team2_logo_url"`
	Team1Players []Player `json:"team1_players"`
	Team2Players []Player `json:"team2_players"`
	Highlighted  bool     `json:"highlighted"`
}

// PlayedTeamIDs collects every team id appearing in the given matches.
func PlayedTeamIDs(matches []MatchHistoryItem) map[string]struct{} {
	played := make(map[string]struct{}, len(matches)*2)
	for _, m := range matches {
		played[m.Team1ID] = struct{}{}
		played[m.Team2ID] = struct{}{}
	}
	return played
}
