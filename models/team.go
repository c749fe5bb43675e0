package models

// NoLeague помечает сборные: у национальных команд нет клубной лиги.
const NoLeague = "No league"

type Team struct {
	ID             string  `json:"id" db:"id"`
	Name           string  `json:"name" db:"name"`
	League         string  `json:"league" db:"league"`
	Rating         float64 `json:"rating" db:"rating"` // звёзды, 0..5 с шагом 0.5
	OverallRating  int     `json:"overall_rating" db:"overall_rating"`
	AttackRating   int     `json:"attack_rating" db:"attack_rating"`
	MidfieldRating int     `json:"midfield_rating" db:"midfield_rating"`
	DefendRating   int     `json:"defend_rating" db:"defend_rating"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL string  `json:"logo_url" db:"-"`
}

// IsNation reports whether the team is a national side.
func (t Team) IsNation() bool {
	return t.League == NoLeague
}

// IndexTeams builds a lookup by team id.
func IndexTeams(teams []Team) map[string]Team {
	byID := make(map[string]Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	return byID
}
