package models

// Matchup is the pair of teams currently shown for a session.
type Matchup struct {
	Home Team `json:"home"`
	Away Team `json:"away"`
}

// Team returns the team on the given side.
func (m Matchup) Team(side Side) Team {
	if side == SideAway {
		return m.Away
	}
	return m.Home
}

// RatingDifferences holds Home minus Away for each rating. The away view is
// the negation.
type RatingDifferences struct {
	Overall  int `json:"overall"`
	Attack   int `json:"attack"`
	Midfield int `json:"midfield"`
	Defend   int `json:"defend"`
}

func (m Matchup) Differences() RatingDifferences {
	return RatingDifferences{
		Overall:  m.Home.OverallRating - m.Away.OverallRating,
		Attack:   m.Home.AttackRating - m.Away.AttackRating,
		Midfield: m.Home.MidfieldRating - m.Away.MidfieldRating,
		Defend:   m.Home.DefendRating - m.Away.DefendRating,
	}
}
