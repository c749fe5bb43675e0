package models

const (
	DefaultMinRating      = 4.0
	DefaultMaxRating      = 5.0
	DefaultExcludeNations = true

	RatingFloor   = 0.0
	RatingCeiling = 5.0
)

// Settings are the per-session generator filters.
type Settings struct {
	MinRating      float64 `json:"min_rating"`
	MaxRating      float64 `json:"max_rating"`
	ExcludeNations bool    `json:"exclude_nations"`
}

func DefaultSettings() Settings {
	return Settings{
		MinRating:      DefaultMinRating,
		MaxRating:      DefaultMaxRating,
		ExcludeNations: DefaultExcludeNations,
	}
}

// RatingInRange reports whether r is a valid star rating bound.
func RatingInRange(r float64) bool {
	return r >= RatingFloor && r <= RatingCeiling
}
