// Package settings persists the generator filters of a browser session.
package settings

import (
	"context"
	"errors"
	"strconv"

	"github.com/Dosada05/matchup-generator/models"
)

// Ключи совпадают с тем, что клиент держит в sessionStorage.
const (
	KeyMinRating      = "fcGeneratorMinRating"
	KeyMaxRating      = "fcGeneratorMaxRating"
	KeyExcludeNations = "fcGeneratorExcludeNations"
)

var ErrStoreUnavailable = errors.New("settings store unavailable")

// Store loads and saves settings per session id. Load never fails on
// malformed stored values; it falls back to defaults for those keys.
type Store interface {
	Load(ctx context.Context, sessionID string) (models.Settings, error)
	Save(ctx context.Context, sessionID string, s models.Settings) error
	Delete(ctx context.Context, sessionID string) error
}

// Parse builds settings from raw stored values. Missing, malformed or
// out-of-range values are ignored key by key.
func Parse(values map[string]string) models.Settings {
	s := models.DefaultSettings()
	if v, ok := parseRating(values[KeyMinRating]); ok {
		s.MinRating = v
	}
	if v, ok := parseRating(values[KeyMaxRating]); ok {
		s.MaxRating = v
	}
	switch values[KeyExcludeNations] {
	case "true":
		s.ExcludeNations = true
	case "false":
		s.ExcludeNations = false
	}
	return s
}

func parseRating(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !models.RatingInRange(v) {
		return 0, false
	}
	return v, true
}

// Encode is the inverse of Parse.
func Encode(s models.Settings) map[string]string {
	return map[string]string{
		KeyMinRating:      strconv.FormatFloat(s.MinRating, 'f', -1, 64),
		KeyMaxRating:      strconv.FormatFloat(s.MaxRating, 'f', -1, 64),
		KeyExcludeNations: strconv.FormatBool(s.ExcludeNations),
	}
}

// Validate returns field errors for settings about to be saved, or nil.
func Validate(s models.Settings) map[string]string {
	errs := make(map[string]string)
	if !models.RatingInRange(s.MinRating) {
		errs["min_rating"] = "Ratings must be between 0 and 5."
	}
	if !models.RatingInRange(s.MaxRating) {
		errs["max_rating"] = "Ratings must be between 0 and 5."
	}
	if len(errs) == 0 && s.MinRating > s.MaxRating {
		errs["min_rating"] = "Minimum rating cannot be greater than maximum rating."
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
