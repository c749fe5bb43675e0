package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/matchup-generator/models"
	"github.com/Dosada05/matchup-generator/storage"
)

// DayWindow returns the UTC day containing now as [start, start+24h).
func DayWindow(now time.Time) (time.Time, time.Time) {
	u := now.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

func populateTeamLogoURLsFunc(teams []models.Team, uploader storage.FileUploader) {
	if uploader == nil {
		return
	}
	for i := range teams {
		if teams[i].LogoKey != nil && *teams[i].LogoKey != "" {
			teams[i].LogoURL = uploader.GetPublicURL(*teams[i].LogoKey)
		}
	}
}

func findTeam(teams []models.Team, id string) (models.Team, bool) {
	for _, t := range teams {
		if t.ID == id {
			return t, true
		}
	}
	return models.Team{}, false
}

// GetExtensionFromContentType maps an image content type to a file extension.
func GetExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	case "image/svg+xml":
		return ".svg", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && parts[0] == "image" && parts[1] != "" {
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("%w: '%s'", ErrUnsupportedLogoType, contentType)
	}
}
