package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/Dosada05/matchup-generator/models"
	"github.com/Dosada05/matchup-generator/realtime"
	"github.com/Dosada05/matchup-generator/repositories"
	"github.com/Dosada05/matchup-generator/storage"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const defaultSearchLimit = 20

type TeamService interface {
	List(ctx context.Context) ([]models.Team, error)
	Search(ctx context.Context, query string, limit int) ([]models.Team, error)
	UploadLogo(ctx context.Context, teamID, contentType string, reader io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	catalog  CatalogService
	uploader storage.FileUploader
	notifier Notifier
	logger   *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	catalog CatalogService,
	uploader storage.FileUploader,
	notifier Notifier,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		catalog:  catalog,
		uploader: uploader,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *teamService) List(ctx context.Context) ([]models.Team, error) {
	catalog, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Teams, nil
}

func (s *teamService) Search(ctx context.Context, query string, limit int) ([]models.Team, error) {
	catalog, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}
	return RankTeams(catalog.Teams, query, limit), nil
}

// RankTeams returns the teams whose name or league fuzzily contains query,
// closest first. An empty query returns the first limit teams unchanged.
func RankTeams(teams []models.Team, query string, limit int) []models.Team {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	query = strings.TrimSpace(query)
	if query == "" {
		if len(teams) > limit {
			return teams[:limit]
		}
		return teams
	}

	targets := make([]string, len(teams))
	for i, t := range teams {
		targets[i] = t.Name + " " + t.League
	}
	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	sort.Stable(ranks)

	result := make([]models.Team, 0, min(limit, len(ranks)))
	for _, r := range ranks {
		if len(result) == limit {
			break
		}
		result = append(result, teams[r.OriginalIndex])
	}
	return result
}

func (s *teamService) UploadLogo(ctx context.Context, teamID, contentType string, reader io.Reader) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %s: %w", teamID, err)
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, err
	}

	key := storage.TeamLogoKey(team.ID, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		if errors.Is(err, storage.ErrUploadsDisabled) {
			return nil, ErrLogoStorageDisabled
		}
		s.logger.ErrorContext(ctx, "failed to upload team logo", slog.String("team_id", team.ID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}

	oldKey := team.LogoKey
	if err := s.teamRepo.UpdateLogoKey(ctx, team.ID, &key); err != nil {
		// объект уже загружен, убираем его, чтобы не копить мусор в бакете
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to clean up uploaded logo", slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, fmt.Errorf("failed to save logo key: %w", err)
	}

	if oldKey != nil && *oldKey != "" && *oldKey != key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous logo", slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	team.LogoKey = &key
	team.LogoURL = s.uploader.GetPublicURL(key)

	s.catalog.Invalidate()
	if s.notifier != nil {
		s.notifier.BroadcastToRoom(realtime.BoardRoom, realtime.WebSocketMessage{
			Type:    realtime.EventCatalogChanged,
			Payload: map[string]interface{}{"team_id": team.ID},
			RoomID:  realtime.BoardRoom,
		})
	}
	return team, nil
}
