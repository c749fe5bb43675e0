package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/matchup-generator/metrics"
	"github.com/Dosada05/matchup-generator/models"
	"github.com/Dosada05/matchup-generator/repositories"
)

type RecordMatchInput struct {
	Team1ID        string   `json:"team1_id"`
	Team2ID        string   `json:"team2_id"`
	Team1PlayerIDs []string `json:"team1_player_ids"`
	Team2PlayerIDs []string `json:"team2_player_ids"`
}

type MatchService interface {
	RecordMatch(ctx context.Context, input RecordMatchInput) (*models.Match, error)
	UpdateScore(ctx context.Context, matchID string, team1Score, team2Score int) (*models.Match, error)
	DeleteMatch(ctx context.Context, matchID string) error
	// RefreshHistory is the manual refresh trigger.
	RefreshHistory(ctx context.Context) uint64
}

type matchService struct {
	matchRepo repositories.MatchRepository
	board     TodayBoard
	logger    *slog.Logger
}

func NewMatchService(matchRepo repositories.MatchRepository, board TodayBoard, logger *slog.Logger) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		board:     board,
		logger:    logger,
	}
}

// validateRoster checks both sides before anything is written.
func validateRoster(input RecordMatchInput) error {
	if strings.TrimSpace(input.Team1ID) == "" || strings.TrimSpace(input.Team2ID) == "" {
		return ErrTeamRequired
	}
	if len(input.Team1PlayerIDs) == 0 && len(input.Team2PlayerIDs) == 0 {
		return ErrRosterEmpty
	}
	if len(input.Team1PlayerIDs) > models.MaxPlayersPerSide || len(input.Team2PlayerIDs) > models.MaxPlayersPerSide {
		return ErrRosterTooLarge
	}

	home := make(map[string]struct{}, len(input.Team1PlayerIDs))
	for _, id := range input.Team1PlayerIDs {
		if _, dup := home[id]; dup {
			return ErrRosterRepeated
		}
		home[id] = struct{}{}
	}
	away := make(map[string]struct{}, len(input.Team2PlayerIDs))
	for _, id := range input.Team2PlayerIDs {
		if _, dup := away[id]; dup {
			return ErrRosterRepeated
		}
		if _, both := home[id]; both {
			return ErrRosterDuplicate
		}
		away[id] = struct{}{}
	}
	return nil
}

func (s *matchService) RecordMatch(ctx context.Context, input RecordMatchInput) (*models.Match, error) {
	if err := validateRoster(input); err != nil {
		metrics.MatchRecordFailures.WithLabelValues("validation").Inc()
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	roster := make([]*models.MatchParticipant, 0, len(input.Team1PlayerIDs)+len(input.Team2PlayerIDs))
	for _, id := range input.Team1PlayerIDs {
		roster = append(roster, &models.MatchParticipant{PlayerID: id, Side: models.SideHome})
	}
	for _, id := range input.Team2PlayerIDs {
		roster = append(roster, &models.MatchParticipant{PlayerID: id, Side: models.SideAway})
	}

	match := &models.Match{Team1ID: input.Team1ID, Team2ID: input.Team2ID}
	if err := s.matchRepo.CreateWithRoster(ctx, match, roster); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchTeamInvalid):
			metrics.MatchRecordFailures.WithLabelValues("team").Inc()
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrParticipantPlayerInvalid):
			// матч уже откатан вместе с составом
			metrics.MatchRecordFailures.WithLabelValues("player").Inc()
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrRosterWriteFailed):
			metrics.MatchRecordFailures.WithLabelValues("roster").Inc()
			s.logger.ErrorContext(ctx, "roster write failed, match rolled back",
				slog.String("team1_id", input.Team1ID),
				slog.String("team2_id", input.Team2ID),
				slog.Any("error", err),
			)
			return nil, fmt.Errorf("%w: %w", ErrPartialWrite, err)
		default:
			metrics.MatchRecordFailures.WithLabelValues("match").Inc()
			s.logger.ErrorContext(ctx, "failed to create match", slog.Any("error", err))
			return nil, fmt.Errorf("%w: %w", ErrPartialWrite, err)
		}
	}

	metrics.MatchesRecorded.Inc()
	s.logger.InfoContext(ctx, "match recorded",
		slog.String("match_id", match.ID),
		slog.Int("players", len(roster)),
	)
	s.board.Invalidate(ctx, "match_recorded")
	return match, nil
}

func (s *matchService) UpdateScore(ctx context.Context, matchID string, team1Score, team2Score int) (*models.Match, error) {
	if team1Score < 0 || team2Score < 0 {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrScoreInvalid)
	}

	match, err := s.matchRepo.UpdateScore(ctx, matchID, team1Score, team2Score)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		s.logger.ErrorContext(ctx, "failed to update score", slog.String("match_id", matchID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to update score: %w", err)
	}

	s.board.Invalidate(ctx, "score_updated")
	return match, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, matchID string) error {
	if err := s.matchRepo.Delete(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		s.logger.ErrorContext(ctx, "failed to delete match", slog.String("match_id", matchID), slog.Any("error", err))
		return fmt.Errorf("failed to delete match: %w", err)
	}

	s.board.Invalidate(ctx, "match_deleted")
	return nil
}

func (s *matchService) RefreshHistory(ctx context.Context) uint64 {
	return s.board.Invalidate(ctx, "manual_refresh")
}
