package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/matchup-generator/models"
	"github.com/Dosada05/matchup-generator/realtime"
	"github.com/Dosada05/matchup-generator/repositories"
)

type PlayerService interface {
	List(ctx context.Context) ([]models.Player, error)
	Create(ctx context.Context, name string) (*models.Player, error)
	Rename(ctx context.Context, playerID, name string) (*models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	catalog    CatalogService
	board      TodayBoard
	notifier   Notifier
	logger     *slog.Logger
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	catalog CatalogService,
	board TodayBoard,
	notifier Notifier,
	logger *slog.Logger,
) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		catalog:    catalog,
		board:      board,
		notifier:   notifier,
		logger:     logger,
	}
}

func normalizePlayerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrPlayerNameRequired
	}
	return name, nil
}

func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: players: %w", ErrFetch, err)
	}
	return players, nil
}

func (s *playerService) Create(ctx context.Context, name string) (*models.Player, error) {
	name, err := normalizePlayerName(name)
	if err != nil {
		return nil, err
	}

	player := &models.Player{Name: name}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNameConflict) {
			return nil, ErrPlayerNameConflict
		}
		s.logger.ErrorContext(ctx, "failed to create player", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	s.catalogChanged(ctx, player.ID)
	s.board.Invalidate(ctx, "player_created")
	return player, nil
}

func (s *playerService) Rename(ctx context.Context, playerID, name string) (*models.Player, error) {
	name, err := normalizePlayerName(name)
	if err != nil {
		return nil, err
	}

	player, err := s.playerRepo.UpdateName(ctx, playerID, name)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrPlayerNameConflict):
			return nil, ErrPlayerNameConflict
		}
		s.logger.ErrorContext(ctx, "failed to rename player", slog.String("player_id", playerID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to rename player: %w", err)
	}

	s.catalogChanged(ctx, player.ID)
	// имена игроков есть в истории и таблице
	s.board.Invalidate(ctx, "player_renamed")
	return player, nil
}

func (s *playerService) catalogChanged(ctx context.Context, playerID string) {
	s.catalog.Invalidate()
	if s.notifier == nil {
		return
	}
	s.notifier.BroadcastToRoom(realtime.BoardRoom, realtime.WebSocketMessage{
		Type:    realtime.EventCatalogChanged,
		Payload: map[string]interface{}{"player_id": playerID},
		RoomID:  realtime.BoardRoom,
	})
	s.logger.DebugContext(ctx, "player catalog changed", slog.String("player_id", playerID))
}
