// Package scheduler runs the periodic housekeeping jobs of the service.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/matchup-generator/services"
	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
)

// Pruner drops expired session settings. Only the in-memory store needs it,
// Redis expires keys on its own.
type Pruner interface {
	Prune() int
}

type Config struct {
	// Сессии без запросов дольше этого срока теряют контроллер пары
	IdleTimeout time.Duration
	// Период принудительного обновления каталога команд и игроков
	CatalogRefresh time.Duration
}

type Scheduler struct {
	s        gocron.Scheduler
	cfg      Config
	board    services.TodayBoard
	matchups services.MatchupService
	catalog  services.CatalogService
	store    Pruner
	logger   *slog.Logger
}

func NewScheduler(
	cfg Config,
	board services.TodayBoard,
	matchups services.MatchupService,
	catalog services.CatalogService,
	store Pruner,
	clock clockwork.Clock,
	logger *slog.Logger,
) (*Scheduler, error) {
	// "Сегодня" считается в UTC, поэтому и полночь берём по UTC
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithClock(clock),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:        s,
		cfg:      cfg,
		board:    board,
		matchups: matchups,
		catalog:  catalog,
		store:    store,
		logger:   logger,
	}, nil
}

func (s *Scheduler) Start() error {
	var err error

	// Day rollover - every day 00:00 UTC
	_, err = s.s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0))),
		gocron.NewTask(s.RolloverDay),
		gocron.WithName("day_rollover"),
	)
	if err != nil {
		return fmt.Errorf("failed to create day rollover job: %w", err)
	}

	// Idle sessions - hourly
	_, err = s.s.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(s.PruneSessions),
		gocron.WithName("prune_sessions"),
	)
	if err != nil {
		return fmt.Errorf("failed to create session pruning job: %w", err)
	}

	if s.cfg.CatalogRefresh > 0 {
		_, err = s.s.NewJob(
			gocron.DurationJob(s.cfg.CatalogRefresh),
			gocron.NewTask(s.RefreshCatalog),
			gocron.WithName("catalog_refresh"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("failed to create catalog refresh job: %w", err)
		}
	}

	s.s.Start()
	s.logger.Info("scheduler started", slog.Int("jobs", len(s.s.Jobs())))
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

// RolloverDay starts a new board generation so clients drop yesterday's
// history and standings.
func (s *Scheduler) RolloverDay() {
	gen := s.board.Invalidate(context.Background(), "day_rollover")
	s.logger.Info("day rolled over", slog.Uint64("generation", gen))
}

func (s *Scheduler) PruneSessions() {
	pruned := s.matchups.PruneIdle(s.cfg.IdleTimeout)
	expired := 0
	if s.store != nil {
		expired = s.store.Prune()
	}
	if pruned > 0 || expired > 0 {
		s.logger.Info("idle sessions pruned",
			slog.Int("controllers", pruned),
			slog.Int("settings", expired),
		)
	}
}

func (s *Scheduler) RefreshCatalog() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	catalog, err := s.catalog.Refresh(ctx)
	if err != nil {
		s.logger.Error("failed to refresh catalog", slog.Any("error", err))
		return
	}
	s.logger.Debug("catalog refreshed",
		slog.Int("teams", len(catalog.Teams)),
		slog.Int("players", len(catalog.Players)),
	)
}
