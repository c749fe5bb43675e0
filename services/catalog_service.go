package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/matchup-generator/metrics"
	"github.com/Dosada05/matchup-generator/models"
	"github.com/Dosada05/matchup-generator/repositories"
	"github.com/Dosada05/matchup-generator/storage"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

// Catalog is one consistent load of all teams and players.
type Catalog struct {
	Teams    []models.Team
	Players  []models.Player
	LoadedAt time.Time
}

type CatalogService interface {
	// Load returns the cached catalog, reloading it once it is older than
	// the configured TTL.
	Load(ctx context.Context) (*Catalog, error)
	Refresh(ctx context.Context) (*Catalog, error)
	Invalidate()
}

type catalogService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	clock      clockwork.Clock
	ttl        time.Duration
	logger     *slog.Logger

	mu         sync.Mutex
	cached     *Catalog
	generation uint64
}

func NewCatalogService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	uploader storage.FileUploader,
	clock clockwork.Clock,
	ttl time.Duration,
	logger *slog.Logger,
) CatalogService {
	return &catalogService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		uploader:   uploader,
		clock:      clock,
		ttl:        ttl,
		logger:     logger,
	}
}

func (s *catalogService) Load(ctx context.Context) (*Catalog, error) {
	s.mu.Lock()
	cached := s.cached
	s.mu.Unlock()

	if cached != nil && (s.ttl <= 0 || s.clock.Since(cached.LoadedAt) < s.ttl) {
		return cached, nil
	}
	return s.Refresh(ctx)
}

// Refresh loads teams and players concurrently. Both must succeed.
// A load that finishes after a newer Invalidate is returned but not cached.
func (s *catalogService) Refresh(ctx context.Context) (*Catalog, error) {
	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()

	var (
		teams   []models.Team
		players []models.Player
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("teams: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		players, err = s.playerRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("players: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "catalog load failed", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	if len(teams) == 0 {
		s.logger.WarnContext(ctx, "no teams found in the database")
	}
	populateTeamLogoURLsFunc(teams, s.uploader)

	catalog := &Catalog{Teams: teams, Players: players, LoadedAt: s.clock.Now()}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		metrics.StaleRefreshDiscarded.Inc()
		s.logger.DebugContext(ctx, "discarding stale catalog load",
			slog.Uint64("fetched_generation", gen),
			slog.Uint64("current_generation", s.generation),
		)
		return catalog, nil
	}
	s.cached = catalog
	return catalog, nil
}

func (s *catalogService) Invalidate() {
	s.mu.Lock()
	s.generation++
	s.cached = nil
	s.mu.Unlock()
}
