package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Dosada05/matchup-generator/metrics"
	"github.com/Dosada05/matchup-generator/models"
	"github.com/Dosada05/matchup-generator/realtime"
	"github.com/Dosada05/matchup-generator/repositories"
	"github.com/Dosada05/matchup-generator/standings"
	"github.com/jonboulle/clockwork"
)

const unknownTeamName = "Unknown Team"

// Notifier delivers board events to connected clients. *realtime.Hub
// satisfies it.
type Notifier interface {
	BroadcastToRoom(roomID string, message interface{})
}

// BoardSnapshot is today's history with highlights and the leaderboard
// computed from it. Generation is the refresh generation observed when the
// fetch started.
type BoardSnapshot struct {
	Generation uint64                    `json:"generation"`
	Day        time.Time                 `json:"day"`
	Matches    []models.MatchHistoryItem `json:"matches"`
	Standings  []models.PlayerStanding   `json:"standings"`
	FetchedAt  time.Time                 `json:"fetched_at"`
}

// Played returns the ids of teams that appear in today's matches.
func (b *BoardSnapshot) Played() map[string]struct{} {
	return models.PlayedTeamIDs(b.Matches)
}

type TodayBoard interface {
	Snapshot(ctx context.Context) (*BoardSnapshot, error)
	// Invalidate bumps the refresh generation and tells clients to reload.
	Invalidate(ctx context.Context, reason string) uint64
	Generation() uint64
}

type todayBoard struct {
	catalog          CatalogService
	matchRepo        repositories.MatchRepository
	participantsRepo repositories.ParticipantRepository
	notifier         Notifier
	clock            clockwork.Clock
	logger           *slog.Logger

	generation atomic.Uint64

	mu     sync.Mutex
	cached *BoardSnapshot
}

func NewTodayBoard(
	catalog CatalogService,
	matchRepo repositories.MatchRepository,
	participantsRepo repositories.ParticipantRepository,
	notifier Notifier,
	clock clockwork.Clock,
	logger *slog.Logger,
) TodayBoard {
	return &todayBoard{
		catalog:          catalog,
		matchRepo:        matchRepo,
		participantsRepo: participantsRepo,
		notifier:         notifier,
		clock:            clock,
		logger:           logger,
	}
}

func (b *todayBoard) Generation() uint64 {
	return b.generation.Load()
}

func (b *todayBoard) Invalidate(ctx context.Context, reason string) uint64 {
	gen := b.generation.Add(1)
	metrics.BoardGeneration.Set(float64(gen))

	b.mu.Lock()
	b.cached = nil
	b.mu.Unlock()

	b.logger.InfoContext(ctx, "board invalidated", slog.Uint64("generation", gen), slog.String("reason", reason))

	if b.notifier != nil {
		b.notifier.BroadcastToRoom(realtime.BoardRoom, realtime.WebSocketMessage{
			Type: realtime.EventHistoryInvalidated,
			Payload: map[string]interface{}{
				"generation": gen,
				"reason":     reason,
			},
			RoomID: realtime.BoardRoom,
		})
	}
	return gen
}

// Snapshot returns the cached board while it belongs to the current
// generation and day. Otherwise it fetches a new one. A fetch that finishes
// after a newer Invalidate is returned to the caller but never cached.
func (b *todayBoard) Snapshot(ctx context.Context) (*BoardSnapshot, error) {
	gen := b.generation.Load()
	day, end := DayWindow(b.clock.Now())

	b.mu.Lock()
	cached := b.cached
	b.mu.Unlock()
	if cached != nil && cached.Generation == gen && cached.Day.Equal(day) {
		return cached, nil
	}

	snap, err := b.fetch(ctx, gen, day, end)
	if err != nil {
		return nil, err
	}

	if b.generation.Load() != gen {
		metrics.StaleRefreshDiscarded.Inc()
		b.logger.DebugContext(ctx, "discarding stale board fetch",
			slog.Uint64("fetched_generation", gen),
			slog.Uint64("current_generation", b.generation.Load()),
		)
		return snap, nil
	}

	b.mu.Lock()
	b.cached = snap
	b.mu.Unlock()
	return snap, nil
}

func (b *todayBoard) fetch(ctx context.Context, gen uint64, day, end time.Time) (*BoardSnapshot, error) {
	started := time.Now()
	defer func() { metrics.HistoryFetchDuration.Observe(time.Since(started).Seconds()) }()

	catalog, err := b.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}

	matches, err := b.matchRepo.ListPlayedBetween(ctx, day, end)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to list today's matches", slog.Any("error", err))
		return nil, fmt.Errorf("%w: matches: %w", ErrFetch, err)
	}

	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}
	participants, err := b.participantsRepo.ListByMatchIDs(ctx, ids)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to list match participants", slog.Any("error", err))
		return nil, fmt.Errorf("%w: participants: %w", ErrFetch, err)
	}

	items := buildHistory(matches, participants, catalog.Teams, catalog.Players)
	items = standings.Highlight(items)

	return &BoardSnapshot{
		Generation: gen,
		Day:        day,
		Matches:    items,
		Standings:  standings.Compute(items, catalog.Players, catalog.Teams),
		FetchedAt:  b.clock.Now(),
	}, nil
}

// buildHistory resolves team names and rosters. Unknown teams are shown as
// "Unknown Team"; unknown players are skipped.
func buildHistory(matches []models.Match, participants []models.MatchParticipant, teams []models.Team, players []models.Player) []models.MatchHistoryItem {
	teamsByID := models.IndexTeams(teams)
	playersByID := make(map[string]models.Player, len(players))
	for _, p := range players {
		playersByID[p.ID] = p
	}

	byMatch := make(map[string][]models.MatchParticipant, len(matches))
	for _, p := range participants {
		byMatch[p.MatchID] = append(byMatch[p.MatchID], p)
	}

	items := make([]models.MatchHistoryItem, 0, len(matches))
	for _, m := range matches {
		item := models.MatchHistoryItem{
			Match:        m,
			Team1Name:    unknownTeamName,
			Team2Name:    unknownTeamName,
			Team1Players: []models.Player{},
			Team2Players: []models.Player{},
		}
		if t, ok := teamsByID[m.Team1ID]; ok {
			item.Team1Name = t.Name
			item.Team1LogoURL = t.LogoURL
		}
		if t, ok := teamsByID[m.Team2ID]; ok {
			item.Team2Name = t.Name
			item.Team2LogoURL = t.LogoURL
		}
		for _, p := range byMatch[m.ID] {
			player, ok := playersByID[p.PlayerID]
			if !ok {
				continue
			}
			switch p.Side {
			case models.SideHome:
				item.Team1Players = append(item.Team1Players, player)
			case models.SideAway:
				item.Team2Players = append(item.Team2Players, player)
			}
		}
		items = append(items, item)
	}
	return items
}
