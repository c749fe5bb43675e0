package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/matchup-generator/matchup"
	"github.com/Dosada05/matchup-generator/metrics"
	"github.com/Dosada05/matchup-generator/models"
	"github.com/Dosada05/matchup-generator/settings"
	"github.com/jonboulle/clockwork"
)

const msgNoTeams = "No teams found. Please ensure the 'teams' table exists and contains data."

// MatchupView is what a session sees: the matchup plus enough availability
// info to render the empty and warning states.
type MatchupView struct {
	Matchup       *models.Matchup           `json:"matchup"`
	State         matchup.State             `json:"state"`
	Differences   *models.RatingDifferences `json:"differences,omitempty"`
	Settings      models.Settings           `json:"settings"`
	TotalTeams    int                       `json:"total_teams"`
	EligibleCount int                       `json:"eligible_count"`
	UnplayedCount int                       `json:"unplayed_count"`
	CanGenerate   bool                      `json:"can_generate"`
	Message       string                    `json:"message,omitempty"`
	Generation    uint64                    `json:"generation"`
}

// SideOptions lists what the side editor may choose from: eligible teams
// that have not played today.
type SideOptions struct {
	Leagues []string      `json:"leagues"`
	Teams   []models.Team `json:"teams"`
}

type MatchupService interface {
	Current(ctx context.Context, sessionID string) (*MatchupView, error)
	Generate(ctx context.Context, sessionID string) (*MatchupView, error)
	EditSide(ctx context.Context, sessionID string, side models.Side, teamID string) (*MatchupView, error)
	RandomizeSide(ctx context.Context, sessionID string, side models.Side) (*MatchupView, error)
	SideOptions(ctx context.Context, sessionID, league string) (*SideOptions, error)
	// Suggest draws a pair for the given filters without touching any session.
	Suggest(ctx context.Context, s models.Settings) (*models.Matchup, error)
	// PruneIdle drops sessions not seen for longer than maxIdle.
	PruneIdle(maxIdle time.Duration) int
}

type session struct {
	mu       sync.Mutex
	ctrl     *matchup.Controller
	lastSeen time.Time
}

type matchupService struct {
	catalog  CatalogService
	board    TodayBoard
	settings SettingsService
	picker   *matchup.Picker
	clock    clockwork.Clock
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

func NewMatchupService(
	catalog CatalogService,
	board TodayBoard,
	settingsService SettingsService,
	picker *matchup.Picker,
	clock clockwork.Clock,
	logger *slog.Logger,
) MatchupService {
	return &matchupService{
		catalog:  catalog,
		board:    board,
		settings: settingsService,
		picker:   picker,
		clock:    clock,
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

func (s *matchupService) sessionFor(sessionID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{ctrl: matchup.NewController(s.picker, s.logger.With(slog.String("session_id", sessionID)))}
		s.sessions[sessionID] = sess
		metrics.ActiveSessions.Set(float64(len(s.sessions)))
	}
	sess.lastSeen = s.clock.Now()
	return sess
}

type matchupInputs struct {
	matchup.Inputs
	catalog  *Catalog
	board    *BoardSnapshot
	unplayed []models.Team
}

// inputs rebuilds everything the controller depends on. A failed fetch
// aborts the operation; the controller is never run on partial data.
func (s *matchupService) inputs(ctx context.Context, sessionID string) (*matchupInputs, error) {
	filters, err := s.settings.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}
	board, err := s.board.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	eligible := matchup.FilterBySettings(catalog.Teams, filters)
	played := board.Played()
	return &matchupInputs{
		Inputs: matchup.Inputs{
			Loaded:   true,
			Settings: filters,
			Eligible: eligible,
			Played:   played,
		},
		catalog:  catalog,
		board:    board,
		unplayed: matchup.Unplayed(eligible, played),
	}, nil
}

func (s *matchupService) view(in *matchupInputs, ctrl *matchup.Controller) *MatchupView {
	v := &MatchupView{
		State:         ctrl.State(),
		Settings:      in.Settings,
		TotalTeams:    len(in.catalog.Teams),
		EligibleCount: len(in.Eligible),
		UnplayedCount: len(in.unplayed),
		CanGenerate:   len(in.unplayed) >= 2,
		Generation:    in.board.Generation,
	}
	if m, ok := ctrl.Current(); ok {
		diff := m.Differences()
		v.Matchup = &m
		v.Differences = &diff
	}
	v.Message = availabilityMessage(v)
	return v
}

func availabilityMessage(v *MatchupView) string {
	switch {
	case v.TotalTeams == 0:
		return msgNoTeams
	case v.EligibleCount < 2:
		nations := ""
		if v.Settings.ExcludeNations {
			nations = ", excluding nations"
		}
		return fmt.Sprintf(
			"Only %d team(s) match the current rating filter (%.1f - %.1f stars%s). Need at least 2 to generate a match. Adjust settings.",
			v.EligibleCount, v.Settings.MinRating, v.Settings.MaxRating, nations,
		)
	case !v.CanGenerate:
		nations := ""
		if v.Settings.ExcludeNations {
			nations = " (excluding nations)"
		}
		return fmt.Sprintf(
			"All %d team(s) matching the filter%s have already played today. Cannot generate a new matchup.",
			v.EligibleCount, nations,
		)
	}
	return ""
}

func (s *matchupService) Current(ctx context.Context, sessionID string) (*MatchupView, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	in, err := s.inputs(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess := s.sessionFor(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.ctrl.Sync(in.Inputs)
	return s.view(in, sess.ctrl), nil
}

func (s *matchupService) Generate(ctx context.Context, sessionID string) (*MatchupView, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	in, err := s.inputs(ctx, sessionID)
	if err != nil {
		metrics.MatchupsGenerated.WithLabelValues("fetch_error").Inc()
		return nil, err
	}

	sess := s.sessionFor(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if _, err := sess.ctrl.Generate(in.Inputs); err != nil {
		var notEnough *NotEnoughCandidatesError
		if errors.As(err, &notEnough) {
			metrics.MatchupsGenerated.WithLabelValues("not_enough").Inc()
			s.logger.InfoContext(ctx, "not enough teams for a new matchup",
				slog.String("session_id", sessionID), slog.Int("available", notEnough.Available))
		}
		return nil, err
	}
	metrics.MatchupsGenerated.WithLabelValues("ok").Inc()
	return s.view(in, sess.ctrl), nil
}

func (s *matchupService) EditSide(ctx context.Context, sessionID string, side models.Side, teamID string) (*MatchupView, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	if !side.Valid() {
		return nil, ErrInvalidSide
	}
	in, err := s.inputs(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	team, ok := findTeam(in.catalog.Teams, teamID)
	if !ok {
		return nil, ErrTeamNotFound
	}
	return s.edit(ctx, sessionID, in, side, team)
}

func (s *matchupService) RandomizeSide(ctx context.Context, sessionID string, side models.Side) (*MatchupView, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	if !side.Valid() {
		return nil, ErrInvalidSide
	}
	in, err := s.inputs(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	team, ok := s.picker.PickOne(in.unplayed, "")
	if !ok {
		return nil, &NotEnoughCandidatesError{Available: 0, Settings: in.Settings}
	}
	return s.edit(ctx, sessionID, in, side, team)
}

func (s *matchupService) edit(ctx context.Context, sessionID string, in *matchupInputs, side models.Side, team models.Team) (*MatchupView, error) {
	sess := s.sessionFor(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	// контроллер мог ещё не загрузиться в этой сессии
	sess.ctrl.Sync(in.Inputs)

	before, _ := sess.ctrl.Current()
	after, err := sess.ctrl.EditSide(in.Inputs, side, team)
	if err != nil {
		return nil, err
	}

	opponent := "kept"
	if before.Team(side.Other()).ID != after.Team(side.Other()).ID {
		opponent = "redrawn"
	}
	metrics.MatchupEdits.WithLabelValues(opponent).Inc()
	s.logger.DebugContext(ctx, "matchup side edited",
		slog.String("session_id", sessionID),
		slog.Int("side", int(side)),
		slog.String("team_id", team.ID),
		slog.String("opponent", opponent),
	)
	return s.view(in, sess.ctrl), nil
}

func (s *matchupService) SideOptions(ctx context.Context, sessionID, league string) (*SideOptions, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	in, err := s.inputs(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	opts := &SideOptions{Leagues: []string{}, Teams: []models.Team{}}
	for _, t := range in.unplayed {
		if _, ok := seen[t.League]; !ok {
			seen[t.League] = struct{}{}
			opts.Leagues = append(opts.Leagues, t.League)
		}
		if league == "" || t.League == league {
			opts.Teams = append(opts.Teams, t)
		}
	}
	sort.Strings(opts.Leagues)
	return opts, nil
}

func (s *matchupService) Suggest(ctx context.Context, filters models.Settings) (*models.Matchup, error) {
	if fields := settings.Validate(filters); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}
	catalog, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}
	board, err := s.board.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	candidates := matchup.Unplayed(matchup.FilterBySettings(catalog.Teams, filters), board.Played())
	home, away, ok := s.picker.PickPair(candidates)
	if !ok {
		return nil, &NotEnoughCandidatesError{Available: len(candidates), Settings: filters}
	}
	return &models.Matchup{Home: home, Away: away}, nil
}

func (s *matchupService) PruneIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	pruned := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > maxIdle {
			delete(s.sessions, id)
			pruned++
		}
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return pruned
}
