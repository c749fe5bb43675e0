package handlers

import (
	"context"
	"io"
	"time"

	"github.com/Dosada05/matchup-generator/models"
	"github.com/Dosada05/matchup-generator/services"
	"github.com/stretchr/testify/mock"
)

type mockMatchupService struct {
	mock.Mock
}

func (m *mockMatchupService) view(args mock.Arguments) (*services.MatchupView, error) {
	var v *services.MatchupView
	if args.Get(0) != nil {
		v = args.Get(0).(*services.MatchupView)
	}
	return v, args.Error(1)
}

func (m *mockMatchupService) Current(ctx context.Context, sessionID string) (*services.MatchupView, error) {
	return m.view(m.Called(ctx, sessionID))
}

func (m *mockMatchupService) Generate(ctx context.Context, sessionID string) (*services.MatchupView, error) {
	return m.view(m.Called(ctx, sessionID))
}

func (m *mockMatchupService) EditSide(ctx context.Context, sessionID string, side models.Side, teamID string) (*services.MatchupView, error) {
	return m.view(m.Called(ctx, sessionID, side, teamID))
}

func (m *mockMatchupService) RandomizeSide(ctx context.Context, sessionID string, side models.Side) (*services.MatchupView, error) {
	return m.view(m.Called(ctx, sessionID, side))
}

func (m *mockMatchupService) SideOptions(ctx context.Context, sessionID, league string) (*services.SideOptions, error) {
	args := m.Called(ctx, sessionID, league)
	var opts *services.SideOptions
	if args.Get(0) != nil {
		opts = args.Get(0).(*services.SideOptions)
	}
	return opts, args.Error(1)
}

func (m *mockMatchupService) Suggest(ctx context.Context, s models.Settings) (*models.Matchup, error) {
	args := m.Called(ctx, s)
	var mu *models.Matchup
	if args.Get(0) != nil {
		mu = args.Get(0).(*models.Matchup)
	}
	return mu, args.Error(1)
}

func (m *mockMatchupService) PruneIdle(maxIdle time.Duration) int {
	return m.Called(maxIdle).Int(0)
}

type mockMatchService struct {
	mock.Mock
}

func (m *mockMatchService) RecordMatch(ctx context.Context, input services.RecordMatchInput) (*models.Match, error) {
	args := m.Called(ctx, input)
	var match *models.Match
	if args.Get(0) != nil {
		match = args.Get(0).(*models.Match)
	}
	return match, args.Error(1)
}

func (m *mockMatchService) UpdateScore(ctx context.Context, matchID string, team1Score, team2Score int) (*models.Match, error) {
	args := m.Called(ctx, matchID, team1Score, team2Score)
	var match *models.Match
	if args.Get(0) != nil {
		match = args.Get(0).(*models.Match)
	}
	return match, args.Error(1)
}

func (m *mockMatchService) DeleteMatch(ctx context.Context, matchID string) error {
	return m.Called(ctx, matchID).Error(0)
}

func (m *mockMatchService) RefreshHistory(ctx context.Context) uint64 {
	return m.Called(ctx).Get(0).(uint64)
}

type mockPlayerService struct {
	mock.Mock
}

func (m *mockPlayerService) List(ctx context.Context) ([]models.Player, error) {
	args := m.Called(ctx)
	var players []models.Player
	if args.Get(0) != nil {
		players = args.Get(0).([]models.Player)
	}
	return players, args.Error(1)
}

func (m *mockPlayerService) Create(ctx context.Context, name string) (*models.Player, error) {
	args := m.Called(ctx, name)
	var p *models.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*models.Player)
	}
	return p, args.Error(1)
}

func (m *mockPlayerService) Rename(ctx context.Context, playerID, name string) (*models.Player, error) {
	args := m.Called(ctx, playerID, name)
	var p *models.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*models.Player)
	}
	return p, args.Error(1)
}

type mockSettingsService struct {
	mock.Mock
}

func (m *mockSettingsService) Load(ctx context.Context, sessionID string) (models.Settings, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(models.Settings), args.Error(1)
}

func (m *mockSettingsService) Save(ctx context.Context, sessionID string, s models.Settings) (models.Settings, error) {
	args := m.Called(ctx, sessionID, s)
	return args.Get(0).(models.Settings), args.Error(1)
}

type mockTeamService struct {
	mock.Mock
}

func (m *mockTeamService) List(ctx context.Context) ([]models.Team, error) {
	args := m.Called(ctx)
	var teams []models.Team
	if args.Get(0) != nil {
		teams = args.Get(0).([]models.Team)
	}
	return teams, args.Error(1)
}

func (m *mockTeamService) Search(ctx context.Context, query string, limit int) ([]models.Team, error) {
	args := m.Called(ctx, query, limit)
	var teams []models.Team
	if args.Get(0) != nil {
		teams = args.Get(0).([]models.Team)
	}
	return teams, args.Error(1)
}

func (m *mockTeamService) UploadLogo(ctx context.Context, teamID, contentType string, reader io.Reader) (*models.Team, error) {
	args := m.Called(ctx, teamID, contentType, reader)
	var t *models.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*models.Team)
	}
	return t, args.Error(1)
}

type mockBoard struct {
	mock.Mock
}

func (m *mockBoard) Snapshot(ctx context.Context) (*services.BoardSnapshot, error) {
	args := m.Called(ctx)
	var s *services.BoardSnapshot
	if args.Get(0) != nil {
		s = args.Get(0).(*services.BoardSnapshot)
	}
	return s, args.Error(1)
}

func (m *mockBoard) Invalidate(ctx context.Context, reason string) uint64 {
	return m.Called(ctx, reason).Get(0).(uint64)
}

func (m *mockBoard) Generation() uint64 {
	return m.Called().Get(0).(uint64)
}
