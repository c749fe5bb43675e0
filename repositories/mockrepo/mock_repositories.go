package mockrepo

import (
	"context"
	"time"

	"github.com/Dosada05/matchup-generator/models"
	"github.com/Dosada05/matchup-generator/repositories"
	"github.com/stretchr/testify/mock"
)

type TeamRepository struct {
	mock.Mock
}

func (r *TeamRepository) List(ctx context.Context) ([]models.Team, error) {
	args := r.Called(ctx)

	var teams []models.Team
	if args.Get(0) != nil {
		teams = args.Get(0).([]models.Team)
	}
	return teams, args.Error(1)
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	args := r.Called(ctx, id)

	var t *models.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*models.Team)
	}
	return t, args.Error(1)
}

func (r *TeamRepository) UpdateLogoKey(ctx context.Context, id string, logoKey *string) error {
	args := r.Called(ctx, id, logoKey)
	return args.Error(0)
}

type PlayerRepository struct {
	mock.Mock
}

func (r *PlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	args := r.Called(ctx)

	var players []models.Player
	if args.Get(0) != nil {
		players = args.Get(0).([]models.Player)
	}
	return players, args.Error(1)
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	args := r.Called(ctx, id)

	var p *models.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*models.Player)
	}
	return p, args.Error(1)
}

func (r *PlayerRepository) Create(ctx context.Context, p *models.Player) error {
	args := r.Called(ctx, p)
	return args.Error(0)
}

func (r *PlayerRepository) UpdateName(ctx context.Context, id, name string) (*models.Player, error) {
	args := r.Called(ctx, id, name)

	var p *models.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*models.Player)
	}
	return p, args.Error(1)
}

type MatchRepository struct {
	mock.Mock
}

func (r *MatchRepository) ListPlayedBetween(ctx context.Context, start, end time.Time) ([]models.Match, error) {
	args := r.Called(ctx, start, end)

	var matches []models.Match
	if args.Get(0) != nil {
		matches = args.Get(0).([]models.Match)
	}
	return matches, args.Error(1)
}

func (r *MatchRepository) Create(ctx context.Context, exec repositories.SQLExecutor, m *models.Match) error {
	args := r.Called(ctx, exec, m)
	return args.Error(0)
}

func (r *MatchRepository) CreateWithRoster(ctx context.Context, m *models.Match, roster []*models.MatchParticipant) error {
	args := r.Called(ctx, m, roster)
	return args.Error(0)
}

func (r *MatchRepository) UpdateScore(ctx context.Context, id string, team1Score, team2Score int) (*models.Match, error) {
	args := r.Called(ctx, id, team1Score, team2Score)

	var m *models.Match
	if args.Get(0) != nil {
		m = args.Get(0).(*models.Match)
	}
	return m, args.Error(1)
}

func (r *MatchRepository) Delete(ctx context.Context, id string) error {
	args := r.Called(ctx, id)
	return args.Error(0)
}

type ParticipantRepository struct {
	mock.Mock
}

func (r *ParticipantRepository) ListByMatchIDs(ctx context.Context, matchIDs []string) ([]models.MatchParticipant, error) {
	args := r.Called(ctx, matchIDs)

	var rows []models.MatchParticipant
	if args.Get(0) != nil {
		rows = args.Get(0).([]models.MatchParticipant)
	}
	return rows, args.Error(1)
}

func (r *ParticipantRepository) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, rows []*models.MatchParticipant) error {
	args := r.Called(ctx, exec, rows)
	return args.Error(0)
}
