package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/matchup-generator/models"
	"github.com/lib/pq"
)

var (
	ErrParticipantConflict      = errors.New("player is already in this match")
	ErrParticipantPlayerInvalid = errors.New("participant references an unknown player")
	ErrParticipantSideInvalid   = errors.New("participant side must be 1 or 2")
)

type ParticipantRepository interface {
	ListByMatchIDs(ctx context.Context, matchIDs []string) ([]models.MatchParticipant, error)
	CreateBatch(ctx context.Context, exec SQLExecutor, rows []*models.MatchParticipant) error
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

func (r *postgresParticipantRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresParticipantRepository) ListByMatchIDs(ctx context.Context, matchIDs []string) ([]models.MatchParticipant, error) {
	participants := make([]models.MatchParticipant, 0)
	if len(matchIDs) == 0 {
		return participants, nil
	}

	query := `
		SELECT id, match_id, player_id, team_number, created_at
		FROM match_players
		WHERE match_id = ANY($1::uuid[])
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(matchIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list match participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.MatchParticipant
		if err := rows.Scan(&p.ID, &p.MatchID, &p.PlayerID, &p.Side, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match participant row: %w", err)
		}
		participants = append(participants, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match participant rows: %w", err)
	}
	return participants, nil
}

func (r *postgresParticipantRepository) CreateBatch(ctx context.Context, exec SQLExecutor, rows []*models.MatchParticipant) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO match_players (match_id, player_id, team_number)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	for _, p := range rows {
		err := executor.QueryRowContext(ctx, query, p.MatchID, p.PlayerID, p.Side).Scan(&p.ID, &p.CreatedAt)
		if err != nil {
			if code, constraint, ok := pqErrorCode(err); ok {
				switch code {
				case pqUniqueViolation:
					if constraint == "match_players_match_id_player_id_key" {
						return ErrParticipantConflict
					}
				case pqForeignKeyViolation:
					if constraint == "match_players_player_id_fkey" {
						return ErrParticipantPlayerInvalid
					}
				case pqCheckViolation:
					return ErrParticipantSideInvalid
				}
			}
			if isInvalidUUID(err) {
				return ErrParticipantPlayerInvalid
			}
			return fmt.Errorf("failed to create match participant for player %s: %w", p.PlayerID, err)
		}
	}
	return nil
}
