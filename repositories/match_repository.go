package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/matchup-generator/models"
)

var (
	ErrMatchNotFound     = errors.New("match not found")
	ErrMatchTeamInvalid  = errors.New("match references an unknown team")
	ErrRosterWriteFailed = errors.New("failed to write match roster")
)

type MatchRepository interface {
	ListPlayedBetween(ctx context.Context, start, end time.Time) ([]models.Match, error)
	Create(ctx context.Context, exec SQLExecutor, m *models.Match) error
	// CreateWithRoster inserts the match and its participants in a single
	// transaction. A roster failure rolls back the match row and returns an
	// error wrapping ErrRosterWriteFailed.
	CreateWithRoster(ctx context.Context, m *models.Match, roster []*models.MatchParticipant) error
	UpdateScore(ctx context.Context, id string, team1Score, team2Score int) (*models.Match, error)
	Delete(ctx context.Context, id string) error
}

type postgresMatchRepository struct {
	db           *sql.DB
	participants ParticipantRepository
}

func NewPostgresMatchRepository(db *sql.DB, participants ParticipantRepository) MatchRepository {
	return &postgresMatchRepository{db: db, participants: participants}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `id, team1_id, team2_id, team1_score, team2_score, played_at, created_at`

func scanMatch(row rowScanner, m *models.Match) error {
	var s1, s2 sql.NullInt64
	err := row.Scan(&m.ID, &m.Team1ID, &m.Team2ID, &s1, &s2, &m.PlayedAt, &m.CreatedAt)
	if err != nil {
		return err
	}
	m.Team1Score = nullIntPtr(s1)
	m.Team2Score = nullIntPtr(s2)
	return nil
}

func nullIntPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func (r *postgresMatchRepository) ListPlayedBetween(ctx context.Context, start, end time.Time) ([]models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE played_at >= $1 AND played_at < $2 ORDER BY played_at DESC`

	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches between %s and %s: %w", start.Format(time.RFC3339), end.Format(time.RFC3339), err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := scanMatch(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match rows: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches (team1_id, team2_id, team1_score, team2_score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, played_at, created_at`

	err := executor.QueryRowContext(ctx, query, m.Team1ID, m.Team2ID, m.Team1Score, m.Team2Score).
		Scan(&m.ID, &m.PlayedAt, &m.CreatedAt)
	if err != nil {
		if code, _, ok := pqErrorCode(err); ok && code == pqForeignKeyViolation {
			return ErrMatchTeamInvalid
		}
		if isInvalidUUID(err) {
			return ErrMatchTeamInvalid
		}
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) CreateWithRoster(ctx context.Context, m *models.Match, roster []*models.MatchParticipant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := r.Create(ctx, tx, m); err != nil {
		return rollback(tx, err)
	}

	for _, p := range roster {
		p.MatchID = m.ID
	}
	if err := r.participants.CreateBatch(ctx, tx, roster); err != nil {
		return rollback(tx, fmt.Errorf("%w: match %s: %w", ErrRosterWriteFailed, m.ID, err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match %s: %w", m.ID, err)
	}
	return nil
}

func (r *postgresMatchRepository) UpdateScore(ctx context.Context, id string, team1Score, team2Score int) (*models.Match, error) {
	query := `UPDATE matches SET team1_score = $1, team2_score = $2 WHERE id = $3 RETURNING ` + matchColumns

	var m models.Match
	err := scanMatch(r.db.QueryRowContext(ctx, query, team1Score, team2Score, id), &m)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update score for match %s: %w", id, err)
	}
	return &m, nil
}

// Delete removes the match; participants go with it via ON DELETE CASCADE.
func (r *postgresMatchRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
