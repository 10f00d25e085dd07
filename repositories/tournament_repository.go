package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
	"github.com/lib/pq"
)

var (
	ErrTournamentNotFound = errors.New("tournament record not found")
)

type TournamentRepository interface {
	Create(ctx context.Context, record *models.TournamentRecord) error
	UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error
	UpdateParticipants(ctx context.Context, id int, participantIDs []int64) error
	// UpdateBracket сохраняет JSON-снимок сетки целиком.
	UpdateBracket(ctx context.Context, id int, rounds []models.Round) error
	Finish(ctx context.Context, id int) error
	SaveMatchResult(ctx context.Context, result *models.MatchResult) error
	CountAll(ctx context.Context) (int, error)
	CountFinished(ctx context.Context) (int, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, record *models.TournamentRecord) error {
	query := `
		INSERT INTO tournaments (chat_id, format, wins_needed, status, modes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		record.ChatID,
		record.Format,
		record.WinsNeeded,
		record.Status,
		pq.Array(record.Modes),
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tournament record: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	return r.exec(ctx, `UPDATE tournaments SET status = $1 WHERE id = $2`, status, id)
}

func (r *postgresTournamentRepository) UpdateParticipants(ctx context.Context, id int, participantIDs []int64) error {
	return r.exec(ctx, `UPDATE tournaments SET participants = $1 WHERE id = $2`, pq.Array(participantIDs), id)
}

func (r *postgresTournamentRepository) UpdateBracket(ctx context.Context, id int, rounds []models.Round) error {
	raw, err := json.Marshal(rounds)
	if err != nil {
		return fmt.Errorf("failed to marshal bracket: %w", err)
	}
	return r.exec(ctx, `UPDATE tournaments SET bracket = $1 WHERE id = $2`, raw, id)
}

func (r *postgresTournamentRepository) Finish(ctx context.Context, id int) error {
	query := `UPDATE tournaments SET status = 'finished', finished_at = NOW() WHERE id = $1`
	return r.exec(ctx, query, id)
}

func (r *postgresTournamentRepository) SaveMatchResult(ctx context.Context, result *models.MatchResult) error {
	query := `
		INSERT INTO match_history (tournament_id, round, match_id, team1, team2, winner)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		result.TournamentID,
		result.Round,
		result.MatchID,
		result.Team1,
		result.Team2,
		result.Winner,
	).Scan(&result.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTournamentNotFound
		}
		return err
	}
	return nil
}

func (r *postgresTournamentRepository) CountAll(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tournaments`)
}

func (r *postgresTournamentRepository) CountFinished(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tournaments WHERE status = 'finished'`)
}

func (r *postgresTournamentRepository) count(ctx context.Context, query string) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresTournamentRepository) exec(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}
