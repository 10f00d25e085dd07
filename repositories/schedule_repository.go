package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
	"github.com/lib/pq"
)

var (
	ErrScheduleNotFound = errors.New("scheduled tournament not found")
	ErrScheduleConflict = errors.New("chat already has an open poll")
)

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *models.ScheduledTournament) error
	GetByID(ctx context.Context, id int) (*models.ScheduledTournament, error)
	UpdateParticipants(ctx context.Context, id int, participantIDs []int64) error
	// ListDue возвращает запланированные турниры, время которых наступило.
	ListDue(ctx context.Context, now time.Time) ([]models.ScheduledTournament, error)
	MarkNotified(ctx context.Context, id int) error
	CountOpen(ctx context.Context) (int, error)
}

type postgresScheduleRepository struct {
	db *sql.DB
}

func NewPostgresScheduleRepository(db *sql.DB) ScheduleRepository {
	return &postgresScheduleRepository{db: db}
}

func (r *postgresScheduleRepository) Create(ctx context.Context, schedule *models.ScheduledTournament) error {
	query := `
		INSERT INTO scheduled_tournaments (chat_id, format, poll_message_id, participants, scheduled_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		schedule.ChatID,
		schedule.Format,
		schedule.PollMessageID,
		pq.Array(schedule.Participants),
		schedule.ScheduledTime,
	).Scan(&schedule.ID, &schedule.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrScheduleConflict
		}
		return err
	}
	return nil
}

func (r *postgresScheduleRepository) GetByID(ctx context.Context, id int) (*models.ScheduledTournament, error) {
	query := `
		SELECT id, chat_id, format, poll_message_id, participants, scheduled_time, notified, created_at
		FROM scheduled_tournaments
		WHERE id = $1`

	schedule := &models.ScheduledTournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&schedule.ID,
		&schedule.ChatID,
		&schedule.Format,
		&schedule.PollMessageID,
		pq.Array(&schedule.Participants),
		&schedule.ScheduledTime,
		&schedule.Notified,
		&schedule.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return schedule, nil
}

func (r *postgresScheduleRepository) UpdateParticipants(ctx context.Context, id int, participantIDs []int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE scheduled_tournaments SET participants = $1 WHERE id = $2`,
		pq.Array(participantIDs), id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrScheduleNotFound)
}

func (r *postgresScheduleRepository) ListDue(ctx context.Context, now time.Time) ([]models.ScheduledTournament, error) {
	query := `
		SELECT id, chat_id, format, poll_message_id, participants, scheduled_time, notified, created_at
		FROM scheduled_tournaments
		WHERE notified = FALSE AND scheduled_time <= $1
		ORDER BY scheduled_time ASC`

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]models.ScheduledTournament, 0)
	for rows.Next() {
		var s models.ScheduledTournament
		if scanErr := rows.Scan(
			&s.ID, &s.ChatID, &s.Format, &s.PollMessageID,
			pq.Array(&s.Participants), &s.ScheduledTime, &s.Notified, &s.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		schedules = append(schedules, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *postgresScheduleRepository) MarkNotified(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE scheduled_tournaments SET notified = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrScheduleNotFound)
}

func (r *postgresScheduleRepository) CountOpen(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM scheduled_tournaments WHERE notified = FALSE`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
