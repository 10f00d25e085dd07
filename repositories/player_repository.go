package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
)

type PlayerRepository interface {
	// Upsert создаёт игрока при первом контакте и обновляет имя при повторном.
	Upsert(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int64) (*models.Player, error)
	UpdateTrophies(ctx context.Context, id int64, trophies int) error
	UpdateClan(ctx context.Context, id int64, clan string) error
	UpdateRole(ctx context.Context, id int64, role models.PlayerRole) error
	AddParticipation(ctx context.Context, id int64) error
	// AddPlacementReward начисляет XP за место; счётчик побед растёт только за первое.
	AddPlacementReward(ctx context.Context, id int64, place, xp int) error
	TopBy(ctx context.Context, column string, limit int) ([]models.Player, error)
	CountAll(ctx context.Context) (int, error)
}

// Колонки, по которым разрешено строить топы.
var topColumns = map[string]bool{
	"trophies":       true,
	"xp":             true,
	"wins":           true,
	"participations": true,
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Upsert(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (id, username, first_name, role)
		VALUES ($1, $2, $3, 'user')
		ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username, first_name = EXCLUDED.first_name
		RETURNING role, wins, participations, xp, trophies, clan, created_at`

	err := r.db.QueryRowContext(ctx, query,
		player.ID,
		player.Username,
		player.FirstName,
	).Scan(
		&player.Role,
		&player.Wins,
		&player.Participations,
		&player.XP,
		&player.Trophies,
		&player.Clan,
		&player.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert player: %w", err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	query := `
		SELECT id, username, first_name, role, wins, participations, xp, trophies, clan, created_at
		FROM players
		WHERE id = $1`
	return r.scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) UpdateTrophies(ctx context.Context, id int64, trophies int) error {
	return r.exec(ctx, `UPDATE players SET trophies = $1 WHERE id = $2`, trophies, id)
}

func (r *postgresPlayerRepository) UpdateClan(ctx context.Context, id int64, clan string) error {
	return r.exec(ctx, `UPDATE players SET clan = $1 WHERE id = $2`, clan, id)
}

func (r *postgresPlayerRepository) UpdateRole(ctx context.Context, id int64, role models.PlayerRole) error {
	return r.exec(ctx, `UPDATE players SET role = $1 WHERE id = $2`, role, id)
}

func (r *postgresPlayerRepository) AddParticipation(ctx context.Context, id int64) error {
	return r.exec(ctx, `UPDATE players SET participations = participations + 1 WHERE id = $1`, id)
}

func (r *postgresPlayerRepository) AddPlacementReward(ctx context.Context, id int64, place, xp int) error {
	query := `
		UPDATE players
		SET xp = xp + $1,
		    wins = wins + CASE WHEN $2 = 1 THEN 1 ELSE 0 END
		WHERE id = $3`
	return r.exec(ctx, query, xp, place, id)
}

// TopBy возвращает игроков с положительным значением колонки, по убыванию.
func (r *postgresPlayerRepository) TopBy(ctx context.Context, column string, limit int) ([]models.Player, error) {
	if !topColumns[column] {
		return nil, fmt.Errorf("unsupported leaderboard column: %s", column)
	}

	query := fmt.Sprintf(`
		SELECT id, username, first_name, role, wins, participations, xp, trophies, clan, created_at
		FROM players
		WHERE %s > 0
		ORDER BY %s DESC
		LIMIT $1`, column, column)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if scanErr := rows.Scan(
			&p.ID, &p.Username, &p.FirstName, &p.Role,
			&p.Wins, &p.Participations, &p.XP, &p.Trophies, &p.Clan, &p.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresPlayerRepository) exec(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) scanPlayer(row *sql.Row) (*models.Player, error) {
	player := &models.Player{}
	err := row.Scan(
		&player.ID,
		&player.Username,
		&player.FirstName,
		&player.Role,
		&player.Wins,
		&player.Participations,
		&player.XP,
		&player.Trophies,
		&player.Clan,
		&player.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}
