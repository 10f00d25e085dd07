package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
	"github.com/ImVadimush/brawl-stars-tournament-bot/repositories"
)

const maxClanNameLength = 50

// Категории лидербордов.
const (
	LeaderboardTrophies       = "trophies"
	LeaderboardXP             = "xp"
	LeaderboardWins           = "wins"
	LeaderboardParticipations = "participations"
)

// PlayerProfile — профиль с производными полями для отображения.
type PlayerProfile struct {
	models.Player
	Rank    string `json:"rank"`
	WinRate int    `json:"win_rate"`
}

// LeaderboardEntry — строка топа.
type LeaderboardEntry struct {
	Position int    `json:"position"`
	PlayerID int64  `json:"player_id"`
	Username string `json:"username"`
	Value    int    `json:"value"`
	Rank     string `json:"rank,omitempty"`
	WinRate  int    `json:"win_rate,omitempty"`
}

// BotTotals — сводная статистика сервиса.
type BotTotals struct {
	Players             int `json:"players"`
	Tournaments         int `json:"tournaments"`
	FinishedTournaments int `json:"finished_tournaments"`
	ActiveTournaments   int `json:"active_tournaments"`
	OpenPolls           int `json:"open_polls"`
}

type StatsService interface {
	Profile(ctx context.Context, playerID int64) (*PlayerProfile, error)
	Leaderboard(ctx context.Context, category string) ([]LeaderboardEntry, error)
	SetTrophies(ctx context.Context, actor *AuthenticatedPlayer, playerID int64, trophies int) error
	SetClan(ctx context.Context, actor *AuthenticatedPlayer, playerID int64, clan string) error
	GrantRole(ctx context.Context, actor *AuthenticatedPlayer, playerID int64, role models.PlayerRole) error
	Totals(ctx context.Context) (*BotTotals, error)
}

type statsService struct {
	playerRepo     repositories.PlayerRepository
	tournamentRepo repositories.TournamentRepository
	scheduleRepo   repositories.ScheduleRepository
	tournaments    TournamentService
	ownerID        int64
}

func NewStatsService(
	playerRepo repositories.PlayerRepository,
	tournamentRepo repositories.TournamentRepository,
	scheduleRepo repositories.ScheduleRepository,
	tournaments TournamentService,
	ownerID int64,
) StatsService {
	return &statsService{
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
		scheduleRepo:   scheduleRepo,
		tournaments:    tournaments,
		ownerID:        ownerID,
	}
}

func (s *statsService) Profile(ctx context.Context, playerID int64) (*PlayerProfile, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player: %w", err)
	}
	return &PlayerProfile{
		Player:  *player,
		Rank:    player.Rank(),
		WinRate: player.WinRate(),
	}, nil
}

// Leaderboard отдаёт топ-10 категории. В топе только игроки с
// положительным значением, по убыванию.
func (s *statsService) Leaderboard(ctx context.Context, category string) ([]LeaderboardEntry, error) {
	switch category {
	case LeaderboardTrophies, LeaderboardXP, LeaderboardWins, LeaderboardParticipations:
	default:
		return nil, ErrInvalidLeaderboard
	}

	players, err := s.playerRepo.TopBy(ctx, category, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(players))
	for i, p := range players {
		entry := LeaderboardEntry{
			Position: i + 1,
			PlayerID: p.ID,
			Username: p.Username,
		}
		if entry.Username == "" {
			entry.Username = p.FirstName
		}
		switch category {
		case LeaderboardTrophies:
			entry.Value = p.Trophies
		case LeaderboardXP:
			entry.Value = p.XP
			entry.Rank = p.Rank()
		case LeaderboardWins:
			entry.Value = p.Wins
			entry.WinRate = p.WinRate()
		case LeaderboardParticipations:
			entry.Value = p.Participations
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *statsService) SetTrophies(ctx context.Context, actor *AuthenticatedPlayer, playerID int64, trophies int) error {
	if !actor.CanEditPlayer(playerID) {
		return ErrForbiddenOperation
	}
	if trophies < 0 {
		return ErrNegativeTrophies
	}
	return s.mapPlayerErr(s.playerRepo.UpdateTrophies(ctx, playerID, trophies))
}

func (s *statsService) SetClan(ctx context.Context, actor *AuthenticatedPlayer, playerID int64, clan string) error {
	if !actor.CanEditPlayer(playerID) {
		return ErrForbiddenOperation
	}
	if len(clan) > maxClanNameLength {
		return ErrClanNameTooLong
	}
	return s.mapPlayerErr(s.playerRepo.UpdateClan(ctx, playerID, clan))
}

// GrantRole меняет роль игрока. Доступно только владельцу; роль самого
// владельца неизменяема.
func (s *statsService) GrantRole(ctx context.Context, actor *AuthenticatedPlayer, playerID int64, role models.PlayerRole) error {
	if actor.Role != models.RoleOwner {
		return ErrForbiddenOperation
	}
	if !models.ValidRole(role) {
		return ErrInvalidRole
	}
	if playerID == s.ownerID {
		return ErrOwnerRoleImmutable
	}
	return s.mapPlayerErr(s.playerRepo.UpdateRole(ctx, playerID, role))
}

func (s *statsService) Totals(ctx context.Context) (*BotTotals, error) {
	players, err := s.playerRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count players: %w", err)
	}
	tournaments, err := s.tournamentRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count tournaments: %w", err)
	}
	finished, err := s.tournamentRepo.CountFinished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count finished tournaments: %w", err)
	}
	polls, err := s.scheduleRepo.CountOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count open polls: %w", err)
	}

	return &BotTotals{
		Players:             players,
		Tournaments:         tournaments,
		FinishedTournaments: finished,
		ActiveTournaments:   s.tournaments.ActiveCount(),
		OpenPolls:           polls,
	}, nil
}

func (s *statsService) mapPlayerErr(err error) error {
	if errors.Is(err, repositories.ErrPlayerNotFound) {
		return ErrPlayerNotFound
	}
	return err
}
