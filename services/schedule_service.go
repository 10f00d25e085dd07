package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ImVadimush/brawl-stars-tournament-bot/brackets"
	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
	"github.com/ImVadimush/brawl-stars-tournament-bot/repositories"
)

type ScheduleInput struct {
	Format        models.Format `json:"format"`
	PollMessageID int64         `json:"poll_message_id"`
	ScheduledTime time.Time     `json:"scheduled_time"`
}

type ScheduleService interface {
	Create(ctx context.Context, chatID int64, input ScheduleInput) (*models.ScheduledTournament, error)
	// Vote отмечает участие, повторный голос "за" ничего не меняет,
	// голос "против" убирает игрока из списка.
	Vote(ctx context.Context, scheduleID int, player models.Player, attend bool) (*models.ScheduledTournament, error)
	// NotifyDue рассылает напоминания по подошедшим опросам; возвращает
	// число отправленных напоминаний.
	NotifyDue(ctx context.Context) int
}

type scheduleService struct {
	mu sync.Mutex

	scheduleRepo repositories.ScheduleRepository
	playerRepo   repositories.PlayerRepository
	publisher    EventPublisher
	logger       *slog.Logger
}

func NewScheduleService(
	scheduleRepo repositories.ScheduleRepository,
	playerRepo repositories.PlayerRepository,
	publisher EventPublisher,
	logger *slog.Logger,
) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		playerRepo:   playerRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

func (s *scheduleService) Create(ctx context.Context, chatID int64, input ScheduleInput) (*models.ScheduledTournament, error) {
	if !models.ValidFormat(input.Format) {
		return nil, ErrInvalidFormat
	}
	if !input.ScheduledTime.After(time.Now()) {
		return nil, ErrScheduleTimeInPast
	}

	schedule := &models.ScheduledTournament{
		ChatID:        chatID,
		Format:        input.Format,
		PollMessageID: input.PollMessageID,
		Participants:  []int64{},
		ScheduledTime: input.ScheduledTime.UTC(),
	}
	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	s.logger.Info("tournament scheduled",
		slog.Int64("chat_id", chatID),
		slog.String("format", string(input.Format)),
		slog.Time("at", schedule.ScheduledTime))
	return schedule, nil
}

func (s *scheduleService) Vote(ctx context.Context, scheduleID int, player models.Player, attend bool) (*models.ScheduledTournament, error) {
	if err := s.playerRepo.Upsert(ctx, &player); err != nil {
		s.logger.Error("upsert player on vote", slog.Int64("player_id", player.ID), slog.Any("error", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, repositories.ErrScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	participants := make([]int64, 0, len(schedule.Participants)+1)
	voted := false
	for _, id := range schedule.Participants {
		if id == player.ID {
			voted = true
			if !attend {
				continue
			}
		}
		participants = append(participants, id)
	}
	if attend && !voted {
		participants = append(participants, player.ID)
	}
	schedule.Participants = participants

	if err := s.scheduleRepo.UpdateParticipants(ctx, scheduleID, participants); err != nil {
		s.logger.Error("persist poll votes", slog.Int("schedule_id", scheduleID), slog.Any("error", err))
	}
	return schedule, nil
}

func (s *scheduleService) NotifyDue(ctx context.Context) int {
	due, err := s.scheduleRepo.ListDue(ctx, time.Now())
	if err != nil {
		s.logger.Error("list due schedules", slog.Any("error", err))
		return 0
	}

	notified := 0
	for _, schedule := range due {
		s.publisher.PublishToChat(schedule.ChatID, brackets.EventScheduleReminder, schedule)
		if err := s.scheduleRepo.MarkNotified(ctx, schedule.ID); err != nil {
			s.logger.Error("mark schedule notified", slog.Int("schedule_id", schedule.ID), slog.Any("error", err))
			continue
		}
		notified++
	}
	return notified
}
