package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
	"github.com/ImVadimush/brawl-stars-tournament-bot/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakePlayerRepository struct {
	mu sync.Mutex

	players        map[int64]*models.Player
	participations map[int64]int
	rewards        map[int64][]int

	upsertErr error
	getErr    error
	top       []models.Player
}

func newFakePlayerRepository() *fakePlayerRepository {
	return &fakePlayerRepository{
		players:        make(map[int64]*models.Player),
		participations: make(map[int64]int),
		rewards:        make(map[int64][]int),
	}
}

func (f *fakePlayerRepository) Upsert(ctx context.Context, player *models.Player) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if existing, ok := f.players[player.ID]; ok {
		existing.Username = player.Username
		existing.FirstName = player.FirstName
		*player = *existing
		return nil
	}
	stored := *player
	if stored.Role == "" {
		stored.Role = models.RoleUser
	}
	stored.CreatedAt = time.Now()
	f.players[player.ID] = &stored
	*player = stored
	return nil
}

func (f *fakePlayerRepository) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	player, ok := f.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (f *fakePlayerRepository) UpdateTrophies(ctx context.Context, id int64, trophies int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if player, ok := f.players[id]; ok {
		player.Trophies = trophies
	}
	return nil
}

func (f *fakePlayerRepository) UpdateClan(ctx context.Context, id int64, clan string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if player, ok := f.players[id]; ok {
		player.Clan = clan
	}
	return nil
}

func (f *fakePlayerRepository) UpdateRole(ctx context.Context, id int64, role models.PlayerRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if player, ok := f.players[id]; ok {
		player.Role = role
	}
	return nil
}

func (f *fakePlayerRepository) AddParticipation(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.participations[id]++
	return nil
}

func (f *fakePlayerRepository) AddPlacementReward(ctx context.Context, id int64, place, xp int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rewards[id] = append(f.rewards[id], place)
	if player, ok := f.players[id]; ok {
		player.XP += xp
		if place == 1 {
			player.Wins++
		}
	}
	return nil
}

func (f *fakePlayerRepository) TopBy(ctx context.Context, column string, limit int) ([]models.Player, error) {
	if limit < len(f.top) {
		return f.top[:limit], nil
	}
	return f.top, nil
}

func (f *fakePlayerRepository) CountAll(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.players), nil
}

type fakeTournamentRepository struct {
	mu sync.Mutex

	nextID       int
	records      map[int]*models.TournamentRecord
	participants map[int][]int64
	brackets     map[int][]models.Round
	finished     map[int]bool
	matchResults []models.MatchResult

	createErr error
}

func newFakeTournamentRepository() *fakeTournamentRepository {
	return &fakeTournamentRepository{
		records:      make(map[int]*models.TournamentRecord),
		participants: make(map[int][]int64),
		brackets:     make(map[int][]models.Round),
		finished:     make(map[int]bool),
	}
}

func (f *fakeTournamentRepository) Create(ctx context.Context, record *models.TournamentRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	record.ID = f.nextID
	record.CreatedAt = time.Now()
	stored := *record
	f.records[record.ID] = &stored
	return nil
}

func (f *fakeTournamentRepository) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if record, ok := f.records[id]; ok {
		record.Status = status
	}
	return nil
}

func (f *fakeTournamentRepository) UpdateParticipants(ctx context.Context, id int, participantIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.participants[id] = append([]int64(nil), participantIDs...)
	return nil
}

func (f *fakeTournamentRepository) UpdateBracket(ctx context.Context, id int, rounds []models.Round) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.brackets[id] = append([]models.Round(nil), rounds...)
	return nil
}

func (f *fakeTournamentRepository) Finish(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finished[id] = true
	return nil
}

func (f *fakeTournamentRepository) SaveMatchResult(ctx context.Context, result *models.MatchResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	result.ID = len(f.matchResults) + 1
	f.matchResults = append(f.matchResults, *result)
	return nil
}

func (f *fakeTournamentRepository) CountAll(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records), nil
}

func (f *fakeTournamentRepository) CountFinished(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.finished), nil
}

type fakeScheduleRepository struct {
	mu sync.Mutex

	nextID    int
	schedules map[int]*models.ScheduledTournament

	createErr error
}

func newFakeScheduleRepository() *fakeScheduleRepository {
	return &fakeScheduleRepository{schedules: make(map[int]*models.ScheduledTournament)}
}

func (f *fakeScheduleRepository) Create(ctx context.Context, schedule *models.ScheduledTournament) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	schedule.ID = f.nextID
	schedule.CreatedAt = time.Now()
	stored := *schedule
	f.schedules[schedule.ID] = &stored
	return nil
}

func (f *fakeScheduleRepository) GetByID(ctx context.Context, id int) (*models.ScheduledTournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	schedule, ok := f.schedules[id]
	if !ok {
		return nil, repositories.ErrScheduleNotFound
	}
	copied := *schedule
	copied.Participants = append([]int64(nil), schedule.Participants...)
	return &copied, nil
}

func (f *fakeScheduleRepository) UpdateParticipants(ctx context.Context, id int, participantIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if schedule, ok := f.schedules[id]; ok {
		schedule.Participants = append([]int64(nil), participantIDs...)
	}
	return nil
}

func (f *fakeScheduleRepository) ListDue(ctx context.Context, now time.Time) ([]models.ScheduledTournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	due := make([]models.ScheduledTournament, 0)
	for _, schedule := range f.schedules {
		if !schedule.Notified && !schedule.ScheduledTime.After(now) {
			due = append(due, *schedule)
		}
	}
	return due, nil
}

func (f *fakeScheduleRepository) MarkNotified(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if schedule, ok := f.schedules[id]; ok {
		schedule.Notified = true
	}
	return nil
}

func (f *fakeScheduleRepository) CountOpen(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	open := 0
	for _, schedule := range f.schedules {
		if !schedule.Notified {
			open++
		}
	}
	return open, nil
}

type publishedEvent struct {
	ChatID  int64
	Type    string
	Payload interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (f *fakePublisher) PublishToChat(chatID int64, eventType string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{ChatID: chatID, Type: eventType, Payload: payload})
}

func (f *fakePublisher) eventTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]string, len(f.events))
	for i, e := range f.events {
		types[i] = e.Type
	}
	return types
}

type fakeArchiver struct {
	mu       sync.Mutex
	archived []int64
	url      string
	err      error
}

func (f *fakeArchiver) Archive(ctx context.Context, t *models.Tournament) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.archived = append(f.archived, t.ChatID)
	return f.url, f.err
}
