package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ImVadimush/brawl-stars-tournament-bot/brackets"
	"github.com/ImVadimush/brawl-stars-tournament-bot/gamemodes"
	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
	"github.com/ImVadimush/brawl-stars-tournament-bot/repositories"
	"golang.org/x/sync/errgroup"
)

// EventPublisher рассылает события турнира подписчикам комнаты чата.
type EventPublisher interface {
	PublishToChat(chatID int64, eventType string, payload interface{})
}

// Archiver сохраняет снимок завершённого турнира во внешнее хранилище.
type Archiver interface {
	Archive(ctx context.Context, t *models.Tournament) (string, error)
}

type CreateTournamentInput struct {
	Format     models.Format `json:"format"`
	WinsNeeded int           `json:"wins_needed"`
	Modes      []string      `json:"modes"`
}

// TournamentView — снимок состояния турнира для чтения.
type TournamentView struct {
	Tournament     models.Tournament         `json:"tournament"`
	CanStart       bool                      `json:"can_start"`
	CanStartReason string                    `json:"can_start_reason"`
	Scores         map[int]models.MatchScore `json:"scores,omitempty"`
}

// WinResult описывает, что произошло после записи одной игровой победы.
type WinResult struct {
	Match              models.Match       `json:"match"`
	Score              models.MatchScore  `json:"score"`
	MatchDecided       bool               `json:"match_decided"`
	RoundFinished      bool               `json:"round_finished"`
	TournamentFinished bool               `json:"tournament_finished"`
	NextRound          *models.Round      `json:"next_round,omitempty"`
	Placements         *models.Placements `json:"placements,omitempty"`
}

type TournamentService interface {
	Create(ctx context.Context, chatID int64, creator models.Player, input CreateTournamentInput) (*TournamentView, error)
	Current(ctx context.Context, chatID int64) (*TournamentView, error)
	Join(ctx context.Context, chatID int64, player models.Player) (*TournamentView, error)
	Leave(ctx context.Context, chatID int64, playerID int64) (*TournamentView, error)
	Start(ctx context.Context, chatID int64, playerID int64) (*TournamentView, error)
	ActiveRound(ctx context.Context, chatID int64) (*models.Round, map[int]models.MatchScore, error)
	RecordWin(ctx context.Context, chatID int64, matchID int, side models.Side) (*WinResult, error)
	ActiveCount() int
}

// chatTournament — живое состояние одного чата: турнир, табло текущего
// раунда и id персистентной записи.
type chatTournament struct {
	tournament *models.Tournament
	scoreboard *brackets.Scoreboard
	recordID   int
}

type tournamentService struct {
	mu    sync.Mutex
	chats map[int64]*chatTournament

	playerRepo     repositories.PlayerRepository
	tournamentRepo repositories.TournamentRepository
	publisher      EventPublisher
	archiver       Archiver
	logger         *slog.Logger
}

func NewTournamentService(
	playerRepo repositories.PlayerRepository,
	tournamentRepo repositories.TournamentRepository,
	publisher EventPublisher,
	archiver Archiver,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		chats:          make(map[int64]*chatTournament),
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
		publisher:      publisher,
		archiver:       archiver,
		logger:         logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, chatID int64, creator models.Player, input CreateTournamentInput) (*TournamentView, error) {
	if !models.ValidFormat(input.Format) {
		return nil, ErrInvalidFormat
	}
	if input.WinsNeeded < 1 || input.WinsNeeded > 5 {
		return nil, ErrInvalidWinsNeeded
	}

	modes := input.Modes
	if len(modes) == 0 {
		modes = gamemodes.ModesForFormat(input.Format)
	}
	if len(modes) > gamemodes.MaxModesPerTournament {
		return nil, ErrInvalidModes
	}
	for _, mode := range modes {
		if !gamemodes.ModeAvailable(input.Format, mode) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidModes, mode)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.chats[chatID]; exists {
		return nil, ErrTournamentExists
	}

	t := &models.Tournament{
		ChatID:       chatID,
		Format:       input.Format,
		WinsNeeded:   input.WinsNeeded,
		Status:       models.StatusRegistration,
		CreatorID:    creator.ID,
		Modes:        modes,
		Maps:         gamemodes.RandomMapsForModes(modes),
		Participants: []models.Player{},
		CreatedAt:    time.Now().UTC(),
	}

	ct := &chatTournament{
		tournament: t,
		scoreboard: brackets.NewScoreboard(input.WinsNeeded),
	}
	s.chats[chatID] = ct

	record := &models.TournamentRecord{
		ChatID:     chatID,
		Format:     t.Format,
		WinsNeeded: t.WinsNeeded,
		Status:     t.Status,
		Modes:      t.Modes,
	}
	if err := s.tournamentRepo.Create(ctx, record); err != nil {
		s.logger.Error("create tournament record", slog.Int64("chat_id", chatID), slog.Any("error", err))
	} else {
		ct.recordID = record.ID
	}

	s.logger.Info("tournament created",
		slog.Int64("chat_id", chatID),
		slog.String("format", string(t.Format)),
		slog.Int("wins_needed", t.WinsNeeded))

	return s.viewLocked(ct), nil
}

func (s *tournamentService) Current(ctx context.Context, chatID int64) (*TournamentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ct, ok := s.chats[chatID]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	return s.viewLocked(ct), nil
}

func (s *tournamentService) Join(ctx context.Context, chatID int64, player models.Player) (*TournamentView, error) {
	// Профиль фиксируется в БД независимо от исхода, но его ошибка
	// не блокирует регистрацию в турнире.
	if err := s.playerRepo.Upsert(ctx, &player); err != nil {
		s.logger.Error("upsert player on join", slog.Int64("player_id", player.ID), slog.Any("error", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ct, ok := s.chats[chatID]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	t := ct.tournament
	if t.Status != models.StatusRegistration {
		return nil, ErrRegistrationClosed
	}
	for _, p := range t.Participants {
		if p.ID == player.ID {
			return nil, ErrAlreadyJoined
		}
	}

	t.Participants = append(t.Participants, player)
	s.persistParticipantsLocked(ctx, ct)
	s.publisher.PublishToChat(chatID, brackets.EventRosterUpdated, rosterPayload(t))

	return s.viewLocked(ct), nil
}

func (s *tournamentService) Leave(ctx context.Context, chatID int64, playerID int64) (*TournamentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ct, ok := s.chats[chatID]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	t := ct.tournament
	if t.Status != models.StatusRegistration {
		return nil, ErrRegistrationClosed
	}

	found := false
	roster := make([]models.Player, 0, len(t.Participants))
	for _, p := range t.Participants {
		if p.ID == playerID {
			found = true
			continue
		}
		roster = append(roster, p)
	}
	if !found {
		return nil, ErrNotJoined
	}
	t.Participants = roster

	s.persistParticipantsLocked(ctx, ct)
	s.publisher.PublishToChat(chatID, brackets.EventRosterUpdated, rosterPayload(t))

	return s.viewLocked(ct), nil
}

func (s *tournamentService) Start(ctx context.Context, chatID int64, playerID int64) (*TournamentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ct, ok := s.chats[chatID]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	t := ct.tournament
	if t.Status != models.StatusRegistration {
		return nil, ErrRegistrationClosed
	}
	if t.CreatorID != playerID {
		return nil, ErrForbiddenOperation
	}
	if ready, reason := brackets.CanStart(t.Format, len(t.Participants)); !ready {
		return nil, fmt.Errorf("%w: %s", ErrTournamentNotReady, reason)
	}

	first := brackets.BuildFirstRound(t.Participants, t.Format)
	t.Rounds = []models.Round{first}
	t.CurrentRound = 1
	t.Status = models.StatusActive
	ct.scoreboard.Reset(first)

	s.persistParticipantsLocked(ctx, ct)
	s.persistBracketLocked(ctx, ct)
	if ct.recordID != 0 {
		if err := s.tournamentRepo.UpdateStatus(ctx, ct.recordID, models.StatusActive); err != nil {
			s.logger.Error("update tournament status", slog.Int64("chat_id", chatID), slog.Any("error", err))
		}
	}
	for _, p := range t.Participants {
		if err := s.playerRepo.AddParticipation(ctx, p.ID); err != nil {
			s.logger.Error("add participation", slog.Int64("player_id", p.ID), slog.Any("error", err))
		}
	}

	s.logger.Info("tournament started",
		slog.Int64("chat_id", chatID),
		slog.Int("participants", len(t.Participants)),
		slog.Int("matches", len(first.Matches)))
	s.publisher.PublishToChat(chatID, brackets.EventRoundStarted, first)

	return s.viewLocked(ct), nil
}

func (s *tournamentService) ActiveRound(ctx context.Context, chatID int64) (*models.Round, map[int]models.MatchScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ct, ok := s.chats[chatID]
	if !ok {
		return nil, nil, ErrTournamentNotFound
	}
	if ct.tournament.Status != models.StatusActive {
		return nil, nil, ErrTournamentNotActive
	}
	round := ct.tournament.ActiveRound()
	if round == nil {
		return nil, nil, ErrTournamentNotActive
	}

	copied := *round
	copied.Matches = append([]models.Match(nil), round.Matches...)
	return &copied, s.scoresLocked(ct, *round), nil
}

func (s *tournamentService) RecordWin(ctx context.Context, chatID int64, matchID int, side models.Side) (*WinResult, error) {
	if !models.ValidSide(side) {
		return nil, ErrInvalidSide
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ct, ok := s.chats[chatID]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	t := ct.tournament
	if t.Status != models.StatusActive {
		return nil, ErrTournamentNotActive
	}
	round := t.ActiveRound()
	if round == nil {
		return nil, ErrTournamentNotActive
	}

	var match *models.Match
	for i := range round.Matches {
		if round.Matches[i].ID == matchID {
			match = &round.Matches[i]
			break
		}
	}
	if match == nil {
		return nil, ErrMatchNotFound
	}

	outcome, err := ct.scoreboard.RecordWin(match, side)
	if err != nil {
		switch {
		case errors.Is(err, brackets.ErrMatchAlreadyDecided):
			return nil, ErrMatchAlreadyDecided
		case errors.Is(err, brackets.ErrInvalidSide):
			return nil, ErrInvalidSide
		default:
			return nil, err
		}
	}

	result := &WinResult{
		Match: *match,
		Score: ct.scoreboard.Score(matchID),
	}

	if outcome == brackets.OutcomeGameWon {
		s.publisher.PublishToChat(chatID, brackets.EventMatchScore, result)
		return result, nil
	}

	result.MatchDecided = true
	s.saveMatchResultLocked(ctx, ct, *match)
	s.publisher.PublishToChat(chatID, brackets.EventMatchDecided, result)

	if !round.AllDecided() {
		return result, nil
	}
	result.RoundFinished = true

	winners := round.Winners()
	if len(winners) == 1 {
		result.TournamentFinished = true
		result.Placements = s.finishLocked(ctx, chatID, ct)
		return result, nil
	}

	next := brackets.NextRound(*round, t.Format)
	t.Rounds = append(t.Rounds, next)
	t.CurrentRound = next.Number
	ct.scoreboard.Reset(next)
	result.NextRound = &next

	s.persistBracketLocked(ctx, ct)
	s.logger.Info("round advanced",
		slog.Int64("chat_id", chatID),
		slog.Int("round", next.Number),
		slog.Int("matches", len(next.Matches)))
	s.publisher.PublishToChat(chatID, brackets.EventRoundStarted, next)

	return result, nil
}

func (s *tournamentService) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chats)
}

// finishLocked завершает турнир: призёры, награды, архив, очистка.
// Вызывается под mu.
func (s *tournamentService) finishLocked(ctx context.Context, chatID int64, ct *chatTournament) *models.Placements {
	t := ct.tournament
	now := time.Now().UTC()
	t.Status = models.StatusFinished
	t.FinishedAt = &now
	t.Placements = brackets.ResolvePlacements(t)

	delete(s.chats, chatID)

	s.persistFinish(ctx, ct)

	s.logger.Info("tournament finished", slog.Int64("chat_id", chatID))
	s.publisher.PublishToChat(chatID, brackets.EventTournamentFinished, t.Placements)
	return t.Placements
}

// persistFinish разносит награды и фиксирует завершение. Все ошибки
// логируются, итог турнира от них не зависит.
func (s *tournamentService) persistFinish(ctx context.Context, ct *chatTournament) {
	t := ct.tournament
	detached := context.WithoutCancel(ctx)

	var g errgroup.Group
	if t.Placements != nil {
		teams := map[int]models.Team{1: t.Placements.First, 2: t.Placements.Second}
		if t.Placements.Third != nil {
			teams[3] = *t.Placements.Third
		}
		for place, team := range teams {
			for _, member := range team.Members {
				place, id := place, member.ID
				g.Go(func() error {
					if err := s.playerRepo.AddPlacementReward(detached, id, place, brackets.XPRewards[place]); err != nil {
						s.logger.Error("add placement reward",
							slog.Int64("player_id", id),
							slog.Int("place", place),
							slog.Any("error", err))
					}
					return nil
				})
			}
		}
	}

	if ct.recordID != 0 {
		g.Go(func() error {
			if err := s.tournamentRepo.UpdateBracket(detached, ct.recordID, t.Rounds); err != nil {
				s.logger.Error("persist final bracket", slog.Int64("chat_id", t.ChatID), slog.Any("error", err))
			}
			if err := s.tournamentRepo.Finish(detached, ct.recordID); err != nil {
				s.logger.Error("finish tournament record", slog.Int64("chat_id", t.ChatID), slog.Any("error", err))
			}
			return nil
		})
	}

	if s.archiver != nil {
		g.Go(func() error {
			if url, err := s.archiver.Archive(detached, t); err != nil {
				s.logger.Error("archive bracket", slog.Int64("chat_id", t.ChatID), slog.Any("error", err))
			} else if url != "" {
				s.logger.Info("bracket archived", slog.Int64("chat_id", t.ChatID), slog.String("url", url))
			}
			return nil
		})
	}

	g.Wait()
}

func (s *tournamentService) persistParticipantsLocked(ctx context.Context, ct *chatTournament) {
	if ct.recordID == 0 {
		return
	}
	ids := make([]int64, len(ct.tournament.Participants))
	for i, p := range ct.tournament.Participants {
		ids[i] = p.ID
	}
	if err := s.tournamentRepo.UpdateParticipants(ctx, ct.recordID, ids); err != nil {
		s.logger.Error("persist participants", slog.Int64("chat_id", ct.tournament.ChatID), slog.Any("error", err))
	}
}

func (s *tournamentService) persistBracketLocked(ctx context.Context, ct *chatTournament) {
	if ct.recordID == 0 {
		return
	}
	if err := s.tournamentRepo.UpdateBracket(ctx, ct.recordID, ct.tournament.Rounds); err != nil {
		s.logger.Error("persist bracket", slog.Int64("chat_id", ct.tournament.ChatID), slog.Any("error", err))
	}
}

func (s *tournamentService) saveMatchResultLocked(ctx context.Context, ct *chatTournament, match models.Match) {
	if ct.recordID == 0 {
		return
	}
	result := &models.MatchResult{
		TournamentID: ct.recordID,
		Round:        match.Round,
		MatchID:      match.ID,
		Team1:        match.Team1.Label(),
		Team2:        match.Team2.Label(),
		Winner:       *match.Winner,
	}
	if err := s.tournamentRepo.SaveMatchResult(ctx, result); err != nil {
		s.logger.Error("save match result",
			slog.Int64("chat_id", ct.tournament.ChatID),
			slog.Int("match_id", match.ID),
			slog.Any("error", err))
	}
}

// viewLocked снимает копию состояния для отдачи наружу. Вызывается под mu.
func (s *tournamentService) viewLocked(ct *chatTournament) *TournamentView {
	t := *ct.tournament
	t.Participants = append([]models.Player(nil), ct.tournament.Participants...)
	t.Rounds = append([]models.Round(nil), ct.tournament.Rounds...)
	for i := range t.Rounds {
		t.Rounds[i].Matches = append([]models.Match(nil), ct.tournament.Rounds[i].Matches...)
	}

	view := &TournamentView{Tournament: t}
	if t.Status == models.StatusRegistration {
		view.CanStart, view.CanStartReason = brackets.CanStart(t.Format, len(t.Participants))
	}
	if active := ct.tournament.ActiveRound(); active != nil {
		view.Scores = s.scoresLocked(ct, *active)
	}
	return view
}

func (s *tournamentService) scoresLocked(ct *chatTournament, round models.Round) map[int]models.MatchScore {
	scores := make(map[int]models.MatchScore, len(round.Matches))
	for _, m := range round.Matches {
		scores[m.ID] = ct.scoreboard.Score(m.ID)
	}
	return scores
}

func rosterPayload(t *models.Tournament) map[string]interface{} {
	names := make([]string, len(t.Participants))
	for i, p := range t.Participants {
		names[i] = models.Team{Members: []models.Player{p}}.Label()
	}
	return map[string]interface{}{
		"format":       t.Format,
		"participants": names,
		"count":        len(t.Participants),
	}
}
