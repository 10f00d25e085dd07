package brackets

import (
	"errors"

	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
)

var (
	ErrMatchAlreadyDecided = errors.New("match already has a winner")
	ErrUnknownMatch        = errors.New("match not found on the scoreboard")
	ErrInvalidSide         = errors.New("invalid match side")
)

// Outcome — результат записи одной игровой победы.
type Outcome int

const (
	// OutcomeGameWon — серия продолжается, нужная планка ещё не взята.
	OutcomeGameWon Outcome = iota
	// OutcomeMatchDecided — сторона добрала до WinsNeeded, матч решён.
	OutcomeMatchDecided
)

// Scoreboard tracks best-of-N series scores for the active round.
// Match ids are round-local, so the board must be reset whenever a new
// round starts; stale entries from a previous round would collide.
type Scoreboard struct {
	winsNeeded int
	scores     map[int]*models.MatchScore
}

func NewScoreboard(winsNeeded int) *Scoreboard {
	if winsNeeded < 1 {
		winsNeeded = 1
	}
	return &Scoreboard{
		winsNeeded: winsNeeded,
		scores:     make(map[int]*models.MatchScore),
	}
}

func (s *Scoreboard) WinsNeeded() int { return s.winsNeeded }

// Reset выбрасывает все счётчики и заводит нулевые для матчей раунда.
func (s *Scoreboard) Reset(round models.Round) {
	s.scores = make(map[int]*models.MatchScore, len(round.Matches))
	for _, m := range round.Matches {
		s.scores[m.ID] = &models.MatchScore{}
	}
}

// Score returns a copy of the current series score of a match.
func (s *Scoreboard) Score(matchID int) models.MatchScore {
	if sc, ok := s.scores[matchID]; ok {
		return *sc
	}
	return models.MatchScore{}
}

// RecordWin записывает одну игровую победу стороне матча. Когда сторона
// набирает WinsNeeded, матч помечается решённым; дальнейшие попытки
// записать победу в решённый матч отклоняются.
func (s *Scoreboard) RecordWin(match *models.Match, side models.Side) (Outcome, error) {
	if !models.ValidSide(side) {
		return 0, ErrInvalidSide
	}
	if match.Decided() {
		return 0, ErrMatchAlreadyDecided
	}
	score, ok := s.scores[match.ID]
	if !ok {
		return 0, ErrUnknownMatch
	}

	var wins int
	if side == models.SideTeam1 {
		score.Team1Wins++
		wins = score.Team1Wins
	} else {
		score.Team2Wins++
		wins = score.Team2Wins
	}

	if wins >= s.winsNeeded {
		w := side
		match.Winner = &w
		return OutcomeMatchDecided, nil
	}
	return OutcomeGameWon, nil
}
