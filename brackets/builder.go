// Package brackets implements the single elimination bracket engine:
// building rounds, tracking best-of-N match scores and resolving final
// placements. All state lives in the caller, the engine itself holds none.
package brackets

import (
	"fmt"
	"math/rand/v2"

	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
)

// CanStart проверяет, можно ли стартовать турнир с таким составом.
// Возвращает человекочитаемое объяснение, пригодное для ответа в чат.
func CanStart(format models.Format, participants int) (bool, string) {
	min := format.MinParticipants()
	if participants < min {
		return false, fmt.Sprintf("Need at least %d participants! (have %d)", min, participants)
	}

	switch format {
	case models.Format2v2:
		if participants/2 < 2 {
			return false, fmt.Sprintf("2v2 needs at least 4 players (2 teams). Missing: %d", 4-participants)
		}
		if participants > 12 {
			return false, "At most 12 players for a 2v2 tournament (6 teams)"
		}
		if participants%2 != 0 {
			return false, "2v2 needs an even number of players. Extra players: 1"
		}
	case models.Format3v3:
		if participants/3 < 2 {
			return false, fmt.Sprintf("3v3 needs at least 6 players (2 teams). Missing: %d", 6-participants)
		}
		if participants > 18 {
			return false, "At most 18 players for a 3v3 tournament (6 teams)"
		}
		if rem := participants % 3; rem != 0 {
			return false, fmt.Sprintf("3v3 needs a player count divisible by 3. Missing for a full team: %d", 3-rem)
		}
	}

	return true, "Ready to start!"
}

// BuildFirstRound перемешивает участников и строит первый раунд сетки.
// Каждый вызов перемешивает заново.
func BuildFirstRound(participants []models.Player, format models.Format) models.Round {
	shuffled := make([]models.Player, len(participants))
	copy(shuffled, participants)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return buildRound(shuffled, format, 1)
}

// NextRound строит следующий раунд из победителей предыдущего.
// Победители не перемешиваются: порядок матчей сохраняется, поэтому
// составы команд переживают переход между раундами.
func NextRound(prev models.Round, format models.Format) models.Round {
	var players []models.Player
	for _, team := range prev.Winners() {
		players = append(players, team.Members...)
	}
	return buildRound(players, format, prev.Number+1)
}

// buildRound partitions players into consecutive teams of the format's
// size, dropping a trailing incomplete team, then pairs consecutive teams
// into matches, dropping an unpaired trailing team. Match ids are
// zero-based and local to the round.
func buildRound(players []models.Player, format models.Format, number int) models.Round {
	size := format.TeamSize()

	var teams []models.Team
	for i := 0; i+size <= len(players); i += size {
		members := make([]models.Player, size)
		copy(members, players[i:i+size])
		teams = append(teams, models.Team{Members: members})
	}

	round := models.Round{
		Number: number,
		Name:   models.RoundName(number),
	}
	for i := 0; i+1 < len(teams); i += 2 {
		round.Matches = append(round.Matches, models.Match{
			ID:    len(round.Matches),
			Round: number,
			Team1: teams[i],
			Team2: teams[i+1],
		})
	}
	return round
}
