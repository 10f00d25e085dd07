package brackets

import (
	"testing"

	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func soloTeam(id int64) models.Team {
	return models.Team{Members: []models.Player{{ID: id}}}
}

func decidedMatch(id int, round int, team1, team2 models.Team, winner models.Side) models.Match {
	w := winner
	return models.Match{ID: id, Round: round, Team1: team1, Team2: team2, Winner: &w}
}

func TestResolvePlacementsTwoRounds(t *testing.T) {
	// Четыре игрока 1v1: полуфинал с двумя матчами, затем финал.
	// Третье место получает проигравший первого полуфинального матча.
	tournament := &models.Tournament{
		Format: models.Format1v1,
		Rounds: []models.Round{
			{
				Number: 1,
				Matches: []models.Match{
					decidedMatch(0, 1, soloTeam(1), soloTeam(2), models.SideTeam1),
					decidedMatch(1, 1, soloTeam(3), soloTeam(4), models.SideTeam2),
				},
			},
			{
				Number: 2,
				Matches: []models.Match{
					decidedMatch(0, 2, soloTeam(1), soloTeam(4), models.SideTeam2),
				},
			},
		},
	}

	placements := ResolvePlacements(tournament)

	require.NotNil(t, placements)
	assert.Equal(t, soloTeam(4), placements.First)
	assert.Equal(t, soloTeam(1), placements.Second)
	require.NotNil(t, placements.Third)
	assert.Equal(t, soloTeam(2), *placements.Third)
}

func TestResolvePlacementsSingleRoundFallback(t *testing.T) {
	// Три игрока 1v1: один матч, третий участник не играл.
	// Третьим становится первый зарегистрированный вне финала.
	tournament := &models.Tournament{
		Format: models.Format1v1,
		Participants: []models.Player{
			{ID: 5}, {ID: 1}, {ID: 2},
		},
		Rounds: []models.Round{
			{
				Number: 1,
				Matches: []models.Match{
					decidedMatch(0, 1, soloTeam(1), soloTeam(2), models.SideTeam1),
				},
			},
		},
	}

	placements := ResolvePlacements(tournament)

	require.NotNil(t, placements)
	assert.Equal(t, soloTeam(1), placements.First)
	assert.Equal(t, soloTeam(2), placements.Second)
	require.NotNil(t, placements.Third)
	assert.Equal(t, soloTeam(5), *placements.Third)
}

func TestResolvePlacementsNoFallbackForTeams(t *testing.T) {
	team := func(ids ...int64) models.Team {
		members := make([]models.Player, len(ids))
		for i, id := range ids {
			members[i] = models.Player{ID: id}
		}
		return models.Team{Members: members}
	}
	tournament := &models.Tournament{
		Format: models.Format2v2,
		Participants: []models.Player{
			{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5},
		},
		Rounds: []models.Round{
			{
				Number: 1,
				Matches: []models.Match{
					decidedMatch(0, 1, team(1, 2), team(3, 4), models.SideTeam2),
				},
			},
		},
	}

	placements := ResolvePlacements(tournament)

	require.NotNil(t, placements)
	assert.Equal(t, team(3, 4), placements.First)
	assert.Equal(t, team(1, 2), placements.Second)
	assert.Nil(t, placements.Third, "team formats have no third place without a semifinal")
}

func TestResolvePlacementsUndecidedFinal(t *testing.T) {
	tournament := &models.Tournament{
		Format: models.Format1v1,
		Rounds: []models.Round{
			{
				Number: 1,
				Matches: []models.Match{
					{ID: 0, Round: 1, Team1: soloTeam(1), Team2: soloTeam(2)},
				},
			},
		},
	}

	assert.Nil(t, ResolvePlacements(tournament))
}

func TestResolvePlacementsNoRounds(t *testing.T) {
	assert.Nil(t, ResolvePlacements(&models.Tournament{Format: models.Format1v1}))
}
