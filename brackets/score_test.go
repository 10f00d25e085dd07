package brackets

import (
	"testing"

	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoMatchRound() models.Round {
	player := func(id int64) models.Team {
		return models.Team{Members: []models.Player{{ID: id}}}
	}
	return models.Round{
		Number: 1,
		Name:   "round_1",
		Matches: []models.Match{
			{ID: 0, Round: 1, Team1: player(1), Team2: player(2)},
			{ID: 1, Round: 1, Team1: player(3), Team2: player(4)},
		},
	}
}

func TestScoreboardBestOfThree(t *testing.T) {
	round := twoMatchRound()
	board := NewScoreboard(2)
	board.Reset(round)

	outcome, err := board.RecordWin(&round.Matches[0], models.SideTeam1)
	require.NoError(t, err)
	assert.Equal(t, OutcomeGameWon, outcome)
	assert.False(t, round.Matches[0].Decided())
	assert.Equal(t, models.MatchScore{Team1Wins: 1}, board.Score(0))

	outcome, err = board.RecordWin(&round.Matches[0], models.SideTeam2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeGameWon, outcome)
	assert.Equal(t, models.MatchScore{Team1Wins: 1, Team2Wins: 1}, board.Score(0))

	outcome, err = board.RecordWin(&round.Matches[0], models.SideTeam2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeMatchDecided, outcome)
	require.True(t, round.Matches[0].Decided())
	assert.Equal(t, models.SideTeam2, *round.Matches[0].Winner)
}

func TestScoreboardRejectsDecidedMatch(t *testing.T) {
	round := twoMatchRound()
	board := NewScoreboard(1)
	board.Reset(round)

	outcome, err := board.RecordWin(&round.Matches[0], models.SideTeam1)
	require.NoError(t, err)
	require.Equal(t, OutcomeMatchDecided, outcome)

	_, err = board.RecordWin(&round.Matches[0], models.SideTeam2)
	assert.ErrorIs(t, err, ErrMatchAlreadyDecided)
	assert.Equal(t, models.MatchScore{Team1Wins: 1}, board.Score(0), "rejected win must not change the score")
	assert.Equal(t, models.SideTeam1, *round.Matches[0].Winner)
}

func TestScoreboardTracksMatchesIndependently(t *testing.T) {
	round := twoMatchRound()
	board := NewScoreboard(2)
	board.Reset(round)

	_, err := board.RecordWin(&round.Matches[0], models.SideTeam1)
	require.NoError(t, err)

	assert.Equal(t, models.MatchScore{}, board.Score(1))
}

func TestScoreboardErrors(t *testing.T) {
	round := twoMatchRound()
	board := NewScoreboard(2)
	board.Reset(round)

	t.Run("invalid side", func(t *testing.T) {
		_, err := board.RecordWin(&round.Matches[0], models.Side("team3"))
		assert.ErrorIs(t, err, ErrInvalidSide)
	})

	t.Run("unknown match", func(t *testing.T) {
		stray := models.Match{ID: 42, Round: 1}
		_, err := board.RecordWin(&stray, models.SideTeam1)
		assert.ErrorIs(t, err, ErrUnknownMatch)
	})
}

func TestScoreboardResetDropsOldScores(t *testing.T) {
	round := twoMatchRound()
	board := NewScoreboard(3)
	board.Reset(round)

	_, err := board.RecordWin(&round.Matches[0], models.SideTeam1)
	require.NoError(t, err)

	next := models.Round{
		Number: 2,
		Name:   "round_2",
		Matches: []models.Match{
			{ID: 0, Round: 2, Team1: round.Matches[0].Team1, Team2: round.Matches[1].Team1},
		},
	}
	board.Reset(next)

	assert.Equal(t, models.MatchScore{}, board.Score(0))
}

func TestNewScoreboardClampsWinsNeeded(t *testing.T) {
	assert.Equal(t, 1, NewScoreboard(0).WinsNeeded())
	assert.Equal(t, 1, NewScoreboard(-3).WinsNeeded())
	assert.Equal(t, 4, NewScoreboard(4).WinsNeeded())
}
