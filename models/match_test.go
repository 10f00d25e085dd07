package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchWinnerLoser(t *testing.T) {
	team1 := Team{Members: []Player{{ID: 1}}}
	team2 := Team{Members: []Player{{ID: 2}}}

	match := Match{Team1: team1, Team2: team2}
	assert.False(t, match.Decided())
	assert.Equal(t, Team{}, match.WinnerTeam())
	assert.Equal(t, Team{}, match.LoserTeam())

	winner := SideTeam2
	match.Winner = &winner
	assert.True(t, match.Decided())
	assert.Equal(t, team2, match.WinnerTeam())
	assert.Equal(t, team1, match.LoserTeam())
}

func TestRoundAllDecided(t *testing.T) {
	w := SideTeam1
	testCases := []struct {
		name     string
		round    Round
		expected bool
	}{
		{"no matches", Round{}, false},
		{"pending match", Round{Matches: []Match{{ID: 0}}}, false},
		{
			"partially decided",
			Round{Matches: []Match{{ID: 0, Winner: &w}, {ID: 1}}},
			false,
		},
		{
			"all decided",
			Round{Matches: []Match{{ID: 0, Winner: &w}, {ID: 1, Winner: &w}}},
			true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.round.AllDecided())
		})
	}
}

func TestRoundWinners(t *testing.T) {
	w1 := SideTeam1
	w2 := SideTeam2
	round := Round{Matches: []Match{
		{ID: 0, Team1: Team{Members: []Player{{ID: 1}}}, Team2: Team{Members: []Player{{ID: 2}}}, Winner: &w1},
		{ID: 1, Team1: Team{Members: []Player{{ID: 3}}}, Team2: Team{Members: []Player{{ID: 4}}}},
		{ID: 2, Team1: Team{Members: []Player{{ID: 5}}}, Team2: Team{Members: []Player{{ID: 6}}}, Winner: &w2},
	}}

	winners := round.Winners()
	assert.Equal(t, []Team{
		{Members: []Player{{ID: 1}}},
		{Members: []Player{{ID: 6}}},
	}, winners)
}
