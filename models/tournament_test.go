package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatHelpers(t *testing.T) {
	testCases := []struct {
		format Format
		size   int
		min    int
		max    int
	}{
		{Format1v1, 1, 2, 0},
		{Format2v2, 2, 4, 12},
		{Format3v3, 3, 6, 18},
	}

	for _, tc := range testCases {
		t.Run(string(tc.format), func(t *testing.T) {
			assert.Equal(t, tc.size, tc.format.TeamSize())
			assert.Equal(t, tc.min, tc.format.MinParticipants())
			assert.Equal(t, tc.max, tc.format.MaxParticipants())
		})
	}

	assert.False(t, ValidFormat("4v4"))
	assert.True(t, ValidFormat(Format2v2))
}

func TestTeamLabel(t *testing.T) {
	testCases := []struct {
		name     string
		team     Team
		expected string
	}{
		{
			name:     "username preferred",
			team:     Team{Members: []Player{{Username: "vadim", FirstName: "Vadim"}}},
			expected: "@vadim",
		},
		{
			name:     "first name fallback",
			team:     Team{Members: []Player{{FirstName: "Вадим"}}},
			expected: "Вадим",
		},
		{
			name: "pair joined",
			team: Team{Members: []Player{
				{Username: "one"},
				{FirstName: "Two"},
			}},
			expected: "@one & Two",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.team.Label())
		})
	}
}

func TestTeamContains(t *testing.T) {
	team := Team{Members: []Player{{ID: 1}, {ID: 2}}}
	assert.True(t, team.Contains(1))
	assert.False(t, team.Contains(3))
}

func TestActiveRound(t *testing.T) {
	tournament := &Tournament{
		Rounds: []Round{
			{Number: 1, Name: "round_1"},
			{Number: 2, Name: "round_2"},
		},
		CurrentRound: 2,
	}

	round := tournament.ActiveRound()
	require.NotNil(t, round)
	assert.Equal(t, 2, round.Number)

	tournament.CurrentRound = 0
	assert.Nil(t, tournament.ActiveRound())
}

func TestRoundName(t *testing.T) {
	assert.Equal(t, "round_1", RoundName(1))
	assert.Equal(t, "round_3", RoundName(3))
}
