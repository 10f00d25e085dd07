package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankByXP(t *testing.T) {
	testCases := []struct {
		xp       int
		expected string
	}{
		{0, RankRookie},
		{49, RankRookie},
		{50, RankAmateur},
		{199, RankAmateur},
		{200, RankExpert},
		{499, RankExpert},
		{500, RankMaster},
		{999, RankMaster},
		{1000, RankLegend},
		{5000, RankLegend},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, RankByXP(tc.xp), "xp=%d", tc.xp)
	}
}

func TestWinRate(t *testing.T) {
	testCases := []struct {
		name     string
		player   Player
		expected int
	}{
		{"never played", Player{Wins: 0, Participations: 0}, 0},
		{"all wins", Player{Wins: 4, Participations: 4}, 100},
		{"half", Player{Wins: 1, Participations: 2}, 50},
		{"rounds up", Player{Wins: 1, Participations: 3}, 33},
		{"two thirds", Player{Wins: 2, Participations: 3}, 67},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.player.WinRate())
		})
	}
}

func TestRoleAtLeast(t *testing.T) {
	assert.True(t, RoleOwner.AtLeast(RoleAdmin))
	assert.True(t, RoleAdmin.AtLeast(RoleModerator))
	assert.True(t, RoleModerator.AtLeast(RoleModerator))
	assert.False(t, RoleUser.AtLeast(RoleModerator))
	assert.False(t, RoleModerator.AtLeast(RoleAdmin))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleOwner))
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
}
