package services

import (
	"context"
	"strings"
	"testing"

	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statsFixture struct {
	service     StatsService
	players     *fakePlayerRepository
	tournaments TournamentService
}

func newStatsFixture(ownerID int64) *statsFixture {
	players := newFakePlayerRepository()
	records := newFakeTournamentRepository()
	schedules := newFakeScheduleRepository()
	tournaments := NewTournamentService(players, records, &fakePublisher{}, nil, discardLogger())
	return &statsFixture{
		service:     NewStatsService(players, records, schedules, tournaments, ownerID),
		players:     players,
		tournaments: tournaments,
	}
}

func (f *statsFixture) seedPlayer(t *testing.T, player models.Player) {
	t.Helper()
	require.NoError(t, f.players.Upsert(context.Background(), &player))
	f.players.players[player.ID].XP = player.XP
	f.players.players[player.ID].Wins = player.Wins
	f.players.players[player.ID].Participations = player.Participations
}

func TestProfile(t *testing.T) {
	fixture := newStatsFixture(0)
	fixture.seedPlayer(t, models.Player{ID: 1, Username: "vadim", XP: 520, Wins: 3, Participations: 4})

	profile, err := fixture.service.Profile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.RankMaster, profile.Rank)
	assert.Equal(t, 75, profile.WinRate)

	_, err = fixture.service.Profile(context.Background(), 999)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestLeaderboard(t *testing.T) {
	fixture := newStatsFixture(0)
	fixture.players.top = []models.Player{
		{ID: 1, Username: "first", XP: 1200, Wins: 9, Participations: 10},
		{ID: 2, FirstName: "Безымянный", XP: 300, Wins: 2, Participations: 8},
	}

	t.Run("xp exposes rank", func(t *testing.T) {
		entries, err := fixture.service.Leaderboard(context.Background(), LeaderboardXP)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, 1, entries[0].Position)
		assert.Equal(t, 1200, entries[0].Value)
		assert.Equal(t, models.RankLegend, entries[0].Rank)
		assert.Equal(t, "Безымянный", entries[1].Username, "first name substitutes a missing username")
	})

	t.Run("wins exposes win rate", func(t *testing.T) {
		entries, err := fixture.service.Leaderboard(context.Background(), LeaderboardWins)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, 9, entries[0].Value)
		assert.Equal(t, 90, entries[0].WinRate)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := fixture.service.Leaderboard(context.Background(), "luck")
		assert.ErrorIs(t, err, ErrInvalidLeaderboard)
	})
}

func TestSetTrophies(t *testing.T) {
	fixture := newStatsFixture(0)
	fixture.seedPlayer(t, models.Player{ID: 1})
	ctx := context.Background()

	self := &AuthenticatedPlayer{ID: 1, Role: models.RoleUser}
	stranger := &AuthenticatedPlayer{ID: 2, Role: models.RoleUser}
	moderator := &AuthenticatedPlayer{ID: 3, Role: models.RoleModerator}

	assert.ErrorIs(t, fixture.service.SetTrophies(ctx, stranger, 1, 100), ErrForbiddenOperation)
	assert.ErrorIs(t, fixture.service.SetTrophies(ctx, self, 1, -5), ErrNegativeTrophies)

	require.NoError(t, fixture.service.SetTrophies(ctx, self, 1, 250))
	require.NoError(t, fixture.service.SetTrophies(ctx, moderator, 1, 300))
	assert.Equal(t, 300, fixture.players.players[1].Trophies)
}

func TestSetClan(t *testing.T) {
	fixture := newStatsFixture(0)
	fixture.seedPlayer(t, models.Player{ID: 1})
	ctx := context.Background()
	self := &AuthenticatedPlayer{ID: 1, Role: models.RoleUser}

	assert.ErrorIs(t, fixture.service.SetClan(ctx, self, 1, strings.Repeat("x", 51)), ErrClanNameTooLong)

	require.NoError(t, fixture.service.SetClan(ctx, self, 1, "Spike Squad"))
	assert.Equal(t, "Spike Squad", fixture.players.players[1].Clan)

	// Пустое имя выводит из клана.
	require.NoError(t, fixture.service.SetClan(ctx, self, 1, ""))
	assert.Equal(t, "", fixture.players.players[1].Clan)
}

func TestGrantRole(t *testing.T) {
	fixture := newStatsFixture(10)
	fixture.seedPlayer(t, models.Player{ID: 1})
	ctx := context.Background()

	admin := &AuthenticatedPlayer{ID: 5, Role: models.RoleAdmin}
	owner := &AuthenticatedPlayer{ID: 10, Role: models.RoleOwner}

	assert.ErrorIs(t, fixture.service.GrantRole(ctx, admin, 1, models.RoleModerator), ErrForbiddenOperation)
	assert.ErrorIs(t, fixture.service.GrantRole(ctx, owner, 1, "superuser"), ErrInvalidRole)
	assert.ErrorIs(t, fixture.service.GrantRole(ctx, owner, 10, models.RoleUser), ErrOwnerRoleImmutable)

	require.NoError(t, fixture.service.GrantRole(ctx, owner, 1, models.RoleModerator))
	assert.Equal(t, models.RoleModerator, fixture.players.players[1].Role)
}

func TestTotals(t *testing.T) {
	fixture := newStatsFixture(0)
	ctx := context.Background()
	fixture.seedPlayer(t, models.Player{ID: 1, Username: "a"})
	fixture.seedPlayer(t, models.Player{ID: 2, Username: "b"})

	_, err := fixture.tournaments.Create(ctx, 100, testPlayer(1), CreateTournamentInput{Format: models.Format1v1, WinsNeeded: 1})
	require.NoError(t, err)

	totals, err := fixture.service.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, totals.Players)
	assert.Equal(t, 1, totals.Tournaments)
	assert.Equal(t, 0, totals.FinishedTournaments)
	assert.Equal(t, 1, totals.ActiveTournaments)
	assert.Equal(t, 0, totals.OpenPolls)
}
