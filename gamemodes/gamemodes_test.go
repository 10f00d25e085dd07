package gamemodes

import (
	"testing"

	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModesForFormat(t *testing.T) {
	assert.Equal(t, []string{ModeSoloShowdown}, ModesForFormat(models.Format1v1))
	assert.Len(t, ModesForFormat(models.Format2v2), 3)
	assert.Len(t, ModesForFormat(models.Format3v3), 5)
	assert.Nil(t, ModesForFormat("4v4"))
}

func TestModeAvailable(t *testing.T) {
	assert.True(t, ModeAvailable(models.Format3v3, ModeHotZone))
	assert.True(t, ModeAvailable(models.Format1v1, ModeSoloShowdown))
	assert.False(t, ModeAvailable(models.Format1v1, ModeBrawlBall))
	assert.False(t, ModeAvailable(models.Format2v2, "Duel"))
}

func TestRandomMap(t *testing.T) {
	m, ok := RandomMap(ModeGemGrab)
	require.True(t, ok)
	assert.Equal(t, ModeGemGrab, m.Mode)
	assert.Contains(t, MapsForMode(ModeGemGrab), m)

	_, ok = RandomMap("Duel")
	assert.False(t, ok)
}

func TestRandomMapsForModes(t *testing.T) {
	modes := []string{ModeBrawlBall, ModeGemGrab, "Duel"}
	picked := RandomMapsForModes(modes)

	require.Len(t, picked, 2, "unknown modes are skipped")
	assert.Equal(t, ModeBrawlBall, picked[0].Mode)
	assert.Equal(t, ModeGemGrab, picked[1].Mode)
}

func TestCatalogComplete(t *testing.T) {
	for _, format := range []models.Format{models.Format1v1, models.Format2v2, models.Format3v3} {
		for _, mode := range ModesForFormat(format) {
			assert.NotEmpty(t, MapsForMode(mode), "mode %q has no maps", mode)
		}
	}
}
