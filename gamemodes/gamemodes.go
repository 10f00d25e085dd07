// Package gamemodes holds the game mode and map catalog used to flavor
// tournaments. The roster and bracket logic never depend on it.
package gamemodes

import (
	"math/rand/v2"

	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
)

const (
	ModeBrawlBall    = "Brawl Ball"
	ModeGemGrab      = "Gem Grab"
	ModeBounty       = "Bounty"
	ModeHotZone      = "Hot Zone"
	ModeSoloShowdown = "Solo Showdown"
	ModeDuoShowdown  = "Duo Showdown"
	ModeKnockout     = "Knockout"
)

// MaxModesPerTournament ограничивает выбор режимов для командных форматов.
const MaxModesPerTournament = 4

// ModesForFormat возвращает режимы, доступные для формата.
func ModesForFormat(f models.Format) []string {
	switch f {
	case models.Format1v1:
		return []string{ModeSoloShowdown}
	case models.Format2v2:
		return []string{ModeDuoShowdown, ModeGemGrab, ModeBrawlBall}
	case models.Format3v3:
		return []string{ModeBrawlBall, ModeGemGrab, ModeBounty, ModeHotZone, ModeKnockout}
	}
	return nil
}

// ModeAvailable reports whether the mode can be played in the format.
func ModeAvailable(f models.Format, mode string) bool {
	for _, m := range ModesForFormat(f) {
		if m == mode {
			return true
		}
	}
	return false
}

// RandomMap draws a random map for the mode, ok=false for unknown modes.
func RandomMap(mode string) (models.GameMap, bool) {
	maps, ok := catalog[mode]
	if !ok || len(maps) == 0 {
		return models.GameMap{}, false
	}
	return maps[rand.IntN(len(maps))], true
}

// RandomMapsForModes подбирает по одной случайной карте на каждый режим.
func RandomMapsForModes(modes []string) []models.GameMap {
	picked := make([]models.GameMap, 0, len(modes))
	for _, mode := range modes {
		if m, ok := RandomMap(mode); ok {
			picked = append(picked, m)
		}
	}
	return picked
}

// MapsForMode returns the full rotation of a mode.
func MapsForMode(mode string) []models.GameMap {
	return catalog[mode]
}

var catalog = map[string][]models.GameMap{
	ModeBrawlBall: {
		{Mode: ModeBrawlBall, Name: "Triple Dribble", ImageURL: "https://i.imgur.com/example1.jpg", Description: "Classic map with a central lane"},
		{Mode: ModeBrawlBall, Name: "Backyard Bowl", ImageURL: "https://i.imgur.com/example2.jpg", Description: "Narrow lanes along the edges"},
		{Mode: ModeBrawlBall, Name: "Sneaky Fields", ImageURL: "https://i.imgur.com/example3.jpg", Description: "Beach theme with water hazards"},
		{Mode: ModeBrawlBall, Name: "Pinball Dreams", ImageURL: "https://i.imgur.com/example4.jpg", Description: "Three lanes toward the goal"},
		{Mode: ModeBrawlBall, Name: "Penalty Kick", ImageURL: "https://i.imgur.com/example5.jpg", Description: "Lots of bouncing walls"},
	},
	ModeGemGrab: {
		{Mode: ModeGemGrab, Name: "Hard Rock Mine", ImageURL: "https://i.imgur.com/gem1.jpg", Description: "Classic symmetric map"},
		{Mode: ModeGemGrab, Name: "Undermine", ImageURL: "https://i.imgur.com/gem2.jpg", Description: "Narrow mine corridors"},
		{Mode: ModeGemGrab, Name: "Double Swoosh", ImageURL: "https://i.imgur.com/gem3.jpg", Description: "Crystal cave"},
		{Mode: ModeGemGrab, Name: "Open Space", ImageURL: "https://i.imgur.com/gem4.jpg", Description: "Mine carts for cover"},
		{Mode: ModeGemGrab, Name: "Deep Diner", ImageURL: "https://i.imgur.com/gem5.jpg", Description: "Underwater theme"},
	},
	ModeBounty: {
		{Mode: ModeBounty, Name: "No Excuses", ImageURL: "https://i.imgur.com/bounty1.jpg", Description: "Open map for snipers"},
		{Mode: ModeBounty, Name: "Shooting Star", ImageURL: "https://i.imgur.com/bounty2.jpg", Description: "Venetian canals"},
		{Mode: ModeBounty, Name: "Hideout", ImageURL: "https://i.imgur.com/bounty3.jpg", Description: "Desert terrain"},
		{Mode: ModeBounty, Name: "Dry Season", ImageURL: "https://i.imgur.com/bounty4.jpg", Description: "Multi-level map"},
		{Mode: ModeBounty, Name: "Layer Cake", ImageURL: "https://i.imgur.com/bounty5.jpg", Description: "Thick grass everywhere"},
	},
	ModeHotZone: {
		{Mode: ModeHotZone, Name: "Parallel Plays", ImageURL: "https://i.imgur.com/hotzone1.jpg", Description: "Two parallel zones"},
		{Mode: ModeHotZone, Name: "Dueling Beetles", ImageURL: "https://i.imgur.com/hotzone2.jpg", Description: "Ring zone in the center"},
		{Mode: ModeHotZone, Name: "Ring of Fire", ImageURL: "https://i.imgur.com/hotzone3.jpg", Description: "Two zones at the edges"},
		{Mode: ModeHotZone, Name: "On the Edge", ImageURL: "https://i.imgur.com/hotzone4.jpg", Description: "Split map"},
		{Mode: ModeHotZone, Name: "Open Zone", ImageURL: "https://i.imgur.com/hotzone5.jpg", Description: "Open ground"},
	},
	ModeSoloShowdown: {
		{Mode: ModeSoloShowdown, Name: "Skull Creek", ImageURL: "https://i.imgur.com/showdown1.jpg", Description: "Classic survival map"},
		{Mode: ModeSoloShowdown, Name: "Flaring Phoenix", ImageURL: "https://i.imgur.com/showdown2.jpg", Description: "Plenty of grass and cover"},
		{Mode: ModeSoloShowdown, Name: "Scenic Cliffs", ImageURL: "https://i.imgur.com/showdown3.jpg", Description: "Central area full of crates"},
		{Mode: ModeSoloShowdown, Name: "Feast or Famine", ImageURL: "https://i.imgur.com/showdown4.jpg", Description: "Lots of ponds"},
		{Mode: ModeSoloShowdown, Name: "Cavern Churn", ImageURL: "https://i.imgur.com/showdown5.jpg", Description: "Open plains"},
	},
	ModeDuoShowdown: {
		{Mode: ModeDuoShowdown, Name: "Double Trouble", ImageURL: "https://i.imgur.com/duoshowdown1.jpg", Description: "Built for pair play"},
		{Mode: ModeDuoShowdown, Name: "Dark Caverns", ImageURL: "https://i.imgur.com/duoshowdown2.jpg", Description: "Plenty of cover for duos"},
		{Mode: ModeDuoShowdown, Name: "Ghost Town", ImageURL: "https://i.imgur.com/duoshowdown3.jpg", Description: "Urban terrain"},
		{Mode: ModeDuoShowdown, Name: "Forest Clearing", ImageURL: "https://i.imgur.com/duoshowdown4.jpg", Description: "Dense forest, good for ambushes"},
		{Mode: ModeDuoShowdown, Name: "Champions Arena", ImageURL: "https://i.imgur.com/duoshowdown5.jpg", Description: "Central fighting pit"},
	},
	ModeKnockout: {
		{Mode: ModeKnockout, Name: "Goldarm Gulch", ImageURL: "https://i.imgur.com/knockout1.jpg", Description: "Symmetric map for tactical fights"},
		{Mode: ModeKnockout, Name: "Spike Maze", ImageURL: "https://i.imgur.com/knockout2.jpg", Description: "Maze with lots of corners"},
		{Mode: ModeKnockout, Name: "Out in the Open", ImageURL: "https://i.imgur.com/knockout3.jpg", Description: "Open map with central cover"},
		{Mode: ModeKnockout, Name: "The Crypt", ImageURL: "https://i.imgur.com/knockout4.jpg", Description: "Dark map with tight corridors"},
		{Mode: ModeKnockout, Name: "Emerald Plains", ImageURL: "https://i.imgur.com/knockout5.jpg", Description: "Green fields with tactical spots"},
	},
}
