// Package assets holds the flavor text shown while climbing.
package assets

import "spire-run/internal/mapgen"

// LevelLore holds atmospheric snippets per level. One is shown when the
// player first steps onto that level.
var LevelLore = [mapgen.NumLevels][]string{
	mapgen.LevelStart: {
		"The Spire's lowest gate stands open. Nobody remembers opening it.",
		"Footprints lead up the stairs. None lead back down.",
	},
	mapgen.Level1: {
		"Torchlight flickers along a corridor that is longer on the inside.",
		"Someone has scratched a tally into the wall. It stops at forty-one.",
	},
	mapgen.Level2: {
		"Warm air drifts from a campfire somewhere ahead. It smells of cinnamon and smoke.",
		"The stones here are worn smooth by a great many hopeful boots.",
	},
	mapgen.Level3: {
		"Chains sway overhead with no wind to move them.",
		"A merchant's sign swings from a hook: OPEN, probably.",
	},
	mapgen.Level4: {
		"The floor tilts a degree every few steps. Your balance adjusts. Your stomach does not.",
		"Old banners hang in tatters. Each bears a different crest, all crossed out.",
	},
	mapgen.Level5: {
		"Halfway up. The view from the arrow slits is mostly fog and regret.",
		"Embers from a recent fire are still warm. Whoever lit it has moved on.",
	},
	mapgen.Level6: {
		"The walls murmur names. You are fairly sure one of them is yours.",
		"Bones line the path in neat rows. Someone up here likes order.",
	},
	mapgen.Level7: {
		"A last campfire burns against the dark. Beyond it, something breathes.",
		"The stairs narrow until only one climber at a time can pass.",
	},
	mapgen.LevelBoss: {
		"The summit. Scales the size of shields shift in the gloom.",
		"A roar shakes dust from the ceiling. The climb ends here, one way or another.",
	},
}

// Lore returns the snippet for level l in a run with the given seed. The
// same run always shows the same line.
func Lore(l mapgen.Level, seed int64) string {
	if l < mapgen.LevelStart || l > mapgen.LevelBoss {
		return ""
	}
	lines := LevelLore[l]
	if len(lines) == 0 {
		return ""
	}
	i := (seed + int64(l)) % int64(len(lines))
	if i < 0 {
		i = -i
	}
	return lines[i]
}
