package render

import (
	"github.com/gdamore/tcell/v2"

	"spire-run/internal/mapgen"
)

// NodeGlyphs maps each node type to the emoji drawn for it.
var NodeGlyphs = map[mapgen.NodeType]string{
	mapgen.NodeBattle: "👹",
	mapgen.NodeElite:  "💀",
	mapgen.NodeRest:   "🔥",
	mapgen.NodeEvent:  "❓",
	mapgen.NodeShop:   "💰",
	mapgen.NodeBoss:   "🐉",
}

// PlayerGlyph marks the node the player stands on.
const PlayerGlyph = "🧙"

// pathColors tints edges by status.
var pathColors = map[mapgen.Status]tcell.Color{
	mapgen.StatusUnavailable: tcell.ColorDimGray,
	mapgen.StatusAvailable:   tcell.ColorYellow,
	mapgen.StatusCompleted:   tcell.ColorGreen,
}

// nodeBackgrounds highlights reachable nodes.
var nodeBackgrounds = map[mapgen.Status]tcell.Color{
	mapgen.StatusUnavailable: tcell.ColorBlack,
	mapgen.StatusAvailable:   tcell.ColorNavy,
	mapgen.StatusCompleted:   tcell.ColorDarkGreen,
}

// Legend lists the glyphs in draw order for the HUD.
var Legend = []mapgen.NodeType{
	mapgen.NodeBattle, mapgen.NodeElite, mapgen.NodeRest,
	mapgen.NodeEvent, mapgen.NodeShop, mapgen.NodeBoss,
}
