package run

import "spire-run/internal/mapgen"

// Encounter tells the caller which scene to open after a successful move.
type Encounter struct {
	NodeID string
	Type   mapgen.NodeType
	Level  mapgen.Level
	Gold   int // gold granted for entering the node
	Final  bool
}

// Title is a short description for the HUD.
func (e Encounter) Title() string {
	switch e.Type {
	case mapgen.NodeBattle:
		return "A battle begins"
	case mapgen.NodeElite:
		return "An elite blocks the way"
	case mapgen.NodeRest:
		return "You rest by the campfire"
	case mapgen.NodeEvent:
		return "Something strange happens"
	case mapgen.NodeShop:
		return "A merchant waves you over"
	case mapgen.NodeBoss:
		return "The boss awaits"
	}
	return "You move on"
}

// goldRewards is the gold granted when a node of each type is entered.
var goldRewards = map[mapgen.NodeType]int{
	mapgen.NodeBattle: 15,
	mapgen.NodeElite:  35,
	mapgen.NodeEvent:  10,
	mapgen.NodeBoss:   100,
}
