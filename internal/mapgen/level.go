// Package mapgen builds the branching run map: a layered directed graph from
// a start rank to a single boss node, plus the status transitions that track
// the player walking through it.
package mapgen

import "fmt"

// Level is one horizontal rank of the map graph.
type Level int

const (
	LevelStart Level = iota
	Level1
	Level2
	Level3
	Level4
	Level5
	Level6
	Level7
	LevelBoss
)

// NumLevels is the number of ranks on every map, START and BOSS included.
const NumLevels = int(LevelBoss) + 1

func (l Level) String() string {
	switch l {
	case LevelStart:
		return "START"
	case LevelBoss:
		return "BOSS"
	}
	if l > LevelStart && l < LevelBoss {
		return fmt.Sprintf("LEVEL_%d", int(l))
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// IsEndpoint reports whether l is the START or BOSS rank. Endpoint ranks are
// laid out without jitter and have a fixed node count.
func (l Level) IsEndpoint() bool {
	return l == LevelStart || l == LevelBoss
}

// NodeType is the encounter category of a node.
type NodeType string

const (
	NodeBattle NodeType = "BATTLE"
	NodeElite  NodeType = "ELITE"
	NodeRest   NodeType = "REST"
	NodeEvent  NodeType = "EVENT"
	NodeShop   NodeType = "SHOP"
	NodeBoss   NodeType = "BOSS"
)

// drawableTypes lists the types the random selector may return, in the order
// weights are walked. BOSS is never drawn.
var drawableTypes = []NodeType{NodeBattle, NodeElite, NodeRest, NodeEvent, NodeShop}

// Status is a node's or path's state relative to the player's position.
type Status string

const (
	StatusUnavailable Status = "UNAVAILABLE"
	StatusAvailable   Status = "AVAILABLE"
	StatusCompleted   Status = "COMPLETED"
)
