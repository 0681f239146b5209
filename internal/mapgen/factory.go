package mapgen

import (
	"fmt"
	"slices"
)

// NodeID is the deterministic id of the index-th node on level l.
func NodeID(l Level, index int) string {
	return fmt.Sprintf("node_%d_%d", int(l), index)
}

// PathID is the id of the edge from sourceID to targetID.
func PathID(sourceID, targetID string) string {
	return fmt.Sprintf("path_%s_%s", sourceID, targetID)
}

// newNode returns an unavailable node with no connections.
func newNode(l Level, index int, t NodeType, x, y float64) *MapNode {
	return &MapNode{
		ID:          NodeID(l, index),
		Type:        t,
		X:           x,
		Y:           y,
		Level:       l,
		Status:      StatusUnavailable,
		Connections: []string{},
	}
}

// connect adds an edge from src to dst. A repeated pair is a no-op and
// returns false.
func connect(m *GameMap, src, dst *MapNode) bool {
	if slices.Contains(src.Connections, dst.ID) {
		return false
	}
	src.Connections = append(src.Connections, dst.ID)
	m.Paths = append(m.Paths, &MapPath{
		ID:       PathID(src.ID, dst.ID),
		SourceID: src.ID,
		TargetID: dst.ID,
		Status:   StatusUnavailable,
	})
	return true
}
