package mapgen

import "slices"

// UpdateNodeStatus recomputes availability from the player's position. Every
// node and path that is not COMPLETED is first reset to UNAVAILABLE, so stale
// availability never survives a move. COMPLETED is never cleared.
//
// With no position yet, every START node becomes available. Otherwise the
// targets of the current node's connections, and the paths leading to them,
// become available.
func UpdateNodeStatus(m *GameMap) {
	resetStatuses(m)

	if m.PlayerPosition == "" {
		for _, n := range m.Nodes {
			if n.Level == LevelStart && n.Status != StatusCompleted {
				n.Status = StatusAvailable
			}
		}
		return
	}

	cur := m.Node(m.PlayerPosition)
	if cur == nil {
		return
	}
	for _, id := range cur.Connections {
		n := m.Node(id)
		if n == nil || n.Status == StatusCompleted {
			continue
		}
		n.Status = StatusAvailable
		if p := m.Path(cur.ID, id); p != nil && p.Status != StatusCompleted {
			p.Status = StatusAvailable
		}
	}
}

func resetStatuses(m *GameMap) {
	for _, n := range m.Nodes {
		if n.Status != StatusCompleted {
			n.Status = StatusUnavailable
		}
	}
	for _, p := range m.Paths {
		if p.Status != StatusCompleted {
			p.Status = StatusUnavailable
		}
	}
}

// MovePlayer moves the player to targetID. The target must be AVAILABLE and,
// once the player has a position, listed in the current node's connections;
// before the first move any available START node is accepted. On an illegal
// target it returns false and leaves m untouched.
//
// A successful move marks the target node and the traversed path COMPLETED
// and recomputes availability from the new position.
func MovePlayer(m *GameMap, targetID string) bool {
	target := m.Node(targetID)
	if target == nil || target.Status != StatusAvailable {
		return false
	}

	var traversed *MapPath
	if m.PlayerPosition == "" {
		if target.Level != LevelStart {
			return false
		}
	} else {
		cur := m.Node(m.PlayerPosition)
		if cur == nil || !slices.Contains(cur.Connections, targetID) {
			return false
		}
		traversed = m.Path(cur.ID, targetID)
	}

	m.PlayerPosition = targetID
	m.CurrentLevel = target.Level
	target.Status = StatusCompleted
	if traversed != nil {
		traversed.Status = StatusCompleted
	}
	UpdateNodeStatus(m)
	return true
}

// Finished reports whether the player has reached the boss node.
func (m *GameMap) Finished() bool {
	cur := m.CurrentNode()
	return cur != nil && cur.Level == LevelBoss
}
