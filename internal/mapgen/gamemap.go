package mapgen

import "slices"

// MapNode is one encounter point on the map.
type MapNode struct {
	ID          string   `json:"id"`
	Type        NodeType `json:"type"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Level       Level    `json:"level"`
	Status      Status   `json:"status"`
	Connections []string `json:"connections"`
}

// MapPath is a directed edge between nodes on adjacent levels.
type MapPath struct {
	ID       string `json:"id"`
	SourceID string `json:"sourceId"`
	TargetID string `json:"targetId"`
	Status   Status `json:"status"`
}

// GameMap is the whole run map. It is owned by a single run and mutated only
// through MovePlayer and UpdateNodeStatus; callers re-persist it after every
// successful mutation.
type GameMap struct {
	ID             string     `json:"id"`
	Nodes          []*MapNode `json:"nodes"`
	Paths          []*MapPath `json:"paths"`
	PlayerPosition string     `json:"playerPosition"`
	CurrentLevel   Level      `json:"currentLevel"`
}

// Node returns the node with the given id, or nil.
func (m *GameMap) Node(id string) *MapNode {
	for _, n := range m.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Path returns the edge from sourceID to targetID, or nil.
func (m *GameMap) Path(sourceID, targetID string) *MapPath {
	for _, p := range m.Paths {
		if p.SourceID == sourceID && p.TargetID == targetID {
			return p
		}
	}
	return nil
}

// NodesAt returns the nodes on level l in creation (left to right) order.
func (m *GameMap) NodesAt(l Level) []*MapNode {
	var out []*MapNode
	for _, n := range m.Nodes {
		if n.Level == l {
			out = append(out, n)
		}
	}
	return out
}

// AvailableNodes returns every node the player may move to right now.
func (m *GameMap) AvailableNodes() []*MapNode {
	var out []*MapNode
	for _, n := range m.Nodes {
		if n.Status == StatusAvailable {
			out = append(out, n)
		}
	}
	return out
}

// CurrentNode returns the node the player occupies, or nil before the first
// move.
func (m *GameMap) CurrentNode() *MapNode {
	if m.PlayerPosition == "" {
		return nil
	}
	return m.Node(m.PlayerPosition)
}

// Boss returns the single boss node, or nil on a malformed map.
func (m *GameMap) Boss() *MapNode {
	for _, n := range m.Nodes {
		if n.Level == LevelBoss {
			return n
		}
	}
	return nil
}

// Clone returns a deep copy of m.
func (m *GameMap) Clone() *GameMap {
	c := &GameMap{
		ID:             m.ID,
		PlayerPosition: m.PlayerPosition,
		CurrentLevel:   m.CurrentLevel,
		Nodes:          make([]*MapNode, len(m.Nodes)),
		Paths:          make([]*MapPath, len(m.Paths)),
	}
	for i, n := range m.Nodes {
		nn := *n
		nn.Connections = slices.Clone(n.Connections)
		c.Nodes[i] = &nn
	}
	for i, p := range m.Paths {
		pp := *p
		c.Paths[i] = &pp
	}
	return c
}
