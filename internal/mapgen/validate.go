package mapgen

import (
	"errors"
	"fmt"
	"slices"
)

// Validate checks the structural and status invariants of m and returns every
// violation found, joined. A nil result means the map is playable.
func Validate(m *GameMap) error {
	var errs []error

	byID := make(map[string]*MapNode, len(m.Nodes))
	perLevel := make([]int, NumLevels)
	for _, n := range m.Nodes {
		if _, dup := byID[n.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate node id %s", n.ID))
		}
		byID[n.ID] = n
		if n.Level < LevelStart || n.Level > LevelBoss {
			errs = append(errs, fmt.Errorf("%s: level %d out of range", n.ID, n.Level))
			continue
		}
		perLevel[n.Level]++
		if n.Level == LevelBoss && n.Type != NodeBoss {
			errs = append(errs, fmt.Errorf("%s: boss level node has type %s", n.ID, n.Type))
		}
		if n.Level != LevelBoss && n.Type == NodeBoss {
			errs = append(errs, fmt.Errorf("%s: BOSS node on %s", n.ID, n.Level))
		}
	}
	for l := LevelStart; l <= LevelBoss; l++ {
		if perLevel[l] == 0 {
			errs = append(errs, fmt.Errorf("%s has no nodes", l))
		}
	}
	if perLevel[LevelBoss] > 1 {
		errs = append(errs, fmt.Errorf("%d boss nodes, want 1", perLevel[LevelBoss]))
	}

	paths := make(map[[2]string]*MapPath, len(m.Paths))
	incoming := make(map[string]int)
	for _, p := range m.Paths {
		src, dst := byID[p.SourceID], byID[p.TargetID]
		if src == nil || dst == nil {
			errs = append(errs, fmt.Errorf("path %s references a missing node", p.ID))
			continue
		}
		if dst.Level != src.Level+1 {
			errs = append(errs, fmt.Errorf("path %s skips from %s to %s", p.ID, src.Level, dst.Level))
		}
		if !slices.Contains(src.Connections, dst.ID) {
			errs = append(errs, fmt.Errorf("path %s not listed in %s connections", p.ID, src.ID))
		}
		paths[[2]string{src.ID, dst.ID}] = p
		incoming[dst.ID]++
	}

	for _, n := range m.Nodes {
		if n.Level != LevelBoss && len(n.Connections) == 0 {
			errs = append(errs, fmt.Errorf("%s has no outgoing connection", n.ID))
		}
		if n.Level != LevelStart && incoming[n.ID] == 0 {
			errs = append(errs, fmt.Errorf("%s has no incoming path", n.ID))
		}
		for _, id := range n.Connections {
			if _, ok := paths[[2]string{n.ID, id}]; !ok {
				errs = append(errs, fmt.Errorf("%s -> %s has no path", n.ID, id))
			}
		}
		if n.Level == LevelBoss-1 {
			if boss := m.Boss(); boss != nil && !slices.Contains(n.Connections, boss.ID) {
				errs = append(errs, fmt.Errorf("%s does not reach the boss", n.ID))
			}
		}
	}

	errs = append(errs, validateStatus(m, byID)...)
	return errors.Join(errs...)
}

func validateStatus(m *GameMap, byID map[string]*MapNode) []error {
	var errs []error
	if m.PlayerPosition != "" {
		cur := byID[m.PlayerPosition]
		switch {
		case cur == nil:
			errs = append(errs, fmt.Errorf("player position %s is not a node", m.PlayerPosition))
		case cur.Status != StatusCompleted:
			errs = append(errs, fmt.Errorf("player node %s is %s", cur.ID, cur.Status))
		case cur.Level != m.CurrentLevel:
			errs = append(errs, fmt.Errorf("current level %s but player is on %s", m.CurrentLevel, cur.Level))
		}
	}
	for _, p := range m.Paths {
		src, dst := byID[p.SourceID], byID[p.TargetID]
		if src == nil || dst == nil || p.Status == StatusCompleted {
			continue
		}
		want := src.Status == StatusCompleted && dst.Status == StatusAvailable
		if got := p.Status == StatusAvailable; got != want {
			errs = append(errs, fmt.Errorf("path %s is %s (source %s, target %s)", p.ID, p.Status, src.Status, dst.Status))
		}
	}
	return errs
}
