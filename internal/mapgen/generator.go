package mapgen

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
)

// Generator builds run maps from a validated Config.
type Generator struct {
	cfg    *Config
	layout layout
}

// NewGenerator validates cfg and returns a Generator for it.
func NewGenerator(cfg *Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid map config: %w", err)
	}
	return &Generator{cfg: cfg, layout: layout{cfg: cfg}}, nil
}

// Generate builds a complete, connected map with the player not yet placed
// and every START node available.
func (g *Generator) Generate() *GameMap {
	m := &GameMap{
		ID:           g.mapID(),
		CurrentLevel: LevelStart,
	}

	levels := make([][]*MapNode, NumLevels)
	for l := LevelStart; l <= LevelBoss; l++ {
		levels[l] = g.placeLevel(l)
		if len(levels[l]) == 0 {
			panic(fmt.Sprintf("mapgen: %s generated no nodes", l))
		}
		m.Nodes = append(m.Nodes, levels[l]...)
	}

	for l := LevelStart; l < LevelBoss; l++ {
		g.connectLevels(m, levels[l], levels[l+1], l+1 == LevelBoss)
	}

	UpdateNodeStatus(m)
	return m
}

// mapID draws the map id from the seeded source so seeded maps are identical.
func (g *Generator) mapID() string {
	id, err := uuid.NewRandomFromReader(g.cfg.Rand)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// placeLevel creates the nodes of level l with their types and coordinates.
func (g *Generator) placeLevel(l Level) []*MapNode {
	count := g.layout.nodeCount(l)
	types := g.levelTypes(l, count)
	y := g.layout.y(l)

	nodes := make([]*MapNode, count)
	for i := range count {
		nodes[i] = newNode(l, i, types[i], g.layout.x(l, i, count), y)
	}
	return nodes
}

// levelTypes assigns a type to each of count slots. Required types are
// placed first and the rest drawn at random; the result is shuffled so the
// required types do not always sit on the left.
func (g *Generator) levelTypes(l Level, count int) []NodeType {
	if l == LevelBoss {
		return []NodeType{NodeBoss}
	}

	placed := make(map[NodeType]int)
	types := make([]NodeType, 0, count)
	for _, t := range g.cfg.Required[l] {
		if len(types) == count {
			break
		}
		if placed[t] > 0 {
			continue
		}
		types = append(types, t)
		placed[t]++
	}

	excluded := g.cfg.excludedAt(l)
	for len(types) < count {
		t := PickNodeType(g.cfg.Rand, g.cfg.Weights, excluded)
		types = append(types, t)
		placed[t]++
	}

	g.cfg.Rand.Shuffle(len(types), func(i, j int) { types[i], types[j] = types[j], types[i] })
	return types
}

// connectLevels wires every node in upper to one or more nodes in lower and
// then repairs any lower node left without an incoming edge.
func (g *Generator) connectLevels(m *GameMap, upper, lower []*MapNode, toBoss bool) {
	incoming := make(map[string]int, len(lower))

	if toBoss {
		boss := lower[0]
		for _, src := range upper {
			if connect(m, src, boss) {
				incoming[boss.ID]++
			}
		}
		return
	}

	for _, src := range upper {
		k := g.cfg.Connections.Min
		if span := g.cfg.Connections.Max - g.cfg.Connections.Min; span > 0 {
			k += g.cfg.Rand.Intn(span + 1)
		}
		k = min(k, len(lower))

		for _, dst := range nearest(src, lower)[:k] {
			if connect(m, src, dst) {
				incoming[dst.ID]++
			}
		}
	}

	for _, dst := range lower {
		if incoming[dst.ID] > 0 {
			continue
		}
		src := g.repairSource(dst, upper)
		if connect(m, src, dst) {
			incoming[dst.ID]++
		}
	}
}

// repairSource picks the upper node that should adopt an orphaned dst: the
// nearest by horizontal distance, skipping full nodes when StrictOutDegree
// is set and an unfilled one exists.
func (g *Generator) repairSource(dst *MapNode, upper []*MapNode) *MapNode {
	ranked := nearest(dst, upper)
	if g.cfg.StrictOutDegree {
		for _, src := range ranked {
			if len(src.Connections) < g.cfg.Connections.Max {
				return src
			}
		}
	}
	return ranked[0]
}

// nearest returns candidates ordered by horizontal distance to from. Ties
// keep left-to-right order.
func nearest(from *MapNode, candidates []*MapNode) []*MapNode {
	out := append([]*MapNode(nil), candidates...)
	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].X-from.X) < math.Abs(out[j].X-from.X)
	})
	return out
}
