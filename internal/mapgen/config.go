package mapgen

import (
	"errors"
	"fmt"
	"math/rand"
)

// CountRange is an inclusive {Min, Max} bound.
type CountRange struct {
	Min, Max int
}

// Config drives generation of one map. All randomness flows through Rand so a
// seeded source reproduces the same map.
type Config struct {
	// Layout, in pixel space.
	Width        float64
	MarginX      float64
	MarginY      float64
	LevelSpacing float64
	JitterY      float64 // max vertical jitter either way for middle levels

	LevelCounts map[Level]CountRange // node count per intermediate level
	Connections CountRange           // out-degree drawn per source node

	Weights  map[NodeType]int
	Required map[Level][]NodeType // types that must appear at least once
	Excluded map[Level][]NodeType // types never drawn on that level

	// StrictOutDegree makes the orphan repair prefer a source that is still
	// below Connections.Max; it only exceeds the bound when every candidate
	// is already full.
	StrictOutDegree bool

	Rand *rand.Rand
}

// DefaultWeights is the draw table for random node types.
var DefaultWeights = map[NodeType]int{
	NodeBattle: 65,
	NodeElite:  8,
	NodeRest:   12,
	NodeEvent:  10,
	NodeShop:   5,
}

// DefaultConfig returns the standard nine-level layout using rng.
func DefaultConfig(rng *rand.Rand) *Config {
	return &Config{
		Width:        800,
		MarginX:      100,
		MarginY:      80,
		LevelSpacing: 90,
		JitterY:      12,
		LevelCounts: map[Level]CountRange{
			Level1: {2, 4},
			Level2: {3, 4},
			Level3: {3, 5},
			Level4: {3, 5},
			Level5: {3, 4},
			Level6: {2, 4},
			Level7: {2, 3},
		},
		Connections: CountRange{1, 2},
		Weights:     DefaultWeights,
		Required: map[Level][]NodeType{
			Level2: {NodeRest},
			Level5: {NodeRest},
			Level7: {NodeRest},
		},
		Excluded: map[Level][]NodeType{
			LevelStart: {NodeElite, NodeRest, NodeEvent, NodeShop},
			Level1:     {NodeElite, NodeRest},
			Level7:     {NodeElite},
		},
		StrictOutDegree: true,
		Rand:            rng,
	}
}

// Validate reports configuration that would make generation impossible, such
// as an empty level or more required types than node slots.
func (c *Config) Validate() error {
	var errs []error
	if c.Rand == nil {
		errs = append(errs, errors.New("nil Rand"))
	}
	if c.Width <= 2*c.MarginX {
		errs = append(errs, fmt.Errorf("width %.0f leaves no room inside margins %.0f", c.Width, c.MarginX))
	}
	if c.Connections.Min < 1 || c.Connections.Max < c.Connections.Min {
		errs = append(errs, fmt.Errorf("bad connection range %v", c.Connections))
	}
	for l := Level1; l < LevelBoss; l++ {
		r, ok := c.LevelCounts[l]
		if !ok {
			errs = append(errs, fmt.Errorf("%s: no node count", l))
			continue
		}
		if r.Min < 1 || r.Max < r.Min {
			errs = append(errs, fmt.Errorf("%s: bad node count range %v", l, r))
			continue
		}
		if n := len(c.Required[l]); n > r.Min {
			errs = append(errs, fmt.Errorf("%s: %d required types but only %d guaranteed slots", l, n, r.Min))
		}
	}
	for l, types := range c.Required {
		if l.IsEndpoint() {
			errs = append(errs, fmt.Errorf("%s: required types are fixed on endpoint levels", l))
		}
		for _, t := range types {
			if t == NodeBoss {
				errs = append(errs, fmt.Errorf("%s: BOSS cannot be required", l))
			}
		}
	}
	for t, w := range c.Weights {
		if w < 0 {
			errs = append(errs, fmt.Errorf("negative weight %d for %s", w, t))
		}
	}
	return errors.Join(errs...)
}

// excludedAt returns the exclusion set for level l, BOSS always included.
func (c *Config) excludedAt(l Level) map[NodeType]bool {
	ex := map[NodeType]bool{NodeBoss: true}
	for _, t := range c.Excluded[l] {
		ex[t] = true
	}
	return ex
}
