package mapgen

import "math/rand"

// PickNodeType draws a node type with probability proportional to weights,
// renormalised over the types not in excluded. BOSS is never drawn. When no
// weight remains the draw falls back to BATTLE.
func PickNodeType(rng *rand.Rand, weights map[NodeType]int, excluded map[NodeType]bool) NodeType {
	total := 0
	for _, t := range drawableTypes {
		if !excluded[t] && weights[t] > 0 {
			total += weights[t]
		}
	}
	if total <= 0 {
		return NodeBattle
	}
	roll := rng.Intn(total)
	for _, t := range drawableTypes {
		if excluded[t] || weights[t] <= 0 {
			continue
		}
		roll -= weights[t]
		if roll < 0 {
			return t
		}
	}
	return NodeBattle
}
