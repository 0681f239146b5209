package assets

import (
	"testing"

	"spire-run/internal/mapgen"
)

func TestEveryLevelHasLore(t *testing.T) {
	for l := mapgen.LevelStart; l <= mapgen.LevelBoss; l++ {
		if len(LevelLore[l]) == 0 {
			t.Errorf("%s has no lore", l)
		}
	}
}

func TestLoreStableAndInRange(t *testing.T) {
	for _, seed := range []int64{0, 1, 7, -3, 1 << 40} {
		for l := mapgen.LevelStart; l <= mapgen.LevelBoss; l++ {
			got := Lore(l, seed)
			if got == "" {
				t.Errorf("seed=%d %s: empty lore", seed, l)
			}
			if got != Lore(l, seed) {
				t.Errorf("seed=%d %s: lore changed between calls", seed, l)
			}
		}
	}
	if got := Lore(mapgen.LevelBoss+1, 1); got != "" {
		t.Errorf("out-of-range level returned %q", got)
	}
}
