package mapgen

import (
	"math"
	"math/rand"
	"testing"
)

func TestPickNodeTypeNeverBoss(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	weights := map[NodeType]int{NodeBattle: 1, NodeBoss: 1000}
	for range 1000 {
		if got := PickNodeType(rng, weights, nil); got == NodeBoss {
			t.Fatal("drew BOSS")
		}
	}
}

func TestPickNodeTypeFallback(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cases := []struct {
		name     string
		weights  map[NodeType]int
		excluded map[NodeType]bool
	}{
		{"nil weights", nil, nil},
		{"all zero", map[NodeType]int{NodeElite: 0, NodeShop: 0}, nil},
		{"all excluded", DefaultWeights, map[NodeType]bool{
			NodeBattle: true, NodeElite: true, NodeRest: true, NodeEvent: true, NodeShop: true,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PickNodeType(rng, tc.weights, tc.excluded); got != NodeBattle {
				t.Errorf("got %s, want BATTLE", got)
			}
		})
	}
}

func TestPickNodeTypeRespectsExclusions(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	excluded := map[NodeType]bool{NodeBattle: true, NodeElite: true}
	for range 1000 {
		switch got := PickNodeType(rng, DefaultWeights, excluded); got {
		case NodeBattle, NodeElite, NodeBoss:
			t.Fatalf("drew excluded type %s", got)
		}
	}
}

// TestPickNodeTypeDistribution checks the draw frequencies against the weight
// table within a loose tolerance.
func TestPickNodeTypeDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const draws = 100000
	counts := make(map[NodeType]int)
	for range draws {
		counts[PickNodeType(rng, DefaultWeights, nil)]++
	}
	total := 0
	for _, w := range DefaultWeights {
		total += w
	}
	for typ, w := range DefaultWeights {
		want := float64(w) / float64(total)
		got := float64(counts[typ]) / draws
		if math.Abs(got-want) > 0.01 {
			t.Errorf("%s frequency %.3f, want %.3f", typ, got, want)
		}
	}
}
